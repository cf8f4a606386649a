package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadRecords reads a JSONL file, one object per line, into flat records.
// Scalar values are stringified; nulls are dropped; nested values are
// rejected because import fields are flat by contract.
func ReadRecords(path string) ([]Record, error) {
	// #nosec G304 - controlled path from CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	var records []Record
	decoder := json.NewDecoder(file)
	lineNum := 0

	for {
		var raw map[string]interface{}
		if err := decoder.Decode(&raw); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("invalid JSON at record %d: %w", lineNum+1, err)
		}
		lineNum++

		rec := make(Record, len(raw))
		for key, value := range raw {
			switch v := value.(type) {
			case string:
				rec[key] = v
			case float64:
				rec[key] = strconv.FormatFloat(v, 'f', -1, 64)
			case bool:
				rec[key] = strconv.FormatBool(v)
			case nil:
				// Absent field.
			default:
				return nil, fmt.Errorf("record %d: field %s is not a scalar", lineNum, key)
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
