package main

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/floorops/dispatch/internal/schema"
)

var dateParser = func() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}()

// parseDate accepts a 2006-01-02 date or a natural-language phrase like
// "today" or "next friday". An empty argument means today.
func parseDate(arg string) (time.Time, error) {
	if arg == "" {
		return time.Now(), nil
	}

	if t, err := time.Parse(schema.DateLayout, arg); err == nil {
		return t, nil
	}

	r, err := dateParser.Parse(arg, time.Now())
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q: %w", arg, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q (want %s or a phrase like \"next friday\")",
			arg, schema.DateLayout)
	}
	return r.Time, nil
}
