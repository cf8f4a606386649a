package store

import (
	"errors"

	"github.com/ncruces/go-sqlite3"
)

// ErrNotFound is returned by update/cancel operations that target a row
// which does not exist. Plain lookups report absence with a nil result
// instead of an error.
var ErrNotFound = errors.New("dispatch: not found")

// IsConstraint reports whether err is a constraint violation: a duplicate
// identity, an out-of-enumeration value rejected by a column CHECK, or a
// malformed reference. Such failures are never partially applied and
// retrying the same write will not help.
func IsConstraint(err error) bool {
	var serr *sqlite3.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.CONSTRAINT
}

// IsBusy reports whether err is lock-wait exhaustion: another process held
// the write lock past the configured busy timeout. The write did not apply;
// the caller decides whether to retry.
func IsBusy(err error) bool {
	var serr *sqlite3.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.BUSY
}
