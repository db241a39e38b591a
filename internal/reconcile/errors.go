package reconcile

import (
	"errors"
	"fmt"
)

// ErrRepairFailed marks a metric value that no repair rule could parse.
// The affected row is dropped and logged; the reconciliation continues.
var ErrRepairFailed = errors.New("numeric repair failed")

// MalformedRecordError reports a required identity or time column that
// could not be coerced. It is fatal to the reconciliation of the source
// pair: downstream joins assume a fully typed table.
type MalformedRecordError struct {
	Column string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record: column %s value %q: %v", e.Column, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
