package reconcile

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// DataAccessError wraps any database failure encountered while reading,
// creating or mutating an enum table: connectivity, permissions, a schema
// the reader cannot scan, a statement the executor could not run.
type DataAccessError struct {
	// Op names the failed step: connect, probe, read, scan, create, apply.
	Op    string
	Table string
	Err   error
}

func (e *DataAccessError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// PolicyViolationError reports that a table holds rows outside its enum
// definition while the deletion mode forbids both removing and ignoring
// them. The table is left untouched when this is returned.
type PolicyViolationError struct {
	Table   string
	Orphans []int64
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("table %s holds %d rows not in the enum definition: %v", e.Table, len(e.Orphans), e.Orphans)
}

// TargetError wraps a failure with the identity of the connection it
// happened on. Target is always the redacted connection string.
type TargetError struct {
	Target string
	Err    error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("target %s: %v", e.Target, e.Err)
}

func (e *TargetError) Unwrap() error { return e.Err }

// IsDataAccess reports whether err carries a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}

// IsPolicyViolation reports whether err carries a PolicyViolationError.
func IsPolicyViolation(err error) bool {
	var pv *PolicyViolationError
	return errors.As(err, &pv)
}

// TargetErrors unpacks the per-target failures of a synchronization run.
// It understands both a single failure and the multierr aggregate a
// parallel run produces.
func TargetErrors(err error) []*TargetError {
	var out []*TargetError
	for _, e := range multierr.Errors(err) {
		var te *TargetError
		if errors.As(e, &te) {
			out = append(out, te)
		}
	}
	return out
}
