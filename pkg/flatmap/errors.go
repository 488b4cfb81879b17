package flatmap

// errors.go implements the two error kinds spec §7 names, built on
// github.com/agilira/go-errors the same way agilira-balios/errors.go builds
// its cache error codes: a typed ErrorCode constant plus a constructor that
// attaches structured context.

import (
	"fmt"

	"github.com/agilira/go-errors"
)

const (
	// ErrCodeAllocationFailure marks an error returned because the
	// configured Allocator could not satisfy a request. Retryable: the
	// table itself is left in its pre-call state, so a caller that frees
	// memory elsewhere may simply retry the same operation.
	ErrCodeAllocationFailure errors.ErrorCode = "FLATMAP_ALLOCATION_FAILURE"

	// ErrCodePreconditionViolation marks a programming error: a caller
	// broke an *AssumeCapacity/*NoClobber precondition or used a
	// deinitialized table. Not retryable.
	ErrCodePreconditionViolation errors.ErrorCode = "FLATMAP_PRECONDITION_VIOLATION"
)

func newAllocationFailure(op string, size, align uintptr, cause error) error {
	msg := fmt.Sprintf("flatmap: allocation failed during %s", op)
	if cause != nil {
		return errors.Wrap(cause, ErrCodeAllocationFailure, msg).AsRetryable()
	}
	return errors.NewWithContext(ErrCodeAllocationFailure, msg, map[string]interface{}{
		"op":    op,
		"size":  size,
		"align": align,
	}).AsRetryable()
}

// preconditionViolation is what assertPrecondition panics with.
type preconditionViolation struct {
	op  string
	err error
}

func (p *preconditionViolation) Error() string { return p.err.Error() }
func (p *preconditionViolation) Unwrap() error { return p.err }

// assertPrecondition panics with a structured PreconditionViolation when
// cond is false. spec §7 classifies precondition violations as programming
// errors: debug builds abort, release builds may exhibit undefined
// behaviour. A panic is the idiomatic Go rendition of "abort".
func assertPrecondition(cond bool, op, msg string, fields map[string]interface{}) {
	if cond {
		return
	}
	err := errors.NewWithContext(ErrCodePreconditionViolation, msg, fields)
	panic(&preconditionViolation{op: op, err: err})
}
