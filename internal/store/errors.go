package store

import "fmt"

// ValidationKind identifies which admission rule a draft violated.
type ValidationKind string

const (
	// FutureDateRequired means the draft's date was already in the past
	// at creation time.
	FutureDateRequired ValidationKind = "future date required"
	// MissingField means a required field was empty.
	MissingField ValidationKind = "missing field"
	// InvalidCapacity means capacity was present but not positive.
	InvalidCapacity ValidationKind = "invalid capacity"
)

// ValidationError rejects a draft at creation. The collection is left
// untouched.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Field)
}

// PersistenceError wraps a failure of the injected Persistence
// collaborator. The in-memory collection already reflects the attempted
// change when a mutating call returns one; callers decide whether that
// matters for them.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
