package store

import (
	"errors"
	"fmt"
)

// ErrCorrupt marks a persisted payload that exists but cannot be decoded.
// It is deliberately distinct from "no data yet": a corrupt client list must
// surface as an error, never as an empty list.
var ErrCorrupt = errors.New("corrupt payload")

// ReadError wraps failures to load or decode a stored entry.
type ReadError struct {
	Key string
	Err error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read %s: %v", e.Key, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps failures to persist an entry. A WriteError guarantees the
// previously stored state is intact; callers must not update any in-memory
// view when they see one.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Key, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }
