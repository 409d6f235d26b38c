// Package qerr defines the error kinds surfaced by query planning and
// execution. Callers distinguish three situations: the request itself is
// malformed (ConfigurationError), a referenced entity or taxonomy node does
// not exist (UnresolvedReference), and the database failed (ExecutionError).
package qerr

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a request that cannot be planned: an unknown
// entity or relation name, an order-by column outside the entity's scalar
// whitelist, or an invalid argument combination. It is fatal to the request.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewConfigurationError builds a ConfigurationError for the given field.
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UnresolvedReference reports a lookup key (taxonomy root id, entity id,
// tree-number prefix) that resolved to nothing. It is never fatal: callers
// degrade to an empty result set.
type UnresolvedReference struct {
	Kind string
	Key  string
}

func (e *UnresolvedReference) Error() string {
	return fmt.Sprintf("unresolved %s %q", e.Kind, e.Key)
}

// ExecutionError wraps a database error without altering it. Unwrap exposes
// the driver error so callers can still match on sql sentinel values.
type ExecutionError struct {
	Op  string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// WrapExecution wraps err as an ExecutionError, or returns nil for a nil err.
func WrapExecution(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExecutionError{Op: op, Err: err}
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsUnresolved reports whether err is (or wraps) an UnresolvedReference.
func IsUnresolved(err error) bool {
	var ur *UnresolvedReference
	return errors.As(err, &ur)
}
