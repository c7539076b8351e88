package table

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyColumnKey is reported when a column is declared without a key.
	ErrEmptyColumnKey = errors.New("table: column key is required")
	// ErrDuplicateColumn is reported when two columns share a key.
	ErrDuplicateColumn = errors.New("table: duplicate column key")
	// ErrUnknownColumn is reported when state or an interaction references a
	// key that is not defined.
	ErrUnknownColumn = errors.New("table: unknown column key")
	// ErrNotSortable is reported when sorting a column with DisableSort set.
	ErrNotSortable = errors.New("table: column is not sortable")
)

// ConfigError describes an invalid column or state configuration. It unwraps
// to one of the sentinel errors above.
type ConfigError struct {
	Key   string
	Index int
	Err   error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Index >= 0 {
		return fmt.Sprintf("%v: %q (column %d)", e.Err, e.Key, e.Index)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Key)
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func configError(err error, key string, index int) *ConfigError {
	return &ConfigError{Key: key, Index: index, Err: err}
}
