package accounts

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Store.Get for an unknown ID.
var ErrNotFound = errors.New("account not found")

// UnknownSchemeError reports an unsupported codec or ID scheme name.
type UnknownSchemeError struct {
	Kind string
	Name string
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
}
