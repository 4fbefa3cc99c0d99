package repositories

import "errors"

// ErrNotFound is returned (wrapped) when a row does not exist.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err marks a missing row.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
