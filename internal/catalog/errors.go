package catalog

import "errors"

var (
	ErrInvalidSortKey   = errors.New("invalid sort key")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrInvalidNumber    = errors.New("invalid number")
)
