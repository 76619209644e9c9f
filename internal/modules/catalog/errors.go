package catalog

import "errors"

var (
	ErrValidation = errors.New("invalid catalog data")
	ErrNotFound   = errors.New("not found")
)
