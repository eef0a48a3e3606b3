package biomtab

import (
	"errors"
)

var (
	// ErrInvalidInput is returned when the value passed to Convert is not a
	// decoded BIOM table, or is one without a counts matrix.
	ErrInvalidInput = errors.New("input is not a decoded biom table")
)
