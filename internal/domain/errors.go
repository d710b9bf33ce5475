package domain

import "errors"

// Sentinel errors used across layers. Game actions never return these;
// they surface only from lookups and persistence adapters.
var (
	ErrNotFound           = errors.New("not found")
	ErrCorruptRecord      = errors.New("corrupt save record")
	ErrUnsupportedVersion = errors.New("unsupported save record version")
	ErrInvalidConfig      = errors.New("invalid configuration")
)
