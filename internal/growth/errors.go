package growth

import "errors"

var (
	ErrInputMissing         = errors.New("input missing")
	ErrInputOutOfBounds     = errors.New("input out of bounds")
	ErrInvalidSex           = errors.New("gender must be M or F")
	ErrUnsupportedIndexKind = errors.New("unsupported index kind")
	ErrIndexNotComputable   = errors.New("index not computable")
)
