package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileSizeExceeded   = errors.New("file size exceeds the maximum allowed size")
)
