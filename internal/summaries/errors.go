package summaries

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

const (
	ErrorCodeValidation  = "validation_error"
	ErrorCodeUnsupported = "unsupported_format"
	ErrorCodeDecode      = "decode_error"
	ErrorCodeModel       = "model_error"
	ErrorCodeStorage     = "storage_error"
	ErrorCodeInternal    = "internal_error"
)
