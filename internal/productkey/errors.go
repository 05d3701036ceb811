package productkey

import "errors"

var (
	// ErrInsufficientData is returned when the encoded blob is missing or shorter than the key window.
	ErrInsufficientData = errors.New("insufficient data for product key")

	// ErrEditionNotSupported is returned when decoding is attempted for types.NotSupported.
	ErrEditionNotSupported = errors.New("windows edition is not supported")

	// ErrMalformedKey is returned by Encode and Validate for text that is not a formatted key.
	ErrMalformedKey = errors.New("malformed product key")
)
