package registry

import "errors"

var (
	// ErrValueNotFound is returned when the named value does not exist in the source.
	ErrValueNotFound = errors.New("registry value not found")

	// ErrUnexpectedType is returned when a value exists but has a different type.
	ErrUnexpectedType = errors.New("registry value has unexpected type")

	// ErrUnsupportedPlatform is returned by the live source when the host has no Windows registry.
	ErrUnsupportedPlatform = errors.New("live registry access requires windows")

	// ErrInvalidRegFile is returned for exports that cannot be parsed.
	ErrInvalidRegFile = errors.New("invalid registry export")

	// ErrMalformedHexDump is returned for blob files that are text but not a valid hex dump.
	ErrMalformedHexDump = errors.New("malformed hex dump")
)
