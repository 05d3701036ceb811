package interfaces

import (
	"context"
)

// BlobSource provides named binary values from the CurrentVersion registry key
// or something standing in for it.
type BlobSource interface {
	// LookupBinary returns a copy of the named binary value.
	// A missing value is reported with an error wrapping registry.ErrValueNotFound.
	LookupBinary(ctx context.Context, valueName string) ([]byte, error)

	// Describe returns a short human readable name for the source, used in reports and logs
	Describe() string
}

// StringSource provides named string values from the same key, such as ProductName and CSDVersion
type StringSource interface {
	LookupString(ctx context.Context, valueName string) (string, error)
}

// RegistrySource is a source that serves both binary and string values
type RegistrySource interface {
	BlobSource
	StringSource
}
