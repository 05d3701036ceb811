package interfaces

import (
	"context"

	"github.com/deploymenttheory/go-winkey/internal/types"
)

// OSDescriber reports the release and edition of the operating system a key is read for
type OSDescriber interface {
	// Describe returns the descriptor. Release and Edition are free of the
	// "Microsoft" and "Windows" prefixes.
	Describe(ctx context.Context) (types.OSDescriptor, error)
}
