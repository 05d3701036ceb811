//go:build !windows

package osinfo

import (
	"log/slog"

	"github.com/deploymenttheory/go-winkey/internal/interfaces"
)

// NewSystemDescriber returns the detection chain for the running system. Off windows
// only a registry source (such as an export) can identify the OS.
func NewSystemDescriber(logger *slog.Logger, _ bool, registry interfaces.StringSource) interfaces.OSDescriber {
	var chain []interfaces.OSDescriber
	if registry != nil {
		chain = append(chain, NewRegistryDescriber(registry))
	}
	chain = append(chain, NewLegacyDescriber())
	return NewChainDescriber(logger, chain...)
}
