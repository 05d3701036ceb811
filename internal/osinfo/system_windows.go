//go:build windows

package osinfo

import (
	"log/slog"

	"github.com/deploymenttheory/go-winkey/internal/interfaces"
)

// NewSystemDescriber returns the detection chain for the running system: WMI when
// enabled, then the registry ProductName, then the kernel version.
func NewSystemDescriber(logger *slog.Logger, useWMI bool, registry interfaces.StringSource) interfaces.OSDescriber {
	var chain []interfaces.OSDescriber
	if useWMI {
		chain = append(chain, NewWMIDescriber())
	}
	if registry != nil {
		chain = append(chain, NewRegistryDescriber(registry))
	}
	chain = append(chain, NewLegacyDescriber())
	return NewChainDescriber(logger, chain...)
}
