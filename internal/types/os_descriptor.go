package types

import (
	"strconv"
	"strings"
)

// OSDescriptor describes the running operating system. Values are built once by
// an OS describer and passed around by value.
type OSDescriptor struct {
	// OS is the vendor product family, always "Microsoft Windows" for detected systems.
	OS string `json:"os" yaml:"os"`
	// Release is the release token with vendor prefixes removed, e.g. "7" or "XP".
	Release string `json:"release" yaml:"release"`
	// Edition is the remaining caption text, e.g. "Professional". May be empty.
	Edition string `json:"edition" yaml:"edition"`
	// ServicePack is e.g. "Service Pack 1", or empty.
	ServicePack string `json:"service_pack,omitempty" yaml:"service_pack,omitempty"`
	// Architecture is 32 or 64, or 0 when unknown.
	Architecture int `json:"architecture,omitempty" yaml:"architecture,omitempty"`
}

// Description returns a one-line summary such as
// "Microsoft Windows 7 Enterprise Service Pack 1 64 bit".
func (d OSDescriptor) Description() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{d.OS, d.Release, d.Edition, d.ServicePack} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if d.Architecture != 0 {
		parts = append(parts, strconv.Itoa(d.Architecture)+" bit")
	}
	return strings.Join(parts, " ")
}
