//go:build windows

package osinfo

import (
	"context"
	"fmt"

	"github.com/yusufpapurcu/wmi"

	"github.com/deploymenttheory/go-winkey/internal/interfaces"
	"github.com/deploymenttheory/go-winkey/internal/types"
)

// WMIDescriber reads Win32_OperatingSystem. Service pack and architecture fall back to
// the legacy sources when WMI does not provide them.
type WMIDescriber struct {
	legacy *LegacyDescriber
}

var _ interfaces.OSDescriber = (*WMIDescriber)(nil)

func NewWMIDescriber() *WMIDescriber {
	return &WMIDescriber{legacy: NewLegacyDescriber()}
}

func (d *WMIDescriber) Describe(ctx context.Context) (types.OSDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return types.OSDescriptor{}, err
	}

	type win32OS struct {
		Caption                 string
		ServicePackMajorVersion uint16
	}
	var dst []win32OS
	if err := wmi.Query("SELECT Caption, ServicePackMajorVersion FROM Win32_OperatingSystem", &dst); err != nil {
		return types.OSDescriptor{}, fmt.Errorf("wmi query failed: %w", err)
	}
	if len(dst) == 0 || dst[0].Caption == "" {
		return types.OSDescriptor{}, fmt.Errorf("%w: empty Win32_OperatingSystem caption", ErrDetectionUnavailable)
	}

	legacy, legacyErr := d.legacy.Describe(ctx)

	sp := ServicePackLabel(int(dst[0].ServicePackMajorVersion))
	if sp == "" && legacyErr == nil {
		sp = legacy.ServicePack
	}

	// OSArchitecture does not exist before Vista.
	type win32OSArch struct {
		OSArchitecture string
	}
	var archDst []win32OSArch
	arch := 0
	if err := wmi.Query("SELECT OSArchitecture FROM Win32_OperatingSystem", &archDst); err == nil && len(archDst) > 0 && archDst[0].OSArchitecture != "" {
		arch = ArchitectureFromString(archDst[0].OSArchitecture)
	} else if legacyErr == nil {
		arch = legacy.Architecture
	}

	return ParseCaption(dst[0].Caption, sp, arch), nil
}
