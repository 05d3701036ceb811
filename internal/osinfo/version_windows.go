//go:build windows

package osinfo

import (
	"golang.org/x/sys/windows"
)

// kernelVersion reads the real version with RtlGetVersion, which is not subject to
// the compatibility shims that affect GetVersionEx.
func kernelVersion() (int, int, string, error) {
	v := windows.RtlGetVersion()
	return int(v.MajorVersion), int(v.MinorVersion), windows.UTF16ToString(v.CsdVersion[:]), nil
}
