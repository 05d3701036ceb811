//go:build !windows

package osinfo

import "errors"

func kernelVersion() (int, int, string, error) {
	return 0, 0, "", errors.New("windows version information is not available on this platform")
}
