//go:build !windows

package registry

import (
	"context"

	"github.com/deploymenttheory/go-winkey/internal/interfaces"
)

// LiveSource is unavailable off windows; every lookup fails with ErrUnsupportedPlatform.
type LiveSource struct {
	keyPath string
}

var _ interfaces.RegistrySource = (*LiveSource)(nil)

// NewLiveSource returns a source that always fails on this platform.
func NewLiveSource(keyPath string, _ bool) *LiveSource {
	return &LiveSource{keyPath: keyPath}
}

func (s *LiveSource) LookupBinary(context.Context, string) ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}

func (s *LiveSource) LookupString(context.Context, string) (string, error) {
	return "", ErrUnsupportedPlatform
}

func (s *LiveSource) Describe() string {
	return `HKLM\` + s.keyPath
}
