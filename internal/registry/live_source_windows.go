//go:build windows

package registry

import (
	"context"
	"errors"
	"fmt"

	winreg "golang.org/x/sys/windows/registry"

	"github.com/deploymenttheory/go-winkey/internal/interfaces"
)

// LiveSource reads values from HKEY_LOCAL_MACHINE on the running system.
type LiveSource struct {
	keyPath string
	views   []uint32
}

var _ interfaces.RegistrySource = (*LiveSource)(nil)

// NewLiveSource returns a source for keyPath under HKLM. With wow64Fallback set, a
// value missing from the default view is retried in the 64-bit and then the
// 32-bit registry view.
func NewLiveSource(keyPath string, wow64Fallback bool) *LiveSource {
	views := []uint32{0}
	if wow64Fallback {
		views = append(views, winreg.WOW64_64KEY, winreg.WOW64_32KEY)
	}
	return &LiveSource{keyPath: keyPath, views: views}
}

func (s *LiveSource) LookupBinary(ctx context.Context, valueName string) ([]byte, error) {
	var value []byte
	err := s.each(ctx, func(key winreg.Key) error {
		v, _, err := key.GetBinaryValue(valueName)
		if err != nil {
			return s.translate(valueName, err)
		}
		value = v
		return nil
	})
	return value, err
}

func (s *LiveSource) LookupString(ctx context.Context, valueName string) (string, error) {
	var value string
	err := s.each(ctx, func(key winreg.Key) error {
		v, _, err := key.GetStringValue(valueName)
		if err != nil {
			return s.translate(valueName, err)
		}
		value = v
		return nil
	})
	return value, err
}

func (s *LiveSource) Describe() string {
	return `HKLM\` + s.keyPath
}

// each runs fn against the key opened in every configured view until one succeeds.
// The first error that is not ErrValueNotFound is preferred in the result.
func (s *LiveSource) each(ctx context.Context, fn func(winreg.Key) error) error {
	var firstErr error
	for _, view := range s.views {
		if err := ctx.Err(); err != nil {
			return err
		}

		key, err := winreg.OpenKey(winreg.LOCAL_MACHINE, s.keyPath, winreg.QUERY_VALUE|view)
		if err != nil {
			err = s.translate(s.keyPath, err)
		} else {
			err = fn(key)
			key.Close()
		}
		if err == nil {
			return nil
		}
		if firstErr == nil || (errors.Is(firstErr, ErrValueNotFound) && !errors.Is(err, ErrValueNotFound)) {
			firstErr = err
		}
	}
	return firstErr
}

func (s *LiveSource) translate(name string, err error) error {
	switch {
	case errors.Is(err, winreg.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrValueNotFound, name)
	case errors.Is(err, winreg.ErrUnexpectedType):
		return fmt.Errorf("%w: %s", ErrUnexpectedType, name)
	default:
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
}
