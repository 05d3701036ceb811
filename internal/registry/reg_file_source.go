package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-winkey/internal/interfaces"
	"github.com/deploymenttheory/go-winkey/internal/types"
)

// wow6432KeyPath is where 32-bit views of SOFTWARE keys land in a 64-bit export.
const wow6432KeyPath = `SOFTWARE\Wow6432Node\Microsoft\Windows NT\CurrentVersion`

// RegFileSource serves values from a registry export of the CurrentVersion key.
// Values missing from the native key are looked up under Wow6432Node.
type RegFileSource struct {
	path     string
	file     *RegFile
	keyPaths []string
}

var _ interfaces.RegistrySource = (*RegFileSource)(nil)

// NewRegFileSource loads the export at path. An empty keyPath selects the standard CurrentVersion key.
func NewRegFileSource(path, keyPath string) (*RegFileSource, error) {
	file, err := LoadRegFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegFileSourceFrom(path, file, keyPath), nil
}

// NewRegFileSourceFrom wraps an already parsed export.
func NewRegFileSourceFrom(name string, file *RegFile, keyPath string) *RegFileSource {
	if keyPath == "" {
		keyPath = types.CurrentVersionKeyPath
	}
	keyPaths := []string{keyPath}
	if strings.EqualFold(keyPath, types.CurrentVersionKeyPath) {
		keyPaths = append(keyPaths, wow6432KeyPath)
	}
	return &RegFileSource{path: name, file: file, keyPaths: keyPaths}
}

func (s *RegFileSource) LookupBinary(ctx context.Context, valueName string) ([]byte, error) {
	v, err := s.lookup(ctx, valueName)
	if err != nil {
		return nil, err
	}
	if v.Type != ValueTypeBinary {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnexpectedType, valueName, v.Type)
	}
	return append([]byte(nil), v.Data...), nil
}

func (s *RegFileSource) LookupString(ctx context.Context, valueName string) (string, error) {
	v, err := s.lookup(ctx, valueName)
	if err != nil {
		return "", err
	}
	if v.Type != ValueTypeString {
		return "", fmt.Errorf("%w: %s is %s", ErrUnexpectedType, valueName, v.Type)
	}
	return v.Text, nil
}

func (s *RegFileSource) Describe() string {
	return "registry export " + s.path
}

func (s *RegFileSource) lookup(ctx context.Context, valueName string) (RegValue, error) {
	if err := ctx.Err(); err != nil {
		return RegValue{}, err
	}
	for _, keyPath := range s.keyPaths {
		if v, ok := s.file.Value(keyPath, valueName); ok {
			return v, nil
		}
	}
	return RegValue{}, fmt.Errorf("%w: %s in %s", ErrValueNotFound, valueName, s.Describe())
}
