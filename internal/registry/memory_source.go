package registry

import (
	"context"
	"fmt"

	"github.com/deploymenttheory/go-winkey/internal/interfaces"
)

// MemorySource serves values held in memory.
type MemorySource struct {
	name    string
	binary  map[string][]byte
	strings map[string]string
}

var _ interfaces.RegistrySource = (*MemorySource)(nil)

// NewMemorySource returns a source over the given binary values. The map is copied.
func NewMemorySource(name string, values map[string][]byte) *MemorySource {
	s := &MemorySource{
		name:    name,
		binary:  make(map[string][]byte, len(values)),
		strings: make(map[string]string),
	}
	for k, v := range values {
		s.binary[k] = append([]byte(nil), v...)
	}
	return s
}

// WithString adds a string value and returns the source.
func (s *MemorySource) WithString(valueName, value string) *MemorySource {
	s.strings[valueName] = value
	return s
}

func (s *MemorySource) LookupBinary(ctx context.Context, valueName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.binary[valueName]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrValueNotFound, valueName, s.name)
	}
	return append([]byte(nil), v...), nil
}

func (s *MemorySource) LookupString(ctx context.Context, valueName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, ok := s.strings[valueName]
	if !ok {
		return "", fmt.Errorf("%w: %s in %s", ErrValueNotFound, valueName, s.name)
	}
	return v, nil
}

func (s *MemorySource) Describe() string {
	return s.name
}
