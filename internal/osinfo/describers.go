package osinfo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/deploymenttheory/go-winkey/internal/interfaces"
	"github.com/deploymenttheory/go-winkey/internal/types"
)

// ErrDetectionUnavailable is returned when no describer could identify the OS.
var ErrDetectionUnavailable = errors.New("operating system detection unavailable")

// StaticDescriber returns a fixed descriptor, for flags, configuration and tests.
type StaticDescriber struct {
	desc types.OSDescriptor
}

var _ interfaces.OSDescriber = (*StaticDescriber)(nil)

// NewStaticDescriber returns a describer for the given release and edition text.
func NewStaticDescriber(release, edition string) *StaticDescriber {
	return &StaticDescriber{desc: types.OSDescriptor{
		OS:      OSFamily,
		Release: strings.TrimSpace(release),
		Edition: strings.TrimSpace(edition),
	}}
}

func (d *StaticDescriber) Describe(ctx context.Context) (types.OSDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return types.OSDescriptor{}, err
	}
	return d.desc, nil
}

// RegistryDescriber builds a descriptor from the ProductName and CSDVersion values
// of the CurrentVersion key. It works against live registries and exports alike.
type RegistryDescriber struct {
	source interfaces.StringSource
}

var _ interfaces.OSDescriber = (*RegistryDescriber)(nil)

func NewRegistryDescriber(source interfaces.StringSource) *RegistryDescriber {
	return &RegistryDescriber{source: source}
}

func (d *RegistryDescriber) Describe(ctx context.Context) (types.OSDescriptor, error) {
	name, err := d.source.LookupString(ctx, "ProductName")
	if err != nil {
		return types.OSDescriptor{}, fmt.Errorf("failed to read ProductName: %w", err)
	}
	// CSDVersion is absent before the first service pack.
	sp, _ := d.source.LookupString(ctx, "CSDVersion")

	desc := ParseCaption(name, sp, 0)
	if desc.Release == "" {
		return types.OSDescriptor{}, fmt.Errorf("%w: empty ProductName", ErrDetectionUnavailable)
	}
	return desc, nil
}

// LegacyDescriber derives the release from the kernel version. It cannot see the
// edition, so results resolve to release-only editions such as Windows7.
type LegacyDescriber struct {
	version func() (major, minor int, servicePack string, err error)
	getenv  func(string) string
}

var _ interfaces.OSDescriber = (*LegacyDescriber)(nil)

// NewLegacyDescriber returns a describer backed by the platform version call.
func NewLegacyDescriber() *LegacyDescriber {
	return &LegacyDescriber{version: kernelVersion, getenv: os.Getenv}
}

func (d *LegacyDescriber) Describe(ctx context.Context) (types.OSDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return types.OSDescriptor{}, err
	}
	major, minor, sp, err := d.version()
	if err != nil {
		return types.OSDescriptor{}, fmt.Errorf("%w: %v", ErrDetectionUnavailable, err)
	}
	return types.OSDescriptor{
		OS:           OSFamily,
		Release:      ReleaseForVersion(major, minor),
		ServicePack:  strings.TrimSpace(sp),
		Architecture: ArchitectureFromProcessor(d.getenv("PROCESSOR_ARCHITECTURE")),
	}, nil
}

// ChainDescriber tries describers in order and returns the first descriptor with a release.
type ChainDescriber struct {
	describers []interfaces.OSDescriber
	logger     *slog.Logger
}

var _ interfaces.OSDescriber = (*ChainDescriber)(nil)

func NewChainDescriber(logger *slog.Logger, describers ...interfaces.OSDescriber) *ChainDescriber {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ChainDescriber{describers: describers, logger: logger}
}

func (c *ChainDescriber) Describe(ctx context.Context) (types.OSDescriptor, error) {
	var errs []error
	for _, d := range c.describers {
		desc, err := d.Describe(ctx)
		if err == nil && desc.Release != "" {
			return desc, nil
		}
		if err == nil {
			err = fmt.Errorf("%w: %T returned no release", ErrDetectionUnavailable, d)
		}
		if ctx.Err() != nil {
			return types.OSDescriptor{}, ctx.Err()
		}
		c.logger.Debug("os describer failed, trying next", slog.String("describer", fmt.Sprintf("%T", d)), slog.Any("error", err))
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return types.OSDescriptor{}, ErrDetectionUnavailable
	}
	return types.OSDescriptor{}, errors.Join(errs...)
}
