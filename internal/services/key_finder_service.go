package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-winkey/internal/edition"
	"github.com/deploymenttheory/go-winkey/internal/interfaces"
	"github.com/deploymenttheory/go-winkey/internal/logging"
	"github.com/deploymenttheory/go-winkey/internal/productkey"
	"github.com/deploymenttheory/go-winkey/internal/types"
)

// User facing outcomes.
const (
	MessageNotSupported = "Not found. Windows version is not supported."
	MessageUnavailable  = "Product key could not be retrieved."
)

// KeyFinderOptions overrides the registry value names. Empty fields keep the standard names.
type KeyFinderOptions struct {
	DefaultValue   string
	AlternateValue string
}

// KeyReport is the result of one key recovery.
type KeyReport struct {
	ID          uuid.UUID          `json:"id" yaml:"id"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	OS          types.OSDescriptor `json:"os" yaml:"os"`
	Edition     types.Edition      `json:"edition" yaml:"edition"`
	Supported   bool               `json:"supported" yaml:"supported"`
	Source      string             `json:"source" yaml:"source"`
	ValueName   string             `json:"value_name,omitempty" yaml:"value_name,omitempty"`
	ProductKey  types.ProductKey   `json:"product_key,omitempty" yaml:"product_key,omitempty"`
	Message     string             `json:"message,omitempty" yaml:"message,omitempty"`
}

// KeyFinderService identifies the OS edition and decodes its product key.
// It keeps no state between calls and is safe for concurrent use.
type KeyFinderService struct {
	describer interfaces.OSDescriber
	source    interfaces.BlobSource
	resolver  *edition.Resolver
	opts      KeyFinderOptions
	logger    *slog.Logger
	now       func() time.Time
}

// NewKeyFinderService creates a service reading encoded keys from source.
func NewKeyFinderService(describer interfaces.OSDescriber, source interfaces.BlobSource, logger *slog.Logger, opts KeyFinderOptions) *KeyFinderService {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.DefaultValue == "" {
		opts.DefaultValue = types.DigitalProductIDValue
	}
	if opts.AlternateValue == "" {
		opts.AlternateValue = types.DigitalProductIDAlternateValue
	}
	return &KeyFinderService{
		describer: describer,
		source:    source,
		resolver:  edition.NewResolver(),
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Find describes the OS, resolves its edition and decodes the key. An unsupported
// edition is reported in the returned report, not as an error. Failures to read
// the encoded value are reported as productkey.ErrInsufficientData.
func (s *KeyFinderService) Find(ctx context.Context) (*KeyReport, error) {
	desc, err := s.describer.Describe(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("operating system detection failed", slog.Any("error", err))
		desc = types.OSDescriptor{}
	}

	ed := s.resolver.ResolveDescriptor(desc)
	s.logger.Info("resolved edition",
		slog.String("os", desc.Description()),
		slog.String("edition", ed.Identifier()))

	report := s.newReport(desc, ed)
	if !ed.IsSupported() {
		report.Message = MessageNotSupported
		return report, nil
	}

	if err := s.fill(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// FindForEdition decodes the key for a known edition without OS detection.
func (s *KeyFinderService) FindForEdition(ctx context.Context, ed types.Edition) (*KeyReport, error) {
	report := s.newReport(types.OSDescriptor{}, ed)
	if !ed.IsSupported() {
		report.Message = MessageNotSupported
		return report, nil
	}
	if err := s.fill(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ValueNameFor returns the configured registry value holding the key for an edition.
func (s *KeyFinderService) ValueNameFor(ed types.Edition) (string, error) {
	name, err := productkey.ValueName(ed)
	if err != nil {
		return "", err
	}
	if name == types.DigitalProductIDAlternateValue {
		return s.opts.AlternateValue, nil
	}
	return s.opts.DefaultValue, nil
}

func (s *KeyFinderService) fill(ctx context.Context, report *KeyReport) error {
	valueName, err := s.ValueNameFor(report.Edition)
	if err != nil {
		return err
	}
	report.ValueName = valueName

	blob, err := s.source.LookupBinary(ctx, valueName)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("encoded product key unavailable",
			slog.String("value", valueName),
			slog.String("source", s.source.Describe()),
			slog.Any("error", err))
		return fmt.Errorf("%w: reading %s from %s: %w", productkey.ErrInsufficientData, valueName, s.source.Describe(), err)
	}

	key, err := productkey.Decode(report.Edition, blob)
	if err != nil {
		s.logger.Warn("product key decode failed",
			slog.String("value", valueName),
			slog.Int("length", len(blob)),
			slog.Any("error", err))
		return err
	}
	s.logger.Debug("product key decoded", slog.String("value", valueName), slog.Int("length", len(blob)))

	report.ProductKey = key
	return nil
}

func (s *KeyFinderService) newReport(desc types.OSDescriptor, ed types.Edition) *KeyReport {
	return &KeyReport{
		ID:          uuid.New(),
		GeneratedAt: s.now().UTC(),
		OS:          desc,
		Edition:     ed,
		Supported:   ed.IsSupported(),
		Source:      s.source.Describe(),
	}
}
