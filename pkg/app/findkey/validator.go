package findkey

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-winkey/internal/edition"
	"github.com/deploymenttheory/go-winkey/internal/types"
	"github.com/deploymenttheory/go-winkey/pkg/app"
)

// Validate validates a recovery request and resolves SourceAuto
func (r *Request) Validate() error {
	if r.Source == "" {
		r.Source = SourceAuto
	}
	if r.Source == SourceAuto {
		r.Source = r.detectSource()
	}
	if r.KeyPath == "" {
		r.KeyPath = types.CurrentVersionKeyPath
	}

	switch r.Source {
	case SourceLive:
		if r.Path != "" {
			return app.NewError(app.ErrCodeInvalidInput, "a path cannot be used with the live registry source", nil)
		}
	case SourceRegFile, SourceBlob:
		if r.Path == "" {
			return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("source %s requires a file path", r.Source), nil)
		}
	case SourceHex:
		if strings.TrimSpace(r.Hex) == "" {
			return app.NewError(app.ErrCodeInvalidInput, "hex source requires data", nil)
		}
		if r.Path != "" {
			return app.NewError(app.ErrCodeInvalidInput, "hex data cannot be combined with a file path", nil)
		}
	default:
		return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("unknown source %q", r.Source), nil)
	}

	if r.EditionName != "" && (r.Release != "" || r.EditionText != "") {
		return app.NewError(app.ErrCodeInvalidInput, "edition name cannot be combined with release and edition text", nil)
	}
	if r.EditionText != "" && r.Release == "" {
		return app.NewError(app.ErrCodeInvalidInput, "edition text requires a release", nil)
	}
	if r.EditionName != "" && !edition.NewResolver().Parse(r.EditionName).IsSupported() {
		return app.NewError(app.ErrCodeNotSupported, fmt.Sprintf("unknown or unsupported edition %q", r.EditionName), nil)
	}

	// A bare blob carries no ProductName, so the edition must come from the caller.
	if (r.Source == SourceBlob || r.Source == SourceHex) && r.EditionName == "" && r.Release == "" {
		return app.NewError(app.ErrCodeInvalidInput, "an edition or release is required for blob input", nil)
	}

	return nil
}

func (r *Request) detectSource() string {
	switch {
	case r.Hex != "":
		return SourceHex
	case r.Path == "":
		return SourceLive
	case strings.EqualFold(filepath.Ext(r.Path), ".reg"):
		return SourceRegFile
	default:
		return SourceBlob
	}
}
