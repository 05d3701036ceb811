package findkey

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/deploymenttheory/go-winkey/internal/edition"
	"github.com/deploymenttheory/go-winkey/internal/interfaces"
	"github.com/deploymenttheory/go-winkey/internal/osinfo"
	"github.com/deploymenttheory/go-winkey/internal/productkey"
	"github.com/deploymenttheory/go-winkey/internal/registry"
	"github.com/deploymenttheory/go-winkey/internal/services"
	"github.com/deploymenttheory/go-winkey/internal/types"
	"github.com/deploymenttheory/go-winkey/pkg/app"
)

// Handle processes a key recovery request
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	source, err := openSource(req)
	if err != nil {
		return nil, err
	}
	ctx.Log(fmt.Sprintf("Reading encoded key from: %s", source.Describe()))

	var (
		runCtx *app.Context
		cancel context.CancelFunc
	)
	if ctx.DefaultTimeout > 0 {
		runCtx, cancel = ctx.WithTimeout(ctx.DefaultTimeout)
	} else {
		runCtx, cancel = ctx.WithCancel()
	}
	defer cancel()

	svc := services.NewKeyFinderService(describerFor(ctx, req, source), source, ctx.Logger, services.KeyFinderOptions{
		DefaultValue:   req.DefaultValue,
		AlternateValue: req.AlternateValue,
	})

	var report *services.KeyReport
	if req.EditionName != "" {
		report, err = svc.FindForEdition(runCtx, edition.NewResolver().Parse(req.EditionName))
	} else {
		report, err = svc.Find(runCtx)
	}
	if err != nil {
		return nil, translateError(err)
	}

	resp := &Response{KeyReport: *report, OSDescription: report.OS.Description()}
	if report.Supported {
		ctx.Log(fmt.Sprintf("Edition %s, value %s", report.Edition, report.ValueName))
	} else {
		ctx.Log("Edition not supported: " + resp.OSDescription)
	}
	return resp, nil
}

func openSource(req *Request) (interfaces.BlobSource, error) {
	switch req.Source {
	case SourceLive:
		if runtime.GOOS != "windows" {
			return nil, app.NewError(app.ErrCodeSourceAccess, "the live registry is only available on windows; use a registry export or blob file", registry.ErrUnsupportedPlatform)
		}
		return registry.NewLiveSource(req.KeyPath, req.WOW64Fallback), nil
	case SourceRegFile:
		src, err := registry.NewRegFileSource(req.Path, req.KeyPath)
		if err != nil {
			return nil, app.NewError(app.ErrCodeSourceAccess, "cannot load registry export", err)
		}
		return src, nil
	case SourceBlob:
		src, err := registry.NewBlobFileSource(req.Path, "")
		if errors.Is(err, registry.ErrMalformedHexDump) {
			return nil, app.NewError(app.ErrCodeInvalidInput, "blob file is not a valid hex dump", err)
		}
		if err != nil {
			return nil, app.NewError(app.ErrCodeSourceAccess, "cannot load blob file", err)
		}
		return src, nil
	case SourceHex:
		blob, ok := registry.ParseHexBlob(req.Hex)
		if !ok {
			return nil, app.NewError(app.ErrCodeInvalidInput, "hex input is not a valid byte dump", nil)
		}
		return registry.NewMemorySource("hex input", map[string][]byte{
			valueOrDefault(req.DefaultValue, types.DigitalProductIDValue):            blob,
			valueOrDefault(req.AlternateValue, types.DigitalProductIDAlternateValue): blob,
		}), nil
	default:
		return nil, app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("unknown source %q", req.Source), nil)
	}
}

// describerFor picks explicit text over detection. Detection reads ProductName from the
// same source when it can serve strings.
func describerFor(ctx *app.Context, req *Request, source interfaces.BlobSource) interfaces.OSDescriber {
	if req.Release != "" {
		return osinfo.NewStaticDescriber(req.Release, req.EditionText)
	}

	values, _ := source.(interfaces.StringSource)
	if req.Source == SourceLive {
		return osinfo.NewSystemDescriber(ctx.Logger, req.UseWMI, values)
	}

	// Offline input describes another machine; only its own values apply.
	if values == nil {
		return osinfo.NewChainDescriber(ctx.Logger)
	}
	return osinfo.NewChainDescriber(ctx.Logger, osinfo.NewRegistryDescriber(values))
}

func translateError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return app.NewError(app.ErrCodeTimeout, "timed out reading product key", err)
	case errors.Is(err, productkey.ErrInsufficientData):
		return app.NewError(app.ErrCodeKeyUnavailable, services.MessageUnavailable, err)
	case errors.Is(err, productkey.ErrEditionNotSupported):
		return app.NewError(app.ErrCodeNotSupported, services.MessageNotSupported, err)
	default:
		return err
	}
}

func valueOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
