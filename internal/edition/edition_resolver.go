package edition

import (
	"strings"

	"github.com/deploymenttheory/go-winkey/internal/types"
)

// Resolver classifies OS release and edition text into a types.Edition.
// It holds only an immutable lookup table and is safe for concurrent use.
type Resolver struct {
	byName map[string]types.Edition
}

// NewResolver returns a resolver that knows every supported edition.
func NewResolver() *Resolver {
	byName := make(map[string]types.Edition)
	for _, e := range types.SupportedEditions() {
		byName[normalize(e.Identifier())] = e
	}
	return &Resolver{byName: byName}
}

// Resolve maps a release ("7", "XP") and edition text ("Professional") to an edition.
// The text is expected without the "Microsoft" and "Windows" prefixes. Matching is
// exact apart from case and spaces; anything else yields types.NotSupported.
func (r *Resolver) Resolve(release, editionText string) types.Edition {
	return r.lookup("Windows" + release + editionText)
}

// ResolveDescriptor resolves the release and edition of a detected OS.
func (r *Resolver) ResolveDescriptor(desc types.OSDescriptor) types.Edition {
	return r.Resolve(desc.Release, desc.Edition)
}

// Parse accepts an identifier ("Windows7Professional") or display name
// ("Windows 7 Professional") as typed on the command line.
func (r *Resolver) Parse(name string) types.Edition {
	return r.lookup(name)
}

func (r *Resolver) lookup(name string) types.Edition {
	if e, ok := r.byName[normalize(name)]; ok {
		return e
	}
	return types.NotSupported
}

// normalize drops spaces and folds case. Only ASCII space is removed, matching
// how descriptions are cleaned upstream.
func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}
