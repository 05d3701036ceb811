package findkey

import (
	"github.com/deploymenttheory/go-winkey/internal/services"
)

// Source names accepted in Request.Source.
const (
	SourceAuto    = "auto"
	SourceLive    = "live"
	SourceRegFile = "reg-file"
	SourceBlob    = "blob-file"
	SourceHex     = "hex"
)

// Request represents a product key recovery request
type Request struct {
	// Where the encoded key is read from
	Source string
	Path   string
	Hex    string

	// OS override. EditionName (identifier or display name) skips detection entirely;
	// Release with optional EditionText is resolved like detected text.
	EditionName string
	Release     string
	EditionText string

	// Registry layout
	KeyPath        string
	DefaultValue   string
	AlternateValue string
	WOW64Fallback  bool

	// Detection
	UseWMI bool
}

// Response represents a key recovery result
type Response struct {
	services.KeyReport `yaml:",inline"`

	OSDescription string `json:"os_description,omitempty" yaml:"os_description,omitempty"`
}

// Status returns the line shown to users: the key, or the reason there is none.
func (r *Response) Status() string {
	if r.ProductKey != "" {
		return r.ProductKey.String()
	}
	if r.Message != "" {
		return r.Message
	}
	return services.MessageUnavailable
}
