package types

import (
	"fmt"
)

// Edition identifies a Windows release and edition whose product key layout is known.
// The set is closed; anything the resolver cannot place maps to NotSupported.
type Edition int

const (
	// NotSupported is returned for any OS description that does not match a known edition.
	NotSupported Edition = iota
	Windows7
	Windows7HomeBasic
	Windows7HomePremium
	Windows7Professional
	Windows7Enterprise
	Windows7Ultimate
	WindowsXP
	WindowsXPStarter
	WindowsXPHome
	WindowsXPProfessional
)

// editionNames holds the identifier and display name for each edition.
// Release-only entries (Windows7, WindowsXP) come from legacy detection, which cannot see the edition.
var editionNames = [...]struct {
	identifier string
	display    string
}{
	NotSupported:          {"NotSupported", "Not supported"},
	Windows7:              {"Windows7", "Windows 7"},
	Windows7HomeBasic:     {"Windows7HomeBasic", "Windows 7 Home Basic"},
	Windows7HomePremium:   {"Windows7HomePremium", "Windows 7 Home Premium"},
	Windows7Professional:  {"Windows7Professional", "Windows 7 Professional"},
	Windows7Enterprise:    {"Windows7Enterprise", "Windows 7 Enterprise"},
	Windows7Ultimate:      {"Windows7Ultimate", "Windows 7 Ultimate"},
	WindowsXP:             {"WindowsXP", "Windows XP"},
	WindowsXPStarter:      {"WindowsXPStarter", "Windows XP Starter"},
	WindowsXPHome:         {"WindowsXPHome", "Windows XP Home"},
	WindowsXPProfessional: {"WindowsXPProfessional", "Windows XP Professional"},
}

// SupportedEditions returns every edition except NotSupported, in declaration order.
func SupportedEditions() []Edition {
	editions := make([]Edition, 0, len(editionNames)-1)
	for e := Windows7; int(e) < len(editionNames); e++ {
		editions = append(editions, e)
	}
	return editions
}

// IsSupported reports whether e is a known edition other than NotSupported.
func (e Edition) IsSupported() bool {
	return e > NotSupported && int(e) < len(editionNames)
}

// Identifier returns the compact name, e.g. "Windows7Professional".
func (e Edition) Identifier() string {
	if e < 0 || int(e) >= len(editionNames) {
		return editionNames[NotSupported].identifier
	}
	return editionNames[e].identifier
}

// String returns the display name, e.g. "Windows 7 Professional".
func (e Edition) String() string {
	if e < 0 || int(e) >= len(editionNames) {
		return fmt.Sprintf("Edition(%d)", int(e))
	}
	return editionNames[e].display
}

// MarshalText encodes the edition as its identifier so JSON and YAML reports stay stable.
func (e Edition) MarshalText() ([]byte, error) {
	return []byte(e.Identifier()), nil
}

// UnmarshalText accepts an identifier produced by MarshalText.
func (e *Edition) UnmarshalText(text []byte) error {
	for i, n := range editionNames {
		if n.identifier == string(text) {
			*e = Edition(i)
			return nil
		}
	}
	return fmt.Errorf("unknown edition identifier %q", string(text))
}
