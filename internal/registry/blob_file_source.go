package registry

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/deploymenttheory/go-winkey/internal/interfaces"
)

// BlobFileSource serves a single binary value read from a file. The file may hold
// raw bytes or a hex dump; hex dumps may use whitespace, commas, colons and 0x prefixes.
type BlobFileSource struct {
	path      string
	valueName string
	data      []byte
}

var _ interfaces.BlobSource = (*BlobFileSource)(nil)

// NewBlobFileSource reads path. When valueName is empty the blob is returned for every
// lookup; otherwise other names report ErrValueNotFound.
func NewBlobFileSource(path, valueName string) (*BlobFileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob file: %w", err)
	}
	data, err := DecodeBlobText(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &BlobFileSource{path: path, valueName: valueName, data: data}, nil
}

func (s *BlobFileSource) LookupBinary(ctx context.Context, valueName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.valueName != "" && !strings.EqualFold(s.valueName, valueName) {
		return nil, fmt.Errorf("%w: %s in %s", ErrValueNotFound, valueName, s.Describe())
	}
	return append([]byte(nil), s.data...), nil
}

func (s *BlobFileSource) Describe() string {
	return "blob file " + s.path
}

// DecodeBlobText returns the bytes of a hex dump, or raw unchanged when it holds
// binary data. Text that does not parse as a hex dump is an ErrMalformedHexDump;
// a registry value always carries bytes outside printable ASCII.
func DecodeBlobText(raw []byte) ([]byte, error) {
	if !isText(raw) {
		return raw, nil
	}
	decoded, ok := ParseHexBlob(string(raw))
	if !ok {
		return nil, ErrMalformedHexDump
	}
	return decoded, nil
}

// isText reports whether raw holds only printable ASCII and line whitespace.
func isText(raw []byte) bool {
	for _, b := range raw {
		switch {
		case b >= 0x20 && b <= 0x7e:
		case b == '\t', b == '\n', b == '\r':
		default:
			return false
		}
	}
	return true
}

// ParseHexBlob decodes a hex dump such as "a4 00 00 00", "a4,00,00" or "0xa4, 0x00".
// It reports false for anything else, including empty input.
func ParseHexBlob(text string) ([]byte, bool) {
	replacer := strings.NewReplacer("0x", "", "0X", "", ",", " ", ":", " ", "\\", " ")
	fields := strings.Fields(replacer.Replace(strings.TrimPrefix(text, "hex:")))
	if len(fields) == 0 {
		return nil, false
	}

	var buf bytes.Buffer
	for _, f := range fields {
		if len(f)%2 != 0 {
			return nil, false
		}
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, false
		}
		buf.Write(b)
	}
	return buf.Bytes(), true
}
