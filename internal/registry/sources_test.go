package registry

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-winkey/internal/types"
)

func TestParseHexBlob(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   []byte
		wantOK bool
	}{
		{"spaces", "a4 00 01 ff", []byte{0xa4, 0x00, 0x01, 0xff}, true},
		{"commas", "a4,00,01,ff", []byte{0xa4, 0x00, 0x01, 0xff}, true},
		{"reg style", "hex:a4,00,\\\n  01,ff", []byte{0xa4, 0x00, 0x01, 0xff}, true},
		{"0x prefixes", "0xa4, 0x00, 0x01, 0xFF", []byte{0xa4, 0x00, 0x01, 0xff}, true},
		{"continuous", "a40001ff\n", []byte{0xa4, 0x00, 0x01, 0xff}, true},
		{"colons", "a4:00:01:ff", []byte{0xa4, 0x00, 0x01, 0xff}, true},
		{"odd digits", "a4 0", nil, false},
		{"not hex", "hello world", nil, false},
		{"empty", "  \n", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHexBlob(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBlobFileSource(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	raw := make([]byte, types.DigitalProductIDLength)
	raw[types.KeyStartIndex] = 0x01
	rawPath := filepath.Join(dir, "raw.bin")
	require.NoError(t, os.WriteFile(rawPath, raw, 0o600))

	hexPath := filepath.Join(dir, "blob.txt")
	require.NoError(t, os.WriteFile(hexPath, []byte("01 02 03\n04"), 0o600))

	t.Run("raw file serves any name", func(t *testing.T) {
		src, err := NewBlobFileSource(rawPath, "")
		require.NoError(t, err)
		got, err := src.LookupBinary(ctx, types.DigitalProductIDAlternateValue)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("hex file is decoded", func(t *testing.T) {
		src, err := NewBlobFileSource(hexPath, "")
		require.NoError(t, err)
		got, err := src.LookupBinary(ctx, types.DigitalProductIDValue)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4}, got)
	})

	t.Run("bound to a value name", func(t *testing.T) {
		src, err := NewBlobFileSource(rawPath, types.DigitalProductIDValue)
		require.NoError(t, err)
		_, err = src.LookupBinary(ctx, types.DigitalProductIDAlternateValue)
		assert.ErrorIs(t, err, ErrValueNotFound)
		_, err = src.LookupBinary(ctx, "digitalproductid")
		assert.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewBlobFileSource(filepath.Join(dir, "missing.bin"), "")
		assert.Error(t, err)
	})

	t.Run("raw bytes that look partly like text", func(t *testing.T) {
		data := []byte("a4 00\x00\x01")
		path := filepath.Join(dir, "mixed.bin")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		src, err := NewBlobFileSource(path, "")
		require.NoError(t, err)
		got, err := src.LookupBinary(ctx, types.DigitalProductIDValue)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})
}

func TestBlobFileSourceMalformedHexDump(t *testing.T) {
	dir := t.TempDir()

	typo := strings.Repeat("00,", types.DigitalProductIDLength-1) + "0g\n"
	tests := []struct {
		name    string
		content string
	}{
		{"bad byte", typo},
		{"odd digit count", "a4 00 0\n"},
		{"hexdump -C columns", "00000000  a4 00 00 00 03 00 00 00  |........|\n"},
		{"plain text", "not a product id\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			src, err := NewBlobFileSource(path, "")
			assert.Nil(t, src)
			assert.ErrorIs(t, err, ErrMalformedHexDump)
		})
	}
}

func TestDecodeBlobText(t *testing.T) {
	got, err := DecodeBlobText([]byte("0xa4, 0x00\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa4, 0x00}, got)

	raw := []byte{0xa4, 0x00, 0x00, 0x00}
	got, err = DecodeBlobText(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = DecodeBlobText([]byte("a4 zz"))
	assert.ErrorIs(t, err, ErrMalformedHexDump)
}

func TestMemorySource(t *testing.T) {
	ctx := context.Background()
	values := map[string][]byte{types.DigitalProductIDValue: {1, 2, 3}}
	src := NewMemorySource("test", values).WithString("ProductName", "Windows XP Professional")

	values[types.DigitalProductIDValue][0] = 9

	got, err := src.LookupBinary(ctx, types.DigitalProductIDValue)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got, "source must copy its input")

	got[1] = 9
	again, err := src.LookupBinary(ctx, types.DigitalProductIDValue)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, again, "source must copy its output")

	name, err := src.LookupString(ctx, "ProductName")
	require.NoError(t, err)
	assert.Equal(t, "Windows XP Professional", name)

	_, err = src.LookupBinary(ctx, types.DigitalProductIDAlternateValue)
	assert.ErrorIs(t, err, ErrValueNotFound)
	_, err = src.LookupString(ctx, "CSDVersion")
	assert.ErrorIs(t, err, ErrValueNotFound)
}

func TestLiveSourceOffWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("live registry is available on windows")
	}
	src := NewLiveSource(types.CurrentVersionKeyPath, true)
	_, err := src.LookupBinary(context.Background(), types.DigitalProductIDValue)
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Equal(t, `HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion`, src.Describe())
}
