package productkey

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-winkey/internal/types"
)

// blobWithWindow returns a blob of the given length with window written at the key offset.
func blobWithWindow(length int, window ...byte) []byte {
	blob := make([]byte, length)
	copy(blob[types.KeyStartIndex:], window)
	return blob
}

func TestValueName(t *testing.T) {
	tests := []struct {
		edition types.Edition
		want    string
		wantErr error
	}{
		{types.Windows7Professional, "DigitalProductId4", nil},
		{types.Windows7, "DigitalProductId", nil},
		{types.Windows7HomePremium, "DigitalProductId", nil},
		{types.Windows7Ultimate, "DigitalProductId", nil},
		{types.WindowsXPHome, "DigitalProductId", nil},
		{types.WindowsXPProfessional, "DigitalProductId", nil},
		{types.NotSupported, "", ErrEditionNotSupported},
		{types.Edition(99), "", ErrEditionNotSupported},
	}

	for _, tt := range tests {
		t.Run(tt.edition.String(), func(t *testing.T) {
			got, err := ValueName(tt.edition)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeKnownVectors(t *testing.T) {
	tests := []struct {
		name   string
		window []byte
		want   types.ProductKey
	}{
		{"all zero", make([]byte, 16), "BBBBB-BBBBB-BBBBB-BBBBB-BBBBB"},
		{"one", []byte{0x01}, "BBBBB-BBBBB-BBBBB-BBBBB-BBBBC"},
		{"radix minus one", []byte{0x17}, "BBBBB-BBBBB-BBBBB-BBBBB-BBBB9"},
		{"radix", []byte{0x18}, "BBBBB-BBBBB-BBBBB-BBBBB-BBBCB"},
		{
			"mixed bytes",
			[]byte{0x8a, 0x3f, 0x11, 0xc2, 0x5e, 0x07, 0x99, 0xd4, 0x21, 0x6b, 0xf0, 0x03, 0x4c, 0xbe, 0x02, 0x77},
			"QYKYC-2CTCY-282HV-3YCXT-J9DRD",
		},
		{
			"all ones in the encoded bytes",
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x00},
			"TW7HQ-JY9P9-CFDMG-RH9H7-9BKDX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(types.Windows7Ultimate, blobWithWindow(types.MinBlobLength, tt.window...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeIgnoresBytesOutsideWindow(t *testing.T) {
	window := []byte{0x8a, 0x3f, 0x11, 0xc2, 0x5e, 0x07, 0x99, 0xd4, 0x21, 0x6b, 0xf0, 0x03, 0x4c, 0xbe, 0x02}

	clean := blobWithWindow(types.DigitalProductIDLength, window...)
	noisy := blobWithWindow(types.DigitalProductIDLength, window...)
	for i := range noisy {
		if i < types.KeyStartIndex || i >= types.KeyStartIndex+types.EncodedKeyLength {
			noisy[i] = byte(i * 7)
		}
	}

	want, err := Decode(types.WindowsXPHome, clean)
	require.NoError(t, err)
	got, err := Decode(types.WindowsXPHome, noisy)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeBoundary(t *testing.T) {
	tests := []struct {
		length  int
		wantErr bool
	}{
		{0, true},
		{types.KeyStartIndex, true},
		{67, true},
		{68, false},
		{types.DigitalProductIDLength, false},
	}

	for _, tt := range tests {
		blob := make([]byte, tt.length)
		key, err := Decode(types.Windows7, blob)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInsufficientData, "length %d", tt.length)
			assert.Empty(t, key)
			continue
		}
		assert.NoError(t, err, "length %d", tt.length)
		assert.Len(t, key, types.DecodedKeyLength)
	}
}

func TestDecodeNilBlob(t *testing.T) {
	_, err := Decode(types.Windows7, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestDecodeRejectsNotSupported(t *testing.T) {
	_, err := Decode(types.NotSupported, make([]byte, types.DigitalProductIDLength))
	assert.ErrorIs(t, err, ErrEditionNotSupported)
}

func TestDecodeDoesNotMutateBlob(t *testing.T) {
	blob := blobWithWindow(types.MinBlobLength, 0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03)
	before := append([]byte(nil), blob...)

	_, err := Decode(types.Windows7Enterprise, blob)
	require.NoError(t, err)
	assert.Equal(t, before, blob)
}

func TestDecodeFormatInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(20111))
	alphabet := string(types.KeyAlphabet[:])

	for n := 0; n < 500; n++ {
		var window [types.WindowLength]byte
		rng.Read(window[:])

		key := string(DecodeWindow(window))
		require.Len(t, key, types.DecodedKeyLength)

		for i := 0; i < len(key); i++ {
			if i == 5 || i == 11 || i == 17 || i == 23 {
				assert.Equal(t, byte('-'), key[i], "position %d of %s", i, key)
				continue
			}
			assert.True(t, strings.IndexByte(alphabet, key[i]) >= 0, "position %d of %s", i, key)
		}
		assert.NoError(t, Validate(key))

		// Same input, same output.
		assert.Equal(t, key, string(DecodeWindow(window)))
	}
}

func TestDecodeConcurrent(t *testing.T) {
	blob := blobWithWindow(types.MinBlobLength, 0x8a, 0x3f, 0x11, 0xc2, 0x5e, 0x07, 0x99, 0xd4, 0x21, 0x6b, 0xf0, 0x03, 0x4c, 0xbe, 0x02)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key, err := Decode(types.Windows7, blob)
			assert.NoError(t, err)
			assert.Equal(t, types.ProductKey("QYKYC-2CTCY-282HV-3YCXT-J9DRD"), key)
		}()
	}
	wg.Wait()
}

func TestAlphabet(t *testing.T) {
	seen := make(map[byte]bool)
	for _, c := range types.KeyAlphabet {
		assert.False(t, seen[c], "duplicate symbol %q", c)
		seen[c] = true
	}
	assert.Len(t, seen, types.KeyRadix)
	for _, c := range []byte("AEIOSUZ015") {
		assert.False(t, seen[c], "symbol %q must not be used", c)
	}
}
