package productkey

import (
	"fmt"

	"github.com/deploymenttheory/go-winkey/internal/types"
)

// ValueName returns the registry value holding the encoded key for an edition.
// Windows 7 Professional keeps it in DigitalProductId4; every other edition uses DigitalProductId.
func ValueName(edition types.Edition) (string, error) {
	switch {
	case !edition.IsSupported():
		return "", fmt.Errorf("%w: %s", ErrEditionNotSupported, edition)
	case edition == types.Windows7Professional:
		return types.DigitalProductIDAlternateValue, nil
	default:
		return types.DigitalProductIDValue, nil
	}
}

// Decode extracts and decodes the product key from a DigitalProductId blob.
// The blob is only read; bytes outside the key window are ignored.
func Decode(edition types.Edition, blob []byte) (types.ProductKey, error) {
	if !edition.IsSupported() {
		return "", fmt.Errorf("%w: %s", ErrEditionNotSupported, edition)
	}

	window, err := ExtractWindow(blob)
	if err != nil {
		return "", err
	}

	return DecodeWindow(window), nil
}

// ExtractWindow copies the key window out of a blob.
func ExtractWindow(blob []byte) ([types.WindowLength]byte, error) {
	var window [types.WindowLength]byte
	if len(blob) < types.MinBlobLength {
		return window, fmt.Errorf("%w: got %d bytes, need at least %d", ErrInsufficientData, len(blob), types.MinBlobLength)
	}
	copy(window[:], blob[types.KeyStartIndex:types.KeyEndIndex+1])
	return window, nil
}

// DecodeWindow converts the key window into a formatted product key.
//
// The first 15 bytes form a little-endian integer. Output positions are filled
// from last to first; each non-separator position takes the remainder of one
// long division of the whole integer by 24. The last window byte is not used.
func DecodeWindow(window [types.WindowLength]byte) types.ProductKey {
	var digits [types.EncodedKeyLength]byte
	copy(digits[:], window[:types.EncodedKeyLength])

	var out [types.DecodedKeyLength]byte
	for i := types.DecodedKeyLength - 1; i >= 0; i-- {
		if types.IsSeparatorPosition(i) {
			out[i] = types.KeySeparator
			continue
		}
		out[i] = types.KeyAlphabet[divideByRadix(&digits)]
	}

	return types.ProductKey(out[:])
}

// divideByRadix divides the little-endian number in place and returns the remainder.
func divideByRadix(digits *[types.EncodedKeyLength]byte) int {
	remainder := 0
	for j := types.EncodedKeyLength - 1; j >= 0; j-- {
		value := remainder<<8 | int(digits[j])
		digits[j] = byte(value / types.KeyRadix)
		remainder = value % types.KeyRadix
	}
	return remainder
}
