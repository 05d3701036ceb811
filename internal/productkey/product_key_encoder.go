package productkey

import (
	"fmt"

	"github.com/deploymenttheory/go-winkey/internal/types"
)

// Validate checks the layout of a formatted key: length, separator positions and
// symbols. It does not verify any checksum.
func Validate(key string) error {
	if len(key) != types.DecodedKeyLength {
		return fmt.Errorf("%w: length %d, want %d", ErrMalformedKey, len(key), types.DecodedKeyLength)
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if types.IsSeparatorPosition(i) {
			if c != types.KeySeparator {
				return fmt.Errorf("%w: expected %q at position %d, got %q", ErrMalformedKey, types.KeySeparator, i, c)
			}
			continue
		}
		if types.SymbolIndex(c) < 0 {
			return fmt.Errorf("%w: invalid symbol %q at position %d", ErrMalformedKey, c, i)
		}
	}
	return nil
}

// Encode converts a formatted key back into the 15 encoded bytes.
// DecodeWindow of the result yields the same key.
func Encode(key types.ProductKey) ([types.EncodedKeyLength]byte, error) {
	var digits [types.EncodedKeyLength]byte
	if err := Validate(string(key)); err != nil {
		return digits, err
	}

	for i := 0; i < types.DecodedKeyLength; i++ {
		if types.IsSeparatorPosition(i) {
			continue
		}
		multiplyAdd(&digits, types.SymbolIndex(key[i]))
	}

	return digits, nil
}

// EncodeBlob builds a synthetic DigitalProductId value of the given length with
// the encoded key placed in the key window. Lengths below the minimum are raised.
func EncodeBlob(key types.ProductKey, length int) ([]byte, error) {
	digits, err := Encode(key)
	if err != nil {
		return nil, err
	}
	if length < types.MinBlobLength {
		length = types.MinBlobLength
	}
	blob := make([]byte, length)
	copy(blob[types.KeyStartIndex:], digits[:])
	return blob, nil
}

// multiplyAdd computes digits = digits*24 + add. 24^25 fits in 15 bytes, so a
// full key never carries out of the top byte.
func multiplyAdd(digits *[types.EncodedKeyLength]byte, add int) {
	carry := add
	for j := 0; j < types.EncodedKeyLength; j++ {
		value := int(digits[j])*types.KeyRadix + carry
		digits[j] = byte(value)
		carry = value >> 8
	}
}
