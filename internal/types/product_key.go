package types

// Product key layout inside the DigitalProductId registry value.
// The encoded key occupies bytes 0x34 through 0x43.
const (
	// KeyStartIndex is the offset of the first byte of the encoded key.
	KeyStartIndex = 52

	// KeyEndIndex is the offset of the last byte of the encoded window.
	KeyEndIndex = KeyStartIndex + 15

	// WindowLength is the number of bytes copied out of the blob.
	WindowLength = KeyEndIndex - KeyStartIndex + 1

	// EncodedKeyLength is the number of window bytes that take part in decoding.
	EncodedKeyLength = 15

	// MinBlobLength is the shortest blob that contains the whole window.
	MinBlobLength = KeyEndIndex + 1

	// DecodedKeyLength is the length of a formatted key including separators.
	DecodedKeyLength = 29

	// KeyGroupLength is the number of symbols between separators.
	KeyGroupLength = 5

	// KeySeparator separates the five key groups.
	KeySeparator = '-'

	// KeyRadix is the base of the positional system used by the encoding.
	KeyRadix = 24
)

// KeyAlphabet lists the key symbols in digit order. Vowels and digits that
// read like letters are excluded. The array length is tied to KeyRadix so the
// two cannot drift apart.
var KeyAlphabet = [KeyRadix]byte{
	'B', 'C', 'D', 'F', 'G', 'H', 'J', 'K', 'M', 'P', 'Q', 'R',
	'T', 'V', 'W', 'X', 'Y', '2', '3', '4', '6', '7', '8', '9',
}

// Registry value names holding the encoded product id.
const (
	DigitalProductIDValue          = "DigitalProductId"
	DigitalProductIDAlternateValue = "DigitalProductId4"
)

// CurrentVersionKeyPath is the HKLM subkey holding the product id values.
const CurrentVersionKeyPath = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`

// ProductKey is a formatted key such as "BBBBB-BBBBB-BBBBB-BBBBB-BBBBB".
type ProductKey string

// String returns the key text.
func (k ProductKey) String() string {
	return string(k)
}

// IsSeparatorPosition reports whether position i of a formatted key holds a separator.
func IsSeparatorPosition(i int) bool {
	return (i+1)%(KeyGroupLength+1) == 0
}

// SymbolIndex returns the digit value of c, or -1 when c is not a key symbol.
func SymbolIndex(c byte) int {
	for i, s := range KeyAlphabet {
		if s == c {
			return i
		}
	}
	return -1
}

// DigitalProductIDLength is the usual size of a DigitalProductId value.
const DigitalProductIDLength = 164
