package registry

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Export file headers written by regedit.
const (
	regeditV5Header = "Windows Registry Editor Version 5.00"
	regeditV4Header = "REGEDIT4"
)

// Value types found in registry exports.
const (
	ValueTypeString = "string"
	ValueTypeBinary = "binary"
	ValueTypeDword  = "dword"
	ValueTypeOther  = "other"
)

// RegValue is a single value parsed from an export.
type RegValue struct {
	Type string
	Text string
	Data []byte
}

// RegFile holds the keys of a parsed export. Key paths are stored with the
// hive prefix removed; key paths and value names are folded to lower case.
type RegFile struct {
	Keys map[string]map[string]RegValue
}

// LoadRegFile reads and parses an export written by regedit or "reg export".
func LoadRegFile(path string) (*RegFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry export: %w", err)
	}
	defer f.Close()

	return ParseRegFile(f)
}

// ParseRegFile parses an export. UTF-16 (version 5 exports) and UTF-8 input are
// accepted; the encoding is chosen from the byte order mark.
func ParseRegFile(r io.Reader) (*RegFile, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	rf := &RegFile{Keys: make(map[string]map[string]RegValue)}
	var (
		current    map[string]RegValue
		pending    strings.Builder
		sawHeader  bool
		lineNumber int
	)

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r")

		if pending.Len() > 0 {
			line = strings.TrimLeft(line, " \t")
		}
		if strings.HasSuffix(line, `\`) && !isCommentOrKey(line) {
			pending.WriteString(strings.TrimSuffix(line, `\`))
			continue
		}
		if pending.Len() > 0 {
			pending.WriteString(line)
			line = pending.String()
			pending.Reset()
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, ";"):
			continue
		case !sawHeader:
			if trimmed != regeditV5Header && trimmed != regeditV4Header {
				return nil, fmt.Errorf("%w: unrecognised header %q", ErrInvalidRegFile, trimmed)
			}
			sawHeader = true
		case strings.HasPrefix(trimmed, "["):
			if !strings.HasSuffix(trimmed, "]") {
				return nil, fmt.Errorf("%w: line %d: unterminated key", ErrInvalidRegFile, lineNumber)
			}
			path := trimmed[1 : len(trimmed)-1]
			if strings.HasPrefix(path, "-") {
				// Deletion entry.
				current = nil
				continue
			}
			key := normalizeKeyPath(path)
			if rf.Keys[key] == nil {
				rf.Keys[key] = make(map[string]RegValue)
			}
			current = rf.Keys[key]
		default:
			if current == nil {
				continue
			}
			name, value, err := parseValueLine(trimmed)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRegFile, lineNumber, err)
			}
			current[strings.ToLower(name)] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read registry export: %w", err)
	}
	if !sawHeader {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidRegFile)
	}

	return rf, nil
}

// Value returns a value from the given key path, which may include a hive prefix.
// Key paths and value names match case-insensitively.
func (rf *RegFile) Value(keyPath, valueName string) (RegValue, bool) {
	values, ok := rf.Keys[normalizeKeyPath(keyPath)]
	if !ok {
		return RegValue{}, false
	}
	v, ok := values[strings.ToLower(valueName)]
	return v, ok
}

// isCommentOrKey reports whether line is a comment or key header, which never continue.
func isCommentOrKey(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "[")
}

// parseValueLine splits `"Name"=data` or `@=data`.
func parseValueLine(line string) (string, RegValue, error) {
	var name, rest string
	if strings.HasPrefix(line, "@=") {
		rest = line[2:]
	} else {
		n, remainder, err := readQuoted(line)
		if err != nil {
			return "", RegValue{}, err
		}
		if !strings.HasPrefix(remainder, "=") {
			return "", RegValue{}, fmt.Errorf("missing '=' after value name %q", n)
		}
		name, rest = n, remainder[1:]
	}

	value, err := parseValueData(strings.TrimSpace(rest))
	if err != nil {
		return "", RegValue{}, fmt.Errorf("value %q: %w", name, err)
	}
	return name, value, nil
}

func parseValueData(data string) (RegValue, error) {
	switch {
	case strings.HasPrefix(data, `"`):
		text, _, err := readQuoted(data)
		if err != nil {
			return RegValue{}, err
		}
		return RegValue{Type: ValueTypeString, Text: text}, nil
	case strings.HasPrefix(data, "dword:"):
		n, err := strconv.ParseUint(data[len("dword:"):], 16, 32)
		if err != nil {
			return RegValue{}, fmt.Errorf("bad dword: %w", err)
		}
		return RegValue{Type: ValueTypeDword, Text: strconv.FormatUint(n, 10)}, nil
	case strings.HasPrefix(data, "hex:"), strings.HasPrefix(data, "hex(3):"):
		raw, err := decodeHexList(data[strings.IndexByte(data, ':')+1:])
		if err != nil {
			return RegValue{}, err
		}
		return RegValue{Type: ValueTypeBinary, Data: raw}, nil
	case strings.HasPrefix(data, "hex("):
		raw, err := decodeHexList(data[strings.IndexByte(data, ':')+1:])
		if err != nil {
			return RegValue{}, err
		}
		return RegValue{Type: ValueTypeOther, Data: raw}, nil
	case data == "-":
		return RegValue{Type: ValueTypeOther}, nil
	default:
		return RegValue{}, fmt.Errorf("unsupported data %q", data)
	}
}

// readQuoted reads a quoted string with regedit escaping and returns it with the remaining text.
func readQuoted(s string) (string, string, error) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", fmt.Errorf("expected quoted string")
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 >= len(s) {
				return "", "", fmt.Errorf("dangling escape")
			}
			i++
			b.WriteByte(s[i])
		case '"':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(c)
		}
	}
	return "", "", fmt.Errorf("unterminated string")
}

func decodeHexList(list string) ([]byte, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return []byte{}, nil
	}
	parts := strings.Split(list, ",")
	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		b, err := hex.DecodeString(strings.TrimSpace(p))
		if err != nil || len(b) != 1 {
			return nil, fmt.Errorf("bad hex byte %q", p)
		}
		out = append(out, b[0])
	}
	return out, nil
}

func normalizeKeyPath(path string) string {
	path = strings.ToLower(strings.Trim(strings.TrimSpace(path), `\`))
	for _, hive := range []string{`hkey_local_machine\`, `hklm\`} {
		if strings.HasPrefix(path, hive) {
			return path[len(hive):]
		}
	}
	return path
}
