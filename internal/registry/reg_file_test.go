package registry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

const sampleExport = `Windows Registry Editor Version 5.00

[HKEY_LOCAL_MACHINE\SOFTWARE\Microsoft\Windows NT\CurrentVersion]
"ProductName"="Windows 7 Professional"
"CSDVersion"="Service Pack 1"
"InstallDate"=dword:4d5e2a10
"SystemRoot"="C:\\Windows"
"DigitalProductId"=hex:a4,00,00,00,03,00,00,00,\
  30,30,33,37,31,2d,\
  4f,45,4d
"DigitalProductId4"=hex:f8,04,00,00

[HKEY_LOCAL_MACHINE\SOFTWARE\Wow6432Node\Microsoft\Windows NT\CurrentVersion]
"DigitalProductId"=hex:01,02
"BuildLab"="7601.win7sp1_gdr.130828-1532"
`

func TestParseRegFileUTF8(t *testing.T) {
	rf, err := ParseRegFile(strings.NewReader(sampleExport))
	require.NoError(t, err)

	name, ok := rf.Value(`SOFTWARE\Microsoft\Windows NT\CurrentVersion`, "ProductName")
	require.True(t, ok)
	assert.Equal(t, ValueTypeString, name.Type)
	assert.Equal(t, "Windows 7 Professional", name.Text)

	root, ok := rf.Value(`HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion`, "SystemRoot")
	require.True(t, ok)
	assert.Equal(t, `C:\Windows`, root.Text)

	date, ok := rf.Value(`SOFTWARE\Microsoft\Windows NT\CurrentVersion`, "InstallDate")
	require.True(t, ok)
	assert.Equal(t, ValueTypeDword, date.Type)
	assert.Equal(t, "1298016784", date.Text)

	id, ok := rf.Value(`hkey_local_machine\software\microsoft\windows nt\currentversion`, "DigitalProductId")
	require.True(t, ok)
	assert.Equal(t, ValueTypeBinary, id.Type)
	assert.Equal(t, []byte{0xa4, 0, 0, 0, 3, 0, 0, 0, 0x30, 0x30, 0x33, 0x37, 0x31, 0x2d, 0x4f, 0x45, 0x4d}, id.Data)
}

func TestParseRegFileUTF16(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := encoder.String(strings.ReplaceAll(sampleExport, "\n", "\r\n"))
	require.NoError(t, err)

	rf, err := ParseRegFile(strings.NewReader(encoded))
	require.NoError(t, err)

	v, ok := rf.Value(`SOFTWARE\Microsoft\Windows NT\CurrentVersion`, "CSDVersion")
	require.True(t, ok)
	assert.Equal(t, "Service Pack 1", v.Text)

	id, ok := rf.Value(`SOFTWARE\Microsoft\Windows NT\CurrentVersion`, "DigitalProductId4")
	require.True(t, ok)
	assert.Equal(t, []byte{0xf8, 0x04, 0, 0}, id.Data)
}

func TestParseRegFileErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no header", "[HKEY_LOCAL_MACHINE\\SOFTWARE]\n"},
		{"bad header", "Windows Registry Editor Version 9.00\n"},
		{"unterminated key", "REGEDIT4\n[HKEY_LOCAL_MACHINE\\SOFTWARE\n"},
		{"bad hex", "REGEDIT4\n[HKEY_LOCAL_MACHINE\\SOFTWARE]\n\"A\"=hex:zz\n"},
		{"missing equals", "REGEDIT4\n[HKEY_LOCAL_MACHINE\\SOFTWARE]\n\"A\" hex:00\n"},
		{"unterminated name", "REGEDIT4\n[HKEY_LOCAL_MACHINE\\SOFTWARE]\n\"A=hex:00\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRegFile(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidRegFile)
		})
	}
}

func TestParseRegFileCommentEndingInBackslash(t *testing.T) {
	input := "REGEDIT4\n\n[HKEY_LOCAL_MACHINE\\SOFTWARE\\Microsoft\\Windows NT\\CurrentVersion]\n" +
		"; exported from C:\\Windows\\\n" +
		"\"ProductName\"=\"Windows XP Professional\"\n"

	rf, err := ParseRegFile(strings.NewReader(input))
	require.NoError(t, err)

	v, ok := rf.Value(`SOFTWARE\Microsoft\Windows NT\CurrentVersion`, "ProductName")
	require.True(t, ok)
	assert.Equal(t, "Windows XP Professional", v.Text)
}

func TestRegFileValueNamesIgnoreCase(t *testing.T) {
	input := "REGEDIT4\n\n[HKEY_LOCAL_MACHINE\\SOFTWARE\\Microsoft\\Windows NT\\CurrentVersion]\n" +
		"\"digitalproductid\"=hex:00\n" +
		"\"PRODUCTNAME\"=\"Windows 7 Ultimate\"\n"

	rf, err := ParseRegFile(strings.NewReader(input))
	require.NoError(t, err)

	tests := []struct {
		valueName string
		wantType  string
	}{
		{"DigitalProductId", ValueTypeBinary},
		{"DIGITALPRODUCTID", ValueTypeBinary},
		{"ProductName", ValueTypeString},
		{"productname", ValueTypeString},
	}

	for _, tt := range tests {
		t.Run(tt.valueName, func(t *testing.T) {
			v, ok := rf.Value(`SOFTWARE\Microsoft\Windows NT\CurrentVersion`, tt.valueName)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, v.Type)
		})
	}

	src := NewRegFileSourceFrom("lowercase.reg", rf, "")
	name, err := src.LookupString(context.Background(), "ProductName")
	require.NoError(t, err)
	assert.Equal(t, "Windows 7 Ultimate", name)
}

func TestParseRegFileDeletedKeyIsIgnored(t *testing.T) {
	input := "REGEDIT4\n\n[-HKEY_LOCAL_MACHINE\\SOFTWARE\\Old]\n\"Gone\"=\"x\"\n"
	rf, err := ParseRegFile(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rf.Keys)
}

func TestRegFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "currentversion.reg")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o600))

	src, err := NewRegFileSource(path, "")
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("binary from native key", func(t *testing.T) {
		v, err := src.LookupBinary(ctx, "DigitalProductId4")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xf8, 0x04, 0, 0}, v)
	})

	t.Run("native key wins over Wow6432Node", func(t *testing.T) {
		v, err := src.LookupBinary(ctx, "DigitalProductId")
		require.NoError(t, err)
		assert.Equal(t, byte(0xa4), v[0])
	})

	t.Run("string falls back to Wow6432Node", func(t *testing.T) {
		v, err := src.LookupString(ctx, "BuildLab")
		require.NoError(t, err)
		assert.Equal(t, "7601.win7sp1_gdr.130828-1532", v)
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := src.LookupBinary(ctx, "DigitalProductId5")
		assert.ErrorIs(t, err, ErrValueNotFound)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := src.LookupBinary(ctx, "ProductName")
		assert.ErrorIs(t, err, ErrUnexpectedType)
		_, err = src.LookupString(ctx, "DigitalProductId")
		assert.ErrorIs(t, err, ErrUnexpectedType)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.LookupBinary(cancelled, "DigitalProductId")
		assert.ErrorIs(t, err, context.Canceled)
	})

	assert.Contains(t, src.Describe(), "currentversion.reg")
}

func TestNewRegFileSourceMissingFile(t *testing.T) {
	_, err := NewRegFileSource(filepath.Join(t.TempDir(), "nope.reg"), "")
	assert.Error(t, err)
}
