package osinfo

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-winkey/internal/types"
)

// OSFamily is the OS value reported for every detected system.
const OSFamily = "Microsoft Windows"

var nonCaptionChars = regexp.MustCompile(`[^A-Za-z0-9 ]`)

// ParseCaption splits an OS caption such as "Microsoft® Windows® 7 Professional" into
// release and edition. Everything but letters, digits and spaces is dropped, then
// the "Microsoft" and "Windows" prefixes. The first remaining word is the release;
// the rest, without the service pack text, is the edition.
func ParseCaption(caption, servicePack string, architecture int) types.OSDescriptor {
	text := nonCaptionChars.ReplaceAllString(caption, "")
	text = strings.TrimPrefix(text, "Microsoft")
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "Windows")
	text = strings.TrimSpace(text)

	desc := types.OSDescriptor{
		OS:           OSFamily,
		ServicePack:  strings.TrimSpace(servicePack),
		Architecture: architecture,
	}
	if text == "" {
		return desc
	}

	desc.Release = strings.Fields(text)[0]
	edition := strings.TrimSpace(text[len(desc.Release):])
	if desc.ServicePack != "" {
		edition = strings.ReplaceAll(edition, desc.ServicePack, "")
	}
	desc.Edition = strings.Join(strings.Fields(edition), " ")
	return desc
}

// ServicePackLabel formats a service pack major version. Zero means none.
func ServicePackLabel(major int) string {
	if major <= 0 {
		return ""
	}
	return "Service Pack " + strconv.Itoa(major)
}

// ArchitectureFromString maps an OSArchitecture value such as "64-bit" to 32 or 64.
func ArchitectureFromString(arch string) int {
	if strings.Contains(arch, "64") {
		return 64
	}
	return 32
}

// ArchitectureFromProcessor maps PROCESSOR_ARCHITECTURE to 32 or 64. An empty value
// or one starting with x86 is 32-bit.
func ArchitectureFromProcessor(value string) int {
	if value == "" || (len(value) >= 3 && strings.EqualFold(value[:3], "x86")) {
		return 32
	}
	return 64
}

// ReleaseForVersion names the NT release for a kernel version. Unknown versions return "".
func ReleaseForVersion(major, minor int) string {
	switch major {
	case 3:
		return "NT 3.51"
	case 4:
		return "NT 4.0"
	case 5:
		if minor == 0 {
			return "2000"
		}
		return "XP"
	case 6:
		if minor == 0 {
			return "Vista"
		}
		return "7"
	default:
		return ""
	}
}
