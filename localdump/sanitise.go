package localdump

import (
	"fmt"
	"strings"
)

// Characters that are path separators or reserved on at least one filesystem we care about.
const reservedChars = `/\<>?:"|*`

// SanitiseName makes an untrusted repo name or document title safe to use as a single path
// component, by percent-encoding anything reserved.  Nothing else is touched, so "Team/Docs"
// becomes "Team%2FDocs".
func SanitiseName(name string) string {
	if name == "" {
		return "untitled"
	}

	// "." and ".." (or "...") would point somewhere we don't want to write.
	if strings.Trim(name, ".") == "" {
		return strings.Repeat("%2E", len(name))
	}

	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(reservedChars, r) {
			fmt.Fprintf(&b, "%%%02X", r)
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
