package interpret

import (
	"regexp"
	"strings"
)

// Identifier extraction for vulnerability catalogue references. Runs over the
// raw (pre-normalization) block text so that identifiers inside emphasis or
// inline code are still visible.

var (
	cveRe = regexp.MustCompile(`(?i)\bCVE-\d{4}-\d{4,}\b`)
	swcRe = regexp.MustCompile(`(?i)\bSWC-\d{3}\b`)
)

// extractIdentifiers returns the first CVE-style and the first SWC-style
// identifier found in text. Either may be empty; each is independent of the
// other and the scan never fails.
func extractIdentifiers(text string) (cveID, swcID string) {
	if m := cveRe.FindString(text); m != "" {
		cveID = strings.ToUpper(m)
	}
	if m := swcRe.FindString(text); m != "" {
		swcID = strings.ToUpper(m)
	}
	return cveID, swcID
}
