package interpret

import "regexp"

// A Dialect is one header convention the upstream producer might have used.
// Dialects are pure data: a name plus a header pattern whose first capture
// group is the finding number (possibly empty) and whose second is the title
// text (possibly empty). Segmentation tries dialects in table order and the
// first one that matches anywhere in the document wins outright; matches from
// different dialects are never combined.
type Dialect struct {
	Name   string
	Header *regexp.Regexp
}

// defaultDialects lists the known header families, most specific first.
var defaultDialects = []Dialect{
	{
		// "### Vulnerability 1: Reentrancy", "## Finding 2 - Oracle abuse"
		Name:   "labeled-heading",
		Header: regexp.MustCompile(`(?im)^#{1,6}[ \t]*(?:\*\*)?(?:finding|vulnerability|issue)[ \t]*#?(\d+)(?:\*\*)?[ \t]*[:.\-–][ \t]*(.*)$`),
	},
	{
		// "## 1. Reentrancy", "### 2) Unchecked call"
		Name:   "numbered-heading",
		Header: regexp.MustCompile(`(?m)^#{1,6}[ \t]*(\d+)[.):][ \t]*(.*)$`),
	},
	{
		// "**Finding 1: Reentrancy**", "**Issue 2**:"
		// Trailing same-line prose is left to the block body.
		Name:   "bold-label",
		Header: regexp.MustCompile(`(?im)^[ \t]*\*\*(?:finding|vulnerability|issue)[ \t]*#?(\d+)[ \t]*[:.]?[ \t]*(.*?)\*\*[ \t]*:?`),
	},
	{
		// "Finding: unchecked external call"
		Name:   "bare-label",
		Header: regexp.MustCompile(`(?im)^[ \t]*(?:finding|vulnerability|issue)[ \t]*#?(\d*)[ \t]*:[ \t]*(.*)$`),
	},
}
