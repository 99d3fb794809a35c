package interpret

import (
	"regexp"
	"strings"
)

// Markdown normalization for extracted prose fields. Fenced code is handled
// separately (CodeSpans/stripCodeSpans) and is never rewritten; everything
// else is reduced to plain text.

var (
	// fencedCodeRe matches a fenced block including an optional language tag.
	// Group 1 is the code body.
	fencedCodeRe = regexp.MustCompile("(?s)```[a-zA-Z0-9_+#-]*[ \t]*\\r?\\n?(.*?)```")

	bulletMarkerRe  = regexp.MustCompile(`(?m)^[ \t]*(?:[-*+][ \t]+)+`)
	numberMarkerRe  = regexp.MustCompile(`(?m)^[ \t]*\d+[.)][ \t]+`)
	headingMarkerRe = regexp.MustCompile(`(?m)^[ \t]*(?:#{1,6}[ \t]*)+`)
	boldRe          = regexp.MustCompile(`\*\*([^*\n]+)\*\*|__([^_\n]+)__`)
	italicRe        = regexp.MustCompile(`\*([^*\n]+)\*`)
	inlineCodeRe    = regexp.MustCompile("`([^`\n]*)`")
	linkRe          = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
)

// CodeSpans returns the bodies of all fenced code blocks in text, in source
// order, with their fences and language tags removed but the code itself
// untouched.
func CodeSpans(text string) []string {
	matches := fencedCodeRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	spans := make([]string, 0, len(matches))
	for _, m := range matches {
		if code := strings.Trim(m[1], "\n"); code != "" {
			spans = append(spans, code)
		}
	}
	return spans
}

// joinCodeSpans concatenates all fenced code bodies found in text. Returns ""
// when the text has no fenced code.
func joinCodeSpans(text string) string {
	return strings.Join(CodeSpans(text), "\n\n")
}

// stripCodeSpans removes fenced code blocks wholesale.
func stripCodeSpans(text string) string {
	return fencedCodeRe.ReplaceAllString(text, "")
}

// Normalize strips decorative markdown from text and returns plain prose:
// fenced code blocks are removed first, then list and heading markers, bold
// and italic emphasis, inline code fences and link syntax; runs of blank
// lines collapse to a single blank line and the result is trimmed.
//
// The single pass is repeated until the output stops changing, so nested
// markup ("**# Fix**") cannot leave markers behind and the transform is
// idempotent: Normalize(Normalize(x)) == Normalize(x). Every rewrite strictly
// shrinks the string, which bounds the loop.
func Normalize(text string) string {
	for {
		next := normalizeOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func normalizeOnce(text string) string {
	text = stripCodeSpans(text)
	text = headingMarkerRe.ReplaceAllString(text, "")
	text = bulletMarkerRe.ReplaceAllString(text, "")
	text = numberMarkerRe.ReplaceAllString(text, "")
	text = boldRe.ReplaceAllString(text, "$1$2")
	text = italicRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
