package interpret

import (
	"regexp"
	"strings"

	"github.com/obsidiansec/auditlens/api/schemas"
)

// The fallback constructor is entered only when no header dialect matched. It
// degrades in three steps: findings built from loose vulnerability mentions,
// then a single synthesized whole-document finding, then zero findings.
// Returning no findings is a valid outcome, not an error.

// mentionRe captures a sentence containing a loose vulnerability mention.
var mentionRe = regexp.MustCompile(`(?i)[^.!?\n]*\b(?:vulnerabilit(?:y|ies)|issue|problem|flaw|weakness)\b[^.!?\n]*[.!?]?`)

// fallbackTitle names the single synthesized whole-document finding.
const fallbackTitle = "Smart Contract Security Analysis"

// fallbackFindings constructs zero or more findings from an unstructured
// document. All mention findings share the whole-document severity and code
// span; that sharing is a documented heuristic limit of mention-level
// recovery, not a defect.
func fallbackFindings(text string, minDocumentLength int) []schemas.Finding {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	code := joinCodeSpans(text)
	severity := classifySeverity(text)
	cveID, swcID := extractIdentifiers(text)

	// Step 1: one finding per loose mention. The mention sentence becomes
	// the explanation; fenced code is excluded from the scan so code
	// comments cannot masquerade as findings.
	var findings []schemas.Finding
	for _, sentence := range mentionRe.FindAllString(stripCodeSpans(text), -1) {
		explanation := Normalize(sentence)
		if explanation == "" {
			continue
		}
		findings = append(findings, schemas.Finding{
			VulnerabilityName: placeholderName(len(findings) + 1),
			Severity:          severity,
			Explanation:       explanation,
			VulnerableCode:    code,
			CVEID:             cveID,
			SWCID:             swcID,
		})
	}
	if len(findings) > 0 {
		return findings
	}

	// Step 2: synthesize exactly one finding when the document is long
	// enough to plausibly be an analysis at all.
	if len(trimmed) <= minDocumentLength {
		return nil
	}
	explanation := Normalize(text)
	if explanation == "" {
		explanation = noExplanationText
	}
	return []schemas.Finding{{
		VulnerabilityName: fallbackTitle,
		Severity:          severity,
		Explanation:       explanation,
		VulnerableCode:    code,
		CVEID:             cveID,
		SWCID:             swcID,
	}}
}
