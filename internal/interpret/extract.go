package interpret

import (
	"regexp"
	"strings"

	"github.com/obsidiansec/auditlens/api/schemas"
)

// Field extraction runs an ordered sequence of extract-and-remove passes over
// a shrinking working copy of the block. The order is fixed and significant:
// narrow, specifically-labeled fields come first so that later, broader passes
// cannot swallow their text. The remainder after the last pass becomes the
// explanation.

// labelRe builds the matcher for a field label occurring at the start of a
// line: an optional heading marker, optional bold markup on either side of
// the label, and either a trailing colon or end of line ("**Impact**:",
// "Impact:", "#### Remediation").
func labelRe(names string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:#{1,6}[ \t]*)?\**[ \t]*(?:` + names + `)[ \t]*\**[ \t]*(?::[ \t]*\**[ \t]*|$)`)
}

// Label pattern lists per field, most specific first.
var (
	pocLabels = []*regexp.Regexp{
		labelRe(`proof[ \t]+of[ \t]+concept`),
		labelRe(`poc`),
		labelRe(`exploit[ \t]+scenario`),
	}
	remediationLabels = []*regexp.Regexp{
		labelRe(`remediation`),
		labelRe(`recommendation`),
		labelRe(`mitigation`),
		labelRe(`suggested[ \t]+fix`),
		labelRe(`fix`),
	}
	referenceLabels = []*regexp.Regexp{
		labelRe(`references?`),
		labelRe(`see[ \t]+also`),
	}
	impactLabels = []*regexp.Regexp{
		labelRe(`impact`),
		labelRe(`consequences?`),
	}
	codeLabels = []*regexp.Regexp{
		labelRe(`vulnerable[ \t]+code`),
		labelRe(`affected[ \t]+code`),
		labelRe(`code`),
		labelRe(`location`),
	}
	severityLabels = []*regexp.Regexp{
		labelRe(`severity|risk[ \t]+level|priority`),
	}
)

// sectionBoundaryRe is the shared "next section" set: the union of every
// label any pass may look for. Extraction of one field stops where any later
// field's label begins.
var sectionBoundaryRe = labelRe(strings.Join([]string{
	`proof[ \t]+of[ \t]+concept`, `poc`, `exploit[ \t]+scenario`,
	`remediation`, `recommendation`, `mitigation`, `suggested[ \t]+fix`, `fix`,
	`references?`, `see[ \t]+also`,
	`impact`, `consequences?`,
	`vulnerable[ \t]+code`, `affected[ \t]+code`, `code`, `location`,
	`severity`, `risk[ \t]+level`, `priority`,
	`description`, `explanation`, `details`,
}, `|`))

// remediationHintRe backs the secondary remediation scan: a sentence opening
// with "to fix/to resolve/to address", run against the original block when no
// labeled remediation section exists.
var remediationHintRe = regexp.MustCompile(`(?i)\bto[ \t]+(?:fix|resolve|address)\b[^.!?\n]*[.!?]?`)

// extractSection performs one extract-and-remove pass. It tries each label
// pattern in priority order against the working text; on the first hit, the
// section value runs from the end of the label to the next section boundary
// (or end of text), and the whole matched span is removed from the working
// text. Returns the untouched working text when no label matches.
func extractSection(working string, labels []*regexp.Regexp) (value, remainder string) {
	for _, lab := range labels {
		loc := lab.FindStringIndex(working)
		if loc == nil {
			continue
		}
		rest := working[loc[1]:]
		end := len(rest)
		if b := sectionBoundaryRe.FindStringIndex(rest); b != nil {
			end = b[0]
		}
		return strings.TrimSpace(rest[:end]), working[:loc[0]] + rest[end:]
	}
	return "", working
}

// extractFields decomposes one block body into labeled finding fields. Pass
// order: proof of concept, remediation, references, impact, vulnerable code;
// the remainder becomes the explanation. Every stored field is normalized
// except VulnerableCode, which keeps its source formatting.
func extractFields(body string) schemas.Finding {
	var f schemas.Finding
	working := body

	f.ProofOfConcept, working = extractSection(working, pocLabels)
	f.Remediation, working = extractSection(working, remediationLabels)
	f.References, working = extractSection(working, referenceLabels)
	f.Impact, working = extractSection(working, impactLabels)

	// Vulnerable code prefers every fenced span present in the original
	// block, wherever it appeared; a labeled section is only consulted when
	// the block has no fenced code at all.
	f.VulnerableCode = joinCodeSpans(body)
	if f.VulnerableCode == "" {
		f.VulnerableCode, working = extractSection(working, codeLabels)
	}

	// An explicit severity declaration belongs to the classifier, which
	// reads the original block; drop it so it cannot leak into the
	// explanation.
	_, working = extractSection(working, severityLabels)

	f.ProofOfConcept = Normalize(f.ProofOfConcept)
	f.Remediation = Normalize(f.Remediation)
	f.References = Normalize(f.References)
	f.Impact = Normalize(f.Impact)
	f.Explanation = Normalize(working)

	if f.Remediation == "" {
		if hint := remediationHintRe.FindString(body); hint != "" {
			f.Remediation = Normalize(hint)
		}
	}
	return f
}
