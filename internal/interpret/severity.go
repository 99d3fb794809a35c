package interpret

import (
	"regexp"

	"github.com/obsidiansec/auditlens/api/schemas"
)

// Severity classification is a two-tier lookup with a fixed priority order.
// Tier one reads an explicit declaration line ("Severity: High", "**Risk
// Level**: critical"); tier two falls back to scanning the whole block. Both
// tiers check Critical → High → Medium → Low → Informational and the first
// containing match wins, so a block that says "not critical" still classifies
// as Critical. That tie-break is deliberate and documented: conflicting
// keywords resolve deterministically rather than erroring.

// declarationRe captures the remainder of a line that explicitly declares a
// severity, with or without bold markup around the label.
var declarationRe = regexp.MustCompile(`(?im)^.*?(?:\*\*)?(?:severity|risk\s+level|priority)(?:\*\*)?\s*:?(?:\*\*)?\s*(.+)$`)

// severityTerm pairs one level with the keyword pattern that implies it.
// Matches are word bounded so "overflow" does not read as Low and
// "highlight" does not read as High.
type severityTerm struct {
	level schemas.Severity
	re    *regexp.Regexp
}

// declarationTerms accept synonyms ("moderate", "note"): a producer that
// wrote them after an explicit label meant them as a level.
var declarationTerms = []severityTerm{
	{schemas.SeverityCritical, regexp.MustCompile(`(?i)\bcritical\b`)},
	{schemas.SeverityHigh, regexp.MustCompile(`(?i)\bhigh\b`)},
	{schemas.SeverityMedium, regexp.MustCompile(`(?i)\b(?:medium|moderate)\b`)},
	{schemas.SeverityLow, regexp.MustCompile(`(?i)\b(?:low|minor)\b`)},
	{schemas.SeverityInformational, regexp.MustCompile(`(?i)\b(?:informational|info|note)\b`)},
}

// fallbackTerms scan whole-block prose, where synonyms are far too common as
// ordinary words ("please note that...", "a minor refactor"); only the five
// level names themselves count, everything else takes the Medium default.
var fallbackTerms = []severityTerm{
	{schemas.SeverityCritical, regexp.MustCompile(`(?i)\bcritical\b`)},
	{schemas.SeverityHigh, regexp.MustCompile(`(?i)\bhigh\b`)},
	{schemas.SeverityMedium, regexp.MustCompile(`(?i)\bmedium\b`)},
	{schemas.SeverityLow, regexp.MustCompile(`(?i)\blow\b`)},
	{schemas.SeverityInformational, regexp.MustCompile(`(?i)\binformational\b`)},
}

// classifySeverity maps a text span to one of the five severity levels,
// defaulting to Medium when neither tier produces a match.
func classifySeverity(text string) schemas.Severity {
	if m := declarationRe.FindStringSubmatch(text); m != nil {
		if level, ok := scanSeverityTerms(m[1], declarationTerms); ok {
			return level
		}
	}
	if level, ok := scanSeverityTerms(text, fallbackTerms); ok {
		return level
	}
	return schemas.SeverityMedium
}

// scanSeverityTerms runs the ordered keyword scan; the first level whose
// keyword appears anywhere in text wins.
func scanSeverityTerms(text string, terms []severityTerm) (schemas.Severity, bool) {
	for _, term := range terms {
		if term.re.MatchString(text) {
			return term.level, true
		}
	}
	return "", false
}
