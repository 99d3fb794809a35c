package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obsidiansec/auditlens/api/schemas"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want schemas.Severity
	}{
		{
			name: "plain declaration",
			text: "Severity: High\nSome text.",
			want: schemas.SeverityHigh,
		},
		{
			name: "bold declaration",
			text: "**Severity**: Critical",
			want: schemas.SeverityCritical,
		},
		{
			name: "risk level declaration",
			text: "Risk Level: low",
			want: schemas.SeverityLow,
		},
		{
			name: "priority declaration",
			text: "Priority: informational",
			want: schemas.SeverityInformational,
		},
		{
			name: "moderate maps to medium",
			text: "Severity: Moderate",
			want: schemas.SeverityMedium,
		},
		{
			name: "declaration wins over body keywords",
			text: "Severity: Low\nThis is a critical situation overall.",
			want: schemas.SeverityLow,
		},
		{
			// Documented limitation: containment ignores negation.
			name: "negated mention still classifies by containment",
			text: "Severity: not critical at all",
			want: schemas.SeverityCritical,
		},
		{
			name: "conflicting keywords resolve by priority order",
			text: "This could be high or maybe just low impact.",
			want: schemas.SeverityHigh,
		},
		{
			name: "fallback whole-text scan",
			text: "An attacker gains critical control of the vault.",
			want: schemas.SeverityCritical,
		},
		{
			name: "keywords are word bounded",
			text: "An integer overflow in the highlighted path.",
			want: schemas.SeverityMedium,
		},
		{
			// Synonyms only count after an explicit label; as ordinary
			// prose they take the default.
			name: "prose mention of note defaults to medium",
			text: "Please note that the math rounds down.",
			want: schemas.SeverityMedium,
		},
		{
			name: "prose mention of minor defaults to medium",
			text: "This needs a minor refactor before release.",
			want: schemas.SeverityMedium,
		},
		{
			name: "note after an explicit label is informational",
			text: "Severity: note",
			want: schemas.SeverityInformational,
		},
		{
			name: "no signal defaults to medium",
			text: "Nothing to see here.",
			want: schemas.SeverityMedium,
		},
		{
			name: "empty text defaults to medium",
			text: "",
			want: schemas.SeverityMedium,
		},
		{
			name: "unrecognized declaration falls through to body scan",
			text: "Severity: banana\nStill a low concern.",
			want: schemas.SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySeverity(tt.text))
		})
	}
}
