package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantCVE string
		wantSWC string
	}{
		{
			name:    "both present",
			text:    "Related to CVE-2021-44228 and catalogued as SWC-107.",
			wantCVE: "CVE-2021-44228",
			wantSWC: "SWC-107",
		},
		{
			name:    "only swc",
			text:    "See SWC-101 (integer overflow).",
			wantSWC: "SWC-101",
		},
		{
			name:    "only cve",
			text:    "Tracked as CVE-2018-10299.",
			wantCVE: "CVE-2018-10299",
		},
		{
			name:    "first occurrence wins",
			text:    "SWC-107 then SWC-101, CVE-2020-1234 then CVE-2021-9999.",
			wantCVE: "CVE-2020-1234",
			wantSWC: "SWC-107",
		},
		{
			name:    "case insensitive and uppercased",
			text:    "tagged cve-2019-0001 / swc-136 upstream",
			wantCVE: "CVE-2019-0001",
			wantSWC: "SWC-136",
		},
		{
			name: "longer cve sequence accepted",
			text: "CVE-2021-3449911 was assigned.",
			// CVE sequence numbers may exceed four digits.
			wantCVE: "CVE-2021-3449911",
		},
		{
			name: "malformed identifiers ignored",
			text: "CVE-21-1 and SWC-1 are not real identifiers.",
		},
		{
			name: "none present",
			text: "No catalogue references here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cve, swc := extractIdentifiers(tt.text)
			assert.Equal(t, tt.wantCVE, cve)
			assert.Equal(t, tt.wantSWC, swc)
		})
	}
}
