package interpret

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/obsidiansec/auditlens/api/schemas"
)

func newTestInterpreter(t *testing.T) *Interpreter {
	t.Helper()
	return New(Options{}, zaptest.NewLogger(t))
}

func TestInterpretStructuredReport(t *testing.T) {
	in := newTestInterpreter(t)

	input := "### Vulnerability 1: Reentrancy\n" +
		"**Severity**: Critical\n" +
		"**Impact**: Funds can be drained.\n" +
		"```solidity\nfunction withdraw() public {}\n```\n" +
		"**Remediation**: Use checks-effects-interactions."

	findings, summary := in.Interpret(input)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "Reentrancy", f.VulnerabilityName)
	assert.Equal(t, schemas.SeverityCritical, f.Severity)
	assert.Contains(t, f.Impact, "Funds can be drained")
	assert.Contains(t, f.VulnerableCode, "function withdraw")
	assert.Contains(t, f.Remediation, "checks-effects-interactions")
	assert.NotEmpty(t, f.Explanation)

	assert.Equal(t, 1, summary.TotalFindings)
	assert.Equal(t, 1, summary.CriticalCount)
	assert.Equal(t, 10, summary.RiskScore)
	assert.Equal(t, schemas.RiskCritical, summary.OverallRisk)
}

// N well-formed headers with explicit severities parse to exactly N findings
// with matching severities, in source order.
func TestInterpretPreservesSourceOrderAndSeverities(t *testing.T) {
	in := newTestInterpreter(t)

	declared := []schemas.Severity{
		schemas.SeverityLow,
		schemas.SeverityCritical,
		schemas.SeverityInformational,
		schemas.SeverityHigh,
		schemas.SeverityMedium,
	}
	var sb strings.Builder
	for i, sev := range declared {
		fmt.Fprintf(&sb, "### Finding %d: Issue number %d\n**Severity**: %s\nBody text %d.\n\n",
			i+1, i+1, sev, i+1)
	}

	findings, summary := in.Interpret(sb.String())
	require.Len(t, findings, len(declared))

	got := make([]schemas.Severity, len(findings))
	for i, f := range findings {
		got[i] = f.Severity
		assert.Equal(t, fmt.Sprintf("Issue number %d", i+1), f.VulnerabilityName)
	}
	assert.Empty(t, cmp.Diff(declared, got))
	assert.Equal(t, len(declared), summary.TotalFindings)
}

func TestInterpretDeterministic(t *testing.T) {
	in := newTestInterpreter(t)
	input := "### Issue 1: A\n**Severity**: High\ntext\n### Issue 2: B\nmore `markdown` text\n"

	f1, s1 := in.Interpret(input)
	f2, s2 := in.Interpret(input)
	assert.Empty(t, cmp.Diff(f1, f2))
	assert.Empty(t, cmp.Diff(s1, s2))
}

func TestInterpretPlaceholderNameAndSeverityDefault(t *testing.T) {
	in := newTestInterpreter(t)

	// Numbered headings carry a number and a title; strip the title to
	// force the placeholder path.
	findings, _ := in.Interpret("## 1.  \nno severity keyword in this body\n## 2.  \nsecond body\n")
	require.Len(t, findings, 2)
	assert.Equal(t, "Security Finding 1", findings[0].VulnerabilityName)
	assert.Equal(t, "Security Finding 2", findings[1].VulnerabilityName)
	for _, f := range findings {
		assert.Equal(t, schemas.SeverityMedium, f.Severity)
		assert.NotEmpty(t, f.Explanation)
	}
}

func TestInterpretUnstructuredInput(t *testing.T) {
	in := newTestInterpreter(t)

	t.Run("long prose yields one fallback finding", func(t *testing.T) {
		findings, summary := in.Interpret(strings.Repeat("General observations about the code. ", 5))
		require.Len(t, findings, 1)
		assert.Equal(t, "Smart Contract Security Analysis", findings[0].VulnerabilityName)
		assert.Equal(t, 1, summary.TotalFindings)
	})

	t.Run("short input yields zero findings and minimal summary", func(t *testing.T) {
		findings, summary := in.Interpret("ok")
		assert.Empty(t, findings)
		assert.Equal(t, 0, summary.TotalFindings)
		assert.Equal(t, 0, summary.RiskScore)
		assert.Equal(t, schemas.RiskMinimal, summary.OverallRisk)
	})

	t.Run("empty input yields zero findings and minimal summary", func(t *testing.T) {
		findings, summary := in.Interpret("")
		assert.Empty(t, findings)
		assert.Equal(t, 0, summary.TotalFindings)
		assert.Equal(t, schemas.RiskMinimal, summary.OverallRisk)
	})
}

func TestInterpretIdentifiersPerBlock(t *testing.T) {
	in := newTestInterpreter(t)

	input := "### Finding 1: Overflow\n**Severity**: High\nCatalogued as SWC-101.\n" +
		"### Finding 2: Library bug\n**Severity**: Low\nInherited from CVE-2018-10299.\n"
	findings, _ := in.Interpret(input)
	require.Len(t, findings, 2)
	assert.Equal(t, "SWC-101", findings[0].SWCID)
	assert.Empty(t, findings[0].CVEID)
	assert.Equal(t, "CVE-2018-10299", findings[1].CVEID)
	assert.Empty(t, findings[1].SWCID)
}

func TestInterpretCustomThreshold(t *testing.T) {
	in := New(Options{MinDocumentLength: 5}, zaptest.NewLogger(t))
	findings, _ := in.Interpret("sixchars")
	assert.Len(t, findings, 1)
}

func TestInterpretProseFieldsAreNormalized(t *testing.T) {
	in := newTestInterpreter(t)

	input := "### Vulnerability 1: **Unchecked Call**\n" +
		"**Severity**: Low\n" +
		"**Impact**: The `call` return value is *ignored*.\n"
	findings, _ := in.Interpret(input)
	require.Len(t, findings, 1)
	assert.Equal(t, "Unchecked Call", findings[0].VulnerabilityName)
	assert.Equal(t, "The call return value is ignored.", findings[0].Impact)
}
