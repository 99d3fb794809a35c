package reporting

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/obsidiansec/auditlens/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// -- JSON --

// JSONReporter writes the report as indented JSON, the shape the downstream
// UI and the audit store both consume.
type JSONReporter struct {
	w io.WriteCloser
}

// NewJSONReporter takes ownership of the writer.
func NewJSONReporter(w io.WriteCloser) *JSONReporter {
	return &JSONReporter{w: w}
}

func (r *JSONReporter) Write(report *schemas.AuditReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if _, err := r.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *JSONReporter) Close() error { return r.w.Close() }

// -- Markdown --

// MarkdownReporter renders the report back into reviewer-friendly markdown.
type MarkdownReporter struct {
	w io.WriteCloser
}

// NewMarkdownReporter takes ownership of the writer.
func NewMarkdownReporter(w io.WriteCloser) *MarkdownReporter {
	return &MarkdownReporter{w: w}
}

func (r *MarkdownReporter) Write(report *schemas.AuditReport) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(r.w, format, args...)
		}
	}

	p("# Security Audit Report\n\n")
	if report.ContractName != "" {
		p("Contract: `%s`\n\n", report.ContractName)
	}
	s := report.Summary
	p("**Overall risk: %s** (score %d, %d findings)\n\n", s.OverallRisk, s.RiskScore, s.TotalFindings)
	p("| Severity | Count |\n|---|---|\n")
	p("| Critical | %d |\n| High | %d |\n| Medium | %d |\n| Low | %d |\n| Informational | %d |\n\n",
		s.CriticalCount, s.HighCount, s.MediumCount, s.LowCount, s.InformationalCount)

	for i, f := range report.Findings {
		p("## %d. %s\n\n", i+1, f.VulnerabilityName)
		p("**Severity**: %s\n\n", f.Severity)
		if f.CVEID != "" {
			p("**CVE**: %s\n\n", f.CVEID)
		}
		if f.SWCID != "" {
			p("**SWC**: %s\n\n", f.SWCID)
		}
		if f.Impact != "" {
			p("**Impact**: %s\n\n", f.Impact)
		}
		p("%s\n\n", f.Explanation)
		if f.VulnerableCode != "" {
			p("```solidity\n%s\n```\n\n", f.VulnerableCode)
		}
		if f.ProofOfConcept != "" {
			p("**Proof of Concept**: %s\n\n", f.ProofOfConcept)
		}
		if f.Remediation != "" {
			p("**Remediation**: %s\n\n", f.Remediation)
		}
		if f.References != "" {
			p("**References**: %s\n\n", f.References)
		}
	}
	return err
}

func (r *MarkdownReporter) Close() error { return r.w.Close() }

// -- Text --

// TextReporter prints a terse one-line-per-finding summary for terminals.
type TextReporter struct {
	w io.WriteCloser
}

// NewTextReporter takes ownership of the writer.
func NewTextReporter(w io.WriteCloser) *TextReporter {
	return &TextReporter{w: w}
}

func (r *TextReporter) Write(report *schemas.AuditReport) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(r.w, format, args...)
		}
	}

	s := report.Summary
	p("overall risk: %s  score: %d  findings: %d (C:%d H:%d M:%d L:%d I:%d)\n",
		s.OverallRisk, s.RiskScore, s.TotalFindings,
		s.CriticalCount, s.HighCount, s.MediumCount, s.LowCount, s.InformationalCount)
	for i, f := range report.Findings {
		p("%2d. [%s] %s\n", i+1, f.Severity, f.VulnerabilityName)
	}
	return err
}

func (r *TextReporter) Close() error { return r.w.Close() }
