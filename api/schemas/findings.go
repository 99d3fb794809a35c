package schemas

import "time"

// -- Finding Schemas --

// Severity represents the severity level of a security finding, ranging from
// critical down to informational. The values are capitalized to match the
// labels the report producer emits and the UI renders.
type Severity string

// Constants defining the standard severity levels for findings.
const (
	SeverityCritical      Severity = "Critical"      // Represents a critical vulnerability.
	SeverityHigh          Severity = "High"          // Represents a high-severity vulnerability.
	SeverityMedium        Severity = "Medium"        // Represents a medium-severity vulnerability.
	SeverityLow           Severity = "Low"           // Represents a low-severity vulnerability.
	SeverityInformational Severity = "Informational" // Represents an informational finding.
)

// Severities lists all severity levels in descending order of urgency. The
// order is load-bearing: the classifier's tie-break and the summary tables
// both iterate it front to back.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInformational,
}

// Valid reports whether s is one of the five known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInformational:
		return true
	}
	return false
}

// Finding encapsulates one security issue recovered from an audit report. All
// prose fields hold normalized plain text with markdown syntax stripped;
// VulnerableCode is the exception and preserves the source formatting
// verbatim.
type Finding struct {
	// VulnerabilityName is a descriptive name for the issue (e.g. "Reentrancy").
	// Never empty; the interpreter generates a placeholder when the source
	// text provides none.
	VulnerabilityName string `json:"vulnerabilityName"`

	// Severity is always assigned. When the source text carries no usable
	// signal the interpreter defaults it to Medium.
	Severity Severity `json:"severity"`

	Impact string `json:"impact"`

	// Explanation is never empty; placeholder text is substituted when
	// extraction yields nothing.
	Explanation string `json:"explanation"`

	// VulnerableCode may concatenate several fenced code spans found in the
	// source block. Empty when the report contains no code.
	VulnerableCode string `json:"vulnerableCode,omitempty"`

	ProofOfConcept string `json:"proofOfConcept,omitempty"`
	Remediation    string `json:"remediation,omitempty"`
	References     string `json:"references,omitempty"`

	// CVEID and SWCID are independently present or absent identifier strings
	// (e.g. "CVE-2021-44228", "SWC-107").
	CVEID string `json:"cveId,omitempty"`
	SWCID string `json:"swcId,omitempty"`
}

// -- Summary Schemas --

// OverallRisk is the five-level categorical rollup derived from the
// per-severity counters of a report.
type OverallRisk string

// Constants defining the overall risk labels.
const (
	RiskCritical OverallRisk = "Critical"
	RiskHigh     OverallRisk = "High"
	RiskMedium   OverallRisk = "Medium"
	RiskLow      OverallRisk = "Low"
	RiskMinimal  OverallRisk = "Minimal"
)

// Summary aggregates a finding list into counters, a weighted risk score and
// an overall risk label. It is produced exactly once per interpretation and
// its five counters always sum to TotalFindings.
type Summary struct {
	TotalFindings      int `json:"totalFindings"`
	CriticalCount      int `json:"criticalCount"`
	HighCount          int `json:"highCount"`
	MediumCount        int `json:"mediumCount"`
	LowCount           int `json:"lowCount"`
	InformationalCount int `json:"informationalCount"`

	// RiskScore is the severity-weighted sum over all findings.
	RiskScore int `json:"riskScore"`

	OverallRisk OverallRisk `json:"overallRisk"`
}

// AuditReport bundles the outcome of one audit: the interpreted findings in
// source-appearance order, their summary, and bookkeeping for persistence.
type AuditReport struct {
	AuditID      string    `json:"audit_id"`
	ContractName string    `json:"contract_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	// RawReport is the unmodified text returned by the upstream model. Kept
	// so a report can be re-interpreted after heuristic changes.
	RawReport string `json:"raw_report,omitempty"`

	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
}
