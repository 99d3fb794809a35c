package interpret

import "github.com/obsidiansec/auditlens/api/schemas"

// severityWeights are the risk score contributions per finding. Owned here by
// the aggregator; presentation layers have their own label maps.
var severityWeights = map[schemas.Severity]int{
	schemas.SeverityCritical:      10,
	schemas.SeverityHigh:          7,
	schemas.SeverityMedium:        4,
	schemas.SeverityLow:           2,
	schemas.SeverityInformational: 1,
}

// Summarize aggregates a finding list into counters, the weighted risk score
// and the overall risk label. Deterministic for any finding list; the five
// counters always sum to TotalFindings.
func Summarize(findings []schemas.Finding) schemas.Summary {
	s := schemas.Summary{TotalFindings: len(findings)}
	for _, f := range findings {
		switch f.Severity {
		case schemas.SeverityCritical:
			s.CriticalCount++
		case schemas.SeverityHigh:
			s.HighCount++
		case schemas.SeverityLow:
			s.LowCount++
		case schemas.SeverityInformational:
			s.InformationalCount++
		default:
			// The interpreter always assigns a valid severity; anything
			// else tallies as the classifier's own default.
			s.MediumCount++
		}
		s.RiskScore += weightOf(f.Severity)
	}
	s.OverallRisk = overallRisk(s)
	return s
}

func weightOf(severity schemas.Severity) int {
	if w, ok := severityWeights[severity]; ok {
		return w
	}
	return severityWeights[schemas.SeverityMedium]
}

// overallRisk evaluates the ordered rule ladder; the first matching rule
// wins.
func overallRisk(s schemas.Summary) schemas.OverallRisk {
	switch {
	case s.CriticalCount > 0:
		return schemas.RiskCritical
	case s.HighCount > 0:
		return schemas.RiskHigh
	case s.MediumCount > 2:
		return schemas.RiskHigh
	case s.MediumCount > 0 || s.LowCount > 3:
		return schemas.RiskMedium
	case s.LowCount > 0:
		return schemas.RiskLow
	default:
		return schemas.RiskMinimal
	}
}
