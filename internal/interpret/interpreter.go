// Package interpret converts a raw, markdown-flavored audit report produced
// by an upstream language model into a validated list of findings and a
// deterministic risk summary. The producer guarantees no schema; the engine
// segments the text by trying known header dialects in priority order,
// decomposes each block with ordered extract-and-remove passes, and degrades
// to weaker whole-document heuristics when no structure exists. Every branch
// has a defined fallback; interpretation never fails.
package interpret

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/obsidiansec/auditlens/api/schemas"
)

// defaultMinDocumentLength is the trimmed-length threshold below which an
// unstructured document yields zero findings.
const defaultMinDocumentLength = 50

// noExplanationText substitutes for an empty explanation so the field is
// never blank in rendered output.
const noExplanationText = "No detailed explanation was provided for this finding."

// Options configure an Interpreter. The zero value selects the defaults.
type Options struct {
	// MinDocumentLength overrides the unstructured-document threshold.
	MinDocumentLength int
	// Dialects overrides the built-in header families; nil keeps them.
	Dialects []Dialect
}

// Interpreter is the report interpretation engine. It is a pure function of
// its input text with no shared mutable state, so a single instance is safe
// for concurrent use.
type Interpreter struct {
	opts   Options
	logger *zap.Logger
}

// New creates an Interpreter with the given options.
func New(opts Options, logger *zap.Logger) *Interpreter {
	if opts.MinDocumentLength <= 0 {
		opts.MinDocumentLength = defaultMinDocumentLength
	}
	if len(opts.Dialects) == 0 {
		opts.Dialects = defaultDialects
	}
	return &Interpreter{
		opts:   opts,
		logger: logger.Named("interpreter"),
	}
}

// Interpret decomposes one raw report into findings, in source-appearance
// order, plus exactly one summary. Malformed, partial or empty input reduces
// the finding count, never raises.
func (in *Interpreter) Interpret(text string) ([]schemas.Finding, schemas.Summary) {
	var findings []schemas.Finding

	blocks, dialect, structured := segment(text, in.opts.Dialects)
	if structured {
		in.logger.Debug("Segmented report",
			zap.String("dialect", dialect),
			zap.Int("blocks", len(blocks)))
		findings = make([]schemas.Finding, 0, len(blocks))
		for i, b := range blocks {
			findings = append(findings, buildFinding(i+1, b))
		}
	} else {
		in.logger.Debug("No header structure found, constructing fallback findings")
		findings = fallbackFindings(text, in.opts.MinDocumentLength)
	}

	summary := Summarize(findings)
	in.logger.Info("Report interpreted",
		zap.Int("findings", summary.TotalFindings),
		zap.Int("risk_score", summary.RiskScore),
		zap.String("overall_risk", string(summary.OverallRisk)))
	return findings, summary
}

// buildFinding assembles the structured finding for one segmented block.
func buildFinding(n int, b block) schemas.Finding {
	f := extractFields(b.body)
	f.VulnerabilityName = b.title
	if f.VulnerabilityName == "" {
		f.VulnerabilityName = placeholderName(n)
	}
	f.Severity = classifySeverity(b.body)
	f.CVEID, f.SWCID = extractIdentifiers(b.body)
	if f.Explanation == "" {
		f.Explanation = noExplanationText
	}
	return f
}

// placeholderName generates the stand-in name for a finding whose source
// provided none.
func placeholderName(n int) string {
	return fmt.Sprintf("Security Finding %d", n)
}
