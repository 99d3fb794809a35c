package schemas

import "context"

// -- LLM Client Interface --

// LLMClient abstracts the upstream language model that produces the raw audit
// text. Implementations own transport, retries and rate limiting; callers own
// timeouts and cancellation via ctx.
type LLMClient interface {
	// GenerateResponse sends the prompts to the model and returns the
	// generated text.
	GenerateResponse(ctx context.Context, req GenerationRequest) (string, error)
}

// -- Store Interface --

// AuditStore defines the persistence contract for finished reports. The
// interpreter itself never touches storage; findings and summaries are
// persisted as opaque JSON attached to the audit record.
type AuditStore interface {
	// SaveReport persists a finished report.
	SaveReport(ctx context.Context, report *AuditReport) error
	// GetReport retrieves a previously saved report by audit ID.
	GetReport(ctx context.Context, auditID string) (*AuditReport, error)
}
