package schemas

// -- Upstream Audit Contract --

// AuditRequest carries the material submitted for review: the contract source,
// an optional free-form description, and optional surrounding project context
// (related contracts, deployment notes).
type AuditRequest struct {
	Code           string `json:"code"`
	Description    string `json:"description,omitempty"`
	ProjectContext string `json:"project_context,omitempty"`
}

// AuditResponse mirrors the upstream endpoint's payload. On success the Audit
// field holds the raw markdown-flavored report text; on failure Error carries
// the upstream message and Audit is empty.
type AuditResponse struct {
	Success bool   `json:"success"`
	Audit   string `json:"audit,omitempty"`
	Error   string `json:"error,omitempty"`
}

// -- LLM Generation Schemas --

// GenerationRequest is the provider-agnostic request handed to an LLMClient.
type GenerationRequest struct {
	SystemPrompt string  `json:"system_prompt,omitempty"`
	UserPrompt   string  `json:"user_prompt"`
	Temperature  float32 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
}
