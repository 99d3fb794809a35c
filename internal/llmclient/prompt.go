package llmclient

import (
	"fmt"
	"strings"

	"github.com/obsidiansec/auditlens/api/schemas"
)

// auditSystemPrompt instructs the model to produce the markdown-flavored
// report the interpretation engine expects. The engine tolerates deviations
// (that is its whole job), so the prompt encourages structure without
// assuming the model honors it.
const auditSystemPrompt = `You are a senior smart-contract security auditor. Review the provided
Solidity code and report every security issue you find.

Format each issue as a markdown section:

### Vulnerability N: <name>
**Severity**: Critical | High | Medium | Low | Informational
**Impact**: <what an attacker gains>
**Vulnerable Code**: fenced code block with the affected lines
**Proof of Concept**: <attack walkthrough, if applicable>
**Remediation**: <how to fix it>
**References**: <SWC/CVE identifiers or links, if applicable>

If the code has no issues, say so explicitly.`

// BuildAuditPrompt converts an audit request into the generation request sent
// upstream.
func BuildAuditPrompt(req schemas.AuditRequest) schemas.GenerationRequest {
	var sb strings.Builder
	if req.Description != "" {
		fmt.Fprintf(&sb, "Contract description:\n%s\n\n", req.Description)
	}
	if req.ProjectContext != "" {
		fmt.Fprintf(&sb, "Project context:\n%s\n\n", req.ProjectContext)
	}
	fmt.Fprintf(&sb, "Audit the following contract:\n\n```solidity\n%s\n```\n", req.Code)

	return schemas.GenerationRequest{
		SystemPrompt: auditSystemPrompt,
		UserPrompt:   sb.String(),
	}
}
