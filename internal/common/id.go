package common

import (
	"github.com/google/uuid"
)

// NewAuditID generates a unique audit record ID
// Format: audit_<uuid>
func NewAuditID() string {
	return "audit_" + uuid.New().String()
}

// NewRequestID generates a correlation ID for a single API or MCP request
func NewRequestID() string {
	return "req_" + uuid.New().String()[:8]
}
