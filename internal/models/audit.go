package models

import "time"

// AuditRecord is a persisted page audit
type AuditRecord struct {
	ID        string         `json:"id"`            // audit_{uuid}
	URL       string         `json:"url,omitempty"` // Empty for audits of pasted content
	Title     string         `json:"title,omitempty"`
	Metrics   ContentMetrics `json:"metrics"`
	Report    string         `json:"report"`
	CreatedAt time.Time      `json:"created_at"`
}

// AuditRequest describes what to audit. At least one of URL, HTML or Content is required.
// When only URL is given the page is fetched; when Content is empty it is derived from HTML.
type AuditRequest struct {
	URL      string   `json:"url" validate:"omitempty,url"`
	HTML     string   `json:"html"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"` // Overrides the configured important keywords when non-empty
	Persist  *bool    `json:"persist"`  // Defaults to true
}

// ShouldPersist reports whether the audit should be stored
func (r *AuditRequest) ShouldPersist() bool {
	return r.Persist == nil || *r.Persist
}
