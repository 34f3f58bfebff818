package server

import (
	"net/http"
)

const auditPrefix = "/api/audit/"

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Chat
	mux.HandleFunc("/api/chat", s.app.ChatHandler.ChatHandler)

	// Research building blocks
	mux.HandleFunc("/api/query/analyze", s.app.ResearchHandler.AnalyzeHandler)
	mux.HandleFunc("/api/search", s.app.ResearchHandler.SearchHandler)
	mux.HandleFunc("/api/augment", s.app.ResearchHandler.AugmentHandler)
	mux.HandleFunc("/api/scrape", s.app.ResearchHandler.ScrapeHandler)

	// Content audits
	mux.HandleFunc("/api/audit", s.app.AuditHandler.CreateAuditHandler) // POST
	mux.HandleFunc(auditPrefix, s.handleAuditRoutes)                    // GET /{id}, /{id}/report, /{id}/pdf
	mux.HandleFunc("/api/audits", s.app.AuditHandler.ListAuditsHandler) // GET ?url=&limit=

	// System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleAuditRoutes routes /api/audit/{id} and its sub-resources
func (s *Server) handleAuditRoutes(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == auditPrefix {
		// Trailing-slash form of the create endpoint
		s.app.AuditHandler.CreateAuditHandler(w, r)
		return
	}

	if RouteByPathSuffix(w, r, auditPrefix, []PathSuffixRouter{
		{Suffix: "/report", Handler: s.app.AuditHandler.ReportHandler},
		{Suffix: "/pdf", Handler: s.app.AuditHandler.PDFHandler},
	}) {
		return
	}

	RouteByMethod(w, r, MethodRouter{
		http.MethodGet: s.app.AuditHandler.GetAuditHandler,
	})
}
