package server

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all API routes. Everything is a read.
func (s *Server) setupRoutes() {
	r := s.router

	r.Route("/command", func(r chi.Router) {
		r.Get("/", s.listCommands)
		r.Get("/stats", s.commandStats)
		r.Get("/{commandID}", s.getCommand)
	})

	r.Route("/audit", func(r chi.Router) {
		r.Get("/event", s.listAuditEvents)
		r.Get("/stats", s.auditStats)
		r.Get("/export", s.exportAudit)
	})

	r.Route("/tool", func(r chi.Router) {
		r.Get("/", s.listTools)
		r.Get("/openai", s.listOpenAIFunctions)
	})

	r.Route("/plan", func(r chi.Router) {
		r.Get("/", s.listPlans)
		r.Get("/stats", s.planStats)
		r.Get("/{planID}", s.getPlan)
	})
}
