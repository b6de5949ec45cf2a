package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quillnotes/quill/pkg/types"
)

func (s *Server) listCommands(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK, s.registry.ByCategory(category))
		return
	}
	writeJSON(w, http.StatusOK, s.registry.All())
}

func (s *Server) getCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "commandID")
	cmd, ok := s.registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("Command %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, cmd)
}

func (s *Server) commandStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Stats())
}

func (s *Server) listAuditEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := parseLimit(q.Get("limit"))

	var events []types.AuditEvent
	switch {
	case q.Get("source") != "":
		events = s.auditLog.EventsBySource(types.Source(q.Get("source")), limit)
	case q.Get("failed") == "true":
		events = s.auditLog.FailedEvents(limit)
	case q.Get("pattern") != "":
		matched, err := s.auditLog.EventsMatching(q.Get("pattern"), limit)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
			return
		}
		events = matched
	default:
		events = s.auditLog.Events(limit, q.Get("commandId"))
	}

	if events == nil {
		events = []types.AuditEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) auditStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.auditLog.Stats())
}

func (s *Server) exportAudit(w http.ResponseWriter, r *http.Request) {
	data, err := s.auditLog.ExportJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(data))
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.All())
}

func (s *Server) listOpenAIFunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.AllOpenAIFunctions())
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.executor.AllPlans())
}

func (s *Server) getPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "planID")
	plan, ok := s.executor.GetPlan(id)
	if !ok {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("plan %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) planStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.executor.Stats())
}

// parseLimit parses a limit query parameter; 0 means no cap.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
