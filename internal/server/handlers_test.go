package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillnotes/quill/internal/audit"
	"github.com/quillnotes/quill/internal/command"
	"github.com/quillnotes/quill/internal/executor"
	"github.com/quillnotes/quill/internal/tool"
	"github.com/quillnotes/quill/pkg/types"
)

func newTestServer(t *testing.T) (*Server, *command.Registry, *executor.Executor, *audit.Log) {
	t.Helper()

	auditLog := audit.New(100)
	registry := command.NewRegistry(auditLog, nil)
	catalog := tool.Default()
	exec := executor.New(registry, catalog, nil)

	registry.Register(&types.Command{
		ID:       "file.read",
		Name:     "Read File",
		Category: "file",
		Callback: func(ctx context.Context, args ...any) (any, error) {
			return "content", nil
		},
	})

	return New(DefaultConfig(), registry, auditLog, catalog, exec), registry, exec, auditLog
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestListCommands(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := get(t, srv, "/command")
	require.Equal(t, http.StatusOK, rec.Code)

	cmds := decode[[]map[string]any](t, rec)
	require.Len(t, cmds, 1)
	assert.Equal(t, "file.read", cmds[0]["id"])
}

func TestGetCommand(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := get(t, srv, "/command/file.read")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, srv, "/command/missing.cmd")
	require.Equal(t, http.StatusNotFound, rec.Code)
	errResp := decode[ErrorResponse](t, rec)
	assert.Equal(t, ErrCodeNotFound, errResp.Error.Code)
}

func TestCommandStats(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := get(t, srv, "/command/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode[map[string]any](t, rec)
	assert.Equal(t, float64(1), stats["total"])
}

func TestAuditEndpoints(t *testing.T) {
	srv, registry, _, _ := newTestServer(t)
	_, err := registry.Execute(context.Background(), "file.read", types.SourceUI)
	require.NoError(t, err)
	_, _ = registry.Execute(context.Background(), "missing.cmd", types.SourceAgent)

	rec := get(t, srv, "/audit/event")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]types.AuditEvent](t, rec), 2)

	rec = get(t, srv, "/audit/event?failed=true")
	events := decode[[]types.AuditEvent](t, rec)
	require.Len(t, events, 1)
	assert.Equal(t, "missing.cmd", events[0].CommandID)

	rec = get(t, srv, "/audit/event?source=agent")
	assert.Len(t, decode[[]types.AuditEvent](t, rec), 1)

	rec = get(t, srv, "/audit/event?pattern=file.*")
	assert.Len(t, decode[[]types.AuditEvent](t, rec), 1)

	rec = get(t, srv, "/audit/event?pattern=file.[")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, srv, "/audit/stats")
	stats := decode[map[string]any](t, rec)
	assert.Equal(t, float64(2), stats["total"])

	rec = get(t, srv, "/audit/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]types.AuditEvent](t, rec), 2)
}

func TestToolEndpoints(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := get(t, srv, "/tool")
	require.Equal(t, http.StatusOK, rec.Code)
	tools := decode[[]types.ToolSchema](t, rec)
	assert.NotEmpty(t, tools)

	rec = get(t, srv, "/tool/openai")
	fns := decode[[]tool.OpenAIFunction](t, rec)
	require.NotEmpty(t, fns)
	assert.Equal(t, "function", fns[0].Type)
}

func TestPlanEndpoints(t *testing.T) {
	srv, _, exec, _ := newTestServer(t)
	plan := exec.CreatePlan("demo", []executor.StepRequest{
		{ToolID: "note_read", Input: map[string]any{"path": "a.md"}},
	})

	rec := get(t, srv, "/plan")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]types.Plan](t, rec), 1)

	rec = get(t, srv, "/plan/"+plan.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[types.Plan](t, rec)
	assert.Equal(t, plan.ID, got.ID)

	rec = get(t, srv, "/plan/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, srv, "/plan/stats")
	stats := decode[map[string]any](t, rec)
	assert.Equal(t, float64(1), stats["total"])
}
