package mcp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kuitang/crm-notes/internal/storemem"
	"github.com/kuitang/crm-notes/internal/summaries"
)

func TestToolDefinitions_ExposesAllFourOperations(t *testing.T) {
	t.Parallel()
	tools := ToolDefinitions()

	want := map[string]bool{
		"summary_create": false,
		"summary_list":   false,
		"summary_update": false,
		"summary_delete": false,
	}
	for _, tool := range tools {
		if _, ok := want[tool.Name]; !ok {
			t.Errorf("unexpected tool: %s", tool.Name)
			continue
		}
		want[tool.Name] = true
		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", tool.Name)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("missing tool: %s", name)
		}
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	t.Parallel()
	server := NewServer(summaries.NewService(storemem.New(), 100))

	req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("missing CORS origin header, got %q", got)
	}
}
