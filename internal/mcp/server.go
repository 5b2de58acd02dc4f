package mcp

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kuitang/crm-notes/internal/logutil"
	"github.com/kuitang/crm-notes/internal/obs"
	"github.com/kuitang/crm-notes/internal/summaries"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with summary-note tool handling.
type Server struct {
	mcpServer   *mcp.Server
	handler     *Handler
	httpHandler http.Handler
}

const (
	debugBodyLogLimitBytes = 8 * 1024
)

type responseLogger struct {
	http.ResponseWriter
	statusCode int
	body       []byte
	truncated  bool
}

func newResponseLogger(w http.ResponseWriter) *responseLogger {
	return &responseLogger{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
		body:           make([]byte, 0, debugBodyLogLimitBytes),
	}
}

func (w *responseLogger) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseLogger) Write(p []byte) (int, error) {
	if len(w.body) < debugBodyLogLimitBytes {
		remaining := debugBodyLogLimitBytes - len(w.body)
		if len(p) <= remaining {
			w.body = append(w.body, p...)
		} else {
			w.body = append(w.body, p[:remaining]...)
			w.truncated = true
		}
	} else {
		w.truncated = true
	}
	return w.ResponseWriter.Write(p)
}

func (w *responseLogger) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func debugEnabled() bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv("DEBUG")))
	switch v {
	case "1", "true", "yes", "on", "debug":
		return true
	default:
		return false
	}
}

// NewServer creates a new MCP server exposing the summary-note tools.
func NewServer(svc *summaries.Service) *Server {
	handler := NewHandler(svc)

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "crm-notes",
			Version: "1.0.0",
		},
		nil, // Use default options
	)

	for _, tool := range ToolDefinitions() {
		toolCopy := tool // avoid closure issues
		mcp.AddTool(mcpServer, toolCopy, handler.createToolHandler(toolCopy.Name))
	}

	// Streamable HTTP (MCP Spec 2025-03-26): a single endpoint handling both
	// POST and GET requests.
	httpHandler := mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			// JSONResponse: plain application/json responses; simpler for
			// clients that don't support SSE streaming.
			JSONResponse: true,

			// Stateless: operations are request-scoped and run to completion
			// with no cross-request state, so the initialize/initialized
			// handshake is skipped.
			Stateless: true,
		},
	)

	return &Server{
		mcpServer:   mcpServer,
		handler:     handler,
		httpHandler: httpHandler,
	}
}

// ServeHTTP implements http.Handler for the Streamable HTTP transport.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Mcp-Session-Id, Last-Event-ID, Authorization")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	debug := debugEnabled()
	log := obs.From(r.Context()).With("pkg", "mcp")

	var reqBody []byte
	if debug && r.Body != nil && r.Method == http.MethodPost {
		var readErr error
		reqBody, readErr = io.ReadAll(r.Body)
		if readErr != nil {
			log.Error("mcp_request_body_read_failed", "method", r.Method, "path", r.URL.Path, "err", readErr.Error())
		} else {
			r.Body = io.NopCloser(bytes.NewReader(reqBody))
		}
	}

	log.Debug("mcp_request",
		"method", r.Method,
		"path", r.URL.Path,
		"remote", r.RemoteAddr,
		"user_agent", r.UserAgent(),
		"content_type", r.Header.Get("Content-Type"),
		"mcp_session_id", r.Header.Get("Mcp-Session-Id"),
	)
	if debug && len(reqBody) > 0 {
		log.Debug("mcp_request_body", "body", logutil.FormatBodyForLog(reqBody, debugBodyLogLimitBytes, false))
	}

	respLogger := newResponseLogger(w)
	s.httpHandler.ServeHTTP(respLogger, r)

	if debug {
		log.Debug("mcp_response",
			"status", respLogger.statusCode,
			"method", r.Method,
			"path", r.URL.Path,
			"content_type", respLogger.Header().Get("Content-Type"),
			"body", logutil.FormatBodyForLog(respLogger.body, debugBodyLogLimitBytes, respLogger.truncated),
		)
	}

	if respLogger.statusCode >= http.StatusBadRequest {
		log.Error("mcp_request_failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", respLogger.statusCode,
			"remote", r.RemoteAddr,
			"response", logutil.FormatBodyForLog(respLogger.body, debugBodyLogLimitBytes, respLogger.truncated),
		)
	}
}

// Start runs the MCP server standalone (for testing).
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", s)
	obs.Pkg("mcp").Info("mcp_listening", "addr", addr, "path", "/mcp")
	server := &http.Server{
		Addr:              addr,
		Handler:           obs.RequestContextMiddleware(obs.AccessLogMiddleware("mcp", mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return server.ListenAndServe()
}
