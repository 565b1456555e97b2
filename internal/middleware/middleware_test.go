package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

type logEntry struct {
	level slog.Level
	msg   string
	attrs map[string]any
}

type recordingHandler struct {
	level   slog.Level
	mu      sync.Mutex
	entries []logEntry
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := map[string]any{}
	record.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})

	h.mu.Lock()
	h.entries = append(h.entries, logEntry{
		level: record.Level,
		msg:   record.Message,
		attrs: attrs,
	})
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *recordingHandler) Entries() []logEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]logEntry, len(h.entries))
	copy(entries, h.entries)
	return entries
}

func TestRequestIDGenerated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	id := resp.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatalf("expected request id header")
	}
	if resp.Body.String() != id {
		t.Fatalf("expected body to match request id")
	}
}

func TestRequestIDPreserved(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Header().Get(RequestIDHeader) != "req-123" {
		t.Fatalf("expected request id to be preserved")
	}
}

func TestRequestIDSetOnAbortedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.POST("/api/interactions", func(c *gin.Context) {
		c.String(http.StatusUnauthorized, "invalid request signature")
		c.Abort()
	})

	req := httptest.NewRequest(http.MethodPost, "/api/interactions", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if resp.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected request id header on aborted response")
	}
}

func TestRequestIDRejectsOversizedInboundID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	oversized := strings.Repeat("a", maxInboundIDLength+1)
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set(RequestIDHeader, oversized)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	got := resp.Header().Get(RequestIDHeader)
	if got == "" || got == oversized {
		t.Fatalf("expected oversized inbound id to be replaced, got %q", got)
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		status    int
		wantLevel slog.Level
	}{
		{name: "success", status: http.StatusOK, wantLevel: slog.LevelInfo},
		{name: "client_error", status: http.StatusUnauthorized, wantLevel: slog.LevelWarn},
		{name: "server_error", status: http.StatusInternalServerError, wantLevel: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &recordingHandler{level: slog.LevelInfo}
			router := gin.New()
			router.Use(RequestID(), RequestLogger(slog.New(handler)))
			router.POST("/api/interactions", func(c *gin.Context) { c.Status(tt.status) })

			req := httptest.NewRequest(http.MethodPost, "/api/interactions", nil)
			req.Header.Set(RequestIDHeader, "req-1")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			entries := handler.Entries()
			if len(entries) != 1 {
				t.Fatalf("expected 1 log entry, got %d", len(entries))
			}
			entry := entries[0]
			if entry.level != tt.wantLevel {
				t.Fatalf("expected level %s, got %s", tt.wantLevel, entry.level)
			}
			if entry.msg != "http_request" {
				t.Fatalf("expected http_request message, got %q", entry.msg)
			}
			if entry.attrs["request_id"] != "req-1" {
				t.Fatalf("expected request_id attr, got %v", entry.attrs["request_id"])
			}
		})
	}
}

func TestRequestLoggerSkipsNoisyPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, path := range []string{"/", "/metrics"} {
		handler := &recordingHandler{level: slog.LevelInfo}
		router := gin.New()
		router.Use(RequestID(), RequestLogger(slog.New(handler)))
		router.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if entries := handler.Entries(); len(entries) != 0 {
			t.Fatalf("expected no log entry for %s, got %d", path, len(entries))
		}
	}
}
