package logutil

import (
	"net/http"
	"strings"
	"testing"
)

func TestRedactHeaderValue_AuthorizationRedacted(t *testing.T) {
	t.Parallel()
	got := RedactHeaderValue("Authorization", "Bearer pat-na1-secret")
	if got != "[REDACTED]" {
		t.Fatalf("Authorization value leaked: %q", got)
	}
	if got := RedactHeaderValue("Content-Type", "application/json"); got != "application/json" {
		t.Fatalf("non-sensitive header redacted: %q", got)
	}
}

func TestFormatHeadersForLog_StableAndRedacted(t *testing.T) {
	t.Parallel()
	headers := http.Header{}
	headers.Set("Authorization", "Bearer pat-na1-secret")
	headers.Set("Content-Type", "application/json")

	formatted := FormatHeadersForLog(headers)
	if strings.Contains(formatted, "pat-na1-secret") {
		t.Fatalf("token leaked into log text: %q", formatted)
	}
	if !strings.Contains(formatted, `authorization="[REDACTED]"`) {
		t.Fatalf("missing redacted authorization entry: %q", formatted)
	}
	if !strings.Contains(formatted, `content-type="application/json"`) {
		t.Fatalf("missing content-type entry: %q", formatted)
	}
}

func TestFormatBodyForLog_Truncation(t *testing.T) {
	t.Parallel()
	body := []byte(strings.Repeat("a", 100))
	got := FormatBodyForLog(body, 10, false)
	if got != strings.Repeat("a", 10)+" [truncated]" {
		t.Fatalf("unexpected truncated body: %q", got)
	}
	if got := FormatBodyForLog(nil, 10, false); got != "" {
		t.Fatalf("empty body should format to empty string, got %q", got)
	}
}

func TestTruncateForLog_NormalizesNewlines(t *testing.T) {
	t.Parallel()
	got := TruncateForLog("Title: a\nSummary: b", 0)
	if got != `Title: a\nSummary: b` {
		t.Fatalf("unexpected normalized value: %q", got)
	}
	got = TruncateForLog("abcdef", 3)
	if got != "abc... [truncated]" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
