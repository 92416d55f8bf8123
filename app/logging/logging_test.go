package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(New(&buf, false, "json"))

	logger.Info("Refresh completed", "stories", 42)

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "Refresh completed" {
		t.Errorf("Expected msg field, got %v", entry["msg"])
	}
	if _, ok := entry["stories"]; !ok {
		t.Errorf("Expected stories field, got %q", buf.String())
	}
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	slog.New(New(&buf, false, "logfmt")).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected debug to be suppressed, got %q", buf.String())
	}

	buf.Reset()
	slog.New(New(&buf, true, "logfmt")).Debug("shown", "provider", "nyt")
	if !strings.Contains(buf.String(), "provider=nyt") {
		t.Errorf("Expected debug line with provider=nyt, got %q", buf.String())
	}
}
