package models

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestDecodeLogline tests the full known-field shape
func TestDecodeLogline(t *testing.T) {
	data := `{
		"type": "assistant",
		"subtype": "turn",
		"content": "Looking at the test now.",
		"timestamp": "2025-08-20T10:05:00Z",
		"gitBranch": "fix/flaky-test",
		"sessionId": "session_01QJaJSUgfY6khmFTzJaMqph",
		"cwd": "/workspace",
		"level": "info",
		"isMeta": false,
		"isSidechain": true,
		"slug": "looking-at-test"
	}`

	var l Logline
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		t.Fatalf("Failed to decode logline: %v", err)
	}

	if l.Type != "assistant" || l.Subtype != "turn" {
		t.Errorf("Type fields not decoded: %q/%q", l.Type, l.Subtype)
	}
	if l.GitBranch != "fix/flaky-test" {
		t.Errorf("gitBranch not decoded: %q", l.GitBranch)
	}
	if l.IsMeta == nil || *l.IsMeta {
		t.Error("isMeta should decode to false")
	}
	if l.IsSidechain == nil || !*l.IsSidechain {
		t.Error("isSidechain should decode to true")
	}
	if l.Extra != nil {
		t.Errorf("No extras expected, got %v", l.Extra)
	}
}

// TestDecodeLoglineExtras tests that unrecognized keys land in Extra
func TestDecodeLoglineExtras(t *testing.T) {
	data := `{"type": "system", "content": "boot", "requestId": "req_01", "userType": "external"}`

	var l Logline
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		t.Fatalf("Failed to decode logline: %v", err)
	}

	if len(l.Extra) != 2 {
		t.Fatalf("Expected 2 extras, got %d", len(l.Extra))
	}
	if _, ok := l.Extra["requestId"]; !ok {
		t.Error("requestId should be in Extra")
	}
	if _, ok := l.Extra["type"]; ok {
		t.Error("Known keys must not appear in Extra")
	}
}

// TestLoglineRoundTrip tests that extras survive re-encoding
func TestLoglineRoundTrip(t *testing.T) {
	data := `{"type": "user", "content": "hello", "requestId": "req_01"}`

	var l Logline
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	out, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if !strings.Contains(string(out), "req_01") {
		t.Errorf("Extra field lost in round trip: %s", out)
	}

	var back Logline
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Failed to decode round-tripped logline: %v", err)
	}
	if back.Type != "user" || back.Content != "hello" {
		t.Error("Known fields lost in round trip")
	}
	if _, ok := back.Extra["requestId"]; !ok {
		t.Error("Extras lost in round trip")
	}
}

// TestDecodeIngressResponse tests the loglines wrapper
func TestDecodeIngressResponse(t *testing.T) {
	data := `{"loglines": [{"type": "system"}, {"type": "user", "content": "hi"}]}`

	var resp IngressResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		t.Fatalf("Failed to decode ingress response: %v", err)
	}
	if len(resp.Loglines) != 2 {
		t.Fatalf("Expected 2 loglines, got %d", len(resp.Loglines))
	}
	if resp.Loglines[1].Content != "hi" {
		t.Error("Logline order should be preserved")
	}
}
