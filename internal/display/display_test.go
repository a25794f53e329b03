package display

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

// TestTruncate tests rune-safe shortening
func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Short strings should pass through, got %q", got)
	}
	if got := Truncate("abcdefghij", 5); got != "abcde..." {
		t.Errorf("Expected abcde..., got %q", got)
	}
	// Multi-byte characters must never be split mid-rune.
	got := Truncate("日本語のテキストです", 4)
	if got != "日本語の..." {
		t.Errorf("Expected 日本語の..., got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("Truncated string should end with ellipsis")
	}
}

// TestFormatTimestamp tests the timestamp rendering and its passthrough
func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp("2025-08-20T10:00:00Z"); got != "2025-08-20 10:00:00 UTC" {
		t.Errorf("Unexpected rendering: %q", got)
	}
	if got := FormatTimestamp("2025-08-20T10:00:00.123456Z"); got != "2025-08-20 10:00:00 UTC" {
		t.Errorf("Fractional seconds should be accepted: %q", got)
	}
	// Unparseable input is shown as-is, never dropped.
	if got := FormatTimestamp("not-a-timestamp"); got != "not-a-timestamp" {
		t.Errorf("Unparseable input should pass through: %q", got)
	}
	if got := FormatTimestamp(""); got != "" {
		t.Errorf("Empty input should stay empty: %q", got)
	}
}

// TestStatusColored tests that every status keeps its text
func TestStatusColored(t *testing.T) {
	for _, status := range []string{"running", "idle", "completed", "error", "failed", "hibernating"} {
		if !strings.Contains(StatusColored(status), status) {
			t.Errorf("Status text %q should survive coloring", status)
		}
	}
}

// TestSessionRow tests the list rendering
func TestSessionRow(t *testing.T) {
	s := &models.Session{
		ID:            "session_01QJaJSUgfY6khmFTzJaMqph",
		Title:         "Fix flaky test",
		SessionStatus: "completed",
		UpdatedAt:     "2025-08-20T11:30:00Z",
	}

	row := SessionRow(s)
	for _, want := range []string{s.ID, "Fix flaky test", "completed", "2025-08-20"} {
		if !strings.Contains(row, want) {
			t.Errorf("Row should contain %q:\n%s", want, row)
		}
	}

	untitled := SessionRow(&models.Session{ID: "session_aaaaaaaaaa"})
	if !strings.Contains(untitled, "(untitled)") {
		t.Error("Sessions without a title should show a placeholder")
	}
}

// TestSessionDetail tests the detail rendering including the resume hint
func TestSessionDetail(t *testing.T) {
	s := &models.Session{
		ID:            "session_01QJaJSUgfY6khmFTzJaMqph",
		Title:         "Fix flaky test",
		SessionStatus: "running",
		SessionContext: &models.SessionContext{
			Model:   "claude-sonnet-4",
			Sources: []models.SessionSource{{URL: "https://github.com/acme/widgets", Revision: "main"}},
			Outcomes: []models.SessionOutcome{
				{GitInfo: &models.GitInfo{Repo: "acme/widgets", Branches: []string{"fix/flaky-test"}}},
			},
		},
	}

	detail := SessionDetail(s)
	for _, want := range []string{
		"claude --teleport session_01QJaJSUgfY6khmFTzJaMqph",
		"claude-sonnet-4",
		"https://github.com/acme/widgets",
		"fix/flaky-test",
	} {
		if !strings.Contains(detail, want) {
			t.Errorf("Detail should contain %q:\n%s", want, detail)
		}
	}
}

func mustEvent(t *testing.T, raw string) models.SessionEvent {
	t.Helper()
	var e models.SessionEvent
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("Failed to decode fixture event: %v", err)
	}
	return e
}

// TestEventRendering tests one transcript line per variant
func TestEventRendering(t *testing.T) {
	tests := []struct {
		name  string
		event string
		want  []string
	}{
		{
			"system",
			`{"type": "system", "subtype": "init", "model": "claude-sonnet-4", "cwd": "/workspace"}`,
			[]string{"SYSTEM", "init", "claude-sonnet-4", "/workspace"},
		},
		{
			"user",
			`{"type": "user", "message": {"content": "please fix it"}}`,
			[]string{"USER", "please fix it"},
		},
		{
			"assistant",
			`{"type": "assistant", "message": {"content": [{"type": "text", "text": "on it"}, {"type": "tool_use", "name": "Bash", "input": {"command": "ls"}}]}}`,
			[]string{"ASSISTANT", "on it", "tool_use:", "Bash"},
		},
		{
			"summary",
			`{"type": "tool_use_summary", "summary": "Ran the suite"}`,
			[]string{"SUMMARY", "Ran the suite"},
		},
		{
			"progress",
			`{"type": "tool_progress", "tool_name": "Bash", "elapsed_time_seconds": 9}`,
			[]string{"PROGRESS", "Bash", "9s"},
		},
		{
			"result",
			`{"type": "result", "duration_ms": 5000}`,
			[]string{"RESULT", "duration=5s"},
		},
		{
			"control",
			`{"type": "control_response", "response": {"subtype": "success"}}`,
			[]string{"CONTROL", "success"},
		},
		{
			"env manager log",
			`{"type": "env_manager_log", "data": {"content": "installing deps", "level": "warn"}}`,
			[]string{"ENV", "warn", "installing deps"},
		},
		{
			"unknown",
			`{"type": "telemetry_blob", "x": 1}`,
			[]string{"UNKNOWN"},
		},
	}

	for _, tt := range tests {
		e := mustEvent(t, tt.event)
		out := Event(&e)
		for _, want := range tt.want {
			if !strings.Contains(out, want) {
				t.Errorf("%s: output should contain %q:\n%s", tt.name, want, out)
			}
		}
	}
}

// TestEventRenderingTruncatesPreviews tests the preview limits on long payloads
func TestEventRenderingTruncatesPreviews(t *testing.T) {
	long := strings.Repeat("x", 500)
	e := mustEvent(t, `{"type": "assistant", "message": {"content": [{"type": "thinking", "thinking": "`+long+`"}]}}`)
	out := Event(&e)
	if strings.Contains(out, long) {
		t.Error("Thinking text should be truncated for display")
	}
	if !strings.Contains(out, "...") {
		t.Error("Truncation should be marked with an ellipsis")
	}
}

// TestLoglineRendering tests the ingress record rendering
func TestLoglineRendering(t *testing.T) {
	l := &models.Logline{
		Type:      "assistant",
		Subtype:   "turn",
		Content:   "Looking at the test now.",
		Timestamp: "2025-08-20T10:05:00Z",
		GitBranch: "fix/flaky-test",
	}

	out := Logline(l)
	for _, want := range []string{"assistant/turn", "Looking at the test now.", "fix/flaky-test", "2025-08-20"} {
		if !strings.Contains(out, want) {
			t.Errorf("Logline output should contain %q:\n%s", want, out)
		}
	}
}
