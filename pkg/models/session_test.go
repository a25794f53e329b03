package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// TestDecodeMinimalSession tests that a session with only an ID decodes
func TestDecodeMinimalSession(t *testing.T) {
	var s Session
	if err := json.Unmarshal([]byte(`{"id": "session_01QJaJSUgfY6khmFTzJaMqph"}`), &s); err != nil {
		t.Fatalf("Failed to decode minimal session: %v", err)
	}
	if s.ID != "session_01QJaJSUgfY6khmFTzJaMqph" {
		t.Errorf("Unexpected ID: %q", s.ID)
	}
	if s.SessionContext != nil {
		t.Error("Absent session_context should stay nil")
	}
}

// TestDecodeFullSession tests the complete session shape
func TestDecodeFullSession(t *testing.T) {
	data := `{
		"id": "session_01QJaJSUgfY6khmFTzJaMqph",
		"title": "Fix flaky integration test",
		"session_status": "completed",
		"type": "remote",
		"created_at": "2025-08-20T09:00:00Z",
		"updated_at": "2025-08-20T11:30:00Z",
		"environment_id": "env_01",
		"session_context": {
			"model": "claude-sonnet-4",
			"cwd": "/workspace",
			"sources": [{"type": "github", "url": "https://github.com/acme/widgets", "revision": "main"}],
			"outcomes": [{"type": "git", "git_info": {"repo": "acme/widgets", "branches": ["fix/flaky-test"]}}]
		},
		"metadata": {"anything": "goes"},
		"active_mount_paths": ["/workspace"]
	}`

	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("Failed to decode session: %v", err)
	}

	if s.SessionStatus != "completed" {
		t.Errorf("Unexpected status: %q", s.SessionStatus)
	}
	if s.SessionType != "remote" {
		t.Errorf("Unexpected type: %q", s.SessionType)
	}
	if s.SessionContext == nil || s.SessionContext.Model != "claude-sonnet-4" {
		t.Fatal("session_context not decoded")
	}
	if len(s.SessionContext.Sources) != 1 || s.SessionContext.Sources[0].URL != "https://github.com/acme/widgets" {
		t.Error("Sources not decoded")
	}
	outcome := s.SessionContext.Outcomes[0]
	if outcome.GitInfo == nil || outcome.GitInfo.Branches[0] != "fix/flaky-test" {
		t.Error("Outcome git info not decoded")
	}
	if len(s.Metadata) == 0 {
		t.Error("Metadata should be preserved as raw JSON")
	}
}

// TestDecodeUnknownStatus tests that unrecognized status strings pass through
func TestDecodeUnknownStatus(t *testing.T) {
	var s Session
	if err := json.Unmarshal([]byte(`{"id": "session_0123456789", "session_status": "hibernating"}`), &s); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if s.SessionStatus != "hibernating" {
		t.Errorf("Unknown statuses should be carried through, got %q", s.SessionStatus)
	}
}

// TestDecodeSessionsListResponse tests the listing wrapper
func TestDecodeSessionsListResponse(t *testing.T) {
	data := `{"data": [{"id": "session_aaaaaaaaaa"}, {"id": "session_bbbbbbbbbb"}]}`

	var resp SessionsListResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		t.Fatalf("Failed to decode listing: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(resp.Data))
	}
	if resp.Data[1].ID != "session_bbbbbbbbbb" {
		t.Error("Listing order should be preserved")
	}
}

// TestDecodeCredentials tests the on-disk credential shape
func TestDecodeCredentials(t *testing.T) {
	data := `{
		"claudeAiOauth": {
			"accessToken": "sk-ant-oat01-secret",
			"expiresAt": 1767225600000,
			"scopes": ["user:inference"],
			"subscriptionType": "max"
		}
	}`

	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		t.Fatalf("Failed to decode credentials: %v", err)
	}
	if creds.ClaudeAIOAuth.AccessToken != "sk-ant-oat01-secret" {
		t.Error("Access token not decoded")
	}
	if creds.ClaudeAIOAuth.ExpiresAt != 1767225600000 {
		t.Errorf("Unexpected expiry: %d", creds.ClaudeAIOAuth.ExpiresAt)
	}
	if len(creds.ClaudeAIOAuth.Scopes) != 1 {
		t.Error("Scopes not decoded")
	}
}

// TestOAuthTokenRedaction tests that tokens never appear in formatted output
func TestOAuthTokenRedaction(t *testing.T) {
	token := OAuthToken{AccessToken: "sk-ant-oat01-secret", ExpiresAt: 42}

	for _, rendered := range []string{
		fmt.Sprintf("%v", token),
		fmt.Sprintf("%s", token),
		token.String(),
	} {
		if strings.Contains(rendered, "sk-ant-oat01-secret") {
			t.Errorf("Token leaked in formatted output: %s", rendered)
		}
		if !strings.Contains(rendered, "[REDACTED]") {
			t.Errorf("Redaction marker missing: %s", rendered)
		}
	}
}

// TestDecodeProfileResponse tests the organization profile shape
func TestDecodeProfileResponse(t *testing.T) {
	data := `{"account": {"email": "dev@example.com"}, "organization": {"uuid": "org-uuid-1234", "name": "Acme"}}`

	var profile ProfileResponse
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		t.Fatalf("Failed to decode profile: %v", err)
	}
	if profile.Organization.UUID != "org-uuid-1234" {
		t.Errorf("Unexpected org UUID: %q", profile.Organization.UUID)
	}
}
