package models

import "encoding/json"

// SessionsListResponse wraps the /v1/sessions listing.
type SessionsListResponse struct {
	Data []Session `json:"data"`
}

// Session is a read-only snapshot of a remote session. Every field except
// the ID may be absent; unknown status strings are carried through rather
// than rejected.
type Session struct {
	ID               string          `json:"id"`
	Title            string          `json:"title,omitempty"`
	SessionStatus    string          `json:"session_status,omitempty"`
	SessionType      string          `json:"type,omitempty"`
	CreatedAt        string          `json:"created_at,omitempty"`
	UpdatedAt        string          `json:"updated_at,omitempty"`
	EnvironmentID    string          `json:"environment_id,omitempty"`
	SessionContext   *SessionContext `json:"session_context,omitempty"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
	ActiveMountPaths []string        `json:"active_mount_paths,omitempty"`
}

// SessionContext holds the model, working directory and repository
// information attached to a session.
type SessionContext struct {
	Model            string           `json:"model,omitempty"`
	CWD              string           `json:"cwd,omitempty"`
	Sources          []SessionSource  `json:"sources,omitempty"`
	Outcomes         []SessionOutcome `json:"outcomes,omitempty"`
	AllowedTools     []string         `json:"allowed_tools,omitempty"`
	DisallowedTools  []string         `json:"disallowed_tools,omitempty"`
	KnowledgeBaseIDs []string         `json:"knowledge_base_ids,omitempty"`
}

// SessionSource is a repository the session was started from.
type SessionSource struct {
	Type     string `json:"type,omitempty"`
	URL      string `json:"url,omitempty"`
	Revision string `json:"revision,omitempty"`
}

// SessionOutcome records what the session produced.
type SessionOutcome struct {
	Type    string   `json:"type,omitempty"`
	GitInfo *GitInfo `json:"git_info,omitempty"`
}

// GitInfo describes git activity in a session outcome.
type GitInfo struct {
	Type     string   `json:"type,omitempty"`
	Repo     string   `json:"repo,omitempty"`
	Branches []string `json:"branches,omitempty"`
}
