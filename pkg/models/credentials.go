package models

import "fmt"

// Credentials is the on-disk credential shape written by the Claude Code
// login flow. Extra fields are ignored so newer CLI versions keep working.
type Credentials struct {
	ClaudeAIOAuth OAuthToken `json:"claudeAiOauth"`
}

// OAuthToken carries the bearer token used for every API request.
type OAuthToken struct {
	AccessToken string   `json:"accessToken"`
	ExpiresAt   int64    `json:"expiresAt"`
	Scopes      []string `json:"scopes"`
}

// String redacts the access token so credentials never leak through
// formatted output or error messages.
func (t OAuthToken) String() string {
	return fmt.Sprintf("OAuthToken{accessToken:[REDACTED] expiresAt:%d scopes:%v}", t.ExpiresAt, t.Scopes)
}

// ProfileResponse is the /api/oauth/profile response. Only the
// organization UUID is consumed; everything else is ignored.
type ProfileResponse struct {
	Organization OrgInfo `json:"organization"`
}

// OrgInfo identifies the organization the token belongs to.
type OrgInfo struct {
	UUID string `json:"uuid"`
}
