// Package filter narrows decoded event and session streams with
// conjunctive type, time-range and full-text predicates. Input order is
// always preserved; nothing here re-sorts.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

// Criteria is the predicate set applied to a decoded event stream. Zero
// values are no-ops; supplied predicates are all required to match.
type Criteria struct {
	// Type matches the exact EventType tag.
	Type string
	// ConversationOnly keeps only dialogue-timeline events.
	ConversationOnly bool
	// Search is a case-insensitive substring over the event's textual
	// surfaces.
	Search string
	// After/Before bound the created_at timestamp. Events without a
	// parseable timestamp are never excluded by these bounds.
	After  *time.Time
	Before *time.Time
}

// Apply returns the subsequence of events satisfying every supplied
// predicate, in input order.
func Apply(events []models.SessionEvent, c Criteria) []models.SessionEvent {
	var out []models.SessionEvent
	for i := range events {
		if c.Matches(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}

// Matches reports whether a single event satisfies the criteria.
func (c Criteria) Matches(e *models.SessionEvent) bool {
	if c.Type != "" && e.EventType() != c.Type {
		return false
	}
	if c.ConversationOnly && !e.IsConversation() {
		return false
	}
	if c.After != nil || c.Before != nil {
		if t, ok := parseEventTime(e.CreatedAt()); ok {
			if c.After != nil && t.Before(*c.After) {
				return false
			}
			if c.Before != nil && t.After(*c.Before) {
				return false
			}
		}
	}
	if c.Search != "" && !ContainsText(e, c.Search) {
		return false
	}
	return true
}

// parseEventTime interprets a raw created_at value. Absent or malformed
// values report false, which the range predicates treat as "keep".
func parseEventTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDateFilter accepts a full ISO-8601 timestamp or a bare YYYY-MM-DD
// date (interpreted as midnight UTC).
func ParseDateFilter(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date format %q: use YYYY-MM-DD or ISO-8601 (e.g. 2025-01-15T00:00:00Z)", s)
}

// ContainsText reports whether needle occurs, case-insensitively, in the
// event's searchable surfaces. What is searchable depends on the variant:
// user events expose only their plain-text content (block lists are not
// deconstructed); assistant events expose text, thinking, tool names,
// serialized tool input and serialized tool results; summaries, env
// manager logs and system subtypes expose their strings. Every other
// variant never matches.
func ContainsText(e *models.SessionEvent, needle string) bool {
	lower := strings.ToLower(needle)
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), lower)
	}

	switch {
	case e.User != nil:
		if text, ok := e.User.Message.Content.AsText(); ok {
			return contains(text)
		}
		return false

	case e.Assistant != nil:
		for i := range e.Assistant.Message.Content {
			block := &e.Assistant.Message.Content[i]
			switch {
			case block.Text != nil:
				if contains(block.Text.Text) {
					return true
				}
			case block.Thinking != nil:
				if contains(block.Thinking.Thinking) {
					return true
				}
			case block.ToolUse != nil:
				if contains(block.ToolUse.Name) || contains(string(block.ToolUse.Input)) {
					return true
				}
			case block.ToolResult != nil:
				if contains(string(block.ToolResult.Content)) {
					return true
				}
			}
		}
		return false

	case e.ToolUseSummary != nil:
		return contains(e.ToolUseSummary.Summary)

	case e.EnvManagerLog != nil:
		return e.EnvManagerLog.Data != nil && contains(e.EnvManagerLog.Data.Content)

	case e.System != nil:
		return contains(e.System.Subtype)
	}
	return false
}

// FilterSessions narrows a session listing by status and creation date.
// Sessions whose created_at cannot be parsed are never excluded by the
// date bounds, matching the event-side behaviour.
func FilterSessions(sessions []models.Session, status string, after, before *time.Time) []models.Session {
	var out []models.Session
	for _, s := range sessions {
		if status != "" && s.SessionStatus != status {
			continue
		}
		if after != nil || before != nil {
			if t, ok := parseEventTime(s.CreatedAt); ok {
				if after != nil && t.Before(*after) {
					continue
				}
				if before != nil && t.After(*before) {
					continue
				}
			}
		}
		out = append(out, s)
	}
	return out
}
