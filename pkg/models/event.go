package models

import (
	"encoding/json"
	"fmt"
)

// Event type tags as they appear on the wire.
const (
	EventTypeSystem          = "system"
	EventTypeUser            = "user"
	EventTypeAssistant       = "assistant"
	EventTypeToolUseSummary  = "tool_use_summary"
	EventTypeToolProgress    = "tool_progress"
	EventTypeResult          = "result"
	EventTypeControlResponse = "control_response"
	EventTypeEnvManagerLog   = "env_manager_log"
	EventTypeUnknown         = "unknown"
)

// EventsResponse is one page of /v1/sessions/{id}/events. HasMore must be
// explicitly true for pagination to continue, even when LastID is set.
type EventsResponse struct {
	Data    []SessionEvent `json:"data"`
	FirstID string         `json:"first_id,omitempty"`
	LastID  string         `json:"last_id,omitempty"`
	HasMore bool           `json:"has_more,omitempty"`
}

// SessionEvent is a tagged union over every event type the sessions API
// can return, discriminated by the "type" field. Tags this client does
// not recognize decode to the unknown variant instead of failing, so new
// server-side event types never break decoding. Exactly one variant
// pointer is set for known tags.
type SessionEvent struct {
	Type string

	System          *SystemEvent
	User            *UserEvent
	Assistant       *AssistantEvent
	ToolUseSummary  *ToolUseSummaryEvent
	ToolProgress    *ToolProgressEvent
	Result          *ResultEvent
	ControlResponse *ControlResponseEvent
	EnvManagerLog   *EnvManagerLogEvent

	// raw keeps the original bytes of unknown events so exports do not
	// drop fields this client has no model for.
	raw json.RawMessage
}

func (e *SessionEvent) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("event envelope: %w", err)
	}

	*e = SessionEvent{Type: head.Type}
	var variant any
	switch head.Type {
	case EventTypeSystem:
		e.System = &SystemEvent{}
		variant = e.System
	case EventTypeUser:
		e.User = &UserEvent{}
		variant = e.User
	case EventTypeAssistant:
		e.Assistant = &AssistantEvent{}
		variant = e.Assistant
	case EventTypeToolUseSummary:
		e.ToolUseSummary = &ToolUseSummaryEvent{}
		variant = e.ToolUseSummary
	case EventTypeToolProgress:
		e.ToolProgress = &ToolProgressEvent{}
		variant = e.ToolProgress
	case EventTypeResult:
		e.Result = &ResultEvent{}
		variant = e.Result
	case EventTypeControlResponse:
		e.ControlResponse = &ControlResponseEvent{}
		variant = e.ControlResponse
	case EventTypeEnvManagerLog:
		e.EnvManagerLog = &EnvManagerLogEvent{}
		variant = e.EnvManagerLog
	default:
		e.Type = EventTypeUnknown
		e.raw = append(json.RawMessage(nil), data...)
		return nil
	}
	return json.Unmarshal(data, variant)
}

func (e SessionEvent) MarshalJSON() ([]byte, error) {
	var variant any
	switch e.Type {
	case EventTypeSystem:
		variant = e.System
	case EventTypeUser:
		variant = e.User
	case EventTypeAssistant:
		variant = e.Assistant
	case EventTypeToolUseSummary:
		variant = e.ToolUseSummary
	case EventTypeToolProgress:
		variant = e.ToolProgress
	case EventTypeResult:
		variant = e.Result
	case EventTypeControlResponse:
		variant = e.ControlResponse
	case EventTypeEnvManagerLog:
		variant = e.EnvManagerLog
	default:
		if len(e.raw) > 0 {
			return e.raw, nil
		}
		return []byte(`{"type":"unknown"}`), nil
	}
	return marshalTagged(e.Type, variant)
}

// marshalTagged re-injects the discriminant into the variant's fields so
// encoding a decoded event reproduces the wire tag.
func marshalTagged(tag string, variant any) ([]byte, error) {
	body, err := json.Marshal(variant)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage, 1)
	}
	tagValue, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}
	fields["type"] = tagValue
	return json.Marshal(fields)
}

// EventType returns the stable wire tag for this event, or "unknown" for
// unrecognized tags.
func (e *SessionEvent) EventType() string {
	if e.Type == "" {
		return EventTypeUnknown
	}
	return e.Type
}

// CreatedAt returns the event's raw creation timestamp, or "" when
// absent. No parsing happens here: malformed timestamps must never abort
// decoding, so interpreting them is left to the filter/display layers.
func (e *SessionEvent) CreatedAt() string {
	switch {
	case e.System != nil:
		return e.System.CreatedAt
	case e.User != nil:
		return e.User.CreatedAt
	case e.Assistant != nil:
		return e.Assistant.CreatedAt
	case e.ToolUseSummary != nil:
		return e.ToolUseSummary.CreatedAt
	case e.ToolProgress != nil:
		return e.ToolProgress.CreatedAt
	case e.Result != nil:
		return e.Result.CreatedAt
	case e.ControlResponse != nil:
		return e.ControlResponse.CreatedAt
	case e.EnvManagerLog != nil:
		return e.EnvManagerLog.CreatedAt
	}
	return ""
}

// IsConversation reports whether the event is part of the human-visible
// dialogue timeline (system, user, assistant, result), as opposed to
// tooling and telemetry events.
func (e *SessionEvent) IsConversation() bool {
	switch e.Type {
	case EventTypeSystem, EventTypeUser, EventTypeAssistant, EventTypeResult:
		return true
	}
	return false
}

// SystemEvent announces session setup: model, working directory and the
// capabilities available to the agent.
type SystemEvent struct {
	CreatedAt         string            `json:"created_at,omitempty"`
	UUID              string            `json:"uuid,omitempty"`
	Subtype           string            `json:"subtype,omitempty"`
	SessionID         string            `json:"session_id,omitempty"`
	Model             string            `json:"model,omitempty"`
	CWD               string            `json:"cwd,omitempty"`
	ClaudeCodeVersion string            `json:"claude_code_version,omitempty"`
	Tools             []string          `json:"tools,omitempty"`
	Agents            []string          `json:"agents,omitempty"`
	Skills            []string          `json:"skills,omitempty"`
	SlashCommands     []string          `json:"slash_commands,omitempty"`
	MCPServers        []json.RawMessage `json:"mcp_servers,omitempty"`
	PermissionMode    string            `json:"permissionMode,omitempty"`
	FastModeState     string            `json:"fast_mode_state,omitempty"`
	OutputStyle       string            `json:"output_style,omitempty"`
}

// UserEvent is a message from the user.
type UserEvent struct {
	CreatedAt       string      `json:"created_at,omitempty"`
	UUID            string      `json:"uuid,omitempty"`
	SessionID       string      `json:"session_id,omitempty"`
	Message         UserMessage `json:"message"`
	ParentToolUseID string      `json:"parent_tool_use_id,omitempty"`
	IsReplay        *bool       `json:"isReplay,omitempty"`
}

// UserMessage wraps the polymorphic user content.
type UserMessage struct {
	Role    string      `json:"role,omitempty"`
	Content UserContent `json:"content"`
}

// UserContent is the content field of a user message: a plain string or a
// list of content block values. The plain-string reading is tried first
// because it is unambiguous; block lists are preserved as opaque JSON.
type UserContent struct {
	text   string
	isText bool
	blocks []json.RawMessage
}

// TextContent builds a plain-string user content value.
func TextContent(text string) UserContent {
	return UserContent{text: text, isText: true}
}

// BlockContent builds a block-list user content value.
func BlockContent(blocks ...json.RawMessage) UserContent {
	return UserContent{blocks: blocks}
}

func (c *UserContent) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = UserContent{text: text, isText: true}
		return nil
	}
	var blocks []json.RawMessage
	if err := json.Unmarshal(data, &blocks); err != nil {
		return fmt.Errorf("user content is neither a string nor a block list: %w", err)
	}
	*c = UserContent{blocks: blocks}
	return nil
}

func (c UserContent) MarshalJSON() ([]byte, error) {
	if c.isText {
		return json.Marshal(c.text)
	}
	if c.blocks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.blocks)
}

// AsText returns the plain-string interpretation. Block-list content has
// no textual projection and reports false.
func (c UserContent) AsText() (string, bool) {
	return c.text, c.isText
}

// Blocks returns the raw block values of a block-list content, nil for
// plain-string content.
func (c UserContent) Blocks() []json.RawMessage {
	return c.blocks
}

// AssistantEvent is a message from the model.
type AssistantEvent struct {
	CreatedAt string           `json:"created_at,omitempty"`
	UUID      string           `json:"uuid,omitempty"`
	SessionID string           `json:"session_id,omitempty"`
	Message   AssistantMessage `json:"message"`
}

// AssistantMessage is an ordered sequence of content blocks.
type AssistantMessage struct {
	Role    string         `json:"role,omitempty"`
	Content []ContentBlock `json:"content"`
}

// Content block tags as they appear on the wire.
const (
	BlockTypeThinking   = "thinking"
	BlockTypeText       = "text"
	BlockTypeToolUse    = "tool_use"
	BlockTypeToolResult = "tool_result"
	BlockTypeOther      = "other"
)

// ContentBlock is the second tagged union, nested inside assistant
// messages. Unrecognized block tags (signatures, redacted thinking,
// future kinds) decode to the other variant with their bytes preserved.
type ContentBlock struct {
	Type string

	Thinking   *ThinkingBlock
	Text       *TextBlock
	ToolUse    *ToolUseBlock
	ToolResult *ToolResultBlock

	raw json.RawMessage
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("content block envelope: %w", err)
	}

	*b = ContentBlock{Type: head.Type}
	var variant any
	switch head.Type {
	case BlockTypeThinking:
		b.Thinking = &ThinkingBlock{}
		variant = b.Thinking
	case BlockTypeText:
		b.Text = &TextBlock{}
		variant = b.Text
	case BlockTypeToolUse:
		b.ToolUse = &ToolUseBlock{}
		variant = b.ToolUse
	case BlockTypeToolResult:
		b.ToolResult = &ToolResultBlock{}
		variant = b.ToolResult
	default:
		b.Type = BlockTypeOther
		b.raw = append(json.RawMessage(nil), data...)
		return nil
	}
	return json.Unmarshal(data, variant)
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	var variant any
	switch b.Type {
	case BlockTypeThinking:
		variant = b.Thinking
	case BlockTypeText:
		variant = b.Text
	case BlockTypeToolUse:
		variant = b.ToolUse
	case BlockTypeToolResult:
		variant = b.ToolResult
	default:
		if len(b.raw) > 0 {
			return b.raw, nil
		}
		return []byte(`{"type":"other"}`), nil
	}
	return marshalTagged(b.Type, variant)
}

// BlockType returns the stable wire tag, or "other" for unrecognized
// blocks.
func (b *ContentBlock) BlockType() string {
	if b.Type == "" {
		return BlockTypeOther
	}
	return b.Type
}

// ThinkingBlock is the model's reasoning text.
type ThinkingBlock struct {
	Thinking  string `json:"thinking,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// TextBlock is plain response text.
type TextBlock struct {
	Text string `json:"text,omitempty"`
}

// ToolUseBlock is a tool invocation; the input shape depends on the tool
// and is kept opaque.
type ToolUseBlock struct {
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

// ToolResultBlock carries a tool's output, which may be a string or a
// structured value.
type ToolResultBlock struct {
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	IsError   *bool           `json:"is_error,omitempty"`
}

// ToolUseSummaryEvent condenses a run of tool calls into one line.
type ToolUseSummaryEvent struct {
	CreatedAt           string   `json:"created_at,omitempty"`
	UUID                string   `json:"uuid,omitempty"`
	SessionID           string   `json:"session_id,omitempty"`
	Summary             string   `json:"summary,omitempty"`
	PrecedingToolUseIDs []string `json:"preceding_tool_use_ids,omitempty"`
}

// ToolProgressEvent is a heartbeat for a long-running tool call.
type ToolProgressEvent struct {
	CreatedAt          string `json:"created_at,omitempty"`
	UUID               string `json:"uuid,omitempty"`
	SessionID          string `json:"session_id,omitempty"`
	ToolName           string `json:"tool_name,omitempty"`
	ToolUseID          string `json:"tool_use_id,omitempty"`
	ParentToolUseID    string `json:"parent_tool_use_id,omitempty"`
	ElapsedTimeSeconds int64  `json:"elapsed_time_seconds,omitempty"`
}

// ResultEvent closes a turn with timing and error information.
type ResultEvent struct {
	CreatedAt     string   `json:"created_at,omitempty"`
	DurationMS    int64    `json:"duration_ms,omitempty"`
	DurationAPIMS int64    `json:"duration_api_ms,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

// ControlResponseEvent acknowledges a control request.
type ControlResponseEvent struct {
	CreatedAt string               `json:"created_at,omitempty"`
	Response  *ControlResponseData `json:"response,omitempty"`
}

// ControlResponseData carries the control response subtype.
type ControlResponseData struct {
	Subtype string `json:"subtype,omitempty"`
}

// EnvManagerLogEvent is environment-manager output (setup, dependency
// installs and the like).
type EnvManagerLogEvent struct {
	CreatedAt string             `json:"created_at,omitempty"`
	UUID      string             `json:"uuid,omitempty"`
	Data      *EnvManagerLogData `json:"data,omitempty"`
}

// EnvManagerLogData is the payload of an env manager log line.
type EnvManagerLogData struct {
	Category  string          `json:"category,omitempty"`
	Content   string          `json:"content,omitempty"`
	Level     string          `json:"level,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Extra     json.RawMessage `json:"extra,omitempty"`
}
