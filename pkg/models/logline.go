package models

import "encoding/json"

// IngressResponse wraps the session_ingress logline listing.
type IngressResponse struct {
	Loglines []Logline `json:"loglines"`
}

// Logline is a single record from the session_ingress endpoint. It is a
// flatter, single-page shape than SessionEvent: known fields are mapped,
// and every unrecognized key lands in Extra so exports keep fields this
// client has no model for.
type Logline struct {
	Type            string          `json:"type,omitempty"`
	Subtype         string          `json:"subtype,omitempty"`
	Content         string          `json:"content,omitempty"`
	Timestamp       string          `json:"timestamp,omitempty"`
	GitBranch       string          `json:"gitBranch,omitempty"`
	SessionID       string          `json:"sessionId,omitempty"`
	CWD             string          `json:"cwd,omitempty"`
	Level           string          `json:"level,omitempty"`
	IsMeta          *bool           `json:"isMeta,omitempty"`
	IsSidechain     *bool           `json:"isSidechain,omitempty"`
	Slug            string          `json:"slug,omitempty"`
	CompactMetadata json.RawMessage `json:"compactMetadata,omitempty"`

	// Extra holds unrecognized keys, preserved but not interpreted.
	Extra map[string]json.RawMessage `json:"-"`
}

// loglineAlias avoids recursing into the custom (un)marshallers.
type loglineAlias Logline

var loglineKnownKeys = []string{
	"type", "subtype", "content", "timestamp", "gitBranch", "sessionId",
	"cwd", "level", "isMeta", "isSidechain", "slug", "compactMetadata",
}

func (l *Logline) UnmarshalJSON(data []byte) error {
	var known loglineAlias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range loglineKnownKeys {
		delete(all, key)
	}
	known.Extra = nil
	if len(all) > 0 {
		known.Extra = all
	}
	*l = Logline(known)
	return nil
}

func (l Logline) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(loglineAlias(l))
	if err != nil {
		return nil, err
	}
	if len(l.Extra) == 0 {
		return body, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	for key, value := range l.Extra {
		if _, exists := fields[key]; !exists {
			fields[key] = value
		}
	}
	return json.Marshal(fields)
}
