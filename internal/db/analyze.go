package db

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// TypeCount is one histogram bucket.
type TypeCount struct {
	Name  string
	Count int
}

// ExportStats summarises a previously exported session file.
type ExportStats struct {
	SessionID       string
	Title           string
	TotalEvents     int
	EventTypeCounts []TypeCount
	ToolCounts      []TypeCount
	UserMessages    []string
}

// AnalyzeExport aggregates an export file (as written by the export
// command) entirely offline: event type histogram, tool invocation
// counts and the plain-text user messages.
func AnalyzeExport(path string) (*ExportStats, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("export file %s: %w", path, err)
	}

	database, err := GetDB()
	if err != nil {
		return nil, err
	}
	// The singleton connection is shared; never close it here.

	stats := &ExportStats{}

	// The export is a single JSON document, so every query unnests the
	// embedded events list.
	source := fmt.Sprintf("read_json('%s', format = 'auto', maximum_object_size = 1073741824)", escapePath(path))

	headerQuery := fmt.Sprintf(`
		SELECT
			CAST(session.id AS VARCHAR) as session_id,
			CAST(session.title AS VARCHAR) as title,
			CAST(total_events AS BIGINT) as total_events
		FROM %s
	`, source)
	var sessionID, title sql.NullString
	var totalEvents sql.NullInt64
	if err := database.QueryRow(headerQuery).Scan(&sessionID, &title, &totalEvents); err != nil {
		return nil, fmt.Errorf("failed to read export header from %s: %w", path, err)
	}
	stats.SessionID = sessionID.String
	stats.Title = title.String
	stats.TotalEvents = int(totalEvents.Int64)

	typesQuery := fmt.Sprintf(`
		SELECT
			COALESCE(CAST(ev.type AS VARCHAR), 'unknown') as event_type,
			COUNT(*) as n
		FROM (SELECT UNNEST(events) as ev FROM %s)
		GROUP BY event_type
		ORDER BY n DESC, event_type ASC
	`, source)
	counts, err := queryTypeCounts(database, typesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate event types: %w", err)
	}
	stats.EventTypeCounts = counts

	toolsQuery := fmt.Sprintf(`
		SELECT
			CAST(cb.name AS VARCHAR) as tool_name,
			COUNT(*) as n
		FROM (
			SELECT UNNEST(ev.message.content) as cb
			FROM (SELECT UNNEST(events) as ev FROM %s)
			WHERE CAST(ev.type AS VARCHAR) = 'assistant'
		)
		WHERE CAST(cb.type AS VARCHAR) = 'tool_use'
		GROUP BY tool_name
		ORDER BY n DESC, tool_name ASC
	`, source)
	// Exports without assistant events make the struct inference fall
	// over; tool counts are best-effort.
	if toolCounts, err := queryTypeCounts(database, toolsQuery); err == nil {
		stats.ToolCounts = toolCounts
	}

	messagesQuery := fmt.Sprintf(`
		SELECT CAST(ev.message.content AS VARCHAR) as content
		FROM (SELECT UNNEST(events) as ev FROM %s)
		WHERE CAST(ev.type AS VARCHAR) = 'user'
	`, source)
	if messages, err := queryStrings(database, messagesQuery); err == nil {
		stats.UserMessages = messages
	}

	return stats, nil
}

func queryTypeCounts(database *sql.DB, query string) ([]TypeCount, error) {
	rows, err := database.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var name sql.NullString
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			continue
		}
		if !name.Valid {
			continue
		}
		counts = append(counts, TypeCount{Name: name.String, Count: count})
	}
	return counts, rows.Err()
}

func queryStrings(database *sql.DB, query string) ([]string, error) {
	rows, err := database.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var value sql.NullString
		if err := rows.Scan(&value); err != nil {
			continue
		}
		// Block-list content casts to a JSON array literal; only plain
		// string messages are listed.
		if value.Valid && value.String != "" && !strings.HasPrefix(value.String, "[") {
			out = append(out, value.String)
		}
	}
	return out, rows.Err()
}

// escapePath makes a path safe inside a single-quoted DuckDB literal.
func escapePath(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
