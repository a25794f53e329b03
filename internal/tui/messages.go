package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/display"
	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

// Fetcher is the slice of the API client the browser needs. It is an
// interface so the model can be driven without a network in tests.
type Fetcher interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
	GetEvents(ctx context.Context, sessionID string, maxEvents int) ([]models.SessionEvent, error)
}

// transcriptPreviewEvents caps the preview fetch; the read command is the
// place for full transcripts.
const transcriptPreviewEvents = 200

// Message types for async operations
type (
	// SessionsLoadedMsg contains the remote session listing.
	SessionsLoadedMsg struct {
		Sessions []models.Session
		Error    error
	}

	// TranscriptLoadedMsg contains a rendered transcript preview.
	TranscriptLoadedMsg struct {
		SessionID string
		Lines     []string
		Error     error
	}

	// TickMsg drives the spinner animation.
	TickMsg time.Time
)

// loadSessionsCmd fetches the session listing asynchronously.
func loadSessionsCmd(ctx context.Context, fetcher Fetcher) tea.Cmd {
	return func() tea.Msg {
		sessions, err := fetcher.ListSessions(ctx)
		return SessionsLoadedMsg{
			Sessions: sessions,
			Error:    err,
		}
	}
}

// loadTranscriptCmd fetches a capped event preview and renders it to
// display lines asynchronously.
func loadTranscriptCmd(ctx context.Context, fetcher Fetcher, sessionID string) tea.Cmd {
	return func() tea.Msg {
		events, err := fetcher.GetEvents(ctx, sessionID, transcriptPreviewEvents)
		if err != nil {
			return TranscriptLoadedMsg{SessionID: sessionID, Error: err}
		}
		return TranscriptLoadedMsg{
			SessionID: sessionID,
			Lines:     renderTranscript(events),
		}
	}
}

// renderTranscript flattens rendered events into displayable lines.
func renderTranscript(events []models.SessionEvent) []string {
	var lines []string
	for i := range events {
		rendered := strings.TrimRight(display.Event(&events[i]), "\n")
		lines = append(lines, strings.Split(rendered, "\n")...)
	}
	return lines
}

// tickCmd creates a ticker for spinner animation.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
