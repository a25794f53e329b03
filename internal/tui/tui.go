// Package tui is the interactive browser over remote sessions: a session
// list on the left and a transcript preview on the right, loaded
// asynchronously from the sessions API.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/display"
	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

type viewMode int

const (
	listView viewMode = iota
	transcriptView
)

type model struct {
	ctx     context.Context
	fetcher Fetcher

	sessions        []models.Session
	cursor          int
	currentMode     viewMode
	selectedSession *models.Session

	viewport      viewport.Model // full-width session list
	leftViewport  viewport.Model // sessions in split view
	rightViewport viewport.Model // transcript preview in split view

	transcriptCache    map[string][]string
	loadingTranscripts map[string]bool

	loadingSessions bool
	indicator       *LoadingIndicator
	ready           bool
	err             error
	width           int
	height          int
}

func initialModel(ctx context.Context, fetcher Fetcher) model {
	return model{
		ctx:                ctx,
		fetcher:            fetcher,
		currentMode:        listView,
		transcriptCache:    make(map[string][]string),
		loadingTranscripts: make(map[string]bool),
		loadingSessions:    true,
		indicator:          NewLoadingIndicator("Fetching remote sessions..."),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		loadSessionsCmd(m.ctx, m.fetcher),
		tickCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		leftWidth := msg.Width/2 - 1
		rightWidth := msg.Width - leftWidth - 1
		viewHeight := msg.Height - 3

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewHeight)
			m.leftViewport = viewport.New(leftWidth, viewHeight)
			m.rightViewport = viewport.New(rightWidth, viewHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewHeight
			m.leftViewport.Width = leftWidth
			m.leftViewport.Height = viewHeight
			m.rightViewport.Width = rightWidth
			m.rightViewport.Height = viewHeight
		}
		m.updateViewports()

	case SessionsLoadedMsg:
		m.loadingSessions = false
		if msg.Error != nil {
			m.err = msg.Error
			return m, nil
		}
		m.sessions = msg.Sessions
		m.cursor = 0
		m.updateViewports()

	case TranscriptLoadedMsg:
		delete(m.loadingTranscripts, msg.SessionID)
		if msg.Error != nil {
			m.transcriptCache[msg.SessionID] = []string{fmt.Sprintf("Error loading transcript: %v", msg.Error)}
		} else if len(msg.Lines) == 0 {
			m.transcriptCache[msg.SessionID] = []string{"No events found for this session"}
		} else {
			m.transcriptCache[msg.SessionID] = msg.Lines
		}
		m.updateViewports()

	case TickMsg:
		if m.loadingSessions || len(m.loadingTranscripts) > 0 {
			m.indicator.Tick()
			cmds = append(cmds, tickCmd())
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.currentMode == transcriptView {
					cmds = append(cmds, m.ensureTranscript()...)
				}
				m.updateViewports()
			}

		case "down", "j":
			if m.cursor < len(m.sessions)-1 {
				m.cursor++
				if m.currentMode == transcriptView {
					cmds = append(cmds, m.ensureTranscript()...)
				}
				m.updateViewports()
			}

		case "enter":
			if len(m.sessions) == 0 {
				break
			}
			if m.currentMode == listView {
				m.currentMode = transcriptView
				cmds = append(cmds, m.ensureTranscript()...)
				m.updateViewports()
			} else {
				m.selectedSession = &m.sessions[m.cursor]
				return m, tea.Quit
			}

		case "esc", "backspace":
			if m.currentMode == transcriptView {
				m.currentMode = listView
				m.updateViewports()
			}
		}
	}

	if m.currentMode == listView {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		var leftCmd, rightCmd tea.Cmd
		m.leftViewport, leftCmd = m.leftViewport.Update(msg)
		m.rightViewport, rightCmd = m.rightViewport.Update(msg)
		cmds = append(cmds, leftCmd, rightCmd)
	}

	return m, tea.Batch(cmds...)
}

// ensureTranscript kicks off a preview fetch for the session under the
// cursor unless it is cached or already loading.
func (m *model) ensureTranscript() []tea.Cmd {
	if m.cursor >= len(m.sessions) {
		return nil
	}
	id := m.sessions[m.cursor].ID
	if _, cached := m.transcriptCache[id]; cached {
		return nil
	}
	if m.loadingTranscripts[id] {
		return nil
	}
	m.loadingTranscripts[id] = true
	m.indicator.SetMessage("Fetching transcript...")
	return []tea.Cmd{loadTranscriptCmd(m.ctx, m.fetcher, id), tickCmd()}
}

func (m *model) updateViewports() {
	if !m.ready {
		return
	}
	if m.currentMode == listView {
		m.viewport.SetContent(m.renderSessionList(m.viewport.Width))
	} else {
		m.leftViewport.SetContent(m.renderSessionColumn())
		m.rightViewport.SetContent(m.renderTranscriptColumn())
	}
}

func (m model) renderSessionList(width int) string {
	var s strings.Builder

	for i, session := range m.sessions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		style := lipgloss.NewStyle()
		if i == m.cursor {
			style = style.Foreground(lipgloss.Color("212")).Bold(true)
		}

		title := session.Title
		if title == "" {
			title = "(untitled)"
		}
		line := fmt.Sprintf("%s%s  %s", cursor, session.ID, truncate(title, max(10, width-30)))
		s.WriteString(style.Render(line) + "\n")

		meta := fmt.Sprintf("    %s  %s",
			session.SessionStatus,
			display.FormatTimestamp(session.UpdatedAt))
		s.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(meta) + "\n")
	}

	return s.String()
}

func (m model) renderSessionColumn() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Sessions") + "\n")
	s.WriteString(strings.Repeat("─", max(10, m.leftViewport.Width-2)) + "\n\n")

	for i, session := range m.sessions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		lineStyle := lipgloss.NewStyle()
		if i == m.cursor {
			lineStyle = lineStyle.Foreground(lipgloss.Color("212")).Bold(true)
		} else {
			lineStyle = lineStyle.Foreground(lipgloss.Color("252"))
		}
		title := session.Title
		if title == "" {
			title = "(untitled)"
		}
		s.WriteString(lineStyle.Render(cursor+truncate(title, max(10, m.leftViewport.Width-4))) + "\n")

		idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
		if i == m.cursor {
			idStyle = idStyle.Foreground(lipgloss.Color("245"))
		}
		s.WriteString(idStyle.Render("  "+truncate(session.ID, 24)) + "\n")

		if i < len(m.sessions)-1 {
			s.WriteString("\n")
		}
	}

	return s.String()
}

func (m model) renderTranscriptColumn() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	s.WriteString(headerStyle.Render("Transcript") + "\n")
	s.WriteString(strings.Repeat("─", max(10, m.rightViewport.Width-2)) + "\n\n")

	if m.cursor >= len(m.sessions) {
		return s.String()
	}
	id := m.sessions[m.cursor].ID

	if m.loadingTranscripts[id] {
		s.WriteString(m.indicator.View())
		return s.String()
	}

	lines, ok := m.transcriptCache[id]
	if !ok {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		s.WriteString(emptyStyle.Render("No transcript loaded"))
		return s.String()
	}

	for _, line := range lines {
		s.WriteString(line + "\n")
	}
	return s.String()
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.err)
	}

	if m.loadingSessions {
		return LoadingOverlay(m.width, m.height, m.indicator)
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	if m.currentMode == listView {
		return fmt.Sprintf("%s\n%s\n%s", header, m.viewport.View(), footer)
	}
	return fmt.Sprintf("%s\n%s\n%s", header, m.renderSplitView(), footer)
}

func (m model) renderSplitView() string {
	leftStyle := lipgloss.NewStyle().
		Width(m.leftViewport.Width).
		Height(m.leftViewport.Height)

	rightStyle := lipgloss.NewStyle().
		Width(m.rightViewport.Width).
		Height(m.rightViewport.Height)

	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Height(m.leftViewport.Height)

	divider := strings.Builder{}
	for i := 0; i < m.leftViewport.Height; i++ {
		divider.WriteString("│")
		if i < m.leftViewport.Height-1 {
			divider.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.leftViewport.View()),
		dividerStyle.Render(divider.String()),
		rightStyle.Render(m.rightViewport.View()),
	)
}

func (m model) renderHeader() string {
	title := "Claude Teleport - Remote Sessions"
	if m.currentMode == transcriptView && m.cursor < len(m.sessions) {
		title = fmt.Sprintf("Claude Teleport - %s", m.sessions[m.cursor].ID)
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("63"))

	return style.Render(title)
}

func (m model) renderFooter() string {
	info := "↑/↓: navigate • enter: "
	if m.currentMode == listView {
		info += "preview"
	} else {
		info += "select • esc: back"
	}
	info += " • q: quit"

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	return style.Render(info)
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars]) + "..."
}

// ShowTUI runs the browser and returns the session selected for resume,
// or nil when the user quit without selecting.
func ShowTUI(ctx context.Context, fetcher Fetcher) (*models.Session, error) {
	p := tea.NewProgram(
		initialModel(ctx, fetcher),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(model)
	return m.selectedSession, nil
}
