// Package display renders sessions, events and loglines for the
// terminal. All functions return strings so the command layer decides
// where output goes.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	yellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	blueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	magentaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	toolInputPreviewChars  = 120
	toolResultPreviewChars = 200
	thinkingPreviewChars   = 200
	loglinePreviewChars    = 200
)

// Truncate shortens s to at most maxChars characters, appending "..."
// when it was cut. It counts runes, not bytes, so multi-byte characters
// never get split.
func Truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars]) + "..."
}

// FormatTimestamp renders an ISO-8601 timestamp as a fixed human-readable
// form. Unparseable input is returned unchanged rather than dropped.
func FormatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// StatusColored colours the recognized session statuses; anything else is
// dimmed but still shown.
func StatusColored(status string) string {
	switch status {
	case "running":
		return greenStyle.Bold(true).Render(status)
	case "idle":
		return yellowStyle.Render(status)
	case "completed":
		return blueStyle.Render(status)
	case "error", "failed":
		return redStyle.Bold(true).Render(status)
	default:
		return dimStyle.Render(status)
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// SessionRow renders one session for the list view.
func SessionRow(s *models.Session) string {
	var b strings.Builder

	updated := ""
	if s.UpdatedAt != "" {
		updated = FormatTimestamp(s.UpdatedAt)
	}
	fmt.Fprintf(&b, "  %s %s %s\n",
		StatusColored(orDefault(s.SessionStatus, "unknown")),
		dimStyle.Render(s.ID),
		dimStyle.Render(updated))
	fmt.Fprintf(&b, "    %s\n", boldStyle.Render(orDefault(s.Title, "(untitled)")))

	if repo := firstSourceURL(s); repo != "" {
		fmt.Fprintf(&b, "    %s\n", dimStyle.Render(repo))
	}
	return b.String()
}

func firstSourceURL(s *models.Session) string {
	if s.SessionContext == nil || len(s.SessionContext.Sources) == 0 {
		return ""
	}
	return s.SessionContext.Sources[0].URL
}

// SessionDetail renders the full metadata view for one session,
// including the teleport resume hint.
func SessionDetail(s *models.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n\n", boldStyle.Render("Session Details"))
	fmt.Fprintf(&b, "  %s: %s\n", dimStyle.Render("ID"), s.ID)
	fmt.Fprintf(&b, "  %s: %s\n", dimStyle.Render("Title"), boldStyle.Render(orDefault(s.Title, "(untitled)")))
	fmt.Fprintf(&b, "  %s: %s\n", dimStyle.Render("Status"), StatusColored(orDefault(s.SessionStatus, "unknown")))
	fmt.Fprintf(&b, "  %s: %s\n", dimStyle.Render("Type"), orDefault(s.SessionType, "unknown"))
	fmt.Fprintf(&b, "  %s: %s\n", dimStyle.Render("Created"), formatOptionalTimestamp(s.CreatedAt))
	fmt.Fprintf(&b, "  %s: %s\n", dimStyle.Render("Updated"), formatOptionalTimestamp(s.UpdatedAt))

	if ctx := s.SessionContext; ctx != nil {
		fmt.Fprintf(&b, "  %s: %s\n", dimStyle.Render("Model"), cyanStyle.Render(orDefault(ctx.Model, "unknown")))
		for _, src := range ctx.Sources {
			fmt.Fprintf(&b, "  %s: %s (%s)\n", dimStyle.Render("Source"), src.URL, src.Revision)
		}
		for _, out := range ctx.Outcomes {
			if out.GitInfo == nil {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", dimStyle.Render("Repo"), out.GitInfo.Repo)
			for _, branch := range out.GitInfo.Branches {
				fmt.Fprintf(&b, "  %s: %s\n", dimStyle.Render("Branch"), greenStyle.Render(branch))
			}
		}
	}

	fmt.Fprintf(&b, "\n  %s claude --teleport %s\n", dimStyle.Render("Resume with:"), cyanStyle.Render(s.ID))
	return b.String()
}

func formatOptionalTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	return FormatTimestamp(ts)
}

// Event renders one transcript line (or block) per event variant.
func Event(e *models.SessionEvent) string {
	created := ""
	if raw := e.CreatedAt(); raw != "" {
		created = FormatTimestamp(raw)
	}
	stamp := dimStyle.Render(created)

	switch {
	case e.System != nil:
		return fmt.Sprintf("%s %s [%s] model=%s cwd=%s\n",
			stamp,
			magentaStyle.Bold(true).Render("SYSTEM"),
			e.System.Subtype,
			cyanStyle.Render(e.System.Model),
			e.System.CWD)

	case e.User != nil:
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", stamp, greenStyle.Bold(true).Render("USER"))
		text, _ := e.User.Message.Content.AsText()
		for _, line := range splitLines(text) {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
		return b.String()

	case e.Assistant != nil:
		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", stamp, blueStyle.Bold(true).Render("ASSISTANT"))
		for i := range e.Assistant.Message.Content {
			b.WriteString(contentBlock(&e.Assistant.Message.Content[i]))
		}
		b.WriteString("\n")
		return b.String()

	case e.ToolUseSummary != nil:
		return fmt.Sprintf("%s %s %s\n", stamp, yellowStyle.Render("SUMMARY"), e.ToolUseSummary.Summary)

	case e.ToolProgress != nil:
		return fmt.Sprintf("%s %s %s (%ds)\n",
			stamp,
			dimStyle.Render("PROGRESS"),
			dimStyle.Render(e.ToolProgress.ToolName),
			e.ToolProgress.ElapsedTimeSeconds)

	case e.Result != nil:
		return fmt.Sprintf("%s %s duration=%ds\n",
			stamp,
			cyanStyle.Bold(true).Render("RESULT"),
			e.Result.DurationMS/1000)

	case e.ControlResponse != nil:
		subtype := ""
		if e.ControlResponse.Response != nil {
			subtype = e.ControlResponse.Response.Subtype
		}
		return fmt.Sprintf("%s %s [%s]\n", stamp, dimStyle.Render("CONTROL"), dimStyle.Render(subtype))

	case e.EnvManagerLog != nil:
		content, level := "", "info"
		if d := e.EnvManagerLog.Data; d != nil {
			content = d.Content
			level = orDefault(d.Level, "info")
		}
		return fmt.Sprintf("%s %s [%s] %s\n", stamp, dimStyle.Render("ENV"), envLevelColored(level), content)
	}

	return fmt.Sprintf("%s %s\n", stamp, dimStyle.Render("UNKNOWN"))
}

func envLevelColored(level string) string {
	switch level {
	case "error":
		return redStyle.Render(level)
	case "warn":
		return yellowStyle.Render(level)
	case "debug":
		return dimStyle.Render(level)
	default:
		return level
	}
}

func contentBlock(b *models.ContentBlock) string {
	switch {
	case b.Thinking != nil:
		if b.Thinking.Thinking == "" {
			return ""
		}
		preview := Truncate(b.Thinking.Thinking, thinkingPreviewChars)
		return fmt.Sprintf("  %s %s\n", dimStyle.Render("thinking:"), dimStyle.Render(preview))

	case b.Text != nil:
		var out strings.Builder
		for _, line := range splitLines(b.Text.Text) {
			fmt.Fprintf(&out, "  %s\n", line)
		}
		return out.String()

	case b.ToolUse != nil:
		preview := Truncate(string(b.ToolUse.Input), toolInputPreviewChars)
		return fmt.Sprintf("  %s %s %s\n",
			yellowStyle.Render("tool_use:"),
			cyanStyle.Bold(true).Render(orDefault(b.ToolUse.Name, "unknown")),
			dimStyle.Render(preview))

	case b.ToolResult != nil:
		preview := Truncate(string(b.ToolResult.Content), toolResultPreviewChars)
		return fmt.Sprintf("  %s %s\n", yellowStyle.Render("tool_result:"), dimStyle.Render(preview))
	}
	return ""
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

// Logline renders one session_ingress record.
func Logline(l *models.Logline) string {
	var b strings.Builder

	typeDisplay := orDefault(l.Type, "unknown")
	if l.Subtype != "" {
		typeDisplay = typeDisplay + "/" + l.Subtype
	}
	var typeColored string
	switch l.Type {
	case "system":
		typeColored = magentaStyle.Render(typeDisplay)
	case "user":
		typeColored = greenStyle.Render(typeDisplay)
	case "assistant":
		typeColored = blueStyle.Render(typeDisplay)
	default:
		typeColored = dimStyle.Render(typeDisplay)
	}

	timestamp := ""
	if l.Timestamp != "" {
		timestamp = FormatTimestamp(l.Timestamp)
	}
	fmt.Fprintf(&b, "%s %s %s\n", dimStyle.Render(timestamp), typeColored, dimStyle.Render(l.GitBranch))
	if l.Content != "" {
		fmt.Fprintf(&b, "  %s\n", Truncate(l.Content, loglinePreviewChars))
	}
	b.WriteString("\n")
	return b.String()
}
