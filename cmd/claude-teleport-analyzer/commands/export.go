package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/api"
	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

// sessionExport is the on-disk export format, consumed by the analyze
// command.
type sessionExport struct {
	Session     *models.Session       `json:"session"`
	Events      []models.SessionEvent `json:"events"`
	ExportedAt  string                `json:"exported_at"`
	TotalEvents int                   `json:"total_events"`
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		output    string
		maxEvents int
	)

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a session and its events to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessionID := args[0]

			if err := api.ValidateSessionID(sessionID); err != nil {
				return err
			}

			if dir := filepath.Dir(output); dir != "." {
				if _, err := os.Stat(dir); err != nil {
					return fmt.Errorf("output directory %s: %w", dir, err)
				}
			}

			client, err := api.NewClient(ctx)
			if err != nil {
				return err
			}

			session, err := client.GetSession(ctx, sessionID)
			if err != nil {
				return err
			}

			done := attachProgress(client)
			events, err := client.GetEvents(ctx, sessionID, maxEvents)
			done()
			if err != nil {
				return err
			}

			export := sessionExport{
				Session:     session,
				Events:      events,
				ExportedAt:  time.Now().UTC().Format(time.RFC3339),
				TotalEvents: len(events),
			}
			data, err := json.MarshalIndent(export, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to serialize export: %w", err)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export file: %w", err)
			}

			fmt.Printf("Exported %d events to %s\n", len(events), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "session_export.json", "output file path")
	cmd.Flags().IntVar(&maxEvents, "max-events", 0, "stop fetching after this many events (0 = all)")

	return cmd
}
