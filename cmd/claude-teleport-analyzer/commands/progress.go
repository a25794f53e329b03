package commands

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/N3mes1s/claude-teleport-analyzer/internal/api"
)

// attachProgress wires a carriage-return progress line to stderr for
// paginated event fetches. Silent when stderr is not a terminal so piped
// output stays clean.
func attachProgress(client *api.Client) (done func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return func() {}
	}

	shown := false
	client.SetProgress(func(fetched int) {
		shown = true
		fmt.Fprintf(os.Stderr, "\r  Fetched %d events...", fetched)
	})
	return func() {
		if shown {
			fmt.Fprint(os.Stderr, "\r\033[K")
		}
	}
}
