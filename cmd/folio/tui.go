package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/folio/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive portfolio page",
	Long: `Launch the interactive terminal rendition of the portfolio page.

Toasts appear in the top-right corner. Click one, or press x, to close it.
The config file is watched and timing changes apply to the next toast.

Key bindings:
  j/k, ↑/↓    Move between items
  enter       Open item (copy contact, highlight skill, follow link)
  e / p       Copy email / phone
  f           Contact form (tab to move, ctrl+s to send, esc to leave)
  x           Close the current toast
  w           Show the welcome toast again
  ?           Show help
  q           Quit

With --verbose, logs are written to folio-tui.log in the temp directory.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	// The TUI owns the terminal, so logs go to a file or nowhere
	tuiLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if globalOpts.verbose {
		f, err := tea.LogToFile(filepath.Join(os.TempDir(), "folio-tui.log"), "folio")
		if err != nil {
			logger.Warn("failed to open TUI log file", "error", err)
		} else {
			defer f.Close()
			tuiLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}

	return tui.Run(ctx, tui.RunOptions{
		Config:     cfg,
		ConfigPath: configPath(),
		Logger:     tuiLogger,
	})
}
