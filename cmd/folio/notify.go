package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/folio/internal/config"
	"github.com/jmylchreest/folio/internal/toast"
)

var notifyOpts struct {
	severity string
	duration string
	surface  string
}

var notifyCmd = &cobra.Command{
	Use:   "notify MESSAGE",
	Short: "Show a single toast notification",
	Long: `Show a toast and wait until it has been removed.

The toast enters, stays visible for --duration (default from config, 4s),
then plays its exit transition. Press Ctrl-C to dismiss it early.

Severities: success, error, warning, info. Unknown severities are shown as info.
Durations accept Go syntax ("2.5s") or integer milliseconds ("2500").

Examples:
  folio notify "Saved!" --severity success
  folio notify "Disk almost full" --severity warning --duration 10s
  folio notify "Build finished" --surface desktop
  folio notify "<b>Hello</b>" --surface html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)

	notifyCmd.Flags().StringVarP(&notifyOpts.severity, "severity", "s", string(toast.SeverityInfo),
		"Severity (success, error, warning, info)")
	notifyCmd.Flags().StringVarP(&notifyOpts.duration, "duration", "d", "",
		"Auto-dismiss delay (e.g. 4s, 1500); non-positive uses the default")
	notifyCmd.Flags().StringVar(&notifyOpts.surface, "surface", "",
		"Display surface (terminal, html, desktop; default from config)")
}

func runNotify(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")
	if strings.TrimSpace(message) == "" {
		return errors.New("message is empty")
	}

	var duration config.Duration
	if notifyOpts.duration != "" {
		if err := duration.UnmarshalText([]byte(notifyOpts.duration)); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(surfaceKind(notifyOpts.surface), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.close()

	n := s.manager.Notify(message, toast.ParseSeverity(notifyOpts.severity), duration.Duration())
	if n == nil {
		return errors.New("notification could not be shown (see log)")
	}

	s.wait(ctx, n)
	return nil
}
