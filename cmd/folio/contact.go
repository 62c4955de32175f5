package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/folio/internal/contact"
)

var contactOpts struct {
	form    contact.Form
	surface string
}

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Validate and send the contact form",
	Long: `Validate the contact form and send it.

Every field is required and the email address must look like local@domain.tld.
The outcome is shown as a toast; the command exits non-zero when the form is
rejected or sending fails.

Example:
  folio contact --name Ada --email ada@example.com \
    --subject Hello --message "Loved the projects section"`,
	RunE: runContact,
}

func init() {
	rootCmd.AddCommand(contactCmd)

	f := contactCmd.Flags()
	f.StringVar(&contactOpts.form.Name, "name", "", "Your name")
	f.StringVar(&contactOpts.form.Email, "email", "", "Your email address")
	f.StringVar(&contactOpts.form.Subject, "subject", "", "Message subject")
	f.StringVar(&contactOpts.form.Message, "message", "", "Message body")
	f.StringVar(&contactOpts.surface, "surface", "",
		"Display surface (terminal, html, desktop; default from config)")
}

func runContact(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(surfaceKind(contactOpts.surface), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.close()

	submitter := contact.NewSubmitter(s.manager, &cfg.Contact, logger)
	submitErr := submitter.Submit(ctx, contactOpts.form)

	// Show the outcome until it goes away on its own
	s.wait(ctx, s.manager.Current())
	return submitErr
}
