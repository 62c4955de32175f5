// Package contact validates and submits the portfolio contact form.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jmylchreest/folio/internal/config"
	"github.com/jmylchreest/folio/internal/toast"
)

// Toast messages shown by the form.
const (
	MsgMissingFields = "Please fill in all required fields."
	MsgInvalidEmail  = "Please enter a valid email address."
	MsgSendFailed    = "Sorry, there was an error sending your message. Please try again."
)

var (
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidEmail is returned when the email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("submission already in progress")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Notifier shows a toast. *toast.Manager implements it.
type Notifier interface {
	Notify(message string, severity toast.Severity, duration time.Duration) *toast.Notification
}

// Form holds the contact form fields.
type Form struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Subject string `json:"subject" yaml:"subject"`
	Message string `json:"message" yaml:"message"`
}

// Trimmed returns a copy of f with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	return Form{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// Validate checks the trimmed form.
func (f Form) Validate() error {
	t := f.Trimmed()
	if t.Name == "" || t.Email == "" || t.Subject == "" || t.Message == "" {
		return ErrMissingFields
	}
	if !IsValidEmail(t.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// IsValidEmail reports whether email looks like local@domain.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SendFunc delivers a validated form.
type SendFunc func(ctx context.Context, f Form) error

// Submitter validates forms, sends them and reports the outcome as toasts.
type Submitter struct {
	notifier Notifier
	logger   *slog.Logger
	send     SendFunc

	mu   sync.Mutex
	busy bool
}

// NewSubmitter creates a Submitter that simulates delivery by waiting for the
// configured submit delay.
func NewSubmitter(notifier Notifier, cfg *config.ContactConfig, logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	delay := config.DefaultSubmitDelay
	if cfg != nil {
		delay = cfg.SubmitDelay.Duration()
	}
	return &Submitter{
		notifier: notifier,
		logger:   logger,
		send:     Simulate(delay),
	}
}

// SetSendFunc replaces the delivery function.
func (s *Submitter) SetSendFunc(fn SendFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = fn
}

// Busy reports whether a submission is in flight.
func (s *Submitter) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Submit validates and sends f. Every outcome is shown as a toast; the
// returned error lets callers react as well.
func (s *Submitter) Submit(ctx context.Context, f Form) error {
	f = f.Trimmed()

	if err := f.Validate(); err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			s.notify(MsgMissingFields, toast.SeverityError)
		case errors.Is(err, ErrInvalidEmail):
			s.notify(MsgInvalidEmail, toast.SeverityError)
		}
		return err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	send := s.send
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	s.logger.Debug("submitting contact form", "email", f.Email, "subject", f.Subject)

	if err := send(ctx, f); err != nil {
		s.logger.Warn("contact form submission failed", "error", err)
		s.notify(MsgSendFailed, toast.SeverityError)
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.notify(ThankYou(f.Name), toast.SeveritySuccess)
	return nil
}

// CheckEmail is the on-blur check of the email field: a non-empty, malformed
// address produces a warning toast. It reports whether the address is acceptable.
func (s *Submitter) CheckEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || IsValidEmail(email) {
		return true
	}
	s.notify(MsgInvalidEmail, toast.SeverityWarning)
	return false
}

func (s *Submitter) notify(message string, severity toast.Severity) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(message, severity, 0)
}

// ThankYou returns the success message for a sender.
func ThankYou(name string) string {
	return fmt.Sprintf("Thank you %s! Your message has been received. I'll get back to you soon! 🎉", name)
}

// Simulate returns a SendFunc that waits for delay and succeeds, unless ctx ends first.
func Simulate(delay time.Duration) SendFunc {
	return func(ctx context.Context, _ Form) error {
		if delay <= 0 {
			return ctx.Err()
		}
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}
