// Package feedback turns page interactions (copying contact details, clicking
// skills, project and social links) into toasts.
package feedback

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/time/rate"

	"github.com/jmylchreest/folio/internal/config"
	"github.com/jmylchreest/folio/internal/toast"
)

// ChannelMessage is shown for links to the YouTube channel.
const ChannelMessage = `🎬 Opening "BCA days and getways" - Educational content for aspiring developers!`

// Link kinds accepted by ProjectLink.
const (
	LinkDemo   = "demo"
	LinkGitHub = "github"
)

// Notifier shows a toast. *toast.Manager implements it.
type Notifier interface {
	Notify(message string, severity toast.Severity, duration time.Duration) *toast.Notification
}

// Feedback shows toasts for page interactions.
// Repeated interactions with the same element within the configured interval
// are dropped so a burst of clicks does not churn the display slot.
type Feedback struct {
	notifier Notifier
	logger   *slog.Logger

	mu        sync.Mutex
	welcome   config.WelcomeConfig
	interval  time.Duration
	limiters  map[string]*rate.Limiter
	now       func() time.Time
	copyText  func(string) error
	welcomeAt *time.Timer
}

// New creates a Feedback bound to notifier.
func New(notifier Notifier, cfg *config.Config, logger *slog.Logger) *Feedback {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Feedback{
		notifier: notifier,
		logger:   logger,
		welcome:  cfg.Welcome,
		interval: cfg.Feedback.MinInterval.Duration(),
		limiters: make(map[string]*rate.Limiter),
		now:      time.Now,
		copyText: clipboard.WriteAll,
	}
}

// SetClipboard replaces the clipboard writer.
func (f *Feedback) SetClipboard(fn func(string) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.copyText = fn
}

// SetClock replaces the time source used for rate limiting.
func (f *Feedback) SetClock(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// UpdateConfig applies a reloaded configuration.
// Existing limiters are reset so the new interval applies immediately.
func (f *Feedback) UpdateConfig(cfg *config.Config) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcome = cfg.Welcome
	f.interval = cfg.Feedback.MinInterval.Duration()
	f.limiters = make(map[string]*rate.Limiter)
}

// Welcome schedules the welcome toast after the configured delay.
// Calling it again restarts the delay. The returned function cancels it.
func (f *Feedback) Welcome() (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.welcomeAt != nil {
		f.welcomeAt.Stop()
		f.welcomeAt = nil
	}
	if !f.welcome.Enabled || strings.TrimSpace(f.welcome.Message) == "" {
		return func() {}
	}

	msg := f.welcome.Message
	t := time.AfterFunc(f.welcome.Delay.Duration(), func() {
		f.show(msg, toast.SeveritySuccess)
	})
	f.welcomeAt = t
	return func() { t.Stop() }
}

// CopyContact copies text to the clipboard. When the clipboard is unavailable
// the text is shown instead.
func (f *Feedback) CopyContact(text string) *toast.Notification {
	if !f.allow("copy:" + text) {
		return nil
	}

	f.mu.Lock()
	copyText := f.copyText
	f.mu.Unlock()

	if err := copyText(text); err != nil {
		f.logger.Debug("clipboard unavailable", "error", err)
		return f.show("Contact info: "+text, toast.SeverityInfo)
	}
	return f.show(text+" copied to clipboard! 📋", toast.SeveritySuccess)
}

// Skill highlights a skill tag.
func (f *Feedback) Skill(name string) *toast.Notification {
	name = strings.TrimSpace(name)
	if name == "" || !f.allow("skill:"+name) {
		return nil
	}
	return f.show(fmt.Sprintf("💪 %s - One of my key areas of expertise!", name), toast.SeverityInfo)
}

// ProjectLink reports a click on a project card link of the given kind.
// Demo links without an http(s) target are not live yet.
func (f *Feedback) ProjectLink(title, kind, href string) *toast.Notification {
	if !f.allow("project:" + title + ":" + kind) {
		return nil
	}
	switch {
	case kind == LinkDemo && !strings.HasPrefix(href, "http"):
		return f.show(fmt.Sprintf("🚀 %s demo will be available soon!", title), toast.SeverityInfo)
	case kind == LinkGitHub:
		return f.show(fmt.Sprintf("🔗 Opening %s on GitHub!", title), toast.SeveritySuccess)
	}
	return nil
}

// SocialLink reports a click on a social link identified by its href and class list.
func (f *Feedback) SocialLink(href, class string) *toast.Notification {
	if !f.allow("social:" + href + ":" + class) {
		return nil
	}
	if IsChannelLink(href) {
		return f.show(ChannelMessage, toast.SeveritySuccess)
	}
	return f.show(fmt.Sprintf("🔗 Opening %s! Thanks for connecting!", Platform(href, class)), toast.SeveritySuccess)
}

// Platform names the site a link points at.
func Platform(href, class string) string {
	switch {
	case strings.Contains(href, "github") || strings.Contains(class, "github"):
		return "GitHub"
	case strings.Contains(href, "youtube") || strings.Contains(class, "youtube"):
		return "YouTube"
	case strings.Contains(href, "mailto") || strings.Contains(class, "email"):
		return "Email"
	case strings.Contains(href, "linkedin"):
		return "LinkedIn"
	case strings.Contains(href, "twitter"):
		return "Twitter"
	}
	return "external link"
}

// IsChannelLink reports whether href points at the YouTube channel.
func IsChannelLink(href string) bool {
	return strings.Contains(href, "youtube") || strings.Contains(href, "bcadaysandgetways")
}

// allow reports whether an interaction with key may produce a toast now.
func (f *Feedback) allow(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.interval <= 0 {
		return true
	}
	lim, ok := f.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(f.interval), 1)
		f.limiters[key] = lim
	}
	if !lim.AllowN(f.now(), 1) {
		f.logger.Debug("feedback rate-limited", "key", key)
		return false
	}
	return true
}

func (f *Feedback) show(message string, severity toast.Severity) *toast.Notification {
	if f.notifier == nil {
		return nil
	}
	return f.notifier.Notify(message, severity, 0)
}
