// Package tui provides the BubbleTea-based portfolio page with a toast overlay.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/folio/internal/config"
	"github.com/jmylchreest/folio/internal/contact"
	"github.com/jmylchreest/folio/internal/feedback"
	"github.com/jmylchreest/folio/internal/render"
	"github.com/jmylchreest/folio/internal/toast"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModePage Mode = iota
	ModeForm
	ModeHelp
)

// Options wires the model to its collaborators.
type Options struct {
	Context   context.Context
	Config    *config.Config
	Manager   *toast.Manager
	Surface   *Surface
	Feedback  *feedback.Feedback
	Submitter *contact.Submitter
	Profile   *Profile
}

// Model is the main TUI model.
type Model struct {
	ctx       context.Context
	cfg       *config.Config
	manager   *toast.Manager
	surface   *Surface
	feedback  *feedback.Feedback
	submitter *contact.Submitter
	profile   Profile

	// Current mode
	mode Mode

	// Components
	form contactForm
	help help.Model
	keys KeyMap

	// State
	cursor  int
	width   int
	height  int
	ready   bool
	sending bool
	ticking bool
	now     func() time.Time

	// Status message
	statusMsg string
	statusErr bool
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type ageTickMsg struct{}

type submitResultMsg struct {
	err error
}

type configReloadedMsg struct {
	cfg *config.Config
}

// New creates a new TUI model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	profile := DefaultProfile()
	if opts.Profile != nil {
		profile = *opts.Profile
	}

	return Model{
		ctx:       ctx,
		cfg:       cfg,
		manager:   opts.Manager,
		surface:   opts.Surface,
		feedback:  opts.Feedback,
		submitter: opts.Submitter,
		profile:   profile,
		mode:      ModePage,
		form:      newContactForm(),
		help:      help.New(),
		keys:      DefaultKeyMap(),
		now:       time.Now,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		return m, nil

	case timerMsg:
		m.surface.Fire(msg.token)
		return m, nil

	case toastChangedMsg:
		return m.startAgeTicker()

	case ageTickMsg:
		if n, _ := m.surface.Showing(); n == nil {
			m.ticking = false
			return m, nil
		}
		return m, ageTick()

	case submitResultMsg:
		m.sending = false
		if msg.err == nil {
			m.form.reset()
		}
		return m, nil

	case configReloadedMsg:
		m.cfg = msg.cfg
		return m, func() tea.Msg {
			return statusMsg{text: "Configuration reloaded"}
		}

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	if m.mode == ModeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// startAgeTicker keeps the "shown ... ago" line fresh while a toast is up.
func (m Model) startAgeTicker() (tea.Model, tea.Cmd) {
	if n, _ := m.surface.Showing(); n == nil || m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, ageTick()
}

func ageTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return ageTickMsg{}
	})
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePage:
		return m.handlePageKey(msg)
	case ModeForm:
		return m.handleFormKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Help) {
			m.mode = ModePage
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// handlePageKey handles keys on the page.
func (m Model) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.profile.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Activate):
		if m.cursor < len(m.profile.Items) {
			return m, m.activate(m.profile.Items[m.cursor])
		}
	case key.Matches(msg, m.keys.CopyEmail):
		return m, m.copyContact(m.profile.contact("Email"))
	case key.Matches(msg, m.keys.CopyPhone):
		return m, m.copyContact(m.profile.contact("Phone"))
	case key.Matches(msg, m.keys.Dismiss):
		if m.manager != nil {
			m.manager.DismissCurrent()
		}
	case key.Matches(msg, m.keys.Welcome):
		if m.feedback != nil {
			m.feedback.Welcome()
		}
	case key.Matches(msg, m.keys.Form):
		m.mode = ModeForm
		m.form.setFocus(fieldName)
		return m, textinput.Blink
	}
	return m, nil
}

// handleFormKey handles keys in the contact form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModePage
		field := m.form.focus
		m.form.inputs[field].Blur()
		return m, m.leaveField(field)
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case msg.Type == tea.KeyEnter:
		if m.form.focus == fieldMessage {
			return m.submit()
		}
		return m, m.leaveField(m.form.setFocus(m.form.focus + 1))
	case key.Matches(msg, m.keys.NextField):
		return m, m.leaveField(m.form.setFocus(m.form.focus + 1))
	case key.Matches(msg, m.keys.PrevField):
		return m, m.leaveField(m.form.setFocus(m.form.focus - 1))
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// handleMouse dismisses the toast when it is clicked.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.manager == nil || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	box := m.toastView()
	if box == "" {
		return m, nil
	}
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	if msg.Y < h && msg.X >= m.width-w {
		m.manager.DismissCurrent()
	}
	return m, nil
}

// leaveField runs the on-blur check for the field that lost focus.
func (m Model) leaveField(field int) tea.Cmd {
	if field != fieldEmail || m.submitter == nil {
		return nil
	}
	email := m.form.inputs[fieldEmail].Value()
	s := m.submitter
	return func() tea.Msg {
		s.CheckEmail(email)
		return nil
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.sending || m.submitter == nil {
		return m, nil
	}
	m.sending = true

	ctx, s, form := m.ctx, m.submitter, m.form.value()
	return m, func() tea.Msg {
		return submitResultMsg{err: s.Submit(ctx, form)}
	}
}

// activate runs the feedback for a page item.
func (m Model) activate(it Item) tea.Cmd {
	fb := m.feedback
	if fb == nil {
		return nil
	}
	return func() tea.Msg {
		switch it.Kind {
		case ItemContact:
			fb.CopyContact(it.Value)
		case ItemSkill:
			fb.Skill(it.Label)
		case ItemProject:
			fb.ProjectLink(it.Label, it.Link, it.Href)
		case ItemSocial:
			fb.SocialLink(it.Href, it.Class)
		}
		return nil
	}
}

func (m Model) copyContact(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	return m.activate(Item{Kind: ItemContact, Value: text})
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.mode {
	case ModePage:
		body = m.viewPage()
	case ModeForm:
		body = m.form.view(m.width, m.sending)
	case ModeHelp:
		body = m.viewHelp()
	}

	var b strings.Builder
	if box := m.toastView(); box != "" {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Right, box))
		b.WriteString("\n")
	}
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.viewStatus())
	return b.String()
}

// toastView renders the overlay, or "" when no toast is shown.
func (m Model) toastView() string {
	if m.surface == nil {
		return ""
	}
	n, phase := m.surface.Showing()
	if n == nil {
		return ""
	}
	return render.Terminal(n, phase, render.TerminalWidth(m.cfg.Display.Width, m.width))
}

func (m Model) viewHeader() string {
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return nameStyle.Render(m.profile.Name) + "  " + titleStyle.Render(m.profile.Title)
}

func (m Model) viewPage() string {
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	var b strings.Builder
	var section ItemKind = -1
	for i, it := range m.profile.Items {
		if it.Kind != section {
			if section != -1 {
				b.WriteString("\n")
			}
			section = it.Kind
			b.WriteString(sectionStyle.Render(section.String()) + "\n")
		}

		line := "  " + itemLabel(it)
		if i == m.cursor {
			line = selectedStyle.Render("› " + itemLabel(it))
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func itemLabel(it Item) string {
	switch it.Kind {
	case ItemContact:
		return it.Label + ": " + it.Value
	case ItemProject:
		return it.Label + " (" + it.Link + ")"
	default:
		return it.Label
	}
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	h := m.help
	h.ShowAll = true
	return titleStyle.Render("Keyboard Shortcuts") + "\n" + h.View(m.keys) + "\n\n" +
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("Press ? or esc to return")
}

// viewStatus renders the status line: a transient message, the age of the
// current toast, or the keybind bar.
func (m Model) viewStatus() string {
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return statusStyle.Render(m.statusMsg)
	}

	bar := m.buildKeybindBar(m.width)
	if age := m.toastAge(); age != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(age) + "\n" + bar
	}
	return bar
}

// toastAge describes how long the current toast has been visible.
func (m Model) toastAge() string {
	if m.surface == nil {
		return ""
	}
	n, _ := m.surface.Showing()
	if n == nil {
		return ""
	}
	since := n.VisibleSince()
	if since.IsZero() {
		return fmt.Sprintf("%s toast", n.Severity)
	}
	return fmt.Sprintf("%s toast · shown %s", n.Severity, humanize.RelTime(since, m.now(), "ago", "from now"))
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
func (m Model) buildKeybindBar(width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var binds []keybind
	switch m.mode {
	case ModePage:
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "open", 2},
			{"f", "contact", 3},
			{"x", "close toast", 4},
			{"?", "help", 5},
			{"e", "copy email", 6},
			{"p", "copy phone", 7},
			{"w", "welcome", 8},
		}
	case ModeForm:
		binds = []keybind{
			{"ctrl+s", "send", 1},
			{"esc", "back", 2},
			{"tab", "next", 3},
			{"shift+tab", "previous", 4},
		}
	case ModeHelp:
		binds = []keybind{
			{"esc", "back", 1},
			{"q", "quit", 2},
		}
	}

	// Add keybinds until we run out of space
	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		testLen := lipgloss.Width(result) + len(separator) + lipgloss.Width(b.key+" "+b.desc)
		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return style.Render(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // Path to watch for changes (empty = no watching)
	Logger     *slog.Logger
	Profile    *Profile
	Input      io.Reader // Defaults to stdin
	Output     io.Writer // Defaults to stdout
}

// Run starts the TUI and blocks until it exits or ctx is cancelled.
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	surface := NewSurface()
	manager := toast.NewManager(surface, &cfg.Toast, logger)
	fb := feedback.New(manager, cfg, logger)
	submitter := contact.NewSubmitter(manager, &cfg.Contact, logger)

	m := New(Options{
		Context:   ctx,
		Config:    cfg,
		Manager:   manager,
		Surface:   surface,
		Feedback:  fb,
		Submitter: submitter,
		Profile:   opts.Profile,
	})

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(m, progOpts...)
	surface.SetSender(p.Send)
	defer surface.Stop()

	// Start file watcher if a config path was provided
	if opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath, func(c *config.Config) {
			manager.UpdateConfig(&c.Toast)
			fb.UpdateConfig(c)
			p.Send(configReloadedMsg{cfg: c})
		}, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	if cfg.Welcome.Enabled {
		cancel := fb.Welcome()
		defer cancel()
	}

	_, err := p.Run()
	manager.Close()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
