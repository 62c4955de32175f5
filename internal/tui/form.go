package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/folio/internal/contact"
)

const (
	fieldName = iota
	fieldEmail
	fieldSubject
	fieldMessage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Subject", "Message"}

// contactForm holds the text inputs of the contact form.
type contactForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newContactForm() contactForm {
	var f contactForm
	placeholders := [fieldCount]string{"Your name", "you@example.com", "What's this about?", "Your message"}
	limits := [fieldCount]int{80, 120, 120, 1000}

	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Prompt = ""
		f.inputs[i] = in
	}
	f.inputs[fieldName].Focus()
	return f
}

// value returns the form as entered.
func (f contactForm) value() contact.Form {
	return contact.Form{
		Name:    f.inputs[fieldName].Value(),
		Email:   f.inputs[fieldEmail].Value(),
		Subject: f.inputs[fieldSubject].Value(),
		Message: f.inputs[fieldMessage].Value(),
	}
}

// setFocus moves focus to field i, wrapping around. It returns the field that lost focus.
func (f *contactForm) setFocus(i int) int {
	prev := f.focus
	f.inputs[prev].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
	return prev
}

func (f *contactForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.setFocus(fieldName)
}

func (f contactForm) update(msg tea.Msg) (contactForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f contactForm) view(width int, sending bool) string {
	labelStyle := lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("8"))
	focusStyle := labelStyle.Foreground(lipgloss.Color("12")).Bold(true)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Get in touch") + "\n\n")
	for i, in := range f.inputs {
		style := labelStyle
		if i == f.focus {
			style = focusStyle
		}
		in.Width = max(width-14, 10)
		b.WriteString(style.Render(fieldLabels[i]) + " " + in.View() + "\n")
	}

	button := "[ Send Message ]"
	if sending {
		button = "[ Sending... ]"
	}
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(button))
	return b.String()
}
