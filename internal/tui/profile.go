package tui

import (
	"github.com/jmylchreest/folio/internal/feedback"
)

// ItemKind identifies what activating a page item does.
type ItemKind int

const (
	ItemContact ItemKind = iota
	ItemSkill
	ItemProject
	ItemSocial
)

// String returns the section heading for the kind.
func (k ItemKind) String() string {
	switch k {
	case ItemContact:
		return "Contact"
	case ItemSkill:
		return "Skills"
	case ItemProject:
		return "Projects"
	case ItemSocial:
		return "Elsewhere"
	default:
		return ""
	}
}

// Item is one selectable entry on the page.
type Item struct {
	Kind  ItemKind
	Label string
	Value string // Clipboard text for contact items
	Href  string
	Class string // Link classes, used for platform detection
	Link  string // feedback.LinkDemo or feedback.LinkGitHub for project items
}

// Profile is the content of the page.
type Profile struct {
	Name  string
	Title string
	Items []Item
}

// DefaultProfile returns the built-in page content.
func DefaultProfile() Profile {
	return Profile{
		Name:  "Folio",
		Title: "Developer portfolio",
		Items: []Item{
			{Kind: ItemContact, Label: "Email", Value: "hello@example.com"},
			{Kind: ItemContact, Label: "Phone", Value: "+1 555 0100"},
			{Kind: ItemSkill, Label: "Go"},
			{Kind: ItemSkill, Label: "Python"},
			{Kind: ItemSkill, Label: "Machine Learning"},
			{Kind: ItemSkill, Label: "SQL"},
			{Kind: ItemProject, Label: "ML Price Predictor", Link: feedback.LinkDemo, Href: "#"},
			{Kind: ItemProject, Label: "ML Price Predictor", Link: feedback.LinkGitHub, Href: "https://github.com/example/price-predictor"},
			{Kind: ItemProject, Label: "Student Management", Link: feedback.LinkGitHub, Href: "https://github.com/example/student-management"},
			{Kind: ItemSocial, Label: "GitHub", Href: "https://github.com/example", Class: "social-icon github"},
			{Kind: ItemSocial, Label: "LinkedIn", Href: "https://www.linkedin.com/in/example", Class: "social-icon"},
			{Kind: ItemSocial, Label: "YouTube", Href: "https://www.youtube.com/@bcadaysandgetways", Class: "social-icon youtube"},
			{Kind: ItemSocial, Label: "Email", Href: "mailto:hello@example.com", Class: "social-icon email"},
		},
	}
}

// contact returns the value of the first contact item with the given label.
func (p Profile) contact(label string) string {
	for _, it := range p.Items {
		if it.Kind == ItemContact && it.Label == label {
			return it.Value
		}
	}
	return ""
}
