package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jmylchreest/folio/internal/toast"
)

const elementTemplate = `<div class="notification notification--{{.Severity}}" data-id="{{.ID}}" data-phase="{{.Phase}}" role="status" style="{{.Style}}">
    <div class="notification-content" style="display: flex; align-items: center; gap: 12px;">
        <div class="notification-icon" style="font-size: 20px; opacity: 0.9;">
            <i class="{{.IconClass}}"></i>
        </div>
        <div class="notification-message" style="flex: 1; font-weight: 500; line-height: 1.4;">{{.Message}}</div>
        <button class="notification-close" aria-label="Close notification" style="background: none; border: none; color: white; font-size: 14px; cursor: pointer; padding: 4px; opacity: 0.7; transition: opacity 0.2s; border-radius: 4px;">
            <i class="fas fa-times"></i>
        </button>
    </div>
</div>`

var element = template.Must(template.New("notification").Parse(elementTemplate))

type elementData struct {
	ID        string
	Severity  string
	Phase     string
	Style     template.CSS
	IconClass string
	Message   template.HTML
}

// HTML renders the page element for n in the given phase.
// The element slides in from the right while entering and back out while dismissing.
func HTML(n *toast.Notification, phase toast.Phase, width int) (string, error) {
	if n == nil {
		return "", &toast.SurfaceError{Message: "no notification to render"}
	}

	data := elementData{
		ID:        n.ID,
		Severity:  string(n.Severity),
		Phase:     phase.String(),
		Style:     template.CSS(elementStyle(n.Presentation.Color, phase, width)),
		IconClass: n.Presentation.IconClass(),
		// Sanitized above the template so the whitelisted tags survive
		Message: template.HTML(SanitizeMessage(n.Message)),
	}

	var buf bytes.Buffer
	if err := element.Execute(&buf, data); err != nil {
		return "", &toast.SurfaceError{Message: "failed to render notification", Cause: err}
	}
	return buf.String(), nil
}

// elementStyle returns the inline style of the notification container.
func elementStyle(color string, phase toast.Phase, width int) string {
	transform := "translateX(100%)"
	opacity := "1"
	switch phase {
	case toast.PhaseVisible:
		transform = "translateX(0)"
	case toast.PhaseDismissing, toast.PhaseRemoved:
		opacity = "0"
	}

	maxWidth := 400
	if width > 0 && width < maxWidth {
		maxWidth = width
	}
	minWidth := 300
	if minWidth > maxWidth {
		minWidth = maxWidth
	}

	rules := []string{
		"position: fixed",
		"top: 100px",
		"right: 20px",
		"background: " + color,
		"color: white",
		"padding: 16px 20px",
		"border-radius: 12px",
		"box-shadow: 0 10px 25px rgba(0,0,0,0.2)",
		"z-index: 1001",
		"transform: " + transform,
		"opacity: " + opacity,
		"transition: all 0.3s cubic-bezier(0.16, 1, 0.3, 1)",
		fmt.Sprintf("max-width: %dpx", maxWidth),
		fmt.Sprintf("min-width: %dpx", minWidth),
		"backdrop-filter: blur(10px)",
		"border: 1px solid rgba(255,255,255,0.1)",
	}
	return strings.Join(rules, "; ") + ";"
}
