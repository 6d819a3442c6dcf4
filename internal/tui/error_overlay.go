package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/vault-browser/internal/service"
)

type errorOverlayModel struct {
	report service.ErrorReport
}

func (m errorOverlayModel) View() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Error"))
	b.WriteString("\n\n")
	b.WriteString(m.report.Summary)
	if m.report.StatusCode != 0 {
		b.WriteString(fmt.Sprintf(" (HTTP %d)", m.report.StatusCode))
	}
	if !m.report.At.IsZero() {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.report.At.Format("15:04:05")))
	}
	b.WriteString("\n\n")
	b.WriteString(m.report.Payload)
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter / esc: close"))
	return overlayBoxStyle.Render(b.String())
}
