package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	uiDivider   = "──────────────────────────────────────────────────────"
	statusDelay = 3 * time.Second
)

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: quit"))

	return b.String()
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func maskSecret(value string, reveal bool) string {
	if reveal {
		return value
	}
	if value == "" {
		return ""
	}
	return strings.Repeat("•", 10)
}

func formatTTL(seconds int64) string {
	if seconds <= 0 {
		return "never expires"
	}
	return (time.Duration(seconds) * time.Second).String()
}

func statusLine(status, errMsg string) string {
	var b strings.Builder
	if status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(status))
	}
	if errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", errMsg)))
	}
	return b.String()
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(statusDelay, func(time.Time) tea.Msg { return clearStatusMsg{} })
}
