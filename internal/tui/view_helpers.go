package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-auth-keeper/internal/app"
)

const uiDivider = "──────────────────────────────────────────────────────"

const timeLayout = "2006-01-02 15:04:05 UTC"

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
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: quit"))

	return b.String()
}

func renderError(b *strings.Builder, errMsg string) {
	if errMsg == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(errorStyle.Render("Error: " + errMsg))
	b.WriteString("\n")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatLastLogin(t *time.Time) string {
	if t == nil {
		return app.MsgNeverLoggedIn
	}
	return formatTime(*t)
}

// formatWindow prints whole-day windows as days and anything else as a duration.
func formatWindow(d time.Duration) string {
	const day = 24 * time.Hour
	if d > 0 && d%day == 0 {
		if d == day {
			return "1 day"
		}
		return fmt.Sprintf("%d days", d/day)
	}
	return d.String()
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
