package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders done/total as a bar of the given width followed by a
// percentage. The filled part uses the theme's success style, the rest is muted.
func ProgressBar(done, total, width int) string {
	width = max(width, 5)
	total = max(total, 1)
	done = min(max(done, 0), total)

	filled := done * width / total
	pct := done * 100 / total

	t := Current()
	return t.Success.Render(strings.Repeat("█", filled)) +
		t.Muted.Render(strings.Repeat("░", width-filled)) +
		" " + t.Accent.Render(fmt.Sprintf("%3d%%", pct))
}

// Panel frames content in a box using the current theme.
func Panel(content string) string {
	t := Current()
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1).
		Render(content)
}
