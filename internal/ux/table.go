package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains lipgloss styles for terminal output
type Styles struct {
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")), // Purple
		Cell: lipgloss.NewStyle(),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
	}
}

// PlainStyles returns styles with no color, for piped output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:  plain,
		Cell:    plain,
		Success: plain,
		Error:   plain,
		Warning: plain,
		Muted:   plain,
	}
}

// Table renders rows as an aligned terminal table with a styled header.
func Table(styles Styles, headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	for i, h := range headers {
		b.WriteString(styles.Header.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(styles.Cell.Render(pad(cell, widths[i])))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// StatusLabel renders an active/inactive marker.
func StatusLabel(styles Styles, active bool) string {
	if active {
		return styles.Success.Render("active")
	}
	return styles.Muted.Render("inactive")
}

// Successf prints a styled success line.
func Successf(styles Styles, format string, args ...interface{}) string {
	return styles.Success.Render("✓") + " " + fmt.Sprintf(format, args...)
}

// Errorf prints a styled error line.
func Errorf(styles Styles, format string, args ...interface{}) string {
	return styles.Error.Render("✗") + " " + fmt.Sprintf(format, args...)
}
