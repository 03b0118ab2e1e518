package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/smartseek/internal/settings"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle = lipgloss.NewStyle().Bold(true).Width(14)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hintStyle  = lipgloss.NewStyle().Faint(true)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// row is one label/value line of a rendered block.
type row struct {
	label string
	value string
}

// renderBlock renders a titled list of rows.
func renderBlock(title string, rows []row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render(title))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r.label)+valueStyle.Render(r.value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// settingsRows lists s the way the options form labels it.
func settingsRows(s settings.Settings) []row {
	return []row{
		{"Seek amount", fmt.Sprintf("%gs", s.SeekAmount)},
		{"Back key", s.BackKey},
		{"Forward key", s.ForwardKey},
	}
}

func printSettings(w io.Writer, title string, s settings.Settings) {
	fmt.Fprintln(w, renderBlock(title, settingsRows(s)))
}

func printSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}

func printWarn(w io.Writer, msg string) {
	fmt.Fprintln(w, warnStyle.Render(msg))
}

func printHint(w io.Writer, msg string) {
	fmt.Fprintln(w, hintStyle.Render(msg))
}

// listOrNone joins items, or returns "none".
func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
