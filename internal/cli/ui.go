package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/labeler/pkg/core/label"
)

// Palette. Explorer and layout output share it, so a label reads the same
// color in both: green shown, red hidden, amber hovered, blue focused.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Exported styles.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleShown   = lipgloss.NewStyle().Foreground(colorGreen)
	styleHidden  = lipgloss.NewStyle().Foreground(colorRed)
	styleMuted   = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	markOK    = "✓"
	markWarn  = "!"
	markInfo  = "›"
	markFile  = "→"
	markSep   = " · "
	statusHit = "cached"
	statusNew = "fresh"
)

// line writes one status line to stdout.
func line(s string) { fmt.Fprintln(stdout, s) }

func printSuccess(format string, args ...any) {
	line(styleShown.Render(markOK) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	line(StyleWarning.Render(markWarn + " " + fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	line(styleMuted.Render(markInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	line("  " + StyleDim.Render(markFile) + " " + StyleValue.Render(path))
}

// printStats prints label counts and whether the layout came from cache,
// e.g. "12 labels · 9 visible · 3 hidden · cached".
func printStats(labels, visible int, cached bool) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d labels", labels)),
		styleShown.Render(fmt.Sprintf("%d visible", visible)),
	}
	if hidden := labels - visible; hidden > 0 {
		parts = append(parts, styleHidden.Render(fmt.Sprintf("%d hidden", hidden)))
	}
	if cached {
		parts = append(parts, styleShown.Render(statusHit))
	} else {
		parts = append(parts, styleMuted.Render(statusNew))
	}
	line("  " + strings.Join(parts, StyleDim.Render(markSep)))
}

// printHidden lists the IDs of hidden labels, up to limit of them.
func printHidden(labels []label.Output, limit int) {
	var ids []string
	for _, o := range labels {
		if !o.Visible {
			ids = append(ids, o.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	more := ""
	if len(ids) > limit {
		more = fmt.Sprintf(" (+%d more)", len(ids)-limit)
		ids = ids[:limit]
	}
	line("  " + StyleDim.Render("hidden: ") + styleHidden.Render(strings.Join(ids, ", ")) + StyleDim.Render(more))
}

func printNextStep(description, cmd string) {
	line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
