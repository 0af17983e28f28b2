package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/uccalint/pkg/pipeline"
	"github.com/matzehuels/uccalint/pkg/validation"
)

// =============================================================================
// Palette & Styles
// =============================================================================

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

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	// Node IDs in diagnostic listings.
	styleNode = lipgloss.NewStyle().Foreground(colorCyan)
	// Rule codes in diagnostic listings.
	styleRule = lipgloss.NewStyle().Foreground(colorGray)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	sep         = " · "
)

// =============================================================================
// Status Lines
// =============================================================================

func printStatus(icon string, style lipgloss.Style, msg string) {
	fmt.Println(style.Render(icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	printStatus(iconSuccess, StyleSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(iconError, lipgloss.NewStyle().Foreground(colorRed), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(iconWarning, StyleWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(iconInfo, styleRule, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Reports
// =============================================================================

// reportStats summarizes a report as "passage 120 · 3 diagnostics · 1.2ms · cached".
func reportStats(rep *pipeline.Report) string {
	parts := []string{"passage " + rep.PassageID}
	switch n := len(rep.Diagnostics); {
	case rep.Truncated:
		parts = append(parts, fmt.Sprintf("first %d diagnostics", n))
	case n > 0:
		parts = append(parts, fmt.Sprintf("%d diagnostics", n))
	}
	parts = append(parts, rep.Duration.Round(100*time.Microsecond).String())

	line := StyleDim.Render(strings.Join(parts, sep)) + StyleDim.Render(sep)
	if rep.Cached {
		return line + StyleSuccess.Render("cached")
	}
	return line + styleRule.Render("fresh")
}

// diagnosticTable renders diagnostics as a bordered Node/Rule/Message table.
func diagnosticTable(diags []validation.Diagnostic) string {
	rows := make([][]string, len(diags))
	for i, d := range diags {
		rows[i] = []string{d.Node, string(d.Rule), d.Message}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("Node", "Rule", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleTableHeader
			case col == 0:
				return styleNode
			case col == 1:
				return styleRule
			default:
				return StyleValue
			}
		}).
		Render()
}

// plainDiagnostics renders one "node<TAB>rule<TAB>message" line per diagnostic.
func plainDiagnostics(diags []validation.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, "%s\t%s\t%s\n", d.Node, d.Rule, d.Message)
	}
	return b.String()
}
