package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/uccalint/pkg/passage"
	"github.com/matzehuels/uccalint/pkg/validation"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// DiagnosticsModel - Interactive diagnostics browser
// =============================================================================

// DiagnosticsModel is the bubbletea model for stepping through the
// diagnostics of one passage. The pane below the list shows the selected
// node's text and edges.
type DiagnosticsModel struct {
	Passage     *passage.Passage
	Diagnostics []validation.Diagnostic
	Cursor      int
	Height      int
	Offset      int

	// Rule, when set, restricts the list to one rule group (the part of the
	// rule code before the dot).
	Rule string

	visible []int
}

// NewDiagnosticsModel creates a browser over diags.
func NewDiagnosticsModel(p *passage.Passage, diags []validation.Diagnostic) DiagnosticsModel {
	m := DiagnosticsModel{Passage: p, Diagnostics: diags, Height: 10}
	m.filter()
	return m
}

func (m *DiagnosticsModel) filter() {
	m.visible = m.visible[:0]
	for i, d := range m.Diagnostics {
		if m.Rule == "" || ruleGroup(d.Rule) == m.Rule {
			m.visible = append(m.visible, i)
		}
	}
	m.Cursor, m.Offset = 0, 0
}

func ruleGroup(r validation.Rule) string {
	group, _, _ := strings.Cut(string(r), ".")
	return group
}

// groups returns the distinct rule groups in report order.
func (m DiagnosticsModel) groups() []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range m.Diagnostics {
		if g := ruleGroup(d.Rule); !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

// Selected returns the diagnostic under the cursor.
func (m DiagnosticsModel) Selected() (validation.Diagnostic, bool) {
	if len(m.visible) == 0 {
		return validation.Diagnostic{}, false
	}
	return m.Diagnostics[m.visible[m.Cursor]], true
}

func (m DiagnosticsModel) Init() tea.Cmd {
	return nil
}

func (m DiagnosticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.visible)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab":
			m.Rule = nextGroup(m.groups(), m.Rule)
			m.filter()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-16, 3)
	}
	return m, nil
}

// nextGroup cycles "" -> groups[0] -> ... -> groups[n-1] -> "".
func nextGroup(groups []string, cur string) string {
	if cur == "" {
		if len(groups) == 0 {
			return ""
		}
		return groups[0]
	}
	for i, g := range groups {
		if g == cur && i+1 < len(groups) {
			return groups[i+1]
		}
	}
	return ""
}

func (m DiagnosticsModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Passage %s", m.Passage.ID)
	if m.Rule != "" {
		title += " · " + m.Rule
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab filter by rule  q quit"))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(StyleSuccess.Render(iconSuccess + " no diagnostics"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.visible))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		d := m.Diagnostics[m.visible[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, d.Node, string(d.Rule), d.Message})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("", "Node", "Rule", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.visible))))
	b.WriteString("\n")

	if d, ok := m.Selected(); ok {
		b.WriteString(detailBoxStyle.Render(nodeDetail(m.Passage, d.Node)))
		b.WriteString("\n")
	}
	return b.String()
}

// nodeDetail describes a node: its tag, spanned text and edges.
func nodeDetail(p *passage.Passage, id string) string {
	n, ok := p.Node(id)
	if !ok {
		return listDimStyle.Render("node " + id + " not found")
	}

	var b strings.Builder
	kind := string(n.Tag)
	if n.Implicit {
		kind += " (implicit)"
	}
	fmt.Fprintf(&b, "%s %s\n", StyleHighlight.Render(n.ID), listDimStyle.Render(kind))
	if text := p.Text(id); text != "" {
		fmt.Fprintf(&b, "%q\n", text)
	}
	for _, e := range p.Incoming(id) {
		fmt.Fprintf(&b, "%s %s %s%s\n", listDimStyle.Render("from"), e.Parent, e.TagString(), remoteMark(e))
	}
	for _, e := range p.Outgoing(id) {
		fmt.Fprintf(&b, "%s %s %s%s\n", listDimStyle.Render("to  "), e.Child, e.TagString(), remoteMark(e))
	}
	return strings.TrimRight(b.String(), "\n")
}

func remoteMark(e *passage.Edge) string {
	if e.Remote {
		return listDimStyle.Render(" (remote)")
	}
	return ""
}
