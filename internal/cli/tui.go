package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/amplistack/amplistack/pkg/rules"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// ModelChoice is one row of the model picker. An empty ID stands for
// "no model".
type ModelChoice struct {
	ID   string
	Name string
	Add  []string
}

// ModelListModel is the bubbletea model for interactive model selection.
type ModelListModel struct {
	Choices  []ModelChoice
	Active   string
	Cursor   int
	Selected *ModelChoice
}

// NewModelListModel lists "no model" followed by the models of set, with
// the cursor on the active one.
func NewModelListModel(set *rules.Set, active string) ModelListModel {
	choices := []ModelChoice{{Name: "No model"}}
	for _, m := range set.Models {
		choices = append(choices, ModelChoice{ID: m.ID, Name: m.Name, Add: m.Add})
	}
	m := ModelListModel{Choices: choices, Active: active}
	for i, c := range choices {
		if c.ID == active {
			m.Cursor = i
		}
	}
	return m
}

func (m ModelListModel) Init() tea.Cmd {
	return nil
}

func (m ModelListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			choice := m.Choices[m.Cursor]
			m.Selected = &choice
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ModelListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Model"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.Choices))
	for i, c := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		active := ""
		if c.ID == m.Active {
			active = iconSuccess
		}
		adds := strings.Join(c.Add, ", ")
		if adds == "" {
			adds = "—"
		}
		rows = append(rows, []string{cursor, c.Name, adds, active})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Model", "Adds", "Active").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == m.Cursor:
				return listSelectedStyle
			case col == 2:
				return listDimStyle
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Choices))))
	return b.String()
}
