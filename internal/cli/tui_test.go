package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amplistack/amplistack/pkg/rules"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m ModelListModel, keys ...string) ModelListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(ModelListModel)
	}
	return m
}

func TestModelListStartsOnActive(t *testing.T) {
	set := rules.Default()
	m := NewModelListModel(set, set.Models[1].ID)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", m.Cursor)
	}
	if m.Choices[0].ID != "" {
		t.Errorf("first choice = %q, want the empty model", m.Choices[0].ID)
	}
}

func TestModelListSelect(t *testing.T) {
	set := rules.Default()
	tests := []struct {
		name string
		keys []string
		want string
		none bool
	}{
		{name: "first model", keys: []string{"down", "enter"}, want: set.Models[0].ID},
		{name: "vim keys", keys: []string{"j", "j", "k", "enter"}, want: set.Models[0].ID},
		{name: "no model", keys: []string{"up", "enter"}, want: ""},
		{name: "clamped", keys: []string{"down", "down", "down", "down", "down", "down", "enter"}, want: set.Models[len(set.Models)-1].ID},
		{name: "quit", keys: []string{"down", "q"}, none: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewModelListModel(set, ""), tt.keys...)
			if tt.none {
				if m.Selected != nil {
					t.Errorf("Selected = %+v, want nil", m.Selected)
				}
				return
			}
			if m.Selected == nil {
				t.Fatal("nothing selected")
			}
			if m.Selected.ID != tt.want {
				t.Errorf("Selected.ID = %q, want %q", m.Selected.ID, tt.want)
			}
		})
	}
}

func TestModelListView(t *testing.T) {
	set := rules.Default()
	view := NewModelListModel(set, "").View()
	for _, want := range []string{"Select Model", "No model", set.Models[0].Name} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"ID", "Name"}, [][]string{{"email", "Email"}})
	for _, want := range []string{"ID", "email", "Email"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderTable() missing %q:\n%s", want, out)
		}
	}
}
