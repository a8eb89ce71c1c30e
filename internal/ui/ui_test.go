package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/tasks"
)

func newTestModel(opts Options) *Model {
	texts := map[models.Kind]string{
		models.Titles:       "Top {5|10} Tips\nBest {Guide|Tutorial}",
		models.Descriptions: "Line one\nline two\n---\nSecond",
	}
	return NewModel(context.Background(), tasks.NewGenerator(nil, nil), texts, models.Titles, opts)
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModel(t *testing.T) {
	t.Run("Init spins the starting kind", func(t *testing.T) {
		m := newTestModel(Options{Seed: 5, Source: "titles.txt"})
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		run(t, m, m.Init())

		if got := len(m.Results()); got != 2 {
			t.Fatalf("expected 2 results, got %d", got)
		}
		if len(m.list.Items()) != 2 {
			t.Errorf("expected 2 list items, got %d", len(m.list.Items()))
		}

		view := m.View()
		for _, want := range []string{"titles.txt", "titles", "2 entries", "4 combinations"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q:\n%s", want, view)
			}
		}
	})

	t.Run("tab toggles kind", func(t *testing.T) {
		m := newTestModel(Options{})
		run(t, m, m.Init())

		_, cmd := m.Update(keyPress("tab"))
		if m.Kind() != models.Descriptions {
			t.Fatalf("expected descriptions, got %s", m.Kind())
		}
		run(t, m, cmd)

		got := m.Results()
		if len(got) != 2 || got[0] != "Line one\nline two" || got[1] != "Second" {
			t.Errorf("unexpected descriptions %q", got)
		}

		m.Update(keyPress("tab"))
		if m.Kind() != models.Titles {
			t.Errorf("expected titles after second toggle, got %s", m.Kind())
		}
	})

	t.Run("stale spin of other kind is dropped", func(t *testing.T) {
		m := newTestModel(Options{})
		stale := m.Init()
		m.Update(keyPress("tab"))
		m.Update(stale())

		if m.Results() != nil {
			t.Errorf("expected titles result to be ignored, got %q", m.Results())
		}
	})

	t.Run("respin advances a fixed seed", func(t *testing.T) {
		m := newTestModel(Options{Seed: 1, Count: 20})
		run(t, m, m.Init())
		first := strings.Join(m.Results(), "|")

		_, cmd := m.Update(keyPress("r"))
		run(t, m, cmd)
		second := strings.Join(m.Results(), "|")

		if first == second {
			t.Error("expected respin to change the output")
		}
		if !strings.Contains(m.View(), "spin 2") {
			t.Errorf("expected spin counter in header:\n%s", m.View())
		}

		again := newTestModel(Options{Seed: 1, Count: 20})
		run(t, again, again.Init())
		_, cmd = again.Update(keyPress("r"))
		run(t, again, cmd)
		if strings.Join(again.Results(), "|") != second {
			t.Error("expected the same seed to reproduce the respin")
		}
	})

	t.Run("q quits", func(t *testing.T) {
		m := newTestModel(Options{})
		_, cmd := m.Update(keyPress("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})

	t.Run("empty text", func(t *testing.T) {
		m := NewModel(context.Background(), tasks.NewGenerator(nil, nil), map[models.Kind]string{}, models.Titles, Options{})
		run(t, m, m.Init())
		if !strings.Contains(m.View(), "No entries") {
			t.Errorf("expected empty notice:\n%s", m.View())
		}
	})

	t.Run("error view", func(t *testing.T) {
		m := newTestModel(Options{Count: -1})
		run(t, m, m.Init())
		if !strings.Contains(m.View(), "Error:") {
			t.Errorf("expected error view:\n%s", m.View())
		}
	})
}

func TestVariantItem(t *testing.T) {
	item := variantItem{entry: 2, text: "First line\nsecond\nthird"}
	if item.Title() != "First line" {
		t.Errorf("unexpected title %q", item.Title())
	}
	if item.Description() != "entry 3 • +2 lines" {
		t.Errorf("unexpected description %q", item.Description())
	}
	if (variantItem{text: "one"}).Description() != "entry 1" {
		t.Error("single-line description should omit line count")
	}
}
