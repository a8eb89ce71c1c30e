package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/tasks"
)

// Options configures a preview session.
type Options struct {
	Count  int    // Variants per entry (0 means 1)
	Seed   uint64 // Seed of the first spin; each respin advances it by one. 0 means unseeded.
	Source string // Shown in the header, e.g. a file name or profile
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	engine *tasks.Generator
	texts  map[models.Kind]string
	kind   models.Kind
	opts   Options
	spins  int
	width  int
	height int
	list   list.Model
	result *tasks.GenerateResult
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a preview of texts, starting on kind.
//
// A kind missing from texts is previewed as empty.
func NewModel(ctx context.Context, engine *tasks.Generator, texts map[models.Kind]string, kind models.Kind, opts Options) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)
	l.SetShowTitle(false)

	return &Model{
		ctx:    ctx,
		engine: engine,
		texts:  texts,
		kind:   kind,
		opts:   opts,
		list:   l,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Kind returns the kind currently shown.
func (m *Model) Kind() models.Kind { return m.kind }

// Results returns the variants currently shown.
func (m *Model) Results() []string {
	if m.result == nil {
		return nil
	}
	return m.result.Variants()
}

// Init spins the starting kind.
func (m *Model) Init() tea.Cmd {
	return m.spin()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.respin):
			m.spins++
			return m, m.spin()
		case key.Matches(msg, m.keys.toggle):
			m.kind = toggle(m.kind)
			return m, m.spin()
		case key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case Msg:
		if msg.kind == MsgSpun {
			data := msg.data.(spunData)
			// a toggle may have raced a slower spin of the other kind
			if data.kind != m.kind {
				return m, nil
			}
			m.result, m.err = data.result, data.err
			m.list.SetItems(m.items())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the header, the variant list and the help line.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress tab to switch, q to quit", m.err))
	}

	return fmt.Sprintf("%s\n%s\n\n%s", m.header(), m.list.View(), m.help.View(m.keys))
}

func (m *Model) header() string {
	title := m.kind.String()
	if m.opts.Source != "" {
		title = fmt.Sprintf("%s • %s", m.opts.Source, title)
	}
	if m.result == nil {
		return styles.title.Render(title)
	}

	entries := len(m.result.Entries)
	if entries == 0 {
		return styles.title.Render(title) + "\n" + styles.warn.Render("No entries")
	}

	stats := fmt.Sprintf("%d entries • %d combinations • spin %d", entries, m.result.Combinations, m.spins+1)
	return styles.title.Render(title) + "\n" + styles.help.Render(stats)
}

func (m *Model) items() []list.Item {
	if m.result == nil {
		return nil
	}

	var items []list.Item
	for _, e := range m.result.Entries {
		for _, v := range e.Variants {
			items = append(items, variantItem{entry: e.Index, text: v})
		}
	}
	return items
}

func (m *Model) seed() uint64 {
	if m.opts.Seed == 0 {
		return 0
	}
	return m.opts.Seed + uint64(m.spins)
}

func (m *Model) spin() tea.Cmd {
	kind, text, count, seed := m.kind, m.texts[m.kind], m.opts.Count, m.seed()

	return func() tea.Msg {
		result, err := m.engine.ExpandText(m.ctx, nil, text, kind, count, seed)
		return spunMsg(kind, result, err)
	}
}

func toggle(k models.Kind) models.Kind {
	if k == models.Descriptions {
		return models.Titles
	}
	return models.Descriptions
}
