package menu

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todomenu/internal/ui"
)

// choiceItem adapts Choice to bubbles/list.Item
type choiceItem struct{ Choice }

func (i choiceItem) FilterValue() string { return i.Label }

// Custom delegate to control how items render (single line)
type choiceDelegate struct{}

func (d choiceDelegate) Height() int                               { return 1 }
func (d choiceDelegate) Spacing() int                              { return 0 }
func (d choiceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d choiceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(choiceItem)
	if !ok {
		return
	}
	t := ui.Current()

	var line string
	switch it.Kind {
	case KindTodo:
		line = t.Muted.Render(t.Bullet) + " " + it.Label
	default:
		line = t.Accent.Render(it.Label)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(t.Cursor)
	}
	fmt.Fprint(w, prefix+line)
}

type selectKeys struct {
	choose key.Binding
	abort  key.Binding
}

func newSelectKeys() selectKeys {
	return selectKeys{
		choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		abort:  key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("q", "quit")),
	}
}

type selectModel struct {
	list   list.Model
	keys   selectKeys
	notice string

	chosen  *Choice
	aborted bool
}

const (
	defaultWidth  = 80
	defaultHeight = 20
)

func newSelectModel(s Screen) selectModel {
	items := make([]list.Item, 0, len(s.Choices))
	for _, c := range s.Choices {
		items = append(items, choiceItem{c})
	}

	t := ui.Current()
	keys := newSelectKeys()

	l := list.New(items, choiceDelegate{}, defaultWidth, defaultHeight)
	l.Title = s.Title
	l.Styles.Title = t.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	// quitting is handled here so an abort is never mistaken for a choice
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.choose, keys.abort} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{keys.choose, keys.abort} }

	return selectModel{list: l, keys: keys, notice: s.Notice}
}

func (m selectModel) Init() tea.Cmd { return tea.ClearScreen }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 2
		if m.notice != "" {
			h--
		}
		m.list.SetSize(msg.Width-4, h)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.choose):
			if it, ok := m.list.SelectedItem().(choiceItem); ok {
				c := it.Choice
				m.chosen = &c
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	if m.chosen != nil || m.aborted {
		return ""
	}
	content := m.list.View()
	if m.notice != "" {
		content += "\n" + ui.Current().Pending.Render(m.notice)
	}
	return ui.Panel(content)
}
