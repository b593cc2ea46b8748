package menu

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todomenu/internal/ui"
)

const promptCharLimit = 200

type promptModel struct {
	message string
	input   textinput.Model
	submit  key.Binding
	cancel  key.Binding

	value     string
	submitted bool
	aborted   bool
}

func newPromptModel(message string) promptModel {
	ti := textinput.New()
	ti.Prompt = ui.Current().Cursor
	ti.Placeholder = "New item title..."
	ti.CharLimit = promptCharLimit
	ti.Focus()
	return promptModel{
		message: message,
		input:   ti,
		submit:  key.NewBinding(key.WithKeys("enter")),
		cancel:  key.NewBinding(key.WithKeys("ctrl+c", "esc")),
	}
}

func (m promptModel) Init() tea.Cmd { return textinput.Blink }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.submit):
			m.value = m.input.Value()
			m.submitted = true
			return m, tea.Quit
		case key.Matches(k, m.cancel):
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted || m.aborted {
		return ""
	}
	t := ui.Current()
	return ui.PanelLines([]string{
		t.Title.Render(m.message),
		m.input.View(),
		t.Muted.Render("enter to add • esc to cancel"),
	})
}
