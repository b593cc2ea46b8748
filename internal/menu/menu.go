// Package menu renders the interactive selection list and text prompt.
// Every call runs its own Bubble Tea program and blocks until the user
// answers, so callers see a plain synchronous API.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

var (
	// ErrAborted is returned when the user leaves a menu without answering.
	ErrAborted = errors.New("menu aborted")
	// ErrNoTerminal is returned when no interactive terminal is attached.
	ErrNoTerminal = errors.New("no interactive terminal attached")
)

// Kind tells data entries apart from the fixed actions.
type Kind int

const (
	KindTodo Kind = iota
	KindAdd
	KindExit
)

// Choice is one selectable line.
type Choice struct {
	Label string
	Value string
	Kind  Kind
}

// Fixed actions appended after the todos on every screen.
var (
	AddChoice  = Choice{Label: "Add a Todo", Value: "add", Kind: KindAdd}
	ExitChoice = Choice{Label: "Save & Exit", Value: "exit", Kind: KindExit}
)

// Screen is what a single Select call renders.
type Screen struct {
	Title   string
	Notice  string // optional one-line message under the list
	Choices []Choice
}

var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// CheckTerminal fails with ErrNoTerminal unless every file is a terminal.
// Pass both ends: menus need to read keys and to draw.
func CheckTerminal(files ...*os.File) error {
	for _, f := range files {
		if !isTerminal(f.Fd()) {
			return fmt.Errorf("%s: %w", f.Name(), ErrNoTerminal)
		}
	}
	return nil
}

// Terminal runs the menus as Bubble Tea programs.
// Nil In/Out mean the process's stdin/stdout.
type Terminal struct {
	In        io.Reader
	Out       io.Writer
	AltScreen bool
}

// Select blocks until a choice is made.
func (t *Terminal) Select(ctx context.Context, s Screen) (Choice, error) {
	if len(s.Choices) == 0 {
		return Choice{}, errors.New("select: no choices")
	}
	final, err := t.run(ctx, newSelectModel(s))
	if err != nil {
		return Choice{}, err
	}
	m, ok := final.(selectModel)
	if !ok || m.aborted || m.chosen == nil {
		return Choice{}, ErrAborted
	}
	return *m.chosen, nil
}

// Prompt blocks until a line of text is submitted.
func (t *Terminal) Prompt(ctx context.Context, message string) (string, error) {
	final, err := t.run(ctx, newPromptModel(message))
	if err != nil {
		return "", err
	}
	m, ok := final.(promptModel)
	if !ok || m.aborted || !m.submitted {
		return "", ErrAborted
	}
	return m.value, nil
}

func (t *Terminal) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if t.In != nil {
		opts = append(opts, tea.WithInput(t.In))
	}
	if t.Out != nil {
		opts = append(opts, tea.WithOutput(t.Out))
	}
	if t.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("run menu: %w", err)
	}
	return final, nil
}
