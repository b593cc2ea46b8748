// Package app drives the load, select, mutate and persist loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomenu/internal/menu"
	"github.com/idilsaglam/todomenu/internal/model"
)

// Store is the storage boundary the loop needs.
type Store interface {
	Load() ([]model.Todo, error)
	Save([]model.Todo) error
}

// Menu is the interactive surface the loop needs.
type Menu interface {
	Select(ctx context.Context, s menu.Screen) (menu.Choice, error)
	Prompt(ctx context.Context, message string) (string, error)
}

const (
	selectTitle   = "Select a todo:"
	promptMessage = "New Todo:"
)

type state int

const (
	stateRunning state = iota
	stateExiting
)

// Options tune startup behavior.
type Options struct {
	// StartEmptyIfMissing treats a missing file as an empty list instead
	// of a fatal error.
	StartEmptyIfMissing bool
}

// App owns the in-memory collection for the life of the process.
type App struct {
	store  Store
	menu   Menu
	log    *log.Logger
	opts   Options
	todos  []model.Todo
	notice string
}

func New(store Store, m Menu, logger *log.Logger, opts Options) *App {
	return &App{store: store, menu: m, log: logger, opts: opts}
}

// Todos returns a copy of the current collection.
func (a *App) Todos() []model.Todo {
	return append([]model.Todo(nil), a.todos...)
}

// Run loads the collection once and loops until Save & Exit succeeds.
// It returns menu.ErrAborted when the user leaves without choosing;
// everything changed up to that point has already been saved.
func (a *App) Run(ctx context.Context) error {
	if err := a.load(); err != nil {
		return err
	}

	st := stateRunning
	for st == stateRunning {
		choice, err := a.menu.Select(ctx, a.screen())
		if err != nil {
			return err
		}
		a.notice = ""

		switch choice.Kind {
		case menu.KindExit:
			if err := a.store.Save(a.todos); err != nil {
				a.log.Error("save failed", "err", err)
				return fmt.Errorf("save on exit: %w", err)
			}
			a.log.Debug("saved todos", "count", len(a.todos))
			st = stateExiting
		case menu.KindAdd:
			if err := a.add(ctx); err != nil {
				return err
			}
		default:
			a.complete(choice.Value)
		}
	}
	return nil
}

func (a *App) load() error {
	todos, err := a.store.Load()
	switch {
	case err == nil:
		a.log.Debug("loaded todos", "count", len(todos))
	case errors.Is(err, fs.ErrNotExist) && a.opts.StartEmptyIfMissing:
		a.log.Info("no todos file yet, starting empty", "err", err)
		todos = []model.Todo{}
	default:
		a.log.Error("load failed", "err", err)
		return fmt.Errorf("load todos: %w", err)
	}
	if dups := model.DuplicateIDs(todos); len(dups) > 0 {
		a.log.Warn("duplicate ids in todos file; selecting one removes all", "ids", strings.Join(dups, ","))
	}
	a.todos = todos
	return nil
}

// screen builds the choices from the collection; the fixed actions are
// never part of the collection itself.
func (a *App) screen() menu.Screen {
	choices := make([]menu.Choice, 0, len(a.todos)+2)
	for _, t := range a.todos {
		choices = append(choices, menu.Choice{Label: t.Name, Value: t.ID, Kind: menu.KindTodo})
	}
	choices = append(choices, menu.AddChoice, menu.ExitChoice)
	return menu.Screen{Title: selectTitle, Notice: a.notice, Choices: choices}
}

func (a *App) add(ctx context.Context) error {
	name, err := a.menu.Prompt(ctx, promptMessage)
	if errors.Is(err, menu.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	t := model.New(name)
	switch {
	case t.ID == "":
		a.notice = "A todo needs a name."
		return nil
	case model.Contains(t.ID, a.todos):
		a.notice = fmt.Sprintf("%q already exists.", t.Name)
		a.log.Debug("rejected duplicate todo", "id", t.ID)
		return nil
	}

	a.todos = model.Append(t, a.todos)
	a.persist("added", t)
	return nil
}

func (a *App) complete(id string) {
	var done model.Todo
	for _, t := range a.todos {
		if t.ID == id {
			done = t
			break
		}
	}
	a.todos = model.RemoveByID(id, a.todos)
	a.persist("completed", done)
}

// persist saves after a mutation. A failure keeps the in-memory list so the
// next save retries, and is shown on the next screen.
func (a *App) persist(action string, t model.Todo) {
	if err := a.store.Save(a.todos); err != nil {
		a.log.Error("save failed", "err", err)
		a.notice = "Could not save: " + err.Error()
		return
	}
	a.log.Debug(action, "id", t.ID, "count", len(a.todos))
}
