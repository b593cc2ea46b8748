package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomenu/internal/app"
	"github.com/idilsaglam/todomenu/internal/config"
	"github.com/idilsaglam/todomenu/internal/logging"
	"github.com/idilsaglam/todomenu/internal/menu"
	"github.com/idilsaglam/todomenu/internal/model"
	"github.com/idilsaglam/todomenu/internal/store/jsonstore"
	"github.com/idilsaglam/todomenu/internal/ui"
)

// Runner wires config, logging, storage and the menu together.
// The zero value is not usable; see New.
type Runner struct {
	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer

	// NewMenu builds the interactive surface. It defaults to a terminal
	// menu and fails when stdin is not a terminal.
	NewMenu func(cfg *config.Config) (app.Menu, error)
}

func New() *Runner {
	r := &Runner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	r.NewMenu = r.terminalMenu
	return r
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand it starts the interactive menu.
func Run(args []string) int { return New().Run(args) }

func (r *Runner) Run(args []string) int {
	flagSet := flag.NewFlagSet("todo", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	cfg, err := config.Load(flagSet, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			r.printHelp(flagSet)
			return 0
		}
		r.fail("config: " + err.Error())
		return 2
	}
	if err := ui.SetTheme(cfg.Theme); err != nil {
		r.fail(err.Error())
		return 2
	}

	logger, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Writer: r.Stderr})
	if err != nil {
		r.fail(err.Error())
		return 2
	}
	defer closeLog()
	if cfg.ConfigFile != "" {
		logger.Debug("config loaded", "path", cfg.ConfigFile)
	}

	store := jsonstore.New(cfg.File)
	rest := flagSet.Args()
	if len(rest) == 0 {
		return r.doInteractive(cfg, store, logger)
	}

	cmd, a := rest[0], rest[1:]
	switch cmd {
	case "help":
		r.printHelp(flagSet)
		return 0

	case "ls":
		return r.doList(cfg, store)

	case "add":
		if len(a) == 0 {
			r.fail("usage: todo add <name...>")
			return 2
		}
		return r.doAdd(cfg, store, strings.Join(a, " "))

	case "done":
		if len(a) != 1 {
			r.fail("usage: todo done <id>")
			return 2
		}
		return r.doDone(cfg, store, a[0])
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(r.Stderr)
	r.printHelp(flagSet)
	return 2
}

func (r *Runner) printHelp(flagSet *flag.FlagSet) {
	fmt.Fprintf(r.Stdout, `todo - a tiny interactive todo list

Usage:
  todo [flags]               Open the menu: pick a todo to complete it,
                             "Add a Todo" to add one, "Save & Exit" to quit
  todo [flags] <subcommand>

Subcommands:
  ls                 List todos
  add <name...>      Add a todo (name can be multiple words)
  done <id>          Complete (remove) the todo with this id

Flags:
%s
Examples:
  todo
  todo add "Buy milk"
  todo done buymilk
`, config.Usage(flagSet))
}

func (r *Runner) ok(msg string)   { ui.Fprintln(r.Stdout, true, msg) }
func (r *Runner) fail(msg string) { ui.Fprintln(r.Stderr, false, msg) }

func (r *Runner) terminalMenu(cfg *config.Config) (app.Menu, error) {
	files := []*os.File{r.Stdin}
	if out, ok := r.Stdout.(*os.File); ok {
		files = append(files, out)
	}
	if err := menu.CheckTerminal(files...); err != nil {
		return nil, err
	}
	return &menu.Terminal{In: r.Stdin, Out: r.Stdout, AltScreen: cfg.AltScreen}, nil
}

// ---------------------------------------------------
// Interactive loop
// ---------------------------------------------------

func (r *Runner) doInteractive(cfg *config.Config, store *jsonstore.Store, logger *log.Logger) int {
	m, err := r.NewMenu(cfg)
	if err != nil {
		r.fail("menu: " + err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(store, m, logger, app.Options{StartEmptyIfMissing: cfg.OnMissing == config.MissingEmpty})
	err = a.Run(ctx)
	switch {
	case err == nil:
		r.ok(fmt.Sprintf("saved %d todo(s) to %s", len(a.Todos()), store.Path))
		return 0
	case errors.Is(err, menu.ErrAborted):
		fmt.Fprintln(r.Stdout, ui.Current().Muted.Render("left without Save & Exit; earlier changes were saved"))
		return 0
	default:
		r.fail(err.Error())
		return 1
	}
}

// ---------------------------------------------------
// Non-interactive subcommands
// ---------------------------------------------------

func load(cfg *config.Config, store *jsonstore.Store) ([]model.Todo, error) {
	todos, err := store.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) && cfg.OnMissing == config.MissingEmpty {
		return []model.Todo{}, nil
	}
	return todos, err
}

func (r *Runner) doList(cfg *config.Config, store *jsonstore.Store) int {
	todos, err := load(cfg, store)
	if err != nil {
		r.fail("load: " + err.Error())
		return 1
	}
	t := ui.Current()
	lines := []string{t.Title.Render(fmt.Sprintf("Todos (%d)", len(todos)))}
	if len(todos) == 0 {
		lines = append(lines, t.Muted.Render("nothing to do"))
	}
	for _, todo := range todos {
		lines = append(lines, fmt.Sprintf("%s %s %s", t.Muted.Render(t.Bullet), todo.Name, t.Muted.Render("("+todo.ID+")")))
	}
	fmt.Fprintln(r.Stdout, ui.PanelLines(lines))
	return 0
}

func (r *Runner) doAdd(cfg *config.Config, store *jsonstore.Store, name string) int {
	todos, err := load(cfg, store)
	if err != nil {
		r.fail("load: " + err.Error())
		return 1
	}
	t := model.New(name)
	if t.ID == "" {
		r.fail("add: empty name")
		return 2
	}
	if model.Contains(t.ID, todos) {
		r.fail(fmt.Sprintf("add: a todo with id %q already exists", t.ID))
		return 2
	}
	if err := store.Save(model.Append(t, todos)); err != nil {
		r.fail("save: " + err.Error())
		return 1
	}
	r.ok("added " + t.ID)
	return 0
}

func (r *Runner) doDone(cfg *config.Config, store *jsonstore.Store, id string) int {
	todos, err := load(cfg, store)
	if err != nil {
		r.fail("load: " + err.Error())
		return 1
	}
	id = model.DeriveID(id)
	if !model.Contains(id, todos) {
		r.fail(fmt.Sprintf("done: no todo with id %q", id))
		fmt.Fprintln(r.Stderr, ui.Current().Muted.Render("Hint: run `todo ls` to see ids"))
		return 2
	}
	if err := store.Save(model.RemoveByID(id, todos)); err != nil {
		r.fail("save: " + err.Error())
		return 1
	}
	r.ok("done " + id)
	return 0
}
