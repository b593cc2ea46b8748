package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points every lookup at an empty temp dir and clears TODO_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{"TODO_CONFIG", "TODO_FILE", "TODO_ON_MISSING", "TODO_THEME", "TODO_LOG_LEVEL", "TODO_LOG_FILE", "TODO_ALT_SCREEN"} {
		t.Setenv(k, "")
	}
	return dir
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "todos.json" {
		t.Errorf("File: got %q", cfg.File)
	}
	if cfg.OnMissing != MissingEmpty {
		t.Errorf("OnMissing: got %q", cfg.OnMissing)
	}
	if cfg.Theme != "classic" || cfg.LogLevel != "info" || !cfg.AltScreen {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("expected no config file, got %q", cfg.ConfigFile)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "todo.toml"), `
file = "from-project.json"
theme = "neon"
log_level = "debug"
on_missing = "abort"
alt_screen = false
`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "from-project.json" || cfg.Theme != "neon" || cfg.LogLevel != "debug" {
		t.Fatalf("project file not applied: %+v", cfg)
	}
	if cfg.OnMissing != MissingAbort || cfg.AltScreen {
		t.Fatalf("project file not applied: %+v", cfg)
	}
	if cfg.ConfigFile != "todo.toml" {
		t.Errorf("ConfigFile: got %q", cfg.ConfigFile)
	}

	t.Setenv("TODO_FILE", "from-env.json")
	t.Setenv("TODO_THEME", "mono")
	cfg, err = Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "from-env.json" || cfg.Theme != "mono" {
		t.Fatalf("env not applied: %+v", cfg)
	}

	cfg, err = Load(newFlagSet(), []string{"-file", "from-flag.json", "-on-missing", "EMPTY"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.File != "from-flag.json" {
		t.Fatalf("flag not applied: %+v", cfg)
	}
	if cfg.OnMissing != MissingEmpty {
		t.Fatalf("on_missing should be normalized, got %q", cfg.OnMissing)
	}
	if cfg.Theme != "mono" {
		t.Fatalf("unset flags must not override env, got theme %q", cfg.Theme)
	}
}

func TestLoadUserConfigDir(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "todo", "config.toml"), `theme = "neon"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "neon" {
		t.Fatalf("user config not applied: %+v", cfg)
	}
}

func TestLoadExplicitConfigMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(newFlagSet(), []string{"-config", filepath.Join(dir, "missing.toml")})
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		toml string
		args []string
		want string
	}{
		{name: "unknown key", toml: `colour = "red"`, want: "unknown keys"},
		{name: "bad toml", toml: `file = `, want: "loading config file"},
		{name: "bad policy", args: []string{"-on-missing", "retry"}, want: "on_missing"},
		{name: "bad theme", args: []string{"-theme", "pink"}, want: "theme"},
		{name: "empty file", args: []string{"-file", " "}, want: "file must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.toml != "" {
				writeFile(t, filepath.Join(dir, "todo.toml"), tt.toml)
			}
			_, err := Load(newFlagSet(), tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadBadAltScreenEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_ALT_SCREEN", "sometimes")
	if _, err := Load(newFlagSet(), nil); err == nil {
		t.Fatal("expected error for bad TODO_ALT_SCREEN")
	}
}

func TestLoadLeavesPositionalArgs(t *testing.T) {
	isolate(t)
	fs := newFlagSet()
	if _, err := Load(fs, []string{"-theme", "mono", "add", "Walk", "Dog"}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := strings.Join(fs.Args(), " "); got != "add Walk Dog" {
		t.Fatalf("unexpected args %q", got)
	}
}

func TestNoAltScreenFlag(t *testing.T) {
	isolate(t)
	cfg, err := Load(newFlagSet(), []string{"-no-alt-screen"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AltScreen {
		t.Fatal("expected alt screen disabled")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	t.Setenv("TODO_TEST_DIR", "/tmp/todo-test")

	tests := []struct {
		in, want string
	}{
		{in: "", want: ""},
		{in: "todos.json", want: "todos.json"},
		{in: "~", want: home},
		{in: "~/todos.json", want: filepath.Join(home, "todos.json")},
		{in: "$TODO_TEST_DIR/todos.json", want: "/tmp/todo-test/todos.json"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
