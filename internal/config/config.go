// Package config loads settings from defaults, a TOML file, the environment
// and command-line flags, in that order of precedence (last wins).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/todomenu/internal/store/jsonstore"
	"github.com/idilsaglam/todomenu/internal/ui"
)

// MissingPolicy says what to do when the todos file does not exist.
type MissingPolicy string

const (
	MissingEmpty MissingPolicy = "empty"
	MissingAbort MissingPolicy = "abort"
)

const (
	projectConfigName = "todo.toml"
	appDirName        = "todo"
	userConfigName    = "config.toml"
)

// Config holds every runtime setting.
type Config struct {
	File      string        `toml:"file"`
	OnMissing MissingPolicy `toml:"on_missing"`
	Theme     string        `toml:"theme"`
	LogLevel  string        `toml:"log_level"`
	LogFile   string        `toml:"log_file"`
	AltScreen bool          `toml:"alt_screen"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.File = jsonstore.DefaultFileName
	cfg.OnMissing = MissingEmpty
	cfg.Theme = "classic"
	cfg.LogLevel = "info"
	cfg.AltScreen = true
}

// Load builds a Config. flagSet receives the flag definitions and is parsed
// with args; positional arguments are left in flagSet.Args().
func Load(flagSet *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	var f flags
	f.register(flagSet)
	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	path, explicit := f.config, f.config != ""
	if !explicit {
		if v := os.Getenv("TODO_CONFIG"); v != "" {
			path, explicit = v, true
		} else {
			path = findConfigFile()
		}
	}
	if path != "" {
		path = expandPath(path)
		if err := loadConfigFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.ConfigFile = path
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	f.apply(cfg, flagSet)

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.File = v
	}
	if v := os.Getenv("TODO_ON_MISSING"); v != "" {
		cfg.OnMissing = MissingPolicy(v)
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TODO_ALT_SCREEN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TODO_ALT_SCREEN: %w", err)
		}
		cfg.AltScreen = b
	}
	return nil
}

func finalizeConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.File) == "" {
		return errors.New("file must not be empty")
	}
	cfg.File = expandPath(cfg.File)
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}

	cfg.OnMissing = MissingPolicy(strings.ToLower(strings.TrimSpace(string(cfg.OnMissing))))
	switch cfg.OnMissing {
	case MissingEmpty, MissingAbort:
	default:
		return fmt.Errorf("on_missing: want %q or %q, got %q", MissingEmpty, MissingAbort, cfg.OnMissing)
	}

	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if !validTheme(cfg.Theme) {
		return fmt.Errorf("theme: want one of %s, got %q", strings.Join(ui.Themes, ", "), cfg.Theme)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return nil
}

func validTheme(name string) bool {
	for _, t := range ui.Themes {
		if t == name {
			return true
		}
	}
	return false
}

// findConfigFile returns ./todo.toml when present, else the user config
// path (which may not exist).
func findConfigFile() string {
	if _, err := os.Stat(projectConfigName); err == nil {
		return projectConfigName
	}
	dir := userConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, appDirName, userConfigName)
}

func userConfigDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir
}

// expandPath expands ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") || (runtime.GOOS == "windows" && strings.HasPrefix(expanded, `~\`)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		if expanded == "~" {
			return home
		}
		return filepath.Join(home, expanded[2:])
	}
	return expanded
}
