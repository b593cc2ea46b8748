package config

import (
	"flag"
	"fmt"
	"strings"
)

// flags holds raw flag values until they are layered over the config.
type flags struct {
	config    string
	file      string
	onMissing string
	theme     string
	logLevel  string
	logFile   string
	noAlt     bool
}

func (f *flags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "path to a TOML config file")
	fs.StringVar(&f.file, "file", "", "todos JSON file (default todos.json)")
	fs.StringVar(&f.onMissing, "on-missing", "", "when the todos file is missing: empty or abort")
	fs.StringVar(&f.theme, "theme", "", "color theme: classic, neon or mono")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFile, "log-file", "", "write logs to this file instead of stderr")
	fs.BoolVar(&f.noAlt, "no-alt-screen", false, "render menus inline instead of on the alternate screen")
}

// apply copies only the flags that were set on the command line.
func (f *flags) apply(cfg *Config, fs *flag.FlagSet) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "file":
			cfg.File = f.file
		case "on-missing":
			cfg.OnMissing = MissingPolicy(f.onMissing)
		case "theme":
			cfg.Theme = f.theme
		case "log-level":
			cfg.LogLevel = f.logLevel
		case "log-file":
			cfg.LogFile = f.logFile
		case "no-alt-screen":
			cfg.AltScreen = !f.noAlt
		}
	})
}

// Usage renders the flag defaults for help output.
func Usage(fs *flag.FlagSet) string {
	var b strings.Builder
	fs.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "  -%-16s %s\n", fl.Name, fl.Usage)
	})
	return b.String()
}
