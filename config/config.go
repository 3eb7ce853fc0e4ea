// Package config resolves where the document, keymap and log live from flags and environment
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Cvaniak/NoteSH/store"
)

// Env var names used as overrides, flags take precedence
const (
	EnvFile     = "NOTESH_FILE"
	EnvStore    = "NOTESH_STORE"
	EnvBindings = "NOTESH_BINDINGS"
	EnvLogFile  = "NOTESH_LOG_FILE"
	EnvLogLevel = "NOTESH_LOG_LEVEL"
)

const (
	appDir          = "notesh"
	defaultDocument = "notes.json"
	defaultBindings = "bindings.toml"
	defaultLog      = "notesh.log"
)

// Config is the resolved runtime configuration
type Config struct {
	File     string
	Store    store.Kind
	Bindings string
	LogFile  string
	LogLevel string
	Sound    bool
	Watch    bool
	Debug    bool
	Version  bool
}

// Getenv looks up an environment variable, os.Getenv in production
type Getenv func(string) string

// Parse builds the configuration from command line arguments (without the program name)
// Returns pflag.ErrHelp when help was requested
func Parse(args []string, getenv Getenv, usage io.Writer) (Config, error) {
	var cfg Config
	var storeName string

	fs := pflag.NewFlagSet("notesh", pflag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVarP(&cfg.File, "file", "f", "", "notes document (default $"+EnvFile+" or the XDG data dir)")
	fs.StringVar(&storeName, "store", "", "storage backend: file, sqlite or auto")
	fs.StringVar(&cfg.Bindings, "bindings", "", "keymap override file (default $"+EnvBindings+" or the XDG config dir)")
	fs.StringVar(&cfg.LogFile, "log-file", "", "write logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.Sound, "sound", false, "play sound feedback")
	fs.BoolVar(&cfg.Watch, "watch", true, "reload when the document changes on disk")
	fs.BoolVar(&cfg.Debug, "debug", false, "log at debug level to the state dir")
	fs.BoolVarP(&cfg.Version, "version", "v", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("expected at most one document argument, got %d", fs.NArg())
	}
	// A positional argument is the document, as with -f
	if fs.NArg() == 1 && cfg.File == "" {
		cfg.File = fs.Arg(0)
	}

	if cfg.File == "" {
		cfg.File = firstNonEmpty(getenv(EnvFile), filepath.Join(dataDir(getenv), defaultDocument))
	}
	if cfg.Bindings == "" {
		cfg.Bindings = firstNonEmpty(getenv(EnvBindings), filepath.Join(configDir(getenv), defaultBindings))
	}

	kind, err := store.ParseKind(firstNonEmpty(storeName, getenv(EnvStore)))
	if err != nil {
		return Config{}, err
	}
	cfg.Store = kind

	if cfg.LogFile == "" {
		cfg.LogFile = getenv(EnvLogFile)
	}
	if cfg.LogFile == "" && cfg.Debug {
		cfg.LogFile = filepath.Join(stateDir(getenv), defaultLog)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = getenv(EnvLogLevel)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
		if cfg.Debug {
			cfg.LogLevel = "debug"
		}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	cfg.File = expandHome(cfg.File, getenv)
	cfg.Bindings = expandHome(cfg.Bindings, getenv)
	cfg.LogFile = expandHome(cfg.LogFile, getenv)
	return cfg, nil
}

func dataDir(getenv Getenv) string {
	return xdgDir(getenv, "XDG_DATA_HOME", ".local", "share")
}

func configDir(getenv Getenv) string {
	return xdgDir(getenv, "XDG_CONFIG_HOME", ".config")
}

func stateDir(getenv Getenv) string {
	return xdgDir(getenv, "XDG_STATE_HOME", ".local", "state")
}

// xdgDir returns $env/notesh or $HOME/<fallback...>/notesh
func xdgDir(getenv Getenv, env string, fallback ...string) string {
	if base := getenv(env); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, appDir)
	}
	parts := append([]string{getenv("HOME")}, fallback...)
	return filepath.Join(append(parts, appDir)...)
}

func expandHome(path string, getenv Getenv) string {
	if path == "~" {
		return getenv("HOME")
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(getenv("HOME"), rest)
	}
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
