package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/coursekeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   SQLite data file
//	-s string   storage driver (sqlite|memory)
//	-t int      busy timeout (in seconds)
//	-k string   course catalog file (YAML or JSON)
//	-scope      completion scope (global|user)
//	-hash       store hashed passwords
//	-l string   log level (debug|info|warn|error)
//	-b string   log backend (slog|zap)
//
// Arguments are pre-filtered with flagx so the config file flag and any
// other flags do not trip this FlagSet. Parse errors panic.
func parseFlags(cfg *Config) {
	args := append(
		flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-t", "-k", "-scope", "-l", "-b"}),
		flagx.FilterSwitches(os.Args[1:], []string{"-hash"})...,
	)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataPath, "d", cfg.DataPath, "SQLite data file")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite|memory)")
	busyTimeout := fs.Int("t", int(cfg.BusyTimeout.Seconds()), "busy timeout (in seconds)")
	fs.StringVar(&cfg.CatalogPath, "k", cfg.CatalogPath, "course catalog file (YAML or JSON)")
	fs.StringVar(&cfg.CompletionScope, "scope", cfg.CompletionScope, "completion scope (global|user)")
	fs.BoolVar(&cfg.HashPasswords, "hash", cfg.HashPasswords, "store hashed passwords")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if isSet(fs, "t") {
		cfg.BusyTimeout = time.Duration(*busyTimeout) * time.Second
	}
}

func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
