// l10n-audit reports localization gaps: keys defined by the structure
// files (or by the base locale, for locale-only files) that a locale's
// translation files do not provide.
//
// Usage:
//
//	l10n-audit <subcommand> [flags] [args]
//
// Run "l10n-audit" with no arguments for a list of subcommands.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var subcommands = map[string]func([]string) error{
	"audit":     runAudit,
	"missing":   runMissing,
	"stale":     runStale,
	"translate": runTranslate,
	"check":     runCheck,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage()
		return
	}

	run, ok := subcommands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: l10n-audit <subcommand> [flags] [args]

Subcommands:
  audit      Keys missing from every locale (structure and locale-only files)
  missing    Keys missing from one locale
  stale      Keys in a locale absent from its reference, with rename hints
  translate  Base-locale values for everything a locale is missing
  check      Lint check: missing keys, missing files, stale keys per locale

Configuration is read from l10n-audit.yaml (searched upwards from the
current directory) and L10N_* environment variables.

Run "l10n-audit <subcommand> -h" for subcommand-specific flags.`)
}

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	config   *string
	root     *string
	format   *string
	color    *string
	logLevel *string
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		config:   fs.String("config", "", "Config file (default: nearest "+configFileName+")"),
		root:     fs.String("root", "", "Localization root directory (overrides config)"),
		format:   fs.String("format", "", "Output format: text, json, yaml (overrides config)"),
		color:    fs.String("color", "", "Color mode: auto, always, never (overrides config)"),
		logLevel: fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config)"),
	}
}

// session is the state shared by all subcommands after flag parsing.
type session struct {
	cfg     *Config
	log     *slog.Logger
	auditor *Auditor
}

func (c commonFlags) session() (*session, error) {
	cfg, err := LoadConfig(*c.config)
	if err != nil {
		return nil, err
	}
	if *c.root != "" {
		cfg.Localization.Root = *c.root
		cfg.Dir = ""
	}
	if *c.format != "" {
		cfg.Report.Format = *c.format
	}
	if *c.color != "" {
		cfg.Report.Color = *c.color
	}
	if *c.logLevel != "" {
		cfg.Log.Level = *c.logLevel
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSession(cfg)
}

func newSession(cfg *Config) (*session, error) {
	log := newLogger(cfg.Log, os.Stderr)
	auditor, err := cfg.Auditor(log)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log, auditor: auditor}, nil
}

// useLocales restricts the audit to locales and resolves their display
// names.
func (s *session) useLocales(locales []string) {
	s.auditor.Locales = locales
	s.auditor.Names = localeNames(locales, s.log)
}

// splitLocales parses a comma-separated --locale value.
func splitLocales(s string) []string {
	return trimAll(strings.Split(s, ","))
}
