package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the l10n-audit configuration.
type Config struct {
	Localization LocalizationConfig `yaml:"localization"`
	Markers      MarkersConfig      `yaml:"markers"`
	Report       ReportConfig       `yaml:"report"`
	Log          LogConfig          `yaml:"log"`

	// Dir is the directory of the loaded config file, used to resolve a
	// relative localization root.
	Dir string `yaml:"-"`
}

// LocalizationConfig describes the localization tree.
type LocalizationConfig struct {
	Root         string   `yaml:"root"          env:"L10N_ROOT"          env-default:"../localization"`
	StructureDir string   `yaml:"structure_dir" env:"L10N_STRUCTURE_DIR" env-default:"structure"`
	Locales      []string `yaml:"locales"       env:"L10N_LOCALES"       env-default:"cn-CN,cn-HK,en,es,fr,pt-BR" env-separator:","`
	BaseLocale   string   `yaml:"base_locale"   env:"L10N_BASE_LOCALE"   env-default:"en"`
	// SkipLocaleOnly disables the pass over files that exist only in
	// locale directories.
	SkipLocaleOnly bool `yaml:"skip_locale_only" env:"L10N_SKIP_LOCALE_ONLY"`
}

// MarkersConfig controls which structure objects are optional.
type MarkersConfig struct {
	Types      []string `yaml:"types"       env:"L10N_MARKER_TYPES" env-default:"event,condition" env-separator:","`
	ExemptWhen string   `yaml:"exempt_when" env:"L10N_EXEMPT_WHEN"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Format string `yaml:"format" env:"L10N_REPORT_FORMAT" env-default:"text"`
	Color  string `yaml:"color"  env:"L10N_REPORT_COLOR"  env-default:"auto"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

var (
	reportFormats = []string{"text", "json", "yaml"}
	colorModes    = []string{"auto", "always", "never"}
)

// LoadConfig reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An explicit path must exist. Without one, the nearest configFileName
// found by walking up from the working directory is used; when there is
// none, configuration comes from ENV + defaults only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = findConfigFile()
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		cfg.Dir = filepath.Dir(abs)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Localization.Locales = trimAll(c.Localization.Locales)
	c.Markers.Types = trimAll(c.Markers.Types)
	c.Localization.BaseLocale = strings.TrimSpace(c.Localization.BaseLocale)
	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	c.Report.Color = strings.ToLower(strings.TrimSpace(c.Report.Color))
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the configuration for values the auditor cannot run
// with. Directories are not checked: a missing directory is reported
// during the audit.
func (c *Config) Validate() error {
	var errs []error
	if c.Localization.Root == "" {
		errs = append(errs, errors.New("localization.root is required"))
	}
	if c.Localization.StructureDir == "" {
		errs = append(errs, errors.New("localization.structure_dir is required"))
	}
	if len(c.Localization.Locales) == 0 {
		errs = append(errs, errors.New("localization.locales must list at least one locale"))
	}
	seen := make(map[string]bool, len(c.Localization.Locales))
	for _, l := range c.Localization.Locales {
		if seen[l] {
			errs = append(errs, fmt.Errorf("localization.locales: duplicate locale %q", l))
		}
		seen[l] = true
		if l == c.Localization.StructureDir {
			errs = append(errs, fmt.Errorf("localization.locales: %q is the structure directory", l))
		}
	}
	if !c.Localization.SkipLocaleOnly && c.Localization.BaseLocale == "" {
		errs = append(errs, errors.New("localization.base_locale is required unless skip_locale_only is set"))
	}
	if !slices.Contains(reportFormats, c.Report.Format) {
		errs = append(errs, fmt.Errorf("report.format must be one of %s, got %q", strings.Join(reportFormats, ", "), c.Report.Format))
	}
	if !slices.Contains(colorModes, c.Report.Color) {
		errs = append(errs, fmt.Errorf("report.color must be one of %s, got %q", strings.Join(colorModes, ", "), c.Report.Color))
	}
	if _, err := NewExemption(c.Markers.Types, c.Markers.ExemptWhen); err != nil {
		errs = append(errs, fmt.Errorf("markers.exempt_when: %w", err))
	}
	return errors.Join(errs...)
}

// RootDir returns the localization root, resolving a relative root against
// the config file's directory (or the working directory without one).
func (c *Config) RootDir() string {
	root := c.Localization.Root
	if filepath.IsAbs(root) || c.Dir == "" {
		return root
	}
	return filepath.Join(c.Dir, root)
}

// Auditor builds an Auditor for the configured locales.
func (c *Config) Auditor(logger *slog.Logger) (*Auditor, error) {
	exempt, err := NewExemption(c.Markers.Types, c.Markers.ExemptWhen)
	if err != nil {
		return nil, err
	}
	return &Auditor{
		Root:         c.RootDir(),
		StructureDir: c.Localization.StructureDir,
		Locales:      c.Localization.Locales,
		BaseLocale:   c.Localization.BaseLocale,
		LocaleOnly:   !c.Localization.SkipLocaleOnly,
		Differ:       &Differ{Exempt: exempt},
		Loader:       &Loader{Logger: logger},
		Logger:       logger,
	}, nil
}
