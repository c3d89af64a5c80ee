package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	common := addCommonFlags(fs)
	locales := fs.String("locale", "", "Comma-separated locales to check (default: all configured)")
	fs.Parse(args)

	s, err := common.session()
	if err != nil {
		return err
	}
	if *locales != "" {
		s.useLocales(splitLocales(*locales))
	} else {
		s.useLocales(s.cfg.Localization.Locales)
	}
	return reportCheck(s, os.Stdout)
}

// checkResult holds the lint counts of one locale.
type checkResult struct {
	Locale          string `json:"locale" yaml:"locale"`
	MissingDir      bool   `json:"missingDir" yaml:"missingDir"`
	MissingKeys     int    `json:"missingKeys" yaml:"missingKeys"`
	MissingFiles    int    `json:"missingFiles" yaml:"missingFiles"`
	UnreadableFiles int    `json:"unreadableFiles" yaml:"unreadableFiles"`
	StaleKeys       int    `json:"staleKeys" yaml:"staleKeys"`
}

func (r checkResult) passed() bool {
	return !r.MissingDir && r.MissingKeys == 0 && r.MissingFiles == 0 &&
		r.UnreadableFiles == 0 && r.StaleKeys == 0
}

func (a *Auditor) checkLocales() []checkResult {
	refs := a.LoadReferences()
	results := make([]checkResult, 0, len(a.Locales))
	for _, locale := range a.Locales {
		lr := a.AuditLocale(refs, locale)
		r := checkResult{
			Locale:          locale,
			MissingDir:      lr.MissingDir,
			MissingKeys:     lr.Count(MissingKey, MissingValue),
			MissingFiles:    lr.Count(MissingFile),
			UnreadableFiles: lr.Count(UnreadableFile),
		}
		if !lr.MissingDir {
			r.StaleKeys = len(a.StaleLocale(refs, locale))
		}
		results = append(results, r)
	}
	return results
}

// reportCheck prints a pass/fail summary per locale and returns an error
// when any check fails.
func reportCheck(s *session, w io.Writer) error {
	results := s.auditor.checkLocales()

	passed := true
	for _, r := range results {
		passed = passed && r.passed()
	}

	switch s.cfg.Report.Format {
	case "json":
		if err := writeJSON(w, results); err != nil {
			return err
		}
	case "yaml":
		if err := writeYAML(w, results); err != nil {
			return err
		}
	default:
		p := newPalette(colorEnabled(s.cfg.Report.Color, w))
		printResult := func(label string, count int) {
			status := p.ok("OK")
			if count > 0 {
				status = p.err("FAIL")
			}
			fmt.Fprintf(w, "  %-30s %3d  %s\n", label+":", count, status)
		}
		for _, r := range results {
			fmt.Fprintf(w, "%s:\n", r.Locale)
			if r.MissingDir {
				fmt.Fprintf(w, "  %s\n", p.warning("no localization directory"))
				continue
			}
			printResult("missing keys", r.MissingKeys)
			printResult("missing files", r.MissingFiles)
			printResult("unreadable files", r.UnreadableFiles)
			printResult("stale keys", r.StaleKeys)
		}
		if passed {
			fmt.Fprintln(w, "All checks passed.")
		}
	}

	if !passed {
		return fmt.Errorf("checks failed")
	}
	return nil
}
