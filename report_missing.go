package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func runAudit(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	common := addCommonFlags(fs)
	locales := fs.String("locale", "", "Comma-separated locales to audit (default: all configured)")
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
	return reportAudit(s, os.Stdout)
}

func runMissing(args []string) error {
	fs := flag.NewFlagSet("missing", flag.ExitOnError)
	common := addCommonFlags(fs)
	locale := fs.String("locale", "", "Target locale code (required)")
	fs.Parse(args)

	if *locale == "" {
		return fmt.Errorf("--locale is required")
	}

	s, err := common.session()
	if err != nil {
		return err
	}
	return reportMissing(s, *locale, os.Stdout)
}

// reportAudit renders the findings of every locale. Findings are the
// expected output, so the command succeeds whatever it finds.
func reportAudit(s *session, w io.Writer) error {
	report := s.auditor.Run()
	s.log.Info("audit finished",
		"locales", len(report.Locales),
		"findings", report.Count())
	return writeReport(w, report, s.cfg.Report.Format, colorEnabled(s.cfg.Report.Color, w))
}

// reportMissing renders the findings of a single locale.
func reportMissing(s *session, locale string, w io.Writer) error {
	s.useLocales([]string{locale})
	refs := s.auditor.LoadReferences()
	report := Report{Locales: []LocaleReport{s.auditor.AuditLocale(refs, locale)}}
	return writeReport(w, report, s.cfg.Report.Format, colorEnabled(s.cfg.Report.Color, w))
}
