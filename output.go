package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// palette colors report lines. Colors are cosmetic: with color disabled
// every function returns its input unchanged.
type palette struct {
	file    func(a ...any) string
	warning func(a ...any) string
	err     func(a ...any) string
	ok      func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		file:    mk(color.FgHiCyan),
		warning: mk(color.FgHiYellow),
		err:     mk(color.FgHiRed),
		ok:      mk(color.FgHiGreen),
	}
}

// colorEnabled resolves a color mode against the output writer. "auto"
// colors only terminals.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeReport renders a report in text, json or yaml format.
func writeReport(w io.Writer, report Report, format string, colors bool) error {
	switch format {
	case "json":
		return writeJSON(w, report)
	case "yaml":
		return writeYAML(w, report)
	}
	writeTextReport(w, report, newPalette(colors))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTextReport(w io.Writer, report Report, p palette) {
	for _, lr := range report.Locales {
		header := lr.Locale
		if lr.Name != "" {
			header = fmt.Sprintf("%s (%s)", lr.Locale, lr.Name)
		}
		if lr.MissingDir {
			fmt.Fprintln(w, p.warning(header+": no localization directory"))
			fmt.Fprintln(w)
			continue
		}

		fmt.Fprintf(w, "%s:\n", header)
		if len(lr.Files) == 0 {
			fmt.Fprintln(w, "    "+p.ok("No missing translations."))
		}
		for _, fr := range lr.Files {
			fmt.Fprintf(w, "    %s\n", p.file(fr.Path+":"))
			for _, f := range fr.Findings {
				fmt.Fprintf(w, "        %s\n", p.err(f.Message()))
			}
		}
		fmt.Fprintln(w)
	}
}

// outputStrings prints a list of strings in text or JSON format.
func outputStrings(w io.Writer, items []string, format, label string) error {
	if format == "json" {
		if items == nil {
			items = []string{}
		}
		return writeJSON(w, items)
	}

	if len(items) == 0 {
		fmt.Fprintf(w, "No %s found.\n", label)
		return nil
	}

	fmt.Fprintf(w, "Found %d %s:\n", len(items), label)
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
	return nil
}
