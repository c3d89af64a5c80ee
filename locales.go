package main

import (
	"log/slog"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// localeNames maps each locale directory name to its English display
// name. Directory names that are not valid BCP 47 tags are logged and get
// no name; they are still audited.
func localeNames(locales []string, log *slog.Logger) map[string]string {
	if log == nil {
		log = slog.Default()
	}
	names := make(map[string]string, len(locales))
	namer := display.English.Tags()
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			log.Warn("locale is not a valid language tag", "locale", l, "error", err)
			continue
		}
		if name := namer.Name(tag); name != "" {
			names[l] = name
		}
	}
	return names
}
