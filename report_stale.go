package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func runStale(args []string) error {
	fs := flag.NewFlagSet("stale", flag.ExitOnError)
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
	return reportStale(s, *locale, os.Stdout)
}

// StaleKey is a key present in a locale file but not in its reference.
type StaleKey struct {
	File string  `json:"file" yaml:"file"`
	Path KeyPath `json:"path" yaml:"path"`
	// RenamedFrom is the closest missing sibling, when one is similar
	// enough to suggest the key was renamed.
	RenamedFrom string `json:"renamedFrom,omitempty" yaml:"renamedFrom,omitempty"`
}

func (k StaleKey) String() string {
	s := fmt.Sprintf("%s: %s", k.File, k.Path)
	if k.RenamedFrom != "" {
		s += fmt.Sprintf(" (renamed from '%s'?)", k.RenamedFrom)
	}
	return s
}

func reportStale(s *session, locale string, w io.Writer) error {
	refs := s.auditor.LoadReferences()
	stale := s.auditor.StaleLocale(refs, locale)

	switch s.cfg.Report.Format {
	case "json":
		if stale == nil {
			stale = []StaleKey{}
		}
		return writeJSON(w, stale)
	case "yaml":
		return writeYAML(w, stale)
	}
	items := make([]string, 0, len(stale))
	for _, k := range stale {
		items = append(items, k.String())
	}
	return outputStrings(w, items, "text", "stale keys in "+locale)
}

// StaleLocale lists the stale keys of every readable file of locale, in
// the same file order as AuditLocale.
func (a *Auditor) StaleLocale(refs References, locale string) []StaleKey {
	var stale []StaleKey
	check := func(rel string, reference Node, checkLeaves bool) {
		candidate, ok := a.localeDocument(locale, rel)
		if !ok {
			return
		}
		missing := a.differ().Compare(reference, candidate, checkLeaves)
		for _, p := range Stale(reference, candidate) {
			stale = append(stale, StaleKey{
				File:        rel,
				Path:        p,
				RenamedFrom: renameHint(p, missing),
			})
		}
	}

	for _, rel := range refs.Structure.Paths {
		check(rel, refs.Structure.Docs[rel], false)
	}
	if locale != a.BaseLocale && refs.BaseOnly != nil {
		for _, rel := range refs.BaseOnly.Paths {
			check(rel, refs.BaseOnly.Docs[rel], true)
		}
	}
	return stale
}

// renameHint returns the missing sibling of stale whose name is closest,
// or "" when none is within a third of the longer name's length.
func renameHint(stale KeyPath, missing []Finding) string {
	dmp := diffmatchpatch.New()
	name := stale.Last()
	parent := stale.Parent()

	best, bestDist := "", -1
	for _, f := range missing {
		if f.Kind != MissingKey && f.Kind != MissingValue {
			continue
		}
		if !f.Parent.Equal(parent) {
			continue
		}
		dist := dmp.DiffLevenshtein(dmp.DiffMain(f.Key, name, false))
		limit := max(len(f.Key), len(name)) / 3
		if limit < 1 {
			limit = 1
		}
		if dist > limit {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = f.Key, dist
		}
	}
	return best
}
