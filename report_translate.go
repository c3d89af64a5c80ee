package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func runTranslate(args []string) error {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	common := addCommonFlags(fs)
	locale := fs.String("locale", "", "Target locale code (required)")
	batch := fs.Int("batch", 0, "Batch number (1-indexed); requires --batches")
	batches := fs.Int("batches", 0, "Total number of batches")
	fs.Parse(args)

	if *locale == "" {
		return fmt.Errorf("--locale is required")
	}

	s, err := common.session()
	if err != nil {
		return err
	}
	return reportTranslate(s, *locale, *batch, *batches, os.Stdout)
}

// translationPair is one base-locale value a locale still needs.
type translationPair struct {
	File  string  `json:"file" yaml:"file"`
	Path  KeyPath `json:"path" yaml:"path"`
	Value string  `json:"value" yaml:"value"`
}

func (p translationPair) String() string {
	return fmt.Sprintf("%s:%s=%s", p.File, p.Path, p.Value)
}

// reportTranslate outputs the base locale's values for everything locale
// is missing. This is the input for translators: each pair names the file
// and key path to fill in.
func reportTranslate(s *session, locale string, batch, batches int, w io.Writer) error {
	base := s.auditor.BaseLocale
	if base == "" {
		return fmt.Errorf("a base locale is required to export values")
	}
	if locale == base {
		return fmt.Errorf("--locale must differ from the base locale %s", base)
	}

	s.useLocales([]string{locale})
	refs := s.auditor.LoadReferences()
	lr := s.auditor.AuditLocale(refs, locale)
	pairs := s.auditor.translationPairs(lr)

	// Apply batch slicing if requested.
	if batches > 0 {
		if batch < 1 || batch > batches {
			return fmt.Errorf("--batch must be between 1 and %d", batches)
		}
		total := len(pairs)
		size := (total + batches - 1) / batches
		start := (batch - 1) * size
		end := start + size
		if start > total {
			start = total
		}
		if end > total {
			end = total
		}
		pairs = pairs[start:end]
	}

	switch s.cfg.Report.Format {
	case "json":
		if pairs == nil {
			pairs = []translationPair{}
		}
		return writeJSON(w, pairs)
	case "yaml":
		return writeYAML(w, nestedTranslations(pairs))
	}

	if len(pairs) == 0 {
		fmt.Fprintf(w, "No base-locale values missing from %s.\n", locale)
		return nil
	}

	label := fmt.Sprintf("Found %d values missing from %s", len(pairs), locale)
	if batches > 0 {
		label += fmt.Sprintf(" (batch %d of %d)", batch, batches)
	}
	fmt.Fprintf(w, "%s:\n\n", label)
	for _, p := range pairs {
		fmt.Fprintln(w, p.String())
	}
	return nil
}

// translationPairs collects the base locale's leaves below every missing
// key, value and file of lr. Paths the base locale lacks too are skipped.
func (a *Auditor) translationPairs(lr LocaleReport) []translationPair {
	var pairs []translationPair
	baseDocs := make(map[string]Node)
	baseDoc := func(rel string) (Node, bool) {
		if doc, ok := baseDocs[rel]; ok {
			return doc, !doc.IsAbsent()
		}
		doc, _ := a.localeDocument(a.BaseLocale, rel)
		baseDocs[rel] = doc
		return doc, !doc.IsAbsent()
	}

	for _, fr := range lr.Files {
		doc, ok := baseDoc(fr.Path)
		if !ok {
			continue
		}
		for _, f := range fr.Findings {
			var path KeyPath
			switch f.Kind {
			case MissingKey, MissingValue:
				path = f.Path()
			case MissingFile:
				path = nil
			default:
				continue
			}
			for _, leaf := range flattenLeaves(path, Resolve(doc, path)) {
				pairs = append(pairs, translationPair{
					File:  fr.Path,
					Path:  leaf.path,
					Value: leaf.node.Text(),
				})
			}
		}
	}
	return pairs
}

type leafEntry struct {
	path KeyPath
	node Node
}

// flattenLeaves lists every leaf at or below n in document order.
func flattenLeaves(prefix KeyPath, n Node) []leafEntry {
	switch n.Kind() {
	case Leaf:
		return []leafEntry{{path: prefix, node: n}}
	case Object:
		var out []leafEntry
		for _, k := range n.Keys() {
			out = append(out, flattenLeaves(prefix.Append(k), n.Child(k))...)
		}
		return out
	}
	return nil
}
