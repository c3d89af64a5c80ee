package main

import (
	"log/slog"
	"path/filepath"
)

// Reference sources for a FileReport.
const (
	SourceStructure = "structure"
	SourceBase      = "base"
)

// FileReport groups the findings of one file of one locale.
type FileReport struct {
	Path     string    `json:"path" yaml:"path"`
	Source   string    `json:"source" yaml:"source"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// LocaleReport holds everything found for one locale.
type LocaleReport struct {
	Locale     string       `json:"locale" yaml:"locale"`
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	MissingDir bool         `json:"missingDir,omitempty" yaml:"missingDir,omitempty"`
	Files      []FileReport `json:"files" yaml:"files"`
}

// Count returns the number of findings of the given kinds, or of every
// kind when none are given.
func (r LocaleReport) Count(kinds ...FindingKind) int {
	n := 0
	for _, f := range r.Files {
		for _, finding := range f.Findings {
			if len(kinds) == 0 || containsKind(kinds, finding.Kind) {
				n++
			}
		}
	}
	return n
}

func containsKind(kinds []FindingKind, k FindingKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Report is the result of one audit run.
type Report struct {
	Locales []LocaleReport `json:"locales" yaml:"locales"`
}

// Count returns the total number of findings of the given kinds.
func (r Report) Count(kinds ...FindingKind) int {
	n := 0
	for _, l := range r.Locales {
		n += l.Count(kinds...)
	}
	return n
}

// Auditor compares every locale directory under Root against the
// structure directory and, for locale-only files, against BaseLocale.
type Auditor struct {
	Root         string
	StructureDir string
	Locales      []string
	BaseLocale   string
	// LocaleOnly enables the pass over files that only exist in locale
	// directories, using BaseLocale's copy as the reference.
	LocaleOnly bool

	Differ *Differ
	Loader *Loader
	Logger *slog.Logger
	// Names maps locale codes to display names; missing entries are
	// left blank.
	Names map[string]string
}

func (a *Auditor) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

func (a *Auditor) loader() *Loader {
	if a.Loader == nil {
		return &Loader{Logger: a.logger()}
	}
	return a.Loader
}

func (a *Auditor) differ() *Differ {
	if a.Differ == nil {
		return &Differ{}
	}
	return a.Differ
}

func (a *Auditor) localeDir(locale string) string {
	return filepath.Join(a.Root, locale)
}

// References holds the documents every locale is compared against.
type References struct {
	Structure *DocumentSet
	// BaseOnly holds the base locale's files that have no structure
	// counterpart.
	BaseOnly *DocumentSet
}

// LoadReferences loads the structure tree and, when enabled, the base
// locale's locale-only files.
func (a *Auditor) LoadReferences() References {
	log := a.logger()
	structure := a.loader().LoadTree(filepath.Join(a.Root, a.StructureDir))
	if structure.Len() == 0 {
		log.Warn("no structure files loaded", "dir", filepath.Join(a.Root, a.StructureDir))
	}

	baseOnly := newDocumentSet()
	if a.LocaleOnly && a.BaseLocale != "" {
		base := a.loader().LoadTree(a.localeDir(a.BaseLocale))
		for _, p := range base.Paths {
			if _, ok := structure.Get(p); ok {
				continue
			}
			baseOnly.add(p, base.Docs[p])
		}
	}
	return References{Structure: structure, BaseOnly: baseOnly}
}

// Run audits every configured locale in order.
func (a *Auditor) Run() Report {
	refs := a.LoadReferences()
	report := Report{Locales: make([]LocaleReport, 0, len(a.Locales))}
	for _, locale := range a.Locales {
		report.Locales = append(report.Locales, a.AuditLocale(refs, locale))
	}
	return report
}

// AuditLocale compares one locale against refs.
func (a *Auditor) AuditLocale(refs References, locale string) LocaleReport {
	log := a.logger().With("locale", locale)
	lr := LocaleReport{Locale: locale, Name: a.Names[locale], Files: []FileReport{}}

	dir := a.localeDir(locale)
	if !dirExists(dir) {
		log.Warn("no localization directory", "dir", dir)
		lr.MissingDir = true
		return lr
	}

	for _, p := range refs.Structure.Paths {
		if fr, ok := a.auditFile(dir, p, refs.Structure.Docs[p], SourceStructure, false, log); ok {
			lr.Files = append(lr.Files, fr)
		}
	}

	if locale != a.BaseLocale && refs.BaseOnly != nil {
		for _, p := range refs.BaseOnly.Paths {
			if fr, ok := a.auditFile(dir, p, refs.BaseOnly.Docs[p], SourceBase, true, log); ok {
				lr.Files = append(lr.Files, fr)
			}
		}
	}

	for i := range lr.Files {
		for j := range lr.Files[i].Findings {
			lr.Files[i].Findings[j].Locale = locale
		}
	}
	return lr
}

// auditFile compares one locale file against its reference. It reports
// false when there is nothing to report.
func (a *Auditor) auditFile(dir, rel string, reference Node, source string, checkLeaves bool, log *slog.Logger) (FileReport, bool) {
	fr := FileReport{Path: rel, Source: source}
	path := docPath(dir, rel)

	exists, err := fileExists(path)
	if err != nil {
		log.Error("could not stat file", "file", path, "error", err)
		fr.Findings = []Finding{{Kind: UnreadableFile, File: rel, Detail: err.Error()}}
		return fr, true
	}
	if !exists {
		fr.Findings = []Finding{{Kind: MissingFile, File: rel}}
		return fr, true
	}

	candidate, err := a.loader().LoadFile(path)
	if err != nil {
		log.Error("could not load document", "file", path, "error", err)
		fr.Findings = []Finding{{Kind: UnreadableFile, File: rel, Detail: err.Error()}}
		return fr, true
	}

	findings := a.differ().Compare(reference, candidate, checkLeaves)
	if len(findings) == 0 {
		return fr, false
	}
	for i := range findings {
		findings[i].File = rel
	}
	fr.Findings = findings
	return fr, true
}

// localeDocument loads one locale's copy of rel, reporting whether it
// could be read.
func (a *Auditor) localeDocument(locale, rel string) (Node, bool) {
	path := docPath(a.localeDir(locale), rel)
	if ok, _ := fileExists(path); !ok {
		return Node{}, false
	}
	doc, err := a.loader().LoadFile(path)
	if err != nil {
		a.logger().Error("could not load document", "file", path, "error", err)
		return Node{}, false
	}
	return doc, true
}
