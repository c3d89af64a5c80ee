package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditor(root string, locales ...string) (*Auditor, *bytes.Buffer) {
	log, buf := bufferLogger()
	return &Auditor{
		Root:         root,
		StructureDir: "structure",
		Locales:      locales,
		BaseLocale:   "en",
		LocaleOnly:   true,
		Loader:       &Loader{Logger: log},
		Logger:       log,
	}, buf
}

func TestAuditMarkerScenario(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"structure/menu.json": `{"title": {}, "options": {"type": "event"}}`,
		"en/menu.json":        `{"title": {}}`,
	})

	a, _ := newTestAuditor(root, "en")
	report := a.Run()

	require.Len(t, report.Locales, 1)
	assert.Equal(t, "en", report.Locales[0].Locale)
	assert.Empty(t, report.Locales[0].Files)
	assert.Equal(t, 0, report.Count())
}

func TestAuditReportsHighestMissingKey(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"structure/a.json": `{"x": {"y": {}}}`,
		"es/a.json":        `{}`,
	})

	a, _ := newTestAuditor(root, "es")
	report := a.Run()

	lr := report.Locales[0]
	require.Len(t, lr.Files, 1)
	fr := lr.Files[0]
	assert.Equal(t, "a.json", fr.Path)
	assert.Equal(t, SourceStructure, fr.Source)
	require.Len(t, fr.Findings, 1)
	f := fr.Findings[0]
	assert.Equal(t, MissingKey, f.Kind)
	assert.Equal(t, "x", f.Key)
	assert.Empty(t, f.Parent)
	assert.Equal(t, "a.json", f.File)
	assert.Equal(t, "es", f.Locale)
	assert.Equal(t, "missing translation for 'x' in the root object", f.Message())
}

func TestAuditMissingFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"structure/a.json": `{"x": {}}`,
		"structure/b.json": `{"y": {"z": {}}}`,
		"es/a.json":        `{"x": "X"}`,
	})

	a, _ := newTestAuditor(root, "es")
	lr := a.Run().Locales[0]

	require.Len(t, lr.Files, 1)
	assert.Equal(t, "b.json", lr.Files[0].Path)
	require.Len(t, lr.Files[0].Findings, 1)
	assert.Equal(t, MissingFile, lr.Files[0].Findings[0].Kind)
	assert.Equal(t, "no translated file for b.json", lr.Files[0].Findings[0].Message())
	assert.Equal(t, 0, lr.Count(MissingKey, MissingValue))
}

func TestAuditMissingLocaleDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"structure/a.json": `{"x": {}}`,
		"es/a.json":        `{"x": {}}`,
	})

	a, logs := newTestAuditor(root, "es", "fr")
	report := a.Run()

	require.Len(t, report.Locales, 2)
	assert.False(t, report.Locales[0].MissingDir)
	assert.Empty(t, report.Locales[0].Files)
	assert.True(t, report.Locales[1].MissingDir)
	assert.Empty(t, report.Locales[1].Files)
	assert.Contains(t, logs.String(), "no localization directory")
}

func TestAuditNestedStructureFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"structure/levels/one.json": `{"intro": {"line1": {}, "line2": {}}}`,
		"es/levels/one.json":        `{"intro": {"line1": "Hola"}}`,
	})

	a, _ := newTestAuditor(root, "es")
	lr := a.Run().Locales[0]

	require.Len(t, lr.Files, 1)
	assert.Equal(t, "levels/one.json", lr.Files[0].Path)
	assert.Equal(t, []brief{{MissingKey, "line2", "intro"}}, briefs(lr.Files[0].Findings))
}

func TestAuditLocaleOnlyFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"structure/menu.json": `{"title": {}}`,
		"en/menu.json":        `{"title": "Menu"}`,
		"en/dialogs.json":     `{"hello": "Hello", "count": 3, "nested": {"bye": "Bye"}}`,
		"es/menu.json":        `{"title": "Menú"}`,
		"es/dialogs.json":     `{"hello": "Hola"}`,
		"fr/menu.json":        `{"title": "Menu"}`,
	})

	a, _ := newTestAuditor(root, "en", "es", "fr")
	report := a.Run()
	require.Len(t, report.Locales, 3)

	assert.Empty(t, report.Locales[0].Files, "the base locale is not compared against itself")

	es := report.Locales[1]
	require.Len(t, es.Files, 1)
	assert.Equal(t, "dialogs.json", es.Files[0].Path)
	assert.Equal(t, SourceBase, es.Files[0].Source)
	assert.Equal(t, []brief{
		{MissingValue, "count", ""},
		{MissingKey, "nested", ""},
	}, briefs(es.Files[0].Findings))

	fr := report.Locales[2]
	require.Len(t, fr.Files, 1)
	assert.Equal(t, "dialogs.json", fr.Files[0].Path)
	assert.Equal(t, []brief{{MissingFile, "", ""}}, briefs(fr.Files[0].Findings))
}

func TestAuditLocaleOnlyDisabled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"structure/menu.json": `{"title": {}}`,
		"en/menu.json":        `{"title": "Menu"}`,
		"en/dialogs.json":     `{"hello": "Hello"}`,
		"es/menu.json":        `{"title": "Menú"}`,
	})

	a, _ := newTestAuditor(root, "es")
	a.LocaleOnly = false
	refs := a.LoadReferences()

	assert.Equal(t, 0, refs.BaseOnly.Len())
	assert.Empty(t, a.AuditLocale(refs, "es").Files)
}

func TestAuditUnreadableCandidate(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"structure/a.json": `{"x": {}}`,
		"structure/b.json": `{"y": {}}`,
		"es/a.json":        `{"x": `,
		"es/b.json":        `{}`,
	})

	a, logs := newTestAuditor(root, "es")
	lr := a.Run().Locales[0]

	require.Len(t, lr.Files, 2)
	require.Len(t, lr.Files[0].Findings, 1)
	f := lr.Files[0].Findings[0]
	assert.Equal(t, UnreadableFile, f.Kind)
	assert.Equal(t, "a.json", f.File)
	assert.Contains(t, f.Detail, "parsing")
	assert.Contains(t, logs.String(), "could not load document")

	assert.Equal(t, []brief{{MissingKey, "y", ""}}, briefs(lr.Files[1].Findings), "later files are still audited")
}

func TestAuditMissingStructureDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"es/a.json": `{}`})

	a, logs := newTestAuditor(root, "es")
	a.LocaleOnly = false
	report := a.Run()

	assert.Empty(t, report.Locales[0].Files)
	assert.Contains(t, logs.String(), "no structure files loaded")
}

func TestAuditCustomExemption(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"structure/a.json": `{"debug": {"panel": {}}, "title": {}}`,
		"es/a.json":        `{}`,
	})

	exempt, err := NewExemption(defaultMarkerTypes, `len(path) > 0 && path[0] == "debug"`)
	require.NoError(t, err)
	a, _ := newTestAuditor(root, "es")
	a.Differ = &Differ{Exempt: exempt}

	lr := a.Run().Locales[0]
	require.Len(t, lr.Files, 1)
	assert.Equal(t, []brief{{MissingKey, "title", ""}}, briefs(lr.Files[0].Findings))
}

func TestLocaleReportCount(t *testing.T) {
	lr := LocaleReport{Files: []FileReport{
		{Findings: []Finding{{Kind: MissingKey}, {Kind: MissingValue}}},
		{Findings: []Finding{{Kind: MissingFile}}},
	}}

	assert.Equal(t, 3, lr.Count())
	assert.Equal(t, 2, lr.Count(MissingKey, MissingValue))
	assert.Equal(t, 1, lr.Count(MissingFile))
	assert.Equal(t, 0, lr.Count(UnreadableFile))
	assert.Equal(t, 6, Report{Locales: []LocaleReport{lr, lr}}.Count())
}

func TestLocaleDocument(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"es/a.json": `{"x": "X"}`,
		"es/b.json": `{`,
	})
	a, _ := newTestAuditor(root, "es")

	doc, ok := a.localeDocument("es", "a.json")
	require.True(t, ok)
	assert.True(t, doc.Has("x"))

	_, ok = a.localeDocument("es", "b.json")
	assert.False(t, ok)
	_, ok = a.localeDocument("es", filepath.ToSlash("missing/c.json"))
	assert.False(t, ok)
}
