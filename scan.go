package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// documentExt is the extension of localization content files.
const documentExt = ".json"

// DocumentSet maps normalized relative paths to parsed documents. Paths
// keeps discovery order.
type DocumentSet struct {
	Paths []string
	Docs  map[string]Node
}

func newDocumentSet() *DocumentSet {
	return &DocumentSet{Docs: make(map[string]Node)}
}

func (s *DocumentSet) add(path string, doc Node) {
	if _, exists := s.Docs[path]; !exists {
		s.Paths = append(s.Paths, path)
	}
	s.Docs[path] = doc
}

// Get returns the document stored under path.
func (s *DocumentSet) Get(path string) (Node, bool) {
	doc, ok := s.Docs[path]
	return doc, ok
}

func (s *DocumentSet) Len() int {
	return len(s.Paths)
}

// Loader reads localization documents from disk. Problems are logged and
// never abort loading of the remaining files.
type Loader struct {
	Logger *slog.Logger
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// LoadFile reads and parses one document.
func (l *Loader) LoadFile(path string) (Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Node{}, err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return Node{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// LoadTree loads every .json file below root. A missing root yields an
// empty set and a warning.
func (l *Loader) LoadTree(root string) *DocumentSet {
	set := newDocumentSet()
	log := l.logger()

	if !dirExists(root) {
		log.Warn("directory does not exist", "dir", root)
		return set
	}

	files, err := scanJSONFiles(root, log)
	if err != nil {
		log.Error("scanning directory", "dir", root, "error", err)
	}
	for _, file := range files {
		doc, err := l.LoadFile(file)
		if err != nil {
			log.Error("could not load document", "file", file, "error", err)
			continue
		}
		set.add(relativeDocPath(root, file), doc)
	}
	log.Debug("loaded documents", "dir", root, "count", set.Len())
	return set
}

// scanJSONFiles walks root and returns the paths of all JSON documents in
// lexical order. Unreadable subdirectories are logged and skipped.
func scanJSONFiles(root string, log *slog.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) == documentExt {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// relativeDocPath strips root from path and normalizes separators to "/".
func relativeDocPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// docPath joins a normalized relative path onto a directory.
func docPath(dir, rel string) string {
	return filepath.Join(dir, filepath.FromSlash(rel))
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
