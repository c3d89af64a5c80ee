package main

import (
	"fmt"
)

// FindingKind classifies a reported problem.
type FindingKind int

const (
	MissingKey FindingKind = iota
	MissingValue
	MissingFile
	UnreadableFile
)

var findingKindNames = map[FindingKind]string{
	MissingKey:     "missing-key",
	MissingValue:   "missing-value",
	MissingFile:    "missing-file",
	UnreadableFile: "unreadable-file",
}

func (k FindingKind) String() string {
	if name, ok := findingKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FindingKind(%d)", int(k))
}

func (k FindingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *FindingKind) UnmarshalText(text []byte) error {
	for kind, name := range findingKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown finding kind %q", text)
}

// rootLabel names the document root when a finding has no parent key.
const rootLabel = "the root object"

// Finding is one missing key, value or file. Compare fills Kind, Key and
// Parent; the auditor adds File and Locale.
type Finding struct {
	Kind   FindingKind `json:"kind" yaml:"kind"`
	Key    string      `json:"key,omitempty" yaml:"key,omitempty"`
	Parent KeyPath     `json:"parent,omitempty" yaml:"parent,omitempty"`
	File   string      `json:"file,omitempty" yaml:"file,omitempty"`
	Locale string      `json:"locale,omitempty" yaml:"locale,omitempty"`
	Detail string      `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Path returns the full key path of the missing key.
func (f Finding) Path() KeyPath {
	if f.Key == "" {
		return f.Parent
	}
	return f.Parent.Append(f.Key)
}

// Message renders the finding as a single report line.
func (f Finding) Message() string {
	switch f.Kind {
	case MissingKey:
		return fmt.Sprintf("missing translation for '%s' in %s", f.Key, parentLabel(f.Parent))
	case MissingValue:
		return fmt.Sprintf("missing value for '%s' in %s", f.Key, parentLabel(f.Parent))
	case MissingFile:
		return fmt.Sprintf("no translated file for %s", f.File)
	case UnreadableFile:
		return fmt.Sprintf("could not read %s: %s", f.File, f.Detail)
	}
	return f.Kind.String()
}

func parentLabel(p KeyPath) string {
	if len(p) == 0 {
		return rootLabel
	}
	return "'" + p.String() + "'"
}

// Differ compares a reference document against a candidate document.
type Differ struct {
	// Exempt decides which reference objects are optional markers. When
	// nil, objects typed "event" or "condition" are exempt.
	Exempt Exemption
}

// Compare uses the default marker types.
func Compare(reference, candidate Node, checkLeafValues bool) []Finding {
	var d Differ
	return d.Compare(reference, candidate, checkLeafValues)
}

// Compare walks the reference tree depth-first and reports every object
// key missing from candidate. A missing key is reported once; its
// descendants are not visited. With checkLeafValues, reference leaves
// missing from candidate are reported as well.
func (d *Differ) Compare(reference, candidate Node, checkLeafValues bool) []Finding {
	exempt := d.Exempt
	if exempt == nil {
		exempt = defaultExemption
	}

	var findings []Finding
	queue := childPaths(nil, reference)
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		refVal := Resolve(reference, path)
		candVal := Resolve(candidate, path)

		switch refVal.Kind() {
		case Object:
			if candVal.IsAbsent() {
				if !exempt.Exempt(path, refVal) {
					findings = append(findings, Finding{
						Kind:   MissingKey,
						Key:    path.Last(),
						Parent: path.Parent(),
					})
				}
				continue
			}
			// Children go to the front so a subtree is finished before
			// the next sibling.
			queue = append(childPaths(path, refVal), queue...)
		case Leaf:
			if checkLeafValues && candVal.IsAbsent() {
				findings = append(findings, Finding{
					Kind:   MissingValue,
					Key:    path.Last(),
					Parent: path.Parent(),
				})
			}
		}
	}
	return findings
}

func childPaths(parent KeyPath, n Node) []KeyPath {
	if !n.IsObject() {
		return nil
	}
	paths := make([]KeyPath, 0, n.Len())
	for _, k := range n.Keys() {
		paths = append(paths, parent.Append(k))
	}
	return paths
}

// Stale returns the keys of candidate that do not exist in reference.
// Only the highest stale ancestor is returned.
func Stale(reference, candidate Node) []KeyPath {
	var stale []KeyPath
	var walk func(path KeyPath, n Node)
	walk = func(path KeyPath, n Node) {
		for _, p := range childPaths(path, n) {
			if Resolve(reference, p).IsAbsent() {
				stale = append(stale, p)
				continue
			}
			walk(p, n.Child(p.Last()))
		}
	}
	walk(nil, candidate)
	return stale
}
