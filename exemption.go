package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Exemption decides whether a reference object may be absent from a
// translation. Its children are checked either way.
type Exemption interface {
	Exempt(path KeyPath, node Node) bool
}

// markerTypeField is the key carrying a node's marker type.
const markerTypeField = "type"

var defaultMarkerTypes = []string{"event", "condition"}

var defaultExemption = newMarkerTypes(defaultMarkerTypes)

// markerTypes exempts objects whose "type" is one of a fixed set.
type markerTypes map[string]bool

func newMarkerTypes(types []string) markerTypes {
	m := make(markerTypes, len(types))
	for _, t := range types {
		m[t] = true
	}
	return m
}

func (m markerTypes) Exempt(_ KeyPath, node Node) bool {
	t, ok := node.StringField(markerTypeField)
	return ok && m[t]
}

// exprExemption adds a user expression on top of the marker types.
type exprExemption struct {
	markers markerTypes
	source  string
	program *vm.Program
}

// exemptionEnv is the environment visible to exempt_when expressions.
func exemptionEnv(path KeyPath, node Node) map[string]any {
	t, _ := node.StringField(markerTypeField)
	keys := make([]string, len(node.Keys()))
	copy(keys, node.Keys())
	segs := make([]string, len(path))
	copy(segs, path)
	return map[string]any{
		"nodeType": t,
		"path":     segs,
		"keys":     keys,
		"depth":    len(path),
	}
}

// NewExemption builds the exemption policy. An empty expression yields the
// plain marker-type policy.
func NewExemption(types []string, when string) (Exemption, error) {
	markers := newMarkerTypes(types)
	if when == "" {
		return markers, nil
	}
	program, err := expr.Compile(when,
		expr.Env(exemptionEnv(nil, Node{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling exempt_when %q: %w", when, err)
	}
	return &exprExemption{markers: markers, source: when, program: program}, nil
}

func (e *exprExemption) Exempt(path KeyPath, node Node) bool {
	if e.markers.Exempt(path, node) {
		return true
	}
	out, err := expr.Run(e.program, exemptionEnv(path, node))
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}
