package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Kind tags the variant held by a Node.
type Kind int

const (
	// Absent is the zero Node: the result of resolving a path that does
	// not exist.
	Absent Kind = iota
	// Object is a JSON object with ordered keys.
	Object
	// Leaf is any non-object JSON value (string, number, bool, null, array).
	Leaf
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Leaf:
		return "leaf"
	default:
		return "absent"
	}
}

// Node is one value of a parsed JSON document. Nodes are immutable once
// parsed; copying a Node is cheap.
type Node struct {
	kind     Kind
	keys     []string
	children map[string]Node
	value    any
}

// ObjectNode builds an object node. keys gives the insertion order and
// must list every key of children exactly once.
func ObjectNode(keys []string, children map[string]Node) Node {
	return Node{kind: Object, keys: keys, children: children}
}

// LeafNode wraps an opaque JSON value.
func LeafNode(v any) Node {
	return Node{kind: Leaf, value: v}
}

func (n Node) Kind() Kind { return n.kind }
func (n Node) IsAbsent() bool { return n.kind == Absent }
func (n Node) IsObject() bool { return n.kind == Object }
func (n Node) IsLeaf() bool { return n.kind == Leaf }
func (n Node) Value() any { return n.value }
func (n Node) Len() int { return len(n.keys) }

// Keys returns the object's keys in document order. The returned slice
// must not be modified.
func (n Node) Keys() []string {
	return n.keys
}

// Child returns the child stored under key, or the Absent node.
func (n Node) Child(key string) Node {
	if n.kind != Object {
		return Node{}
	}
	return n.children[key]
}

// Has reports whether the object holds key.
func (n Node) Has(key string) bool {
	if n.kind != Object {
		return false
	}
	_, ok := n.children[key]
	return ok
}

// StringField returns the string leaf stored under key, if any.
func (n Node) StringField(key string) (string, bool) {
	c := n.Child(key)
	if c.kind != Leaf {
		return "", false
	}
	s, ok := c.value.(string)
	return s, ok
}

// Text formats a leaf for display.
func (n Node) Text() string {
	switch n.kind {
	case Leaf:
		switch v := n.value.(type) {
		case string:
			return v
		case nil:
			return "null"
		case json.Number:
			return v.String()
		case []any:
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Sprintf("%v", v)
			}
			return string(data)
		default:
			return fmt.Sprintf("%v", v)
		}
	case Object:
		data, _ := json.Marshal(n.Interface())
		return string(data)
	}
	return ""
}

// Interface converts the node back to plain Go values. Objects become
// map[string]any, so key order is lost.
func (n Node) Interface() any {
	switch n.kind {
	case Object:
		m := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			m[k] = n.children[k].Interface()
		}
		return m
	case Leaf:
		return n.value
	}
	return nil
}

// KeyPath addresses a node by descending through object keys. Segments
// are raw keys; the "/" separator only appears in the display form.
type KeyPath []string

// Append returns a new path with key added. The receiver is never shared
// with the result.
func (p KeyPath) Append(key string) KeyPath {
	out := make(KeyPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, key)
}

// Parent returns the path without its last segment.
func (p KeyPath) Parent() KeyPath {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Last returns the final segment, or "" for the root path.
func (p KeyPath) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

func (p KeyPath) String() string {
	return strings.Join(p, "/")
}

// Equal reports whether both paths have the same segments.
func (p KeyPath) Equal(o KeyPath) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Resolve looks path up in doc. It returns the Absent node when a segment
// is missing or an intermediate node is not an object; a missing path is
// the normal "not translated yet" case, not an error.
func Resolve(doc Node, path KeyPath) Node {
	cur := doc
	for _, seg := range path {
		if cur.kind != Object {
			return Node{}
		}
		next, ok := cur.children[seg]
		if !ok {
			return Node{}
		}
		cur = next
	}
	return cur
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseDocument parses a single JSON value, keeping object key order.
func ParseDocument(data []byte) (Node, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return Node{}, errors.New("content is not valid UTF-8")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := parseValue(dec)
	if err != nil {
		return Node{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			return Node{}, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
		}
		return Node{}, err
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Node{}, io.ErrUnexpectedEOF
		}
		return Node{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return Node{}, fmt.Errorf("unexpected delimiter %q at offset %d", t, dec.InputOffset())
	default:
		return LeafNode(t), nil
	}
}

func parseObject(dec *json.Decoder) (Node, error) {
	var keys []string
	children := make(map[string]Node)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Node{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Node{}, fmt.Errorf("expected object key at offset %d", dec.InputOffset())
		}
		val, err := parseValue(dec)
		if err != nil {
			return Node{}, err
		}
		if _, dup := children[key]; !dup {
			keys = append(keys, key)
		}
		children[key] = val
	}
	if _, err := dec.Token(); err != nil {
		return Node{}, err
	}
	return ObjectNode(keys, children), nil
}

func parseArray(dec *json.Decoder) (Node, error) {
	items := []any{}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return Node{}, err
		}
		items = append(items, val.Interface())
	}
	if _, err := dec.Token(); err != nil {
		return Node{}, err
	}
	return LeafNode(items), nil
}
