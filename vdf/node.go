package vdf

import (
	"iter"
	"slices"
)

// Kind indicates which value a [Node] holds.
type Kind int

const (
	// KindString represents a scalar string value.
	KindString Kind = iota + 1

	// KindMap represents a nested ordered mapping.
	KindMap
)

// String returns a string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"

	case KindMap:
		return "Map"

	default:
		return "Unknown"
	}
}

// Node is a value in a KeyValue tree: either a string or a nested [Map].
type Node struct {
	Kind Kind
	// Exactly one of these is meaningful based on Kind
	Str string
	Map *Map
}

// String returns a new string node.
func String(s string) *Node {
	return &Node{Kind: KindString, Str: s}
}

// Block returns a new mapping node wrapping m.
// A nil m is replaced with an empty mapping.
func Block(m *Map) *Node {
	if m == nil {
		m = NewMap()
	}

	return &Node{Kind: KindMap, Map: m}
}

// IsMap reports whether n holds a nested mapping.
func (n *Node) IsMap() bool { return n != nil && n.Kind == KindMap }

// IsString reports whether n holds a scalar string.
func (n *Node) IsString() bool { return n != nil && n.Kind == KindString }

// isEmpty reports whether n carries no data: an empty string or an empty
// mapping.
func (n *Node) isEmpty() bool {
	switch {
	case n == nil:
		return true

	case n.Kind == KindString:
		return n.Str == ""

	case n.Kind == KindMap:
		return n.Map.Len() == 0

	default:
		return true
	}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := *n
	if n.Map != nil {
		c.Map = n.Map.Clone()
	}

	return &c
}

// Entry is a single key/value pair of a [Map].
type Entry struct {
	Key   string
	Value *Node
}

// Map is an ordered mapping of unique string keys to nodes.
// The zero value is not usable; use [NewMap].
type Map struct {
	entries []Entry
	index   map[string]int // key -> position in entries
}

// NewMap returns an empty mapping.
func NewMap() *Map {
	return &Map{index: map[string]int{}}
}

// Len returns the number of entries in m.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}

// Lookup returns the node stored at key.
func (m *Map) Lookup(key string) (*Node, bool) {
	if m == nil {
		return nil, false
	}

	idx, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.entries[idx].Value, true
}

// Set stores n at key. An existing key keeps its position.
func (m *Map) Set(key string, n *Node) {
	if idx, ok := m.index[key]; ok {
		m.entries[idx].Value = n

		return
	}

	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: n})
}

// SetString stores the string s at key.
func (m *Map) SetString(key, s string) { m.Set(key, String(s)) }

// SetMap stores the mapping c at key and returns c.
func (m *Map) SetMap(key string, c *Map) *Map {
	n := Block(c)
	m.Set(key, n)

	return n.Map
}

// Delete removes key from m, preserving the order of the remaining entries.
func (m *Map) Delete(key string) {
	idx, ok := m.index[key]
	if !ok {
		return
	}

	m.entries = slices.Delete(m.entries, idx, idx+1)
	delete(m.index, key)

	for i := idx; i < len(m.entries); i++ {
		m.index[m.entries[i].Key] = i
	}
}

// Keys returns the keys of m in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}

	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}

	return keys
}

// All returns an iterator over the entries of m in insertion order.
func (m *Map) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if m == nil {
			return
		}

		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// First returns the first entry of m.
func (m *Map) First() (Entry, bool) {
	if m.Len() == 0 {
		return Entry{}, false
	}

	return m.entries[0], true
}

// Get walks a path of keys through nested mappings.
// It returns false if any element is missing or a non-final element is not
// a mapping.
func (m *Map) Get(path ...string) (*Node, bool) {
	cur := Block(m)

	for _, key := range path {
		if !cur.IsMap() {
			return nil, false
		}

		next, ok := cur.Map.Lookup(key)
		if !ok {
			return nil, false
		}

		cur = next
	}

	return cur, true
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}

	c := &Map{
		entries: make([]Entry, len(m.entries)),
		index:   make(map[string]int, len(m.entries)),
	}

	for i, e := range m.entries {
		c.entries[i] = Entry{Key: e.Key, Value: e.Value.Clone()}
		c.index[e.Key] = i
	}

	return c
}

// Equal reports whether m and o hold the same keys, in the same order, with
// equal values.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}

	for i := range m.Len() {
		a, b := m.entries[i], o.entries[i]
		if a.Key != b.Key || !a.Value.Equal(b.Value) {
			return false
		}
	}

	return true
}

// Equal reports whether n and o are deeply equal.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}

	if n.Kind != o.Kind {
		return false
	}

	if n.Kind == KindMap {
		return n.Map.Equal(o.Map)
	}

	return n.Str == o.Str
}
