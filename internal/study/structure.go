package study

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/cropxr/drivectl/internal/errors"
)

// NodeKind discriminates the three shapes a structure entry can take.
type NodeKind int

const (
	// KindLeaf is a plain directory with no children (JSON null).
	KindLeaf NodeKind = iota
	// KindList is a directory containing one child directory per name.
	KindList
	// KindMap is a directory whose children are themselves structure nodes.
	KindMap
)

// Node is one entry of a folder structure: a leaf, a flat list of child
// names, or a nested mapping.
type Node struct {
	Kind     NodeKind
	Children []string         // KindList
	Nested   map[string]*Node // KindMap
}

// Structure maps top-level category names to their nodes. Top-level keys are
// rendered through Names.CategoryFolder before directories are created;
// deeper names are used as-is.
type Structure map[string]*Node

// DefaultStructure returns the fixed default layout of a study folder.
func DefaultStructure() Structure {
	return Structure{
		"raw":       {Kind: KindLeaf},
		"processed": {Kind: KindLeaf},
		"metadata":  {Kind: KindLeaf},
	}
}

// UnmarshalJSON decodes a node from its JSON form: null for a leaf, an array
// of strings for flat children, or an object for nested nodes.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*n = Node{Kind: KindLeaf}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var children []string
		if err := json.Unmarshal(trimmed, &children); err != nil {
			return fmt.Errorf("structure list entries must be strings: %w", err)
		}
		*n = Node{Kind: KindList, Children: children}
		return nil
	case '{':
		var nested map[string]*Node
		if err := json.Unmarshal(trimmed, &nested); err != nil {
			return err
		}
		normalizeLeaves(nested)
		*n = Node{Kind: KindMap, Nested: nested}
		return nil
	default:
		return fmt.Errorf("structure entry must be null, a list of names, or a nested mapping (got %s)", trimmed)
	}
}

// UnmarshalJSON decodes a structure, turning top-level nulls into leaves the
// same way nested nulls are handled.
func (s *Structure) UnmarshalJSON(data []byte) error {
	var raw map[string]*Node
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	normalizeLeaves(raw)
	*s = raw
	return nil
}

// normalizeLeaves replaces nil entries with explicit leaf nodes. encoding/json
// sets a *Node map value to nil for a literal null without calling the node's
// UnmarshalJSON, so the nil form would otherwise leak out of decoding.
func normalizeLeaves(nested map[string]*Node) {
	for name, child := range nested {
		if child == nil {
			nested[name] = &Node{Kind: KindLeaf}
		}
	}
}

// SortedKeys returns the structure's top-level keys in deterministic order.
func (s Structure) SortedKeys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sortedNestedKeys returns a node's nested keys in deterministic order.
func sortedNestedKeys(nested map[string]*Node) []string {
	keys := make([]string, 0, len(nested))
	for k := range nested {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadStructure reads a custom folder structure from a JSON file.
func LoadStructure(path string) (Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigParse(path, err)
	}

	var s Structure
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.ConfigParse(path, err)
	}

	if len(s) == 0 {
		return nil, errors.ConfigParse(path, fmt.Errorf("structure file defines no folders"))
	}

	return s, nil
}
