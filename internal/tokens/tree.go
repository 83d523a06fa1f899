package tokens

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Path segments that would collide with object internals in the JavaScript
// consumers of the emitted trees. Inserting one is fatal for the run.
var reservedSegments = map[string]bool{
	"__proto__":   true,
	"prototype":   true,
	"constructor": true,
}

// ReservedSegmentError reports a token path segment colliding with a reserved
// structural name.
type ReservedSegmentError struct {
	Segment string
}

func (e *ReservedSegmentError) Error() string {
	return fmt.Sprintf("tokens: reserved path segment %q", e.Segment)
}

// Tree is a nested mapping of path segment -> node, where a node is either a
// further mapping or a leaf Token. Writes at an existing path overwrite
// (last-write-wins); overwrites are counted but accepted.
type Tree struct {
	root       map[string]any
	leaves     int
	overwrites int
}

func NewTree() *Tree {
	return &Tree{root: map[string]any{}}
}

// Insert writes a token at the given path, creating intermediate levels as
// needed. It owns the reserved-segment guard.
func (t *Tree) Insert(path []string, tok Token) error {
	if len(path) == 0 {
		return fmt.Errorf("tokens: empty token path")
	}
	for _, seg := range path {
		if reservedSegments[seg] {
			return &ReservedSegmentError{Segment: seg}
		}
	}
	cur := t.root
	for _, seg := range path[:len(path)-1] {
		child, exists := cur[seg]
		if m, isMap := child.(map[string]any); isMap {
			cur = m
			continue
		}
		if exists {
			// A leaf sat where a branch is needed: the branch wins.
			t.overwrites++
			t.leaves--
		}
		m := map[string]any{}
		cur[seg] = m
		cur = m
	}
	last := path[len(path)-1]
	if old, exists := cur[last]; exists {
		t.overwrites++
		if _, wasLeaf := old.(Token); wasLeaf {
			t.leaves--
		} else {
			// A whole subtree is replaced by this leaf.
			t.leaves -= countLeaves(old)
		}
	}
	cur[last] = tok
	t.leaves++
	return nil
}

// Lookup returns the token at an exact path.
func (t *Tree) Lookup(path ...string) (Token, bool) {
	cur := any(t.root)
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return Token{}, false
		}
		cur, ok = m[seg]
		if !ok {
			return Token{}, false
		}
	}
	tok, ok := cur.(Token)
	return tok, ok
}

// Len reports the number of leaf tokens in the tree.
func (t *Tree) Len() int { return t.leaves }

// Overwrites reports how many writes replaced an existing node.
func (t *Tree) Overwrites() int { return t.overwrites }

// MarshalJSON emits the nested mapping with keys in sorted order, so repeated
// runs over the same graph produce byte-identical output.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.root)
}

// Walk visits every leaf token in sorted path order.
func (t *Tree) Walk(fn func(path []string, tok Token)) {
	walk(t.root, nil, fn)
}

func walk(node map[string]any, prefix []string, fn func(path []string, tok Token)) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		path := append(append([]string{}, prefix...), k)
		switch child := node[k].(type) {
		case Token:
			fn(path, child)
		case map[string]any:
			walk(child, path, fn)
		}
	}
}

func countLeaves(node any) int {
	switch n := node.(type) {
	case Token:
		return 1
	case map[string]any:
		total := 0
		for _, child := range n {
			total += countLeaves(child)
		}
		return total
	default:
		return 0
	}
}
