// Package trie implements the prefix index backing per-language corpora.
//
// Keys are case-folded to lowercase on insert and lookup, so the index is
// case-insensitive throughout. Each node owns its children outright; there
// are no cycles and no shared subtrees, so ordinary GC ownership suffices.
package trie

import (
	"sort"
	"strings"
)

// Node is a single trie node. The zero Node is not usable, use New.
type Node[T any] struct {
	char     rune
	children map[rune]*Node[T]
	end      bool
	item     T
	depth    int
}

// New returns an empty root node.
func New[T any]() *Node[T] {
	return &Node[T]{children: make(map[rune]*Node[T])}
}

// Insert walks or creates one child per character of the lower-cased word
// and attaches item to the terminal node. Inserting the same word twice
// overwrites the terminal item, last insert wins.
func (n *Node[T]) Insert(word string, item T) {
	node := n
	for _, r := range strings.ToLower(word) {
		child, ok := node.children[r]
		if !ok {
			child = &Node[T]{
				char:     r,
				children: make(map[rune]*Node[T]),
				depth:    node.depth + 1,
			}
			node.children[r] = child
		}
		node = child
	}
	node.end = true
	node.item = item
}

// Search reports whether word was inserted, case-insensitively.
func (n *Node[T]) Search(word string) bool {
	node := n.walk(word)
	return node != nil && node.end
}

// FindByPrefix collects up to max items whose words start with prefix.
// Order is depth-first traversal order (children visited in rune order),
// not relevance order; ranking is the caller's concern. A max <= 0 means
// no limit.
func (n *Node[T]) FindByPrefix(prefix string, max int) []T {
	node := n.walk(prefix)
	if node == nil {
		return nil
	}
	var items []T
	node.collect(&items, max)
	return items
}

// Depth returns the node's distance from the root.
func (n *Node[T]) Depth() int { return n.depth }

// NodeCount returns the number of nodes in the subtree rooted at n,
// including n itself. Used for advisory memory accounting only.
func (n *Node[T]) NodeCount() int {
	count := 1
	for _, child := range n.children {
		count += child.NodeCount()
	}
	return count
}

// Build bulk-inserts entries keyed by word(entry) into a fresh root.
func Build[T any](entries []T, word func(T) string) *Node[T] {
	root := New[T]()
	for _, e := range entries {
		root.Insert(word(e), e)
	}
	return root
}

func (n *Node[T]) walk(word string) *Node[T] {
	node := n
	for _, r := range strings.ToLower(word) {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

func (n *Node[T]) collect(items *[]T, max int) {
	if max > 0 && len(*items) >= max {
		return
	}
	if n.end {
		*items = append(*items, n.item)
	}
	// Map iteration order is random; sort so traversal is deterministic.
	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, r := range keys {
		if max > 0 && len(*items) >= max {
			return
		}
		n.children[r].collect(items, max)
	}
}
