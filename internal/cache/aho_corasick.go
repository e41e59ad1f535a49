// Pulseboard - Team Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pulseboard

package cache

import (
	"strings"
)

// KeywordMatcher finds every occurrence of a fixed keyword set in a text in a
// single pass (Aho-Corasick). Matching is case-insensitive and works on runes,
// so Hangul and other multi-byte keywords match as substrings.
//
// A KeywordMatcher is immutable after construction and safe for concurrent use.
type KeywordMatcher struct {
	root     *acNode
	keywords []string
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // indices into keywords that end at this node
}

// Match is a single keyword occurrence.
type Match struct {
	Keyword  string
	Position int // byte offset of the match start in the lower-cased text
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// NewKeywordMatcher builds the automaton for keywords. Empty and duplicate
// keywords are ignored.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	m := &KeywordMatcher{root: newACNode()}

	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		m.insert(len(m.keywords), kw)
		m.keywords = append(m.keywords, kw)
	}
	m.buildFailureLinks()

	return m
}

func (m *KeywordMatcher) insert(index int, keyword string) {
	node := m.root
	for _, ch := range keyword {
		if node.children[ch] == nil {
			node.children[ch] = newACNode()
		}
		node = node.children[ch]
	}
	node.output = append(node.output, index)
}

// buildFailureLinks wires failure links breadth-first from the root.
func (m *KeywordMatcher) buildFailureLinks() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}

			if fail == nil {
				child.failure = m.root
			} else {
				child.failure = fail.children[ch]
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
}

// Search returns every keyword occurrence in text, in scan order.
func (m *KeywordMatcher) Search(text string) []Match {
	if len(m.keywords) == 0 {
		return nil
	}

	var matches []Match
	node := m.root
	for i, ch := range strings.ToLower(text) {
		for node != m.root && node.children[ch] == nil {
			node = node.failure
		}
		next := node.children[ch]
		if next == nil {
			continue
		}
		node = next

		end := i + len(string(ch))
		for _, idx := range node.output {
			kw := m.keywords[idx]
			matches = append(matches, Match{Keyword: kw, Position: end - len(kw)})
		}
	}

	return matches
}

// Find returns the distinct keywords present in text, in order of first occurrence.
func (m *KeywordMatcher) Find(text string) []string {
	var found []string
	seen := make(map[string]bool)
	for _, match := range m.Search(text) {
		if !seen[match.Keyword] {
			seen[match.Keyword] = true
			found = append(found, match.Keyword)
		}
	}
	return found
}

// Contains reports whether any keyword occurs in text.
func (m *KeywordMatcher) Contains(text string) bool {
	return len(m.Search(text)) > 0
}

// Len returns the number of distinct keywords.
func (m *KeywordMatcher) Len() int {
	return len(m.keywords)
}
