// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pathtree

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Placeholder is the wildcard token standing for one argument.
const Placeholder = "<ARG>"

// placeholderInitial is what a placeholder contributes to a shortcut acronym.
const placeholderInitial = 'a'

// Tokenize splits a raw path into tokens on runs of whitespace.
// Blank input yields an empty slice, which callers treat as "no path".
func Tokenize(path string) []string {
	return strings.Fields(path)
}

// Join returns the canonical string of a token sequence.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Canonical normalizes all whitespace in path to single spaces.
func Canonical(path string) string {
	return Join(Tokenize(path))
}

// Prefixes returns the canonical string of every non-empty leading prefix of
// tokens, shortest first.
//
//	Prefixes([]string{"a", "b", "c"}) // ["a", "a b", "a b c"]
func Prefixes(tokens []string) []string {
	hierarchy := make([]string, 0, len(tokens))
	var current strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(tok)
		hierarchy = append(hierarchy, current.String())
	}
	return hierarchy
}

// Append returns the canonical string of tokens with token appended.
func Append(tokens []string, token string) string {
	if len(tokens) == 0 {
		return token
	}
	return Join(tokens) + " " + token
}

// CountToken counts the tokens of path equal to token.
func CountToken(path, token string) int {
	n := 0
	for _, tok := range Tokenize(path) {
		if tok == token {
			n++
		}
	}
	return n
}

// ArgCount returns the number of placeholders in path.
func ArgCount(path string) int {
	return CountToken(path, Placeholder)
}

// Shortcut builds the bracketed acronym for path. The acronym holds the first
// character of every token, with placeholders contributing 'a', followed by
// serial when it is not 1. One placeholder token per placeholder in path
// follows the acronym.
//
//	Shortcut("please say <ARG> and <ARG>", 1) // "[psaaa] <ARG> <ARG>"
//	Shortcut("echo <ARG>", 2)                 // "[ea2] <ARG>"
func Shortcut(path string, serial int) (string, error) {
	tokens := Tokenize(path)
	if len(tokens) == 0 {
		return "", ErrEmptyPath
	}

	var b strings.Builder
	b.WriteByte('[')
	args := 0
	for _, tok := range tokens {
		if tok == Placeholder {
			b.WriteRune(placeholderInitial)
			args++
			continue
		}
		r, _ := utf8.DecodeRuneInString(tok)
		b.WriteRune(r)
	}
	if serial != 1 {
		b.WriteString(strconv.Itoa(serial))
	}
	b.WriteByte(']')

	for i := 0; i < args; i++ {
		b.WriteByte(' ')
		b.WriteString(Placeholder)
	}
	return b.String(), nil
}

// IsShortcut reports whether the first token of path is a bracketed acronym.
func IsShortcut(path string) bool {
	tokens := Tokenize(path)
	if len(tokens) == 0 {
		return false
	}
	first := tokens[0]
	return len(first) >= 2 && strings.HasPrefix(first, "[") && strings.HasSuffix(first, "]")
}
