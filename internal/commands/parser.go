// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing one input line.
type ParseResult struct {
	// Input is the line as typed, trimmed
	Input string

	// Line is what was matched against the builtins: Input, or the
	// reconstructed builtin line when an alias matched
	Line string

	// Aliased is true when an alias rewrote the input
	Aliased bool

	// Command is the matched command (nil if not found)
	Command *Command

	// Args are the captured arguments, quotes removed
	Args []string

	// Error if the alias could not be rewritten or no command matched
	Error error
}

// Empty reports whether the line held nothing but whitespace.
func (r ParseResult) Empty() bool {
	return r.Input == ""
}

// =============================================================================
// PARSER
// =============================================================================

// AliasRewriter turns alias input into builtin input.
type AliasRewriter interface {
	Rewrite(input string) (string, bool, error)
	Paths() []string
}

// Parser resolves input lines to commands, going through aliases first.
type Parser struct {
	registry *Registry
	aliases  AliasRewriter
}

// NewParser creates a new parser. aliases may be nil.
func NewParser(registry *Registry, aliases AliasRewriter) *Parser {
	return &Parser{registry: registry, aliases: aliases}
}

// Parse resolves one line. An empty line yields an empty result without error.
func (p *Parser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	result := ParseResult{Input: input, Line: input}
	if input == "" {
		return result
	}

	if p.aliases != nil {
		line, aliased, err := p.aliases.Rewrite(input)
		if err != nil {
			result.Error = err
			return result
		}
		result.Line = line
		result.Aliased = aliased
	}

	cmd, args, ok := p.registry.Resolve(result.Line)
	if !ok {
		result.Error = &NotFoundError{
			Input:      input,
			Suggestion: Suggest(input, p.candidates()),
		}
		return result
	}

	result.Command = cmd
	result.Args = args
	return result
}

// candidates are the paths a typo may have meant.
func (p *Parser) candidates() []string {
	paths := p.registry.Paths()
	if p.aliases != nil {
		paths = append(paths, p.aliases.Paths()...)
	}
	return paths
}
