// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"

	"github.com/jeranaias/violet/internal/pathtree"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completion is a single completion candidate.
type Completion struct {
	// Value replaces the whole input line
	Value string

	// Description is shown next to the value when listing
	Description string

	// Score ranks candidates, higher first
	Score int
}

// Completer handles tab completion of command templates and aliases.
type Completer struct {
	registry *Registry

	// AliasesFn returns the currently defined alias paths
	AliasesFn func() []string
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns candidates whose template starts with the input typed so
// far. Placeholders are kept in the value so the user can see where the
// arguments go.
func (c *Completer) Complete(input string) []Completion {
	partial := strings.TrimLeft(input, " \t")
	trailingSpace := strings.HasSuffix(partial, " ")
	partial = pathtree.Canonical(partial)
	if trailingSpace && partial != "" {
		partial += " "
	}

	var completions []Completion
	if c.registry != nil {
		for _, cmd := range c.registry.All() {
			if strings.HasPrefix(cmd.Path, partial) {
				completions = append(completions, Completion{
					Value:       cmd.Path,
					Description: cmd.Description,
					Score:       calculateScore(cmd.Path, partial),
				})
			}
		}
	}
	if c.AliasesFn != nil {
		for _, alias := range c.AliasesFn() {
			if strings.HasPrefix(alias, partial) {
				completions = append(completions, Completion{
					Value:       alias,
					Description: "alias",
					Score:       calculateScore(alias, partial) - 10, // Slightly lower score for aliases
				})
			}
		}
	}

	sortCompletions(completions)
	return completions
}

// Lines adapts Complete to line editors that want whole replacement lines.
func (c *Completer) Lines(line string) []string {
	completions := c.Complete(line)
	if len(completions) == 0 {
		return nil
	}
	lines := make([]string, len(completions))
	for i, comp := range completions {
		lines[i] = comp.Value
	}
	return lines
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// calculateScore calculates a match score for completion ranking.
// Higher score = better match.
func calculateScore(value, partial string) int {
	score := 100

	if value == partial {
		return score + 100
	}

	if strings.HasPrefix(value, partial) {
		score += 50
		score += 20 - len(value)
	}

	// Placeholders left to fill cost a little
	score -= 2 * pathtree.ArgCount(value)

	return score
}

// sortCompletions sorts completions by score (descending), then alphabetically.
func sortCompletions(completions []Completion) {
	sort.Slice(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}
