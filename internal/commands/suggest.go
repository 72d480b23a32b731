// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Command suggestion for typo correction.
package commands

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/jeranaias/violet/internal/pathtree"
)

// Suggest returns the candidate closest to an input that matched nothing, or
// "" when none is close enough.
//
// Inputs that are a subsequence of a candidate ("list alias") win first,
// ranked by distance. Otherwise the Levenshtein distance must stay below a
// threshold based on input length, which catches typos like "hepl".
func Suggest(input string, candidates []string) string {
	input = pathtree.Canonical(input)

	// Don't suggest for very short inputs (likely intentional)
	if len(input) < 2 || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(input, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		if ranks[0].Distance == 0 {
			return ""
		}
		return ranks[0].Target
	}

	// For very short inputs (<=3 chars): allow 1 edit
	// For short inputs (4-8 chars): allow 2 edits
	// For longer inputs: allow 3 edits
	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := -1
	for _, candidate := range candidates {
		distance := fuzzy.LevenshteinDistance(input, candidate)
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = candidate
		}
	}

	return bestMatch
}
