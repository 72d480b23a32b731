// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pathtree

import "strings"

// Quote delimits multi-word arguments in an input path.
const Quote = `"`

// Match is a registered template together with the argument values an input
// path supplied for its placeholders, in order.
type Match struct {
	Template string
	Args     []string
}

// segment is one unit of input: a single token, or a quoted span that can
// only ever fill a placeholder.
type segment struct {
	text   string
	quoted bool
}

// Resolve matches input against the templates registered in t.
//
// Quoted spans are tried first: each span fills exactly one placeholder with
// its enclosed tokens. When the input has no well-formed spans, or the quoted
// reading matches nothing, input is walked one token at a time. Literal
// tokens always win over placeholders, and the walk never backtracks.
//
// An input token equal to <ARG> is never matched against a literal <ARG>
// in a template; it only fills a placeholder, and comes back as an argument.
func Resolve[V any](t *Tree[V], input string) (Match, bool) {
	tokens := Tokenize(input)
	if len(tokens) == 0 {
		return Match{}, false
	}

	if segs, ok := quotedSegments(tokens); ok {
		if m, ok := walk(t, segs); ok {
			return m, true
		}
	}

	segs := make([]segment, len(tokens))
	for i, tok := range tokens {
		segs[i] = segment{text: tok}
	}
	m, ok := walk(t, segs)
	if !ok {
		return Match{}, false
	}
	for _, arg := range m.Args {
		if arg == Quote {
			return Match{}, false
		}
	}
	return m, true
}

// quotedSegments groups tokens into quoted spans and plain tokens. It fails on
// a lone quote token, a span closed before it opens, a span opened inside
// another one, a span left open, or input without any span.
func quotedSegments(tokens []string) ([]segment, bool) {
	segs := make([]segment, 0, len(tokens))
	start := -1
	spans := 0

	for i, tok := range tokens {
		if tok == Quote {
			return nil, false
		}
		opens := strings.HasPrefix(tok, Quote)
		closes := strings.HasSuffix(tok, Quote)

		if start < 0 {
			switch {
			case opens && closes:
				segs = append(segs, segment{text: unquote(tok), quoted: true})
				spans++
			case opens:
				start = i
			case closes:
				return nil, false
			default:
				segs = append(segs, segment{text: tok})
			}
			continue
		}

		if opens {
			return nil, false
		}
		if closes {
			segs = append(segs, segment{text: unquote(Join(tokens[start : i+1])), quoted: true})
			spans++
			start = -1
		}
	}

	if start >= 0 || spans == 0 {
		return nil, false
	}
	return segs, true
}

func unquote(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, Quote), Quote)
}

// walk extends the matched template one segment at a time. A plain token is
// first tried literally, then as a placeholder; quoted spans and literal
// placeholder tokens only ever fill placeholders.
func walk[V any](t *Tree[V], segs []segment) (Match, bool) {
	matched := make([]string, 0, len(segs))
	var args []string

	for _, seg := range segs {
		if !seg.quoted && seg.text != Placeholder {
			if _, ok := t.nodes[Append(matched, seg.text)]; ok {
				matched = append(matched, seg.text)
				continue
			}
		}
		if _, ok := t.nodes[Append(matched, Placeholder)]; !ok {
			return Match{}, false
		}
		matched = append(matched, Placeholder)
		args = append(args, seg.text)
	}

	template := Join(matched)
	if n, ok := t.nodes[template]; !ok || !n.HasValue {
		return Match{}, false
	}
	return Match{Template: template, Args: args}, true
}
