// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jeranaias/violet/internal/alias"
)

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistryShortcuts(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindExit, "[e]"},
		{KindCurrentTime, "[wtii]"},
		{KindWhatsYourName, "[wiyn]"},
		{KindSayThisAndThat, "[psaaa] <ARG> <ARG>"},
		{KindAddAlias, "[aaafba] <ARG> <ARG>"},
		{KindRemoveAlias, "[raa] <ARG>"},
		{KindListAliases, "[la]"},
		{KindHelp, "[h]"},
		{KindListCommands, "[lac]"},
		{KindExplainCommand, "[eca] <ARG>"},
	}

	for _, tc := range tests {
		if got := registry.Shortcut(tc.kind); got != tc.want {
			t.Errorf("Shortcut(%d) = %q, want %q", tc.kind, got, tc.want)
		}
		cmd, ok := registry.Lookup(tc.want)
		if !ok || cmd.Kind != tc.kind {
			t.Errorf("Lookup(%q) did not return kind %d", tc.want, tc.kind)
		}
	}
}

func TestRegistryPaths(t *testing.T) {
	registry := NewRegistry()

	paths := registry.Paths()
	if len(paths) != 10 {
		t.Fatalf("Paths() returned %d paths, want 10: %v", len(paths), paths)
	}
	for _, p := range paths {
		if p[0] == '[' {
			t.Errorf("Paths() contains shortcut %q", p)
		}
	}
	if !registry.HasValue("list aliases") {
		t.Error("HasValue(list aliases) = false")
	}
	if registry.HasValue("list") {
		t.Error("HasValue(list) = true for a bare prefix")
	}
}

func TestRegistryRegisterArityMismatch(t *testing.T) {
	registry := NewRegistry()
	err := registry.Register(&Command{Kind: Kind(99), Path: "shout <ARG>"})
	if err == nil {
		t.Fatal("expected an error for a template without argument definitions")
	}
}

func TestRegistryByCategory(t *testing.T) {
	groups := NewRegistry().ByCategory()
	if len(groups["Aliases"]) != 3 {
		t.Errorf("Aliases category has %d commands, want 3", len(groups["Aliases"]))
	}
	if len(groups["Chit-chat"]) != 3 {
		t.Errorf("Chit-chat category has %d commands, want 3", len(groups["Chit-chat"]))
	}
}

// =============================================================================
// EXECUTE TESTS
// =============================================================================

// command looks a builtin up through its shortcut.
func command(r *Registry, kind Kind) *Command {
	cmd, _ := r.Lookup(r.Shortcut(kind))
	return cmd
}

func testEnv() Env {
	return Env{
		Name:        "Violet",
		ExitMessage: "Bye!",
		Now: func() time.Time {
			return time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)
		},
	}
}

func TestExecuteMessages(t *testing.T) {
	registry := NewRegistry()
	env := testEnv()

	tests := []struct {
		kind Kind
		args []string
		want Action
	}{
		{KindCurrentTime, nil, Action{Kind: ActionPrint, Message: "Your system clock says it's 03:04 PM now!"}},
		{KindWhatsYourName, nil, Action{Kind: ActionPrint, Message: "My name is Violet! Nice to meet you ^_^"}},
		{KindSayThisAndThat, []string{"a b", "c"}, Action{Kind: ActionPrint, Message: "Gotcha. Saying a b and c!"}},
		{KindSayThisAndThat, []string{"", ""}, Action{Kind: ActionPrint, Message: "Gotcha. Saying  and !"}},
		{KindExit, nil, Action{Kind: ActionExit, Message: "Bye!"}},
		{KindAddAlias, []string{"hi", "exit"}, Action{Kind: ActionAddAlias, Alias: "hi", Builtin: "exit"}},
		{KindRemoveAlias, []string{"hi"}, Action{Kind: ActionRemoveAlias, Alias: "hi"}},
		{KindListAliases, nil, Action{Kind: ActionListAliases}},
		{KindListCommands, nil, Action{Kind: ActionListCommands}},
		{KindExplainCommand, []string{"help"}, Action{Kind: ActionExplain, Target: "help"}},
	}

	for _, tc := range tests {
		got, err := command(registry, tc.kind).Execute(env, tc.args)
		if err != nil {
			t.Errorf("Execute(%d, %q) error: %v", tc.kind, tc.args, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Execute(%d, %q) mismatch (-want +got):\n%s", tc.kind, tc.args, diff)
		}
	}
}

func TestExecuteHelp(t *testing.T) {
	cmd := command(NewRegistry(), KindHelp)
	action, err := cmd.Execute(testEnv(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if action.Kind != ActionHelp || action.Message != cmd.Help {
		t.Errorf("help action = %+v", action)
	}
}

func TestExecuteArgumentErrors(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name string
		kind Kind
		args []string
		want Reason
	}{
		{"too few", KindSayThisAndThat, []string{"x"}, ReasonWrongCount},
		{"too many", KindExit, []string{"x"}, ReasonWrongCount},
		{"placeholder as alias", KindRemoveAlias, []string{"<ARG>"}, ReasonPlaceholderMisused},
		{"placeholder in say", KindSayThisAndThat, []string{"x", "<ARG>"}, ReasonPlaceholderMisused},
		{"empty alias", KindRemoveAlias, []string{""}, ReasonEmpty},
		{"empty builtin", KindAddAlias, []string{"hi", ""}, ReasonEmpty},
		{"empty explain", KindExplainCommand, []string{""}, ReasonEmpty},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := command(registry, tc.kind).Execute(testEnv(), tc.args)
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("expected ArgumentError, got %v", err)
			}
			if argErr.Reason != tc.want {
				t.Errorf("Reason = %d, want %d", argErr.Reason, tc.want)
			}
		})
	}
}

func TestArgumentErrorMessages(t *testing.T) {
	err := &ArgumentError{Arg: "alias to remove", Reason: ReasonEmpty}
	want := "argument named [alias to remove] is empty, which is not allowed in this context"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = &ArgumentError{Arg: "alias to remove", Reason: ReasonPlaceholderMisused}
	want = "keyword <ARG> used in the wrong context for argument [alias to remove]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// =============================================================================
// PARSER TESTS
// =============================================================================

func TestParserParse(t *testing.T) {
	registry := NewRegistry()
	aliases := alias.NewManager(registry, nil)
	if err := aliases.Add("hi <ARG> <ARG>", "please say <ARG> and <ARG>"); err != nil {
		t.Fatal(err)
	}
	parser := NewParser(registry, aliases)

	tests := []struct {
		input   string
		kind    Kind
		args    []string
		aliased bool
		line    string
	}{
		{"what time is it", KindCurrentTime, nil, false, "what time is it"},
		{"  exit  ", KindExit, nil, false, "exit"},
		{"[psaaa] x y", KindSayThisAndThat, []string{"x", "y"}, false, "[psaaa] x y"},
		{`please say "a b" and c`, KindSayThisAndThat, []string{"a b", "c"}, false, `please say "a b" and c`},
		{`hi "a b" c`, KindSayThisAndThat, []string{"a b", "c"}, true, `please say "a b" and c`},
		{`explain command "remove alias <ARG>"`, KindExplainCommand, []string{"remove alias <ARG>"}, false, `explain command "remove alias <ARG>"`},
	}

	for _, tc := range tests {
		result := parser.Parse(tc.input)
		if result.Error != nil {
			t.Errorf("Parse(%q) error: %v", tc.input, result.Error)
			continue
		}
		if result.Command.Kind != tc.kind {
			t.Errorf("Parse(%q) kind = %d, want %d", tc.input, result.Command.Kind, tc.kind)
		}
		if diff := cmp.Diff(tc.args, result.Args, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("Parse(%q) args mismatch (-want +got):\n%s", tc.input, diff)
		}
		if result.Aliased != tc.aliased {
			t.Errorf("Parse(%q) aliased = %v, want %v", tc.input, result.Aliased, tc.aliased)
		}
		if result.Line != tc.line {
			t.Errorf("Parse(%q) line = %q, want %q", tc.input, result.Line, tc.line)
		}
	}
}

func TestParserEmptyAndUnknown(t *testing.T) {
	parser := NewParser(NewRegistry(), nil)

	if result := parser.Parse(" \t "); !result.Empty() || result.Error != nil {
		t.Errorf("blank line: %+v", result)
	}

	result := parser.Parse("hepl")
	var notFound *NotFoundError
	if !errors.As(result.Error, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", result.Error)
	}
	if notFound.Suggestion != "help" {
		t.Errorf("Suggestion = %q, want help", notFound.Suggestion)
	}
	if notFound.Error() != "hepl: command does not exist." {
		t.Errorf("Error() = %q", notFound.Error())
	}
}

// =============================================================================
// SUGGEST TESTS
// =============================================================================

func TestSuggest(t *testing.T) {
	candidates := NewRegistry().Paths()

	tests := []struct {
		input string
		want  string
	}{
		{"hepl", "help"},
		{"exti", "exit"},
		{"list alias", "list aliases"},
		{"x", ""},
		{"xyz", ""},
		{"help", ""}, // exact
	}

	for _, tc := range tests {
		if got := Suggest(tc.input, candidates); got != tc.want {
			t.Errorf("Suggest(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
