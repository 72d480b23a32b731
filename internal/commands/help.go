// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

// Help texts are Markdown. They are rendered with glamour when the terminal
// supports it and printed verbatim otherwise.

const helpExit = `**exit**: save your aliases and leave.

Shortcut: ` + "`[e]`"

const helpCurrentTime = `**what time is it**: tell the time according to your system clock.

Shortcut: ` + "`[wtii]`"

const helpWhatsYourName = `**what is your name**: the interpreter introduces itself.

Shortcut: ` + "`[wiyn]`"

const helpSayThisAndThat = `**please say <ARG> and <ARG>**: repeat two things back to you.

Wrap an argument of several words in double quotes:

    please say "good morning" and goodbye

Shortcut: ` + "`[psaaa] <ARG> <ARG>`"

const helpAddAlias = `**add alias <ARG> for builtin <ARG>**: define a new name for a builtin command.

The alias must contain exactly as many ` + "`<ARG>`" + ` placeholders as the builtin.
Quote both paths when they have more than one word:

    add alias "hi <ARG> <ARG>" for builtin "please say <ARG> and <ARG>"
    hi there friend

An alias cannot reuse the name of a builtin or of another alias.
Shortcut: ` + "`[aaafba] <ARG> <ARG>`"

const helpRemoveAlias = `**remove alias <ARG>**: delete an alias you defined.

Builtin commands cannot be removed.

    remove alias "hi <ARG> <ARG>"

Shortcut: ` + "`[raa] <ARG>`"

const helpListAliases = `**list aliases**: show every alias and the builtin it runs.

Shortcut: ` + "`[la]`"

const helpHelp = `**help**: the basics.

Type a command and press enter. Commands are plain words, some of them take
arguments written in place of ` + "`<ARG>`" + `. Arguments of several words go
between double quotes.

Every command also has a shortcut made of the first letter of each word in
square brackets, ` + "`<ARG>`" + ` counting as ` + "`a`" + `: ` + "`[h]`" + ` for help,
` + "`[psaaa] x y`" + ` for ` + "`please say x and y`" + `.

Useful commands:

- ` + "`list available commands`" + `
- ` + "`explain command <ARG>`" + `
- ` + "`add alias <ARG> for builtin <ARG>`" + `
- ` + "`exit`"

const helpListCommands = `**list available commands**: show every builtin command and its shortcut.

Shortcut: ` + "`[lac]`"

const helpExplainCommand = `**explain command <ARG>**: show the help of one command.

Quote commands of several words:

    explain command "please say <ARG> and <ARG>"

Shortcut: ` + "`[eca] <ARG>`"
