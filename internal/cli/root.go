// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// root.go - The violet root command and its subcommands.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/violet/internal/alias"
	"github.com/jeranaias/violet/internal/commands"
	"github.com/jeranaias/violet/internal/config"
	"github.com/jeranaias/violet/internal/logging"
	"github.com/jeranaias/violet/internal/session"
	"github.com/jeranaias/violet/internal/store"
	"github.com/jeranaias/violet/internal/ui/styles"
	"github.com/jeranaias/violet/internal/util"
)

// BuildInfo is set at build time by main.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
	Author    string
}

type options struct {
	configPath string
	backend    string
	storePath  string
	verbose    bool
	noColor    bool
	command    string
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the violet command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "violet",
		Short: "A command interpreter with user-defined aliases",
		Long: `violet reads commands made of words and <ARG> placeholders and runs them.

Aliases map your own phrasing onto the builtin commands and are saved
between sessions. Type "help" inside the interpreter to get started.

Run without arguments to start the interactive interpreter.`,
		Version:       info.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterpreter(cmd, opts, info)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsageError, Err: err}
	})
	root.SetVersionTemplate(fmt.Sprintf("violet %s (commit %s, built %s)\n",
		info.Version, info.GitCommit, info.BuildDate))

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.violet/config.toml)")
	flags.StringVar(&opts.backend, "store", "", "alias store backend: "+strings.Join(store.Backends, " or "))
	flags.StringVar(&opts.storePath, "store-path", "", "alias store file (default in the config directory)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	root.Flags().StringVarP(&opts.command, "command", "c", "", "run one line and exit")

	root.AddCommand(newAliasesCommand(opts))
	root.AddCommand(newShortcutsCommand())
	root.AddCommand(newInitConfigCommand(opts))
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute(info BuildInfo) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(info)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || !exitErr.Silent {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
	}
	return ExitCode(err)
}

// =============================================================================
// INTERPRETER
// =============================================================================

func runInterpreter(cmd *cobra.Command, opts *options, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return configError(err)
	}
	dir, err := config.EnsureConfigDir()
	if err != nil {
		return configError(err)
	}

	logger, err := newLogger(cfg, dir, opts.verbose)
	if err != nil {
		return configError(err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.Open(cfg.Store.Backend, dir, cfg.Store.Path)
	if err != nil {
		return storeError(err)
	}

	color := ColorsEnabled(cfg.UI.Color)
	lipgloss.SetColorProfile(ColorProfile(color))
	out := NewTerminalOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), color, cfg.UI.Markdown)

	s, err := session.New(ctx, cfg, st, logger, out)
	if err != nil {
		_ = st.Close()
		return storeError(err)
	}
	logger.Info("violet started",
		zap.String("version", info.Version),
		zap.String("store", st.Path()),
		zap.String("backend", cfg.Store.Backend))

	if opts.command != "" {
		_, dispatchErr := s.Dispatch(opts.command)
		closeErr := s.CloseContext(context.WithoutCancel(ctx))
		if dispatchErr != nil {
			return &ExitError{Code: ExitCommandError, Err: dispatchErr, Silent: true}
		}
		return closeErr
	}

	if cfg.UI.Banner {
		s.Banner(info.Version, info.Author)
	}

	historyFile := ""
	if cfg.Interpreter.History {
		historyFile = filepath.Join(dir, "history")
	}
	repl := NewREPL(cfg.Interpreter.Prompt, historyFile, s.Completer().Lines)

	done := make(chan struct{})
	defer close(done)
	go interruptOnCancel(ctx, done, os.Stdin, logger)

	runErr := Run(ctx, s, repl, logger)
	replErr := repl.Close()
	if replErr != nil {
		logger.Warn("failed to save input history", zap.Error(replErr))
	}
	// The aliases are saved even when a signal cancelled ctx
	return errors.Join(runErr, s.CloseContext(context.WithoutCancel(ctx)))
}

// interruptOnCancel closes input when ctx is cancelled so a prompt blocked
// in liner returns and Run can stop. It never touches the session; the
// caller closes it once Run is back.
func interruptOnCancel(ctx context.Context, done <-chan struct{}, input io.Closer, logger *zap.Logger) {
	select {
	case <-ctx.Done():
		logger.Info("terminated by signal")
		_ = input.Close()
	case <-done:
	}
}

// loadConfig reads the config file and applies the command-line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.backend != "" {
		cfg.Store.Backend = strings.ToLower(opts.backend)
	}
	if opts.storePath != "" {
		cfg.Store.Path = opts.storePath
	}
	if opts.noColor {
		cfg.UI.Color = "never"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, dir string, verbose bool) (*zap.Logger, error) {
	file := cfg.Log.File
	if file == "" {
		file = filepath.Join(dir, "violet.log")
	}
	return logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    file,
		JSON:    cfg.Log.JSON,
		Verbose: verbose,
	})
}

// =============================================================================
// SUBCOMMANDS
// =============================================================================

func newAliasesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "Print the saved aliases",
		Long:  "Print the aliases saved by previous sessions without starting the interpreter.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return configError(err)
			}
			dir, err := config.ConfigDir()
			if err != nil {
				return configError(err)
			}
			st, err := store.Open(cfg.Store.Backend, dir, cfg.Store.Path)
			if err != nil {
				return storeError(err)
			}
			defer st.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			tree, err := st.Load(ctx)
			if err != nil {
				return storeError(err)
			}

			entries := alias.NewManager(commands.NewRegistry(), tree).List()
			printAliases(cmd.OutOrStdout(), entries, GetTerminalWidth())
			return nil
		},
	}
}

func printAliases(w io.Writer, entries []alias.Entry, maxWidth int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No saved aliases.")
		return
	}

	width := 0
	for _, e := range entries {
		width = max(width, util.StringWidth(e.Alias))
	}
	for _, e := range entries {
		line := util.PadRight(e.Alias, width) + " -> " + e.Builtin
		fmt.Fprintln(w, util.TruncateWidth(line, maxWidth))
	}
}

func newInitConfigCommand(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a config file with the default settings",
		Long: `Write the default configuration, with any --store, --store-path and
--no-color overrides applied, to the --config path or ~/.violet/config.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				var err error
				if path, err = config.ConfigPath(); err != nil {
					return configError(err)
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return configError(fmt.Errorf("%s already exists (use --force to overwrite)", path))
			}

			cfg := config.Default()
			if opts.backend != "" {
				cfg.Store.Backend = strings.ToLower(opts.backend)
			}
			if opts.storePath != "" {
				cfg.Store.Path = opts.storePath
			}
			if opts.noColor {
				cfg.UI.Color = "never"
			}
			if err := cfg.Validate(); err != nil {
				return configError(fmt.Errorf("invalid config: %w", err))
			}

			var err error
			if opts.configPath == "" {
				err = config.Save(cfg)
			} else {
				err = config.SaveTOML(cfg, path)
			}
			if err != nil {
				return configError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newShortcutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shortcuts",
		Short: "Print the shortcut of every builtin command",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := commands.NewRegistry()
			out := cmd.OutOrStdout()

			width := 0
			for _, c := range registry.All() {
				width = max(width, util.StringWidth(registry.Shortcut(c.Kind)))
			}
			groups := registry.ByCategory()
			categories := make([]string, 0, len(groups))
			for category := range groups {
				categories = append(categories, category)
			}
			sort.Strings(categories)

			for _, category := range categories {
				fmt.Fprintf(out, "%s:\n", category)
				for _, c := range groups[category] {
					fmt.Fprintf(out, "  %s  %s\n", util.PadRight(registry.Shortcut(c.Kind), width), c.Path)
				}
			}
			return nil
		},
	}
}
