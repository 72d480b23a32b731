// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/violet/internal/alias"
	"github.com/jeranaias/violet/internal/commands"
	"github.com/jeranaias/violet/internal/config"
	"github.com/jeranaias/violet/internal/pathtree"
	"github.com/jeranaias/violet/internal/store"
	"github.com/jeranaias/violet/internal/util"
)

// =============================================================================
// SESSION
// =============================================================================

// Session is one run of the interpreter: the builtin registry, the user's
// aliases and the store they persist to.
type Session struct {
	mu sync.Mutex

	sessionID string
	startTime time.Time
	isDirty   bool
	closed    bool

	cfg      *config.Config
	env      commands.Env
	registry *commands.Registry
	aliases  *alias.Manager
	parser   *commands.Parser

	store         store.Store
	lock          *store.Lock
	watcher       *store.Watcher
	aliasesOnBoot int

	logger *zap.Logger
	out    Output
}

// New starts a session. Aliases are loaded from st; a corrupt or unreadable
// store is reported and the session starts without aliases. st may be nil to
// run without persistence.
func New(ctx context.Context, cfg *config.Config, st store.Store, logger *zap.Logger, out Output) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		sessionID: uuid.NewString(),
		startTime: time.Now(),
		cfg:       cfg,
		env: commands.Env{
			Name:        util.Capitalize(cfg.Interpreter.Name),
			ExitMessage: cfg.Interpreter.ExitMessage,
		},
		registry: commands.NewRegistry(),
		store:    st,
		out:      out,
	}
	s.logger = logger.With(zap.String("session", s.sessionID))

	tree := pathtree.New[string]()
	if st != nil {
		if cfg.Store.Lock {
			lock, err := store.AcquireLock(st.Path())
			if err != nil {
				return nil, fmt.Errorf("failed to lock alias store: %w", err)
			}
			s.lock = lock
			s.logger.Debug("locked alias store", zap.String("lock", lock.Path()))
		}

		existed := st.Exists()
		loaded, err := st.Load(ctx)
		switch {
		case err != nil:
			s.logger.Warn("could not load aliases, starting without them",
				zap.String("path", st.Path()), zap.Error(err))
			s.out.Error(fmt.Sprintf("ERROR: couldn't load the saved aliases, starting without them: %v", err))
		case existed:
			tree = loaded
			s.logger.Info("loaded aliases", zap.String("path", st.Path()), zap.Int("count", len(tree.Paths())))
			s.out.Print("INFO: loaded the saved aliases successfully!")
		}

		if cfg.Store.Watch {
			w, err := store.NewWatcher(st.Path(), s.logger)
			if err != nil {
				s.logger.Warn("alias store watcher disabled", zap.Error(err))
			} else {
				s.watcher = w
			}
		}
	}

	s.aliases = alias.NewManager(s.registry, tree)
	s.aliasesOnBoot = s.aliases.Len()
	s.parser = commands.NewParser(s.registry, s.aliases)

	s.logger.Debug("session started", zap.Int("aliases", s.aliasesOnBoot))
	return s, nil
}

// SetClock replaces the clock used by "what time is it".
func (s *Session) SetClock(now func() time.Time) {
	s.env.Now = now
}

// =============================================================================
// SESSION STATE
// =============================================================================

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	return s.sessionID
}

// Duration returns how long the session has been active.
func (s *Session) Duration() time.Duration {
	return time.Since(s.startTime)
}

// MarkDirty records that the aliases changed and must be persisted.
func (s *Session) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isDirty = true
}

// IsDirty reports whether the aliases changed during the session.
func (s *Session) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isDirty
}

// Registry returns the builtin commands.
func (s *Session) Registry() *commands.Registry {
	return s.registry
}

// Aliases returns the alias manager.
func (s *Session) Aliases() *alias.Manager {
	return s.aliases
}

// Completer returns a completer over the builtins and the current aliases.
func (s *Session) Completer() *commands.Completer {
	c := commands.NewCompleter(s.registry)
	c.AliasesFn = s.aliases.Paths
	return c
}

// Status represents the current session status.
type Status struct {
	SessionID string
	StartTime time.Time
	Duration  time.Duration
	Aliases   int
	IsDirty   bool
}

// GetStatus returns the current session status.
func (s *Session) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		SessionID: s.sessionID,
		StartTime: s.startTime,
		Duration:  time.Since(s.startTime),
		Aliases:   s.aliases.Len(),
		IsDirty:   s.isDirty,
	}
}

// =============================================================================
// BANNER
// =============================================================================

// Banner prints the welcome text. An empty author prints as "???".
func (s *Session) Banner(version, author string) {
	if author == "" {
		author = "???"
	}
	name := util.Capitalize(s.cfg.Interpreter.Name)
	s.out.Print(fmt.Sprintf("Welcome to %s the command interpreter!", name))
	s.out.Print(fmt.Sprintf("%s's version is %s;", name, version))
	s.out.Print(fmt.Sprintf("Created by %s.", author))
	s.out.Print(fmt.Sprintf("To get help with the basics of %s, type:\nhelp\n\tor\n[h]\nand press <ENTER>.", name))
}

// =============================================================================
// SHUTDOWN
// =============================================================================

// Close persists the aliases, releases the store and prints the exit
// message. Calling Close again does nothing.
//
// Aliases are saved only when they changed. When every alias that existed at
// startup was removed and store.delete_when_empty is set, the store is
// deleted instead.
func (s *Session) Close() error {
	return s.CloseContext(context.Background())
}

// CloseContext is Close with a context for the store operations.
func (s *Session) CloseContext(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	dirty := s.isDirty
	s.mu.Unlock()

	var errs []error

	// Stop watching before our own write shows up as a change
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		if s.watcher.Changed() && dirty {
			s.logger.Warn("alias store changed by another process, overwriting it")
			s.out.Error("WARNING: the saved aliases were changed by another process during this session and will be overwritten.")
		}
	}

	if s.store != nil && dirty {
		if err := s.persist(ctx); err != nil {
			s.logger.Error("failed to persist aliases", zap.Error(err))
			s.out.Error(fmt.Sprintf("ERROR: couldn't save aliases: %v", err))
			errs = append(errs, err)
		}
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.lock.Release(); err != nil {
		errs = append(errs, err)
	}

	status := s.GetStatus()
	s.logger.Debug("session ended",
		zap.Time("started", status.StartTime),
		zap.String("duration", FormatDuration(status.Duration)),
		zap.Int("aliases", status.Aliases),
		zap.Bool("dirty", status.IsDirty))
	s.out.Print(s.env.ExitMessage)
	return errors.Join(errs...)
}

func (s *Session) persist(ctx context.Context) error {
	tree := s.aliases.Tree()

	if tree.Empty() {
		if s.aliasesOnBoot == 0 {
			return nil
		}
		if s.cfg.Store.DeleteWhenEmpty {
			if !s.store.Exists() {
				return nil
			}
			s.out.Print("INFO: all aliases have been removed, removing the saved aliases...")
			return s.store.Delete(ctx)
		}
	}

	if err := s.store.Save(ctx, tree); err != nil {
		return err
	}
	s.logger.Info("saved aliases", zap.String("path", s.store.Path()), zap.Int("count", s.aliases.Len()))
	s.out.Print("INFO: saved aliases successfully before exiting ^_^")
	return nil
}

// FormatDuration returns a human-readable duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return strconv.Itoa(int(d.Seconds())) + "s"
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	if secs == 0 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
}
