// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session runs the interpreter: it owns the builtin registry, the
// user's aliases and the store they are persisted to.
//
// # Key Types
//
//   - Session: boot, Dispatch of input lines, shutdown
//   - Result: what one dispatched line did
//   - Output: where the session prints; the CLI supplies a styled one
//
// # Usage
//
//	s, err := session.New(ctx, cfg, st, logger, out)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	res, _ := s.Dispatch("please say hi and bye")
//	if res.Exit {
//	    return nil
//	}
package session
