// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles defines the colors used by the violet terminal output.

Every color is a Lip Gloss AdaptiveColor, so it adapts to light and dark
terminals. The Render helpers prefix messages with an ASCII indicator
([OK], [X], [!], [i]) that keeps the status visible when colors are off.
*/
package styles
