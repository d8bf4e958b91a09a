// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal implements the sequential reveal scheduler used to surface
// assistant replies and event cards incrementally.
//
// A Session owns an ordered list of units (deduplicated, trimmed paragraphs)
// and an explicit cursor. Each Tick exposes exactly one more unit; after the
// last unit the session is terminal and further ticks are no-ops. Sessions do
// not schedule themselves: the hosting UI drives them from its own timer and
// a Controller drops ticks that belong to a superseded session, so stale
// timers can never write into fresh output.
package reveal
