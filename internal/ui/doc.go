// Package ui renders the stackwatch terminal interface with Bubble Tea.
//
// The Model is the single owner of everything on screen. A fixed tick
// fetches the latest view from the shared state store; every snapshot is
// diffed against the one before it so rows that appeared or changed get one
// cycle of background emphasis. Selection follows the container ID across
// polls rather than the row index, so the cursor stays put while the table
// shifts underneath it.
//
// Entering a container opens a live log stream owned by a logSession. Its
// pump goroutine fills a ring buffer and signals the event loop through a
// coalesced channel; the loop re-arms a wait command after each delivery,
// which is the Bubble Tea idiom for external event sources.
package ui
