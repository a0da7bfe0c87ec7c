// Package macrojournal provides the core types and logic of a journaling
// application for discretionary macro traders. It is designed to be
// local-first: all state lives in plain files under the user's control.
//
// The core functionalities include:
//   - Monthly Bias Tracking: one fundamental bias (bullish, bearish or
//     neutral) per asset per calendar month, synthesized by an intelligence
//     provider and cached locally, with a static seed as the ultimate
//     fallback so the journal is never left without a bias set.
//   - Trade Journaling: recording trades tagged at creation time with
//     whether they aligned with the prevailing bias, including an immutable
//     snapshot of that bias as a historical record.
//   - Analytics: simple win-rate, average-R and alignment-rate summaries
//     over the recorded history.
//   - Data Persistence: encoding and decoding of trades and bias snapshots
//     to and from human-readable JSON/JSONL slots.
//
// This package serves as the foundational logic for the `mj` command-line
// tool; the Manager type is the single owner of all mutable state.
package macrojournal
