// Package cli implements the bref-batting command-line interface.
//
// The CLI exposes two query commands: "team" for a single franchise's
// season-level batting statistics and "season" for the league-wide
// per-team standard batting table. Results are memoized on disk keyed by
// the call arguments, and can be rendered as a text table, JSON, or CSV.
package cli
