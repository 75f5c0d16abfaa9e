// Package bref scrapes batting statistics tables from baseball-reference.com.
//
// The bref package handles the two supported page layouts: a single
// franchise's season page (team batting) and the league-wide standard
// batting page (one row per team). It locates the relevant table in the
// fetched HTML, derives stable column headings, cleans row-level artifacts
// such as award decorations and aggregate rows, and assembles results
// across a season range into one uniform table. All cell values are raw
// trimmed strings; type coercion is left to the caller.
package bref
