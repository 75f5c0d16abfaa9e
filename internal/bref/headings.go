package bref

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// teamHeadingCount caps how many header cells are read from a team page
// table after skipping the leading row-label cell. Team tables also use
// th elements for the row-number column of every body row; the cap keeps
// those out of the headings.
const teamHeadingCount = 27

// Derived column names inserted by the pipeline. Team pages label the
// injected season column "Year"; league pages use the lowercase trio to
// match the table's own data-stat identifiers.
const (
	teamYearColumn     = "Year"
	leagueSeasonColumn = "season"
	leagueAbbrevColumn = "team_abbrev"
	leagueNameColumn   = "team_name"
)

// resolveHeadings derives the ordered column names from a located table.
// Team pages take the visible text of the header cells; league pages take
// the machine-readable data-stat attribute of each thead cell. Order is
// semantically meaningful and is never re-sorted.
func resolveHeadings(table *goquery.Selection, kind PageKind) ([]string, error) {
	var headings []string
	switch kind {
	case TeamSeasonPage:
		table.Find("th").EachWithBreak(func(i int, th *goquery.Selection) bool {
			if i == 0 {
				// leading row-label cell
				return true
			}
			headings = append(headings, strings.TrimSpace(th.Text()))
			return len(headings) < teamHeadingCount
		})
	case LeagueSeasonPage:
		table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
			headings = append(headings, th.AttrOr("data-stat", ""))
		})
	}
	if len(headings) == 0 {
		return nil, fmt.Errorf("no header cells in %s table", kind)
	}

	seen := make(map[string]bool, len(headings))
	for _, h := range headings {
		if h == "" {
			return nil, fmt.Errorf("empty column name in %s table headings", kind)
		}
		if seen[h] {
			return nil, fmt.Errorf("duplicate column name %q in %s table headings", h, kind)
		}
		seen[h] = true
	}
	return headings, nil
}

// finalizeHeadings injects the derived column names at their contract
// positions: team pages get "Year" as the third column, league pages
// replace the raw team label column with season, team_abbrev and
// team_name up front.
func finalizeHeadings(raw []string, kind PageKind) []string {
	if kind == TeamSeasonPage {
		return insertAt(raw, 2, teamYearColumn)
	}
	out := make([]string, 0, len(raw)+2)
	out = append(out, leagueSeasonColumn, leagueAbbrevColumn, leagueNameColumn)
	out = append(out, raw[1:]...)
	return out
}

// insertAt returns a copy of values with v inserted at index i, or
// appended when the slice is shorter than i.
func insertAt(values []string, i int, v string) []string {
	if i > len(values) {
		i = len(values)
	}
	out := make([]string, 0, len(values)+1)
	out = append(out, values[:i]...)
	out = append(out, v)
	out = append(out, values[i:]...)
	return out
}
