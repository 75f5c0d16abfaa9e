package bref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// leagueAverageLabel is the label of the league page's synthetic
// average row.
const leagueAverageLabel = "League Average"

// aggregateMarkers identify summary rows (team totals, league-wide
// rollups) that are not real per-player or per-team records.
var aggregateMarkers = []string{"Totals", "NL teams", "AL teams", leagueAverageLabel}

// cleanCell trims a raw cell and strips the site's award decoration
// characters ('*' for All-Star, '#' for award winners on some pages).
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "*", "")
	return strings.ReplaceAll(s, "#", "")
}

// isAggregateRow reports whether any cell matches an aggregate marker.
func isAggregateRow(cells []string) bool {
	for _, c := range cells {
		for _, marker := range aggregateMarkers {
			if strings.Contains(c, marker) {
				return true
			}
		}
	}
	return false
}

// normalizeTeamRow extracts one data row from a team season table,
// injecting the season as the third field. Returns nil for rows without
// data cells (header separators) and for aggregate rows.
func normalizeTeamRow(row *goquery.Selection, season int) []string {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return nil
	}
	out := make([]string, 0, cells.Length()+1)
	cells.Each(func(_ int, td *goquery.Selection) {
		out = append(out, cleanCell(td.Text()))
	})
	if isAggregateRow(out) {
		return nil
	}
	return insertAt(out, 2, strconv.Itoa(season))
}

// normalizeLeagueRow extracts one row from the league standard batting
// table. The leading label cell carries both the team's display name and
// a link whose target encodes the team abbreviation; season, abbreviation
// and name become the first three fields, replacing the label cell. The
// synthetic league average row is skipped.
func normalizeLeagueRow(row *goquery.Selection, season int) []string {
	label := row.Find(`th[data-stat="` + leagueNameColumn + `"]`).First()
	if label.Length() == 0 {
		return nil
	}
	teamName := strings.TrimSpace(label.Text())
	if teamName == "" || teamName == leagueAverageLabel {
		return nil
	}

	abbrev := teamAbbrevFromHref(label.Find("a").First().AttrOr("href", ""))

	out := []string{strconv.Itoa(season), abbrev, cleanCell(teamName)}
	row.Find("td").Each(func(_ int, td *goquery.Selection) {
		out = append(out, cleanCell(td.Text()))
	})
	return out
}

// teamAbbrevFromHref decodes the team code from a link target like
// "/teams/NYY/2020.shtml" (second path segment).
func teamAbbrevFromHref(href string) string {
	parts := strings.Split(href, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// normalizeRows runs the row normalizer over every body row of a located
// table, enforcing that each surviving row matches the established
// heading count. Rows carrying no real data are dropped.
func normalizeRows(table *goquery.Selection, kind PageKind, season, want int) ([][]string, error) {
	sel := table.Find("tr")
	if kind == LeagueSeasonPage {
		sel = table.Find("tbody tr")
	}

	var rows [][]string
	var shapeErr error
	sel.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		var row []string
		switch kind {
		case TeamSeasonPage:
			row = normalizeTeamRow(tr, season)
		case LeagueSeasonPage:
			row = normalizeLeagueRow(tr, season)
		}
		if row == nil || isBlankRow(row, kind) {
			return true
		}
		if len(row) != want {
			shapeErr = fmt.Errorf("%w: season %d row has %d fields, table has %d columns",
				ErrShapeMismatch, season, len(row), want)
			return false
		}
		rows = append(rows, row)
		return true
	})
	if shapeErr != nil {
		return nil, shapeErr
	}
	return rows, nil
}

// isBlankRow reports whether every field that came from the source table
// is empty, i.e. the row carries only injected derived values.
func isBlankRow(row []string, kind PageKind) bool {
	for i, c := range row {
		if kind == TeamSeasonPage && i == 2 {
			continue
		}
		if kind == LeagueSeasonPage && i < 3 {
			continue
		}
		if c != "" {
			return false
		}
	}
	return true
}
