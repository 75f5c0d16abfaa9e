package bref

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

const (
	// teamTableSelector matches the sortable statistics table on a team
	// season page. The page carries several tables; the batting table is
	// the first one with this class pair.
	teamTableSelector = "table.sortable.stats_table"

	// leagueTableID is the stable element id of the per-team standard
	// batting table on a league season page.
	leagueTableID = "teams_standard_batting"
)

// locateTable finds the one relevant batting table for the page kind.
// Read-only; returns ErrTableNotFound when the page has no such table.
func locateTable(doc *goquery.Document, kind PageKind) (*goquery.Selection, error) {
	var sel *goquery.Selection
	switch kind {
	case TeamSeasonPage:
		sel = doc.Find(teamTableSelector).First()
	case LeagueSeasonPage:
		sel = doc.Find("table#" + leagueTableID).First()
	default:
		return nil, fmt.Errorf("unsupported page kind %s", kind)
	}
	if sel.Length() == 0 {
		return nil, ErrTableNotFound
	}
	return sel, nil
}
