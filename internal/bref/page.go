package bref

import "fmt"

// PageKind identifies which of the two supported baseball-reference page
// layouts is being scraped.
type PageKind int

const (
	// TeamSeasonPage is a single franchise's season page,
	// e.g. /teams/NYY/2019.shtml.
	TeamSeasonPage PageKind = iota
	// LeagueSeasonPage is the league-wide standard batting page,
	// e.g. /leagues/majors/2020-standard-batting.shtml.
	LeagueSeasonPage
)

// BaseURL is the root of the scraped site.
const BaseURL = "https://www.baseball-reference.com"

func (k PageKind) String() string {
	switch k {
	case TeamSeasonPage:
		return "team-season"
	case LeagueSeasonPage:
		return "league-season"
	default:
		return fmt.Sprintf("PageKind(%d)", int(k))
	}
}

// missingTableFatal is the per-page-kind policy for a page whose batting
// table is absent. Team pages abort the whole range (the table should
// always exist for a real team/season); league pages skip the season and
// continue, since old or future seasons may simply not be published.
func (k PageKind) missingTableFatal() bool {
	return k == TeamSeasonPage
}

// pageRequest addresses one page fetch. Team is required iff Kind is
// TeamSeasonPage.
type pageRequest struct {
	Kind   PageKind
	Team   string
	Season int
}

// URL builds the page address for the request.
func (r pageRequest) URL() string {
	if r.Kind == TeamSeasonPage {
		return fmt.Sprintf("%s/teams/%s/%d.shtml", BaseURL, r.Team, r.Season)
	}
	return fmt.Sprintf("%s/leagues/majors/%d-standard-batting.shtml", BaseURL, r.Season)
}
