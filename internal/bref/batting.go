package bref

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Fetcher retrieves a raw page body. Session behavior such as retries and
// throttling lives behind this interface so the pipeline can be tested
// against canned documents.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client scrapes batting statistics from baseball-reference. A Client is
// a pure function of its arguments apart from fetch traffic, which is
// what allows callers to memoize results keyed by the call signature.
type Client struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewClient creates a Client using the given fetcher. A nil logger
// disables logging.
func NewClient(fetcher Fetcher, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{fetcher: fetcher, logger: logger}
}

// TeamBatting returns season-level batting statistics for one franchise
// (e.g. "NYY") across the inclusive season range. Passing endSeason <= 0
// requests the single startSeason. The injected season appears in the
// "Year" column, the third column of the result.
func (c *Client) TeamBatting(ctx context.Context, team string, startSeason, endSeason int) (*Table, error) {
	if team == "" {
		return nil, ErrInvalidTeam
	}
	return c.aggregate(ctx, TeamSeasonPage, team, startSeason, endSeason)
}

// SeasonBatting returns one row per major-league team for each season in
// the inclusive range, excluding the league average row. Passing
// endSeason <= 0 requests the single startSeason. The first three columns
// are season, team_abbrev and team_name.
func (c *Client) SeasonBatting(ctx context.Context, startSeason, endSeason int) (*Table, error) {
	return c.aggregate(ctx, LeagueSeasonPage, "", startSeason, endSeason)
}

// aggregate drives the pipeline over the inclusive season range: fetch
// each page, locate its table, establish headings from the first table
// seen, normalize every row, and assemble one uniform result.
func (c *Client) aggregate(ctx context.Context, kind PageKind, team string, startSeason, endSeason int) (*Table, error) {
	if startSeason <= 0 {
		return nil, ErrInvalidSeason
	}
	if endSeason <= 0 {
		endSeason = startSeason
	}
	if endSeason < startSeason {
		return nil, fmt.Errorf("%w: end season %d precedes start season %d",
			ErrInvalidSeason, endSeason, startSeason)
	}

	var headings []string // established once, from the first table shape seen
	var rows [][]string

	for season := startSeason; season <= endSeason; season++ {
		req := pageRequest{Kind: kind, Team: team, Season: season}
		c.logger.Info("fetching batting page",
			zap.Stringer("page", kind),
			zap.Int("season", season),
			zap.String("team", team),
		)

		body, err := c.fetcher.Fetch(ctx, req.URL())
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", req.URL(), err)
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", req.URL(), err)
		}

		table, err := locateTable(doc, kind)
		if err != nil {
			if !kind.missingTableFatal() {
				c.logger.Warn("no batting table for season, skipping",
					zap.Stringer("page", kind),
					zap.Int("season", season),
				)
				continue
			}
			return nil, fmt.Errorf("%s %s %d: %w", kind, team, season, err)
		}

		if headings == nil {
			raw, err := resolveHeadings(table, kind)
			if err != nil {
				return nil, fmt.Errorf("season %d: %w", season, err)
			}
			headings = finalizeHeadings(raw, kind)
		}

		seasonRows, err := normalizeRows(table, kind, season, len(headings))
		if err != nil {
			return nil, err
		}
		rows = append(rows, seasonRows...)
	}

	if headings == nil {
		// every season in the range was skipped
		c.logger.Warn("no batting tables found in season range",
			zap.Stringer("page", kind),
			zap.Int("start_season", startSeason),
			zap.Int("end_season", endSeason),
		)
		return &Table{}, nil
	}
	return &Table{Columns: headings, Rows: rows}, nil
}
