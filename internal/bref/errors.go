package bref

import "errors"

var (
	// ErrInvalidSeason means the caller did not provide a usable season
	// range. Raised before any network access.
	ErrInvalidSeason = errors.New("at least one season is required: pass a single start season, or a start and end season")

	// ErrInvalidTeam means the team-page caller did not provide a
	// franchise abbreviation. Raised before any network access.
	ErrInvalidTeam = errors.New(`a team abbreviation is required, e.g. "NYY"`)

	// ErrTableNotFound means the expected batting table is absent from a
	// fetched page, either because the season has no published data or
	// because the site markup changed.
	ErrTableNotFound = errors.New("batting table not found")

	// ErrShapeMismatch means a normalized row's field count diverged from
	// the established headings. Surfaced instead of silently truncating.
	ErrShapeMismatch = errors.New("row shape does not match table headings")
)
