package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfrederiksen/bref-batting/internal/bref"
	"github.com/pfrederiksen/bref-batting/internal/cache"
	"github.com/pfrederiksen/bref-batting/internal/fetch"
	"github.com/pfrederiksen/bref-batting/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagStart    int
	flagEnd      int
	flagFormat   string
	flagDataDir  string
	flagNoCache  bool
	flagCacheTTL time.Duration
	flagVerbose  bool
	flagLogFile  string
)

// newFetcher builds the session used for live scraping. Tests swap it
// out to run commands against canned documents.
var newFetcher = func(log *zap.Logger) bref.Fetcher {
	return fetch.New(log)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bref-batting",
		Short: "Scrape batting statistics from baseball-reference.com",
		Long: `A CLI tool to scrape season-level and per-team batting statistics
from baseball-reference.com, normalized into a uniform table.
Results are cached on disk so repeated queries don't re-fetch.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().IntVar(&flagStart, "start", 0, "First season to collect (required)")
	cmd.PersistentFlags().IntVar(&flagEnd, "end", 0, "Final season to collect (defaults to --start)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text, json or csv")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "~/.local/share/bref-batting", "Data directory for cached results")
	cmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the result cache")
	cmd.PersistentFlags().DurationVar(&flagCacheTTL, "cache-ttl", cache.DefaultTTL, "How long cached results stay fresh")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Also write a full debug log to this rotating file")

	cmd.AddCommand(newTeamCmd())
	cmd.AddCommand(newSeasonCmd())
	cmd.AddCommand(newClearCacheCmd())

	return cmd
}

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team <code>",
		Short: "Season-level batting statistics for one franchise",
		Long: `Fetches season-level batting statistics for a single franchise,
identified by its baseball-reference abbreviation (e.g. NYY for the
Yankees), across the requested season range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team := strings.ToUpper(strings.TrimSpace(args[0]))
			return runQuery(cmd, "team-batting", func(client *bref.Client) (*bref.Table, error) {
				return client.TeamBatting(cmd.Context(), team, flagStart, flagEnd)
			}, team)
		},
	}
	return cmd
}

func newSeasonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Per-team batting statistics for whole seasons",
		Long: `Fetches the league-wide standard batting table, one row per
major-league team, for every season in the requested range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, "season-batting", func(client *bref.Client) (*bref.Table, error) {
				return client.SeasonBatting(cmd.Context(), flagStart, flagEnd)
			}, "")
		},
	}
	return cmd
}

func newClearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Remove all cached results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cache.New(flagDataDir, flagCacheTTL)
			if err != nil {
				return fmt.Errorf("initializing cache: %w", err)
			}
			removed, err := store.Clear()
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached results.\n", removed)
			return nil
		},
	}
}

// runQuery is the shared command logic: validate flags, check the result
// cache, scrape on a miss, persist, and render.
func runQuery(cmd *cobra.Command, name string, query func(*bref.Client) (*bref.Table, error), team string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON && format != FormatCSV {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'csv')", flagFormat)
	}
	if flagStart <= 0 {
		return bref.ErrInvalidSeason
	}

	// Canonicalize the range so "--start N" and "--start N --end N" hit
	// the same cache entry.
	end := flagEnd
	if end <= 0 {
		end = flagStart
	}

	var log *zap.Logger
	if flagLogFile != "" {
		fileLog, closer := logger.NewWithFile(flagVerbose, flagLogFile)
		defer closer.Close()
		log = fileLog
	} else {
		log = logger.New(flagVerbose)
	}
	defer log.Sync()

	var store *cache.Store
	var err error
	if !flagNoCache {
		store, err = cache.New(flagDataDir, flagCacheTTL)
		if err != nil {
			return fmt.Errorf("initializing cache: %w", err)
		}
	}

	key := cache.Key(name, team, strconv.Itoa(flagStart), strconv.Itoa(end))

	var table bref.Table
	fromCache := false
	if store != nil {
		hit, err := store.Get(key, &table)
		if err != nil {
			return fmt.Errorf("reading cache: %w", err)
		}
		fromCache = hit
	}

	if !fromCache {
		client := bref.NewClient(newFetcher(log), log)
		result, err := query(client)
		if err != nil {
			return err
		}
		table = *result

		if store != nil {
			if err := store.Put(key, &table); err != nil {
				log.Warn("failed to persist result", zap.Error(err))
			}
		}
	}

	result := &OutputResult{
		FetchedAt: time.Now().UTC(),
		Query:     name,
		Team:      team,
		Start:     flagStart,
		End:       end,
		Columns:   table.Columns,
		Rows:      table.Rows,
		RowCount:  len(table.Rows),
		FromCache: fromCache,
	}
	return WriteOutput(cmd.OutOrStdout(), result, format)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
