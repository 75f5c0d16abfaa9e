package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)

// OutputResult contains data to be output
type OutputResult struct {
	FetchedAt time.Time  `json:"fetched_at"`
	Query     string     `json:"query"`
	Team      string     `json:"team,omitempty"`
	Start     int        `json:"start_season"`
	End       int        `json:"end_season"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	RowCount  int        `json:"row_count"`
	FromCache bool       `json:"from_cache"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		return writeCSV(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeCSV outputs the column row followed by every data row
func writeCSV(w io.Writer, result *OutputResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(result.Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range result.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeText outputs results as a human-readable table
func writeText(w io.Writer, result *OutputResult) error {
	if result.RowCount == 0 {
		fmt.Fprintln(w, "No rows found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range result.Rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}
	t.Render()

	source := "fetched"
	if result.FromCache {
		source = "cached"
	}
	fmt.Fprintf(w, "\nTotal: %d rows (%s)\n", result.RowCount, source)
	return nil
}
