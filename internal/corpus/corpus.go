// Package corpus reads the static headline corpus from a delimited file.
// The file is read in full into memory once per run.
package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ternarybob/aestus/internal/sentiment"
)

// Options describe the corpus file layout.
type Options struct {
	DateColumn string // Header name of the publication-date column
	TextColumn string // Header name of the headline-text column
	DateLayout string // Go time layout for the date column
	Comma      rune   // Field delimiter; zero value means ','
}

// DefaultOptions match the conventional corpus layout.
func DefaultOptions() Options {
	return Options{
		DateColumn: "Date",
		TextColumn: "News",
		DateLayout: "2006-01-02",
		Comma:      ',',
	}
}

// Load reads all (date, headline) records from a delimited file. The first
// row must be a header containing the configured date and text columns;
// extra columns are ignored. Rows with an unparseable date are an error, not
// a skip, so a malformed corpus surfaces immediately.
func Load(path string, opts Options) ([]sentiment.Headline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.FieldsPerRecord = -1 // Ragged rows are caught by the column checks below

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("corpus file %s is empty", path)
	}

	dateIdx, textIdx, err := findColumns(rows[0], opts)
	if err != nil {
		return nil, fmt.Errorf("corpus file %s: %w", path, err)
	}

	headlines := make([]sentiment.Headline, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) <= dateIdx || len(row) <= textIdx {
			return nil, fmt.Errorf("corpus file %s row %d: expected at least %d columns, got %d",
				path, i+2, max(dateIdx, textIdx)+1, len(row))
		}

		date, err := time.Parse(opts.DateLayout, strings.TrimSpace(row[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("corpus file %s row %d: bad date %q: %w", path, i+2, row[dateIdx], err)
		}

		headlines = append(headlines, sentiment.Headline{
			Date: date,
			Text: row[textIdx],
		})
	}

	return headlines, nil
}

func findColumns(header []string, opts Options) (dateIdx, textIdx int, err error) {
	dateIdx, textIdx = -1, -1
	for i, name := range header {
		trimmed := strings.TrimSpace(name)
		if strings.EqualFold(trimmed, opts.DateColumn) && dateIdx < 0 {
			dateIdx = i
		} else if strings.EqualFold(trimmed, opts.TextColumn) && textIdx < 0 {
			textIdx = i
		}
	}
	if dateIdx < 0 {
		return 0, 0, fmt.Errorf("missing date column %q", opts.DateColumn)
	}
	if textIdx < 0 {
		return 0, 0, fmt.Errorf("missing text column %q", opts.TextColumn)
	}
	return dateIdx, textIdx, nil
}
