// Package series holds the tabular price/sentiment data model and the
// alignment step that joins the two on calendar date.
package series

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ternarybob/aestus/internal/sentiment"
)

// PricePoint is one trading day's adjusted close for the analysis symbol.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// MergedRecord is one row of the aligned price/sentiment table.
// Score is nil when no headlines were published that day; Return is nil only
// on the first chronological row, where no prior close exists.
type MergedRecord struct {
	Date   time.Time
	Close  float64
	Score  *int
	Return *float64
}

// HasScore reports whether a sentiment score was present for this date.
func (r MergedRecord) HasScore() bool {
	return r.Score != nil
}

// Align left-joins daily sentiment scores onto the price series by calendar
// date and computes consecutive log returns. Every price date produces
// exactly one output row, sorted ascending; dates with no sentiment keep a
// nil score rather than being dropped or zeroed.
func Align(prices []PricePoint, scores []sentiment.DailyScore) ([]MergedRecord, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("cannot align an empty price series")
	}

	scoreByDate := make(map[time.Time]int, len(scores))
	for _, s := range scores {
		scoreByDate[sentiment.CalendarDate(s.Date)] = s.Score
	}

	records := make([]MergedRecord, 0, len(prices))
	for _, p := range prices {
		if p.Close <= 0 {
			return nil, fmt.Errorf("non-positive close %v on %s", p.Close, p.Date.Format("2006-01-02"))
		}
		rec := MergedRecord{
			Date:  sentiment.CalendarDate(p.Date),
			Close: p.Close,
		}
		if score, ok := scoreByDate[rec.Date]; ok {
			s := score
			rec.Score = &s
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	for i := 1; i < len(records); i++ {
		if records[i].Date.Equal(records[i-1].Date) {
			return nil, fmt.Errorf("duplicate price date %s", records[i].Date.Format("2006-01-02"))
		}
		ret := math.Log(records[i].Close / records[i-1].Close)
		records[i].Return = &ret
	}

	return records, nil
}

// Returns extracts the cleaned return series: nil returns (the first row)
// are dropped, and each remaining observation keeps the date of its second
// close so downstream estimates stay date-addressable.
func Returns(records []MergedRecord) (dates []time.Time, returns []float64) {
	for _, r := range records {
		if r.Return == nil {
			continue
		}
		dates = append(dates, r.Date)
		returns = append(returns, *r.Return)
	}
	return dates, returns
}

// RestrictToScored returns only the rows whose date is present in both the
// price series and the sentiment series. This is the intersection step used
// for the overlay plots; it deliberately differs from Align's left join.
func RestrictToScored(records []MergedRecord) []MergedRecord {
	restricted := make([]MergedRecord, 0, len(records))
	for _, r := range records {
		if r.HasScore() {
			restricted = append(restricted, r)
		}
	}
	return restricted
}
