// Package sentiment derives daily polarity scores from news headlines.
//
// Scoring is an intentionally crude bag-of-words polarity count: headlines
// for a calendar day are concatenated, tokenized, and matched word-by-word
// against a fixed lexicon. There is no notion of sentence structure, negation,
// sarcasm, or multi-word phrases; "not good" scores the same as "good".
package sentiment

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/ternarybob/aestus/internal/lexicon"
)

// Headline is a single raw (date, text) record from the corpus.
type Headline struct {
	Date time.Time
	Text string
}

// Batch holds the concatenated headline text for one calendar day.
type Batch struct {
	Date time.Time
	Text string
}

// DailyScore is the per-day polarity count derived from a Batch.
// Score is always Positive - Negative.
type DailyScore struct {
	Date     time.Time
	Positive int
	Negative int
	Score    int
}

// BatchByDay groups raw headline records by UTC calendar date, concatenating
// all text for a day with a single space so word boundaries survive. Output
// is sorted ascending by date, one batch per distinct date.
func BatchByDay(headlines []Headline) []Batch {
	byDay := make(map[time.Time][]string)
	for _, h := range headlines {
		day := CalendarDate(h.Date)
		byDay[day] = append(byDay[day], h.Text)
	}

	batches := make([]Batch, 0, len(byDay))
	for day, texts := range byDay {
		batches = append(batches, Batch{
			Date: day,
			Text: strings.Join(texts, " "),
		})
	}
	sort.Slice(batches, func(i, j int) bool {
		return batches[i].Date.Before(batches[j].Date)
	})
	return batches
}

// CalendarDate truncates a timestamp to its UTC calendar date. All joins in
// the pipeline key on dates normalized through this function.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Scorer counts lexicon polarity matches in headline batches.
type Scorer struct {
	lex *lexicon.Lexicon
}

// NewScorer creates a Scorer over a fixed lexicon.
func NewScorer(lex *lexicon.Lexicon) *Scorer {
	return &Scorer{lex: lex}
}

// ScoreBatches produces one DailyScore per batch, preserving order. A batch
// with no lexicon matches still yields a row with score 0.
func (s *Scorer) ScoreBatches(batches []Batch) []DailyScore {
	scores := make([]DailyScore, 0, len(batches))
	for _, b := range batches {
		scores = append(scores, s.scoreBatch(b))
	}
	return scores
}

// ScoreHeadlines groups raw records by day and scores each day.
func (s *Scorer) ScoreHeadlines(headlines []Headline) []DailyScore {
	return s.ScoreBatches(BatchByDay(headlines))
}

func (s *Scorer) scoreBatch(b Batch) DailyScore {
	score := DailyScore{Date: b.Date}
	for _, token := range Tokenize(b.Text) {
		polarity, ok := s.lex.Lookup(token)
		if !ok {
			continue
		}
		switch polarity {
		case lexicon.Positive:
			score.Positive++
		case lexicon.Negative:
			score.Negative++
		}
	}
	score.Score = score.Positive - score.Negative
	return score
}

// Tokenize splits text into lowercase word tokens on any run of
// non-alphanumeric characters.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
