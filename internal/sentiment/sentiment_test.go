package sentiment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/aestus/internal/lexicon"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testLexicon() *lexicon.Lexicon {
	return lexicon.New([]string{"good"}, []string{"bad"})
}

func TestScorer_ScoreBatches(t *testing.T) {
	scorer := NewScorer(testLexicon())

	tests := []struct {
		name         string
		text         string
		wantPositive int
		wantNegative int
		wantScore    int
	}{
		{"spec scenario", "good bad bad", 1, 2, -1},
		{"case insensitive", "Good GOOD gOOd", 3, 0, 3},
		{"punctuation splitting", "good, bad! bad.", 1, 2, -1},
		{"no matches still scores zero", "markets were quiet today", 0, 0, 0},
		{"empty text", "", 0, 0, 0},
		{"unknown words ignored", "the good ship sailed", 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := scorer.ScoreBatches([]Batch{{Date: day(2024, 1, 2), Text: tt.text}})
			require.Len(t, scores, 1)

			assert.Equal(t, tt.wantPositive, scores[0].Positive)
			assert.Equal(t, tt.wantNegative, scores[0].Negative)
			assert.Equal(t, tt.wantScore, scores[0].Score)
			assert.Equal(t, scores[0].Positive-scores[0].Negative, scores[0].Score)
			assert.GreaterOrEqual(t, scores[0].Positive, 0)
			assert.GreaterOrEqual(t, scores[0].Negative, 0)
		})
	}
}

func TestBatchByDay(t *testing.T) {
	headlines := []Headline{
		{Date: time.Date(2024, 1, 3, 9, 30, 0, 0, time.UTC), Text: "stocks rally"},
		{Date: time.Date(2024, 1, 2, 16, 0, 0, 0, time.UTC), Text: "markets fall"},
		{Date: time.Date(2024, 1, 3, 17, 45, 0, 0, time.UTC), Text: "tech leads gains"},
	}

	batches := BatchByDay(headlines)
	require.Len(t, batches, 2)

	// Sorted ascending by date, intraday records merged with a space
	assert.Equal(t, day(2024, 1, 2), batches[0].Date)
	assert.Equal(t, "markets fall", batches[0].Text)
	assert.Equal(t, day(2024, 1, 3), batches[1].Date)
	assert.Equal(t, "stocks rally tech leads gains", batches[1].Text)
}

func TestScoreHeadlines_WordBoundaryAcrossHeadlines(t *testing.T) {
	// Concatenation must not glue the last word of one headline to the
	// first word of the next.
	scorer := NewScorer(testLexicon())

	scores := scorer.ScoreHeadlines([]Headline{
		{Date: day(2024, 1, 2), Text: "outlook good"},
		{Date: day(2024, 1, 2), Text: "bad quarter"},
	})
	require.Len(t, scores, 1)
	assert.Equal(t, 1, scores[0].Positive)
	assert.Equal(t, 1, scores[0].Negative)
	assert.Equal(t, 0, scores[0].Score)
}

func TestScoreHeadlines_Deterministic(t *testing.T) {
	scorer := NewScorer(lexicon.Default())

	headlines := []Headline{
		{Date: day(2024, 1, 2), Text: "Strong earnings beat expectations"},
		{Date: day(2024, 1, 3), Text: "Shares plunge on weak guidance"},
		{Date: day(2024, 1, 3), Text: "Analysts warn of further declines"},
		{Date: day(2024, 1, 5), Text: "Quiet session"},
	}

	first := scorer.ScoreHeadlines(headlines)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scorer.ScoreHeadlines(headlines))
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("U.S. stocks -- Dow +1.2%, S&P up!")
	assert.Equal(t, []string{"u", "s", "stocks", "dow", "1", "2", "s", "p", "up"}, tokens)
}
