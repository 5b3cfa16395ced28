package report

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/aestus/internal/common"
	"github.com/ternarybob/aestus/internal/garch"
)

func testData(t *testing.T) *Data {
	t.Helper()

	rng := rand.New(rand.NewSource(9))
	n := 120
	params := garch.Params{Mu: 0.0003, Phi: 0.05, Omega: 4e-6, Alpha: 0.08, Beta: 0.88}

	dates := make([]time.Time, n)
	returns := make([]float64, n)
	scores := make([]*int, n)
	sigma := make([]float64, n)
	condMean := make([]float64, n)
	residuals := make([]float64, n)
	standardized := make([]float64, n)

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		dates[i] = day
		day = day.AddDate(0, 0, 1)

		sigma[i] = 0.01 + 0.002*rng.Float64()
		condMean[i] = params.Mu
		standardized[i] = rng.NormFloat64()
		residuals[i] = standardized[i] * sigma[i]
		returns[i] = condMean[i] + residuals[i]

		if i%3 != 0 {
			s := rng.Intn(21) - 10
			scores[i] = &s
		}
	}

	return &Data{
		Symbol:  "AAPL.US",
		RunID:   "test-run",
		Dates:   dates,
		Returns: returns,
		Scores:  scores,
		Fit: &garch.Fit{
			Params:        params,
			LogLikelihood: 380.5,
			Sigma:         sigma,
			CondMean:      condMean,
			Residuals:     residuals,
			Standardized:  standardized,
		},
		VaRConfidence: 0.95,
		ACFLags:       15,
		DriftWarnings: 1,
	}
}

func TestRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir, common.GetLogger())
	require.NoError(t, err)

	written, err := r.Render(testData(t))
	require.NoError(t, err)
	require.Len(t, written, 9)

	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Greater(t, info.Size(), int64(0), path)
	}
}

func TestRenderer_Summary(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir, common.GetLogger())
	require.NoError(t, err)

	data := testData(t)
	require.NoError(t, r.writeSummary(data, filepath.Join(dir, "summary.txt")))

	raw, err := os.ReadFile(filepath.Join(dir, "summary.txt"))
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, "AAPL.US")
	assert.Contains(t, text, "persistence")
	assert.Contains(t, text, "Drift warnings: 1")
	assert.Contains(t, text, "2024-01-02")
	assert.True(t, strings.Contains(text, "omega"))
}

func TestNewRenderer_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := NewRenderer(dir, common.GetLogger())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
