package extract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearcomp/claimdate/internal/model"
)

var (
	testNow     = time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	testCreated = time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
)

func patternRequest(corpus string) *Request {
	return &Request{
		Ticket: model.TicketContext{ID: 42, CreatedAt: testCreated},
		Corpus: corpus,
		Now:    testNow,
	}
}

func newTestPatternStrategy() *patternStrategy {
	return newPatternStrategy(DefaultRules(), AnchorNow)
}

func TestPatternStrategy_InjuryKeywordAdjacentDate(t *testing.T) {
	s := newTestPatternStrategy()

	res := s.Attempt(context.Background(), patternRequest("Worker injured on 15/01/2025 while lifting pallets."))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *res.Date)
	assert.Equal(t, model.ConfidenceHigh, res.Confidence)
	assert.Equal(t, model.MethodRegex, res.Method)
	assert.Equal(t, model.SourceExtracted, res.Source)
	assert.False(t, res.RequiresReview)
	assert.Contains(t, res.SourceText, "injured on")
}

func TestPatternStrategy_DateOfInjuryLabel(t *testing.T) {
	s := newTestPatternStrategy()

	res := s.Attempt(context.Background(), patternRequest("Date of injury: 2025-01-20. Please process the claim."))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)
	assert.Equal(t, time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), *res.Date)
	assert.Equal(t, model.ConfidenceHigh, res.Confidence)
}

func TestPatternStrategy_DOIAbbreviation(t *testing.T) {
	s := newTestPatternStrategy()

	res := s.Attempt(context.Background(), patternRequest("DOI: 28/01/2025, claim number WC-99120"))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)
	assert.Equal(t, time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC), *res.Date)
	assert.Equal(t, model.ConfidenceHigh, res.Confidence)
}

func TestPatternStrategy_MultiDateDisambiguation(t *testing.T) {
	s := newTestPatternStrategy()

	// The filing date appears first in the text; the injury-adjacent date
	// must win regardless.
	res := s.Attempt(context.Background(), patternRequest("Report filed on 20/01/2025 for injury that occurred on 15/01/2025"))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *res.Date)
	assert.Equal(t, model.ConfidenceHigh, res.Confidence)
}

func TestPatternStrategy_RelativeWeeksAgo(t *testing.T) {
	s := newTestPatternStrategy()

	res := s.Attempt(context.Background(), patternRequest("He hurt his back about 3 weeks ago at the warehouse."))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)
	assert.Equal(t, testNow.AddDate(0, 0, -21).Format("2006-01-02"), res.Date.Format("2006-01-02"))
	assert.Equal(t, model.ConfidenceMedium, res.Confidence)
}

func TestPatternStrategy_RelativeMonthsAgoWithinTolerance(t *testing.T) {
	s := newTestPatternStrategy()

	res := s.Attempt(context.Background(), patternRequest("The incident was 2 months ago."))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)

	expected := testNow.AddDate(0, -2, 0)
	diff := res.Date.Sub(expected)
	if diff < 0 {
		diff = -diff
	}
	assert.LessOrEqual(t, diff, 5*24*time.Hour)
}

func TestPatternStrategy_GenericISODate(t *testing.T) {
	s := newTestPatternStrategy()

	res := s.Attempt(context.Background(), patternRequest("Certificate references 2025-01-22 as relevant."))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)
	assert.Equal(t, time.Date(2025, 1, 22, 0, 0, 0, 0, time.UTC), *res.Date)
	assert.Equal(t, model.ConfidenceMedium, res.Confidence)
}

func TestPatternStrategy_GenericTextualMonth(t *testing.T) {
	s := newTestPatternStrategy()

	for _, corpus := range []string{
		"Seen by GP on 15 Jan 2025 for assessment.",
		"Seen by GP on January 15th 2025 for assessment.",
	} {
		res := s.Attempt(context.Background(), patternRequest(corpus))
		require.NotNil(t, res, corpus)
		require.NotNil(t, res.Date, corpus)
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *res.Date, corpus)
		assert.Equal(t, model.ConfidenceMedium, res.Confidence, corpus)
	}
}

func TestPatternStrategy_DayFirstNotMonthFirst(t *testing.T) {
	s := newTestPatternStrategy()

	res := s.Attempt(context.Background(), patternRequest("injured on 03/02/2025"))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)
	// 3 February, not 2 March.
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), *res.Date)
}

func TestPatternStrategy_MalformedDateYieldsNothing(t *testing.T) {
	s := newTestPatternStrategy()

	res := s.Attempt(context.Background(), patternRequest("injured on 32/13/2025 according to the report"))
	assert.Nil(t, res)
}

func TestPatternStrategy_InvalidInjuryDateFallsToNextFamily(t *testing.T) {
	s := newTestPatternStrategy()

	// The injury-adjacent date is in the future and must be discarded; the
	// later textual date is still picked up at medium confidence.
	res := s.Attempt(context.Background(), patternRequest("injured on 01/07/2026. GP visit recorded 15 Jan 2025."))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *res.Date)
	assert.Equal(t, model.ConfidenceMedium, res.Confidence)
}

func TestPatternStrategy_EmptyCorpus(t *testing.T) {
	s := newTestPatternStrategy()
	assert.Nil(t, s.Attempt(context.Background(), patternRequest("")))
}

func TestPatternStrategy_CreatedAnchor(t *testing.T) {
	s := newPatternStrategy(DefaultRules(), AnchorCreated)

	res := s.Attempt(context.Background(), patternRequest("injured 5 days ago"))
	require.NotNil(t, res)
	require.NotNil(t, res.Date)
	assert.Equal(t, testCreated.AddDate(0, 0, -5).Format("2006-01-02"), res.Date.Format("2006-01-02"))
}
