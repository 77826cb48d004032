package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearcomp/claimdate/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(ticketID int64, method model.Method, review bool, at time.Time) model.ExtractionRecord {
	date := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	return model.ExtractionRecord{
		ID:             uuid.NewString(),
		TicketID:       ticketID,
		Date:           &date,
		Confidence:     model.ConfidenceHigh,
		Source:         model.SourceExtracted,
		Method:         method,
		SourceText:     "injured on 15/01/2025",
		RequiresReview: review,
		CreatedAt:      at,
	}
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	rec := testRecord(101, model.MethodRegex, false, time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC))
	rec.AIReasoning = ""
	require.NoError(t, s.SaveExtraction(ctx, rec))

	got, err := s.GetExtraction(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, int64(101), got.TicketID)
	require.NotNil(t, got.Date)
	assert.Equal(t, *rec.Date, *got.Date)
	assert.Equal(t, model.ConfidenceHigh, got.Confidence)
	assert.Equal(t, model.MethodRegex, got.Method)
	assert.Equal(t, "injured on 15/01/2025", got.SourceText)
	assert.False(t, got.RequiresReview)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestSQLite(t)

	got, err := s.GetExtraction(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_NilDateRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	rec := testRecord(102, model.MethodAINLP, true, time.Now().UTC())
	rec.Date = nil
	rec.AIReasoning = "no usable date in thread"
	require.NoError(t, s.SaveExtraction(ctx, rec))

	got, err := s.GetExtraction(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Date)
	assert.Equal(t, "no usable date in thread", got.AIReasoning)
	assert.True(t, got.RequiresReview)
}

func TestSQLiteStore_ListFilters(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	base := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	recs := []model.ExtractionRecord{
		testRecord(1, model.MethodRegex, false, base),
		testRecord(1, model.MethodFallback, true, base.Add(time.Minute)),
		testRecord(2, model.MethodCustomField, false, base.Add(2*time.Minute)),
		testRecord(3, model.MethodFallback, true, base.Add(3*time.Minute)),
	}
	for _, r := range recs {
		require.NoError(t, s.SaveExtraction(ctx, r))
	}

	byTicket, err := s.ListExtractions(ctx, Filter{TicketID: 1})
	require.NoError(t, err)
	assert.Len(t, byTicket, 2)

	byMethod, err := s.ListExtractions(ctx, Filter{Method: model.MethodFallback})
	require.NoError(t, err)
	assert.Len(t, byMethod, 2)

	review := true
	byReview, err := s.ListExtractions(ctx, Filter{RequiresReview: &review})
	require.NoError(t, err)
	assert.Len(t, byReview, 2)
	for _, r := range byReview {
		assert.True(t, r.RequiresReview)
	}

	limited, err := s.ListExtractions(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	// Newest first.
	assert.Equal(t, recs[3].ID, limited[0].ID)
	assert.Equal(t, recs[2].ID, limited[1].ID)

	offset, err := s.ListExtractions(ctx, Filter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, offset, 2)
	assert.Equal(t, recs[1].ID, offset[0].ID)
}

func TestSQLiteStore_CountByMethod(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	at := time.Now().UTC()
	for _, m := range []model.Method{model.MethodRegex, model.MethodRegex, model.MethodFallback} {
		require.NoError(t, s.SaveExtraction(ctx, testRecord(9, m, false, at)))
	}

	counts, err := s.CountByMethod(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"regex": 2, "fallback": 1}, counts)
}
