package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecord(id string, createdAt time.Time) *models.ParsedStatement {
	return &models.ParsedStatement{
		ID:              id,
		Filename:        "statement.pdf",
		Issuer:          models.IssuerHDFC,
		CardLastFour:    "1234",
		BillingCycle:    "01/01/2024 to 31/01/2024",
		DueDate:         "15/02/2024",
		TotalAmountDue:  "₹15234.50",
		ConfidenceScore: 0.88,
		RawText:         "HDFC Bank Credit Card Statement",
		CreatedAt:       createdAt,
	}
}

func TestSaveAndGetByID(t *testing.T) {
	s := newTestStore(t)

	want := sampleRecord("abc-123", time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(want))

	got, err := s.GetByID("abc-123")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Filename, got.Filename)
	assert.Equal(t, want.Issuer, got.Issuer)
	assert.Equal(t, want.CardLastFour, got.CardLastFour)
	assert.Equal(t, want.BillingCycle, got.BillingCycle)
	assert.Equal(t, want.DueDate, got.DueDate)
	assert.Equal(t, want.TotalAmountDue, got.TotalAmountDue)
	assert.Equal(t, want.ConfidenceScore, got.ConfidenceScore)
	assert.Equal(t, want.RawText, got.RawText)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

func TestGetByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecentOrdering(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := sampleRecord(fmt.Sprintf("id-%d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.Save(rec))
	}

	got, err := s.Recent(HistoryLimit)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, "id-2", got[0].ID)
	assert.Equal(t, "id-1", got[1].ID)
	assert.Equal(t, "id-0", got[2].ID)
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := sampleRecord(fmt.Sprintf("id-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.Save(rec))
	}

	got, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "id-4", got[0].ID)
}

func TestRecentEmpty(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Recent(HistoryLimit)
	require.NoError(t, err)
	assert.Empty(t, got)
}
