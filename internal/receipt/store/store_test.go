package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfletch/opex/internal/receipt"
	"github.com/rfletch/opex/internal/receipt/store"
)

func newReceipt(id, date, category string, amount float64) *receipt.Receipt {
	return &receipt.Receipt{
		ID:            id,
		Date:          date,
		Vendor:        "Vendor " + id,
		Amount:        amount,
		Category:      category,
		PaymentMethod: "Credit",
		CreatedAt:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := store.Open(dir)
	require.NoError(t, err)

	a := newReceipt("aaaaaaaa", "2024-01-01", "Travel", 10)
	b := newReceipt("bbbbbbbb", "2024-01-05", "Meals & Entertainment", 20)

	require.NoError(t, s.CreateReceipt(ctx, a))
	require.NoError(t, s.CreateReceipt(ctx, b))
	require.NoError(t, s.DeleteReceipt(ctx, "aaaaaaaa"))

	// Reopen from disk and compare field for field.
	reopened, err := store.Open(dir)
	require.NoError(t, err)

	got, err := reopened.GetReceipt(ctx, "bbbbbbbb")
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = reopened.GetReceipt(ctx, "aaaaaaaa")
	assert.ErrorIs(t, err, receipt.ErrNotFound)
}

func TestStore_OpenMissingFile(t *testing.T) {
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)

	got, err := s.ListReceipts(context.Background(), receipt.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_OpenCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "receipts.json"), []byte("][ nope"), 0o644))

	_, err := store.Open(dir)
	assert.Error(t, err)
}

func TestStore_ListFilters(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.CreateReceipt(ctx, newReceipt("aaaaaaaa", "2024-01-01", "Travel", 10)))
	require.NoError(t, s.CreateReceipt(ctx, newReceipt("bbbbbbbb", "2024-01-05", "Meals & Entertainment", 20)))
	require.NoError(t, s.CreateReceipt(ctx, newReceipt("cccccccc", "2024-02-01", "Travel", 30)))

	type testCase struct {
		name    string
		filter  receipt.ListFilter
		wantIDs []string
	}

	travel := "Travel"
	start := "2024-01-01"
	end := "2024-01-31"

	tests := []testCase{
		{
			name:    "NoFilterDateDescending",
			filter:  receipt.ListFilter{},
			wantIDs: []string{"cccccccc", "bbbbbbbb", "aaaaaaaa"},
		},
		{
			name:    "Category",
			filter:  receipt.ListFilter{Category: &travel},
			wantIDs: []string{"cccccccc", "aaaaaaaa"},
		},
		{
			name:    "InclusiveDateWindow",
			filter:  receipt.ListFilter{StartDate: &start, EndDate: &end},
			wantIDs: []string{"bbbbbbbb", "aaaaaaaa"},
		},
		{
			name:    "Conjunctive",
			filter:  receipt.ListFilter{Category: &travel, StartDate: &start, EndDate: &end},
			wantIDs: []string{"aaaaaaaa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListReceipts(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStore_ListFilterIsSubsetOfAll(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(t.TempDir())
	require.NoError(t, err)

	dates := []string{"2023-12-31", "2024-01-01", "2024-01-15", "2024-01-31", "2024-02-01"}
	for i, d := range dates {
		require.NoError(t, s.CreateReceipt(ctx, newReceipt(string(rune('a'+i))+"0000000", d, "Other", 1)))
	}

	all, err := s.ListReceipts(ctx, receipt.ListFilter{})
	require.NoError(t, err)

	start, end := "2024-01-01", "2024-01-31"

	windowed, err := s.ListReceipts(ctx, receipt.ListFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	assert.Less(t, len(windowed), len(all))

	for _, r := range windowed {
		assert.GreaterOrEqual(t, r.Date, start)
		assert.LessOrEqual(t, r.Date, end)
		assert.Contains(t, all, r)
	}
}

func TestStore_DeleteMissing(t *testing.T) {
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)

	err = s.DeleteReceipt(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, receipt.ErrNotFound)
}

func TestStore_DateTiesOrderedByID(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.CreateReceipt(ctx, newReceipt("aaaaaaaa", "2024-01-01", "Other", 1)))
	require.NoError(t, s.CreateReceipt(ctx, newReceipt("bbbbbbbb", "2024-01-01", "Other", 2)))

	got, err := s.ListReceipts(ctx, receipt.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bbbbbbbb", got[0].ID)
	assert.Equal(t, "aaaaaaaa", got[1].ID)
}
