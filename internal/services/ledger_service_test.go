package services

import (
	"testing"
	"time"

	"daechul/internal/models"
	"daechul/internal/pagination"
	"daechul/internal/testutil"
)

func TestLedgerEntries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ledger := NewLedgerService(db)

	record := func(entryType models.LedgerEntryType, amount float64, token string) {
		t.Helper()
		testutil.AssertNoError(t, ledger.Record(db, "user-1", entryType, amount, token))
	}

	record(models.LedgerEntryBorrow, 10_000_000, "KRW1")
	record(models.LedgerEntryRepay, 4_000_000, "KRW1")
	record(models.LedgerEntrySwap, 1300, "USDT → BTC")
	record(models.LedgerEntryCollateralAdd, 34_161_050, "삼성증권")

	t.Run("returns all entries newest first", func(t *testing.T) {
		page, err := ledger.GetEntries(pagination.PageRequest{}, LedgerFilter{})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 4 {
			t.Fatalf("expected 4 entries, got %d", page.TotalItems)
		}
		for i := 1; i < len(page.Data); i++ {
			if page.Data[i].Timestamp.After(page.Data[i-1].Timestamp) {
				t.Fatal("entries are not ordered newest first")
			}
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		borrow := models.LedgerEntryBorrow
		page, err := ledger.GetEntries(pagination.PageRequest{}, LedgerFilter{Type: &borrow})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 1 {
			t.Fatalf("expected 1 borrow entry, got %d", page.TotalItems)
		}
		testutil.AssertFloatEquals(t, page.Data[0].Amount, 10_000_000)
	})

	t.Run("filters by token label", func(t *testing.T) {
		token := "KRW1"
		page, err := ledger.GetEntries(pagination.PageRequest{}, LedgerFilter{Token: &token})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 2 {
			t.Fatalf("expected 2 KRW1 entries, got %d", page.TotalItems)
		}
	})

	t.Run("filters by date range", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		page, err := ledger.GetEntries(pagination.PageRequest{}, LedgerFilter{FromDate: &future})
		testutil.AssertNoError(t, err)

		if page.TotalItems != 0 {
			t.Fatalf("expected no entries after %v, got %d", future, page.TotalItems)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		page, err := ledger.GetEntries(pagination.PageRequest{Page: 1, PageSize: 3}, LedgerFilter{})
		testutil.AssertNoError(t, err)

		if len(page.Data) != 3 {
			t.Fatalf("expected 3 items on page 1, got %d", len(page.Data))
		}
		if page.TotalPages != 2 {
			t.Fatalf("expected 2 total pages, got %d", page.TotalPages)
		}

		last, err := ledger.GetEntries(pagination.PageRequest{Page: 2, PageSize: 3}, LedgerFilter{})
		testutil.AssertNoError(t, err)
		if len(last.Data) != 1 {
			t.Fatalf("expected 1 item on page 2, got %d", len(last.Data))
		}
	})
}
