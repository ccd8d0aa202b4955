package services

import (
	"testing"

	"gorm.io/gorm"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
	"daechul/internal/testutil"
)

func setupCollateralTest(t *testing.T) (CollateralServicer, AssetServicer, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ledger := NewLedgerService(db)
	assets := NewAssetService(db, offlineOracle(), ledger)
	collateral := NewCollateralService(db, assets, ledger)
	return collateral, assets, db
}

func TestAddStockCollateral(t *testing.T) {
	t.Run("pledges the whole account at its current value", func(t *testing.T) {
		collateral, _, db := setupCollateralTest(t)
		testutil.CreateTestStockAccount(t, db, "samsung", "삼성증권", 34_161_050)

		item, err := collateral.AddStockCollateral("user-1", "samsung")
		testutil.AssertNoError(t, err)

		if item.Type != models.CollateralTypeStock {
			t.Errorf("expected stock type, got %s", item.Type)
		}
		if item.RefID != "samsung" {
			t.Errorf("expected ref_id samsung, got %s", item.RefID)
		}
		testutil.AssertFloatEquals(t, item.Value, 34_161_050)

		h := &testutilDB{db}
		h.assertLedgerEntry(t, models.LedgerEntryCollateralAdd, "삼성증권")
	})

	t.Run("rejects pledging the same account twice", func(t *testing.T) {
		collateral, _, db := setupCollateralTest(t)
		testutil.CreateTestStockAccount(t, db, "mirae", "미래에셋증권", 12_187_290)

		_, err := collateral.AddStockCollateral("user-1", "mirae")
		testutil.AssertNoError(t, err)

		_, err = collateral.AddStockCollateral("user-1", "mirae")
		testutil.AssertAppError(t, err, apperrors.ErrAlreadyPledged)
	})

	t.Run("rejects unknown accounts", func(t *testing.T) {
		collateral, _, _ := setupCollateralTest(t)
		_, err := collateral.AddStockCollateral("user-1", "nonexistent")
		testutil.AssertAppError(t, err, apperrors.ErrStockAccountNotFound)
	})
}

func TestAddCryptoCollateral(t *testing.T) {
	t.Run("debits the token and values the pledge at the cached price", func(t *testing.T) {
		collateral, assets, db := setupCollateralTest(t)
		testutil.CreateTestToken(t, db, "BTC", 0.7, 0.7*130_000_000)
		testutil.SetTestPrice(t, db, models.PriceKindCrypto, "BTC", 130_000_000)

		item, err := collateral.AddCryptoCollateral("user-1", "BTC", 0.5)
		testutil.AssertNoError(t, err)

		testutil.AssertFloatEquals(t, item.Amount, 0.5)
		testutil.AssertFloatEquals(t, item.Value, 0.5*130_000_000)

		btc, err := assets.GetTokenBySymbol("BTC")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, btc.Balance, 0.2)
		testutil.AssertFloatEquals(t, btc.Value, 0.2*130_000_000)
	})

	t.Run("accumulates into an existing pledge for the same symbol", func(t *testing.T) {
		collateral, _, db := setupCollateralTest(t)
		testutil.CreateTestToken(t, db, "ETH", 12, 12*5_000_000)
		testutil.SetTestPrice(t, db, models.PriceKindCrypto, "ETH", 5_000_000)

		_, err := collateral.AddCryptoCollateral("user-1", "ETH", 4)
		testutil.AssertNoError(t, err)
		item, err := collateral.AddCryptoCollateral("user-1", "ETH", 2)
		testutil.AssertNoError(t, err)

		testutil.AssertFloatEquals(t, item.Amount, 6)
		testutil.AssertFloatEquals(t, item.Value, 6*5_000_000)

		items, err := collateral.GetCollateral()
		testutil.AssertNoError(t, err)
		if len(items) != 1 {
			t.Fatalf("expected a single accumulated pledge, got %d", len(items))
		}
	})

	t.Run("rejects pledging more than the balance", func(t *testing.T) {
		collateral, _, db := setupCollateralTest(t)
		testutil.CreateTestToken(t, db, "BTC", 0.7, 0)

		_, err := collateral.AddCryptoCollateral("user-1", "BTC", 1.0)
		testutil.AssertAppError(t, err, apperrors.ErrInsufficientBalance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		collateral, _, db := setupCollateralTest(t)
		testutil.CreateTestToken(t, db, "BTC", 0.7, 0)

		_, err := collateral.AddCryptoCollateral("user-1", "BTC", -1)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		collateral, _, _ := setupCollateralTest(t)
		_, err := collateral.AddCryptoCollateral("user-1", "DOGE", 1)
		testutil.AssertAppError(t, err, apperrors.ErrTokenNotFound)
	})
}

func TestRemoveCollateral(t *testing.T) {
	t.Run("credits crypto back at the current cached price", func(t *testing.T) {
		collateral, assets, db := setupCollateralTest(t)
		testutil.CreateTestToken(t, db, "BTC", 0.7, 0.7*130_000_000)
		testutil.SetTestPrice(t, db, models.PriceKindCrypto, "BTC", 130_000_000)

		_, err := collateral.AddCryptoCollateral("user-1", "BTC", 0.5)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, collateral.RemoveCollateral("user-1", "BTC"))

		btc, err := assets.GetTokenBySymbol("BTC")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, btc.Balance, 0.7)

		items, err := collateral.GetCollateral()
		testutil.AssertNoError(t, err)
		if len(items) != 0 {
			t.Fatalf("expected no remaining pledges, got %d", len(items))
		}
	})

	t.Run("allows re-pledging after removal", func(t *testing.T) {
		collateral, _, db := setupCollateralTest(t)
		testutil.CreateTestStockAccount(t, db, "samsung", "삼성증권", 34_161_050)

		_, err := collateral.AddStockCollateral("user-1", "samsung")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, collateral.RemoveCollateral("user-1", "samsung"))

		_, err = collateral.AddStockCollateral("user-1", "samsung")
		testutil.AssertNoError(t, err)
	})

	t.Run("removing a stock pledge leaves tokens untouched", func(t *testing.T) {
		collateral, assets, db := setupCollateralTest(t)
		testutil.CreateTestToken(t, db, "BTC", 0.7, 0)
		testutil.CreateTestStockAccount(t, db, "mirae", "미래에셋증권", 12_187_290)

		_, err := collateral.AddStockCollateral("user-1", "mirae")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, collateral.RemoveCollateral("user-1", "mirae"))

		btc, err := assets.GetTokenBySymbol("BTC")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, btc.Balance, 0.7)
	})

	t.Run("rejects unknown pledges", func(t *testing.T) {
		collateral, _, _ := setupCollateralTest(t)
		err := collateral.RemoveCollateral("user-1", "nonexistent")
		testutil.AssertAppError(t, err, apperrors.ErrCollateralNotFound)
	})
}
