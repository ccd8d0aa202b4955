package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
	"daechul/internal/oracle"
	"daechul/internal/testutil"
)

// offlineOracle returns a client whose lookups always fail fast, so every
// price comes from the deterministic fallback table.
func offlineOracle() *oracle.Client {
	return oracle.NewClientWithBaseURL(&http.Client{}, "http://127.0.0.1:1", 50*time.Millisecond)
}

func TestInitializeAssets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ledger := NewLedgerService(db)
	assets := NewAssetService(db, offlineOracle(), ledger)

	testutil.AssertNoError(t, assets.InitializeAssets(context.Background()))

	t.Run("seeds four tokens valued at fallback prices", func(t *testing.T) {
		tokens, err := assets.GetTokens()
		testutil.AssertNoError(t, err)
		if len(tokens) != 4 {
			t.Fatalf("expected 4 tokens, got %d", len(tokens))
		}

		btc, err := assets.GetTokenBySymbol("BTC")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, btc.Balance, 0.7)
		testutil.AssertFloatEquals(t, btc.Value, 0.7*130_000_000)

		eth, err := assets.GetTokenBySymbol("ETH")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, eth.Value, 12*5_000_000)

		usdt, err := assets.GetTokenBySymbol("USDT")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, usdt.Value, 7700*1_300)

		krw, err := assets.GetTokenBySymbol(models.StablecoinSymbol)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, krw.Balance, 0)
		testutil.AssertFloatEquals(t, krw.Value, 0)
	})

	t.Run("seeds both brokerage accounts with priced holdings", func(t *testing.T) {
		accounts, err := assets.GetStockAccounts()
		testutil.AssertNoError(t, err)
		if len(accounts) != 2 {
			t.Fatalf("expected 2 accounts, got %d", len(accounts))
		}

		samsung, err := assets.GetStockAccountBySlug("samsung")
		testutil.AssertNoError(t, err)
		// 50 x 488,773 + 100 x 97,224
		testutil.AssertFloatEquals(t, samsung.TotalValue, 34_161_050)
		if len(samsung.Holdings) != 2 {
			t.Fatalf("expected 2 holdings, got %d", len(samsung.Holdings))
		}

		mirae, err := assets.GetStockAccountBySlug("mirae")
		testutil.AssertNoError(t, err)
		// 40 x 260,559 + 30 x 58,831
		testutil.AssertFloatEquals(t, mirae.TotalValue, 12_187_290)
	})

	t.Run("repeated initialization leaves existing state untouched", func(t *testing.T) {
		if err := db.Model(&models.Token{}).Where("symbol = ?", "BTC").
			Update("balance", 0.123).Error; err != nil {
			t.Fatal(err)
		}

		testutil.AssertNoError(t, assets.InitializeAssets(context.Background()))

		var count int64
		testutil.AssertNoError(t, db.Model(&models.Token{}).Count(&count).Error)
		if count != 4 {
			t.Fatalf("expected token count to stay 4, got %d", count)
		}
		btc, err := assets.GetTokenBySymbol("BTC")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, btc.Balance, 0.123)
	})
}

func TestRefreshPrices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ledger := NewLedgerService(db)
	assets := NewAssetService(db, offlineOracle(), ledger)
	testutil.AssertNoError(t, assets.InitializeAssets(context.Background()))

	t.Run("recomputes token values from balance and price", func(t *testing.T) {
		if err := db.Model(&models.Token{}).Where("symbol = ?", "BTC").
			Update("balance", 2.0).Error; err != nil {
			t.Fatal(err)
		}

		testutil.AssertNoError(t, assets.RefreshPrices(context.Background()))

		btc, err := assets.GetTokenBySymbol("BTC")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, btc.Value, 2.0*130_000_000)
	})

	t.Run("leaves pledge-time collateral valuations untouched", func(t *testing.T) {
		item := testutil.CreateTestCollateral(t, db, models.CollateralTypeCrypto, "ETH", 1, 5_000_000)

		testutil.AssertNoError(t, assets.RefreshPrices(context.Background()))

		var reloaded models.CollateralItem
		testutil.AssertNoError(t, db.Where("id = ?", item.ID).First(&reloaded).Error)
		testutil.AssertFloatEquals(t, reloaded.Value, 5_000_000)
	})

	t.Run("keeps account totals consistent with holdings", func(t *testing.T) {
		testutil.AssertNoError(t, assets.RefreshPrices(context.Background()))

		samsung, err := assets.GetStockAccountBySlug("samsung")
		testutil.AssertNoError(t, err)
		var sum float64
		for _, h := range samsung.Holdings {
			sum += h.TotalValue
		}
		testutil.AssertFloatEquals(t, samsung.TotalValue, sum)
	})
}

func TestBuyToken(t *testing.T) {
	setup := func(t *testing.T) (AssetServicer, *testutilDB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ledger := NewLedgerService(db)
		assets := NewAssetService(db, offlineOracle(), ledger)
		testutil.AssertNoError(t, assets.InitializeAssets(context.Background()))
		return assets, &testutilDB{db}
	}

	t.Run("swaps at the cached price ratio", func(t *testing.T) {
		assets, h := setup(t)

		// 1300 USDT at 1,300 KRW each buys 0.01001 BTC at 130,000,000.
		result, err := assets.BuyToken("user-1", "USDT", "BTC", 1300)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, result.ToAmount, 1300*1_300/130_000_000.0)

		usdt, err := assets.GetTokenBySymbol("USDT")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, usdt.Balance, 7700-1300)

		btc, err := assets.GetTokenBySymbol("BTC")
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, btc.Balance, 0.7+result.ToAmount)

		h.assertLedgerEntry(t, models.LedgerEntrySwap, "USDT → BTC")
	})

	t.Run("treats the stablecoin as one KRW", func(t *testing.T) {
		assets, _ := setup(t)

		result, err := assets.BuyToken("user-1", "USDT", models.StablecoinSymbol, 100)
		testutil.AssertNoError(t, err)
		testutil.AssertFloatEquals(t, result.ToAmount, 100*1_300)
	})

	t.Run("rejects insufficient balance", func(t *testing.T) {
		assets, _ := setup(t)
		_, err := assets.BuyToken("user-1", "BTC", "ETH", 5)
		testutil.AssertAppError(t, err, apperrors.ErrInsufficientBalance)
	})

	t.Run("rejects swapping a token for itself", func(t *testing.T) {
		assets, _ := setup(t)
		_, err := assets.BuyToken("user-1", "BTC", "BTC", 0.1)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		assets, _ := setup(t)
		_, err := assets.BuyToken("user-1", "USDT", "BTC", 0)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejects unknown tokens", func(t *testing.T) {
		assets, _ := setup(t)
		_, err := assets.BuyToken("user-1", "DOGE", "BTC", 1)
		testutil.AssertAppError(t, err, apperrors.ErrTokenNotFound)
	})
}
