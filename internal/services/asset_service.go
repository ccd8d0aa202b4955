package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
	"daechul/internal/oracle"
)

// cryptoSymbols are the seeded tokens whose prices come from the oracle.
// KRW1 is excluded: its price is pinned to 1 KRW.
var cryptoSymbols = []string{"BTC", "ETH", "USDT"}

// tokenSeed describes one seeded demo token.
type tokenSeed struct {
	symbol  string
	name    string
	balance float64
	icon    string
}

var tokenSeeds = []tokenSeed{
	{symbol: "BTC", name: "Bitcoin", balance: 0.7, icon: "₿"},
	{symbol: "ETH", name: "Ethereum", balance: 12, icon: "Ξ"},
	{symbol: "USDT", name: "Tether", balance: 7700, icon: "₮"},
	{symbol: models.StablecoinSymbol, name: "Korean Won Stablecoin", balance: 0, icon: "₩"},
}

// holdingSeed describes one seeded stock position.
type holdingSeed struct {
	symbol   string
	name     string
	quantity int64
	imageURL string
}

// accountSeed describes one seeded brokerage account.
type accountSeed struct {
	slug          string
	brokerage     string
	accountNumber string
	holdings      []holdingSeed
}

var accountSeeds = []accountSeed{
	{
		slug:          "samsung",
		brokerage:     "삼성증권",
		accountNumber: "1234-5678-9012",
		holdings: []holdingSeed{
			{symbol: "000660", name: "SK Hynix Inc", quantity: 50, imageURL: "https://logo.clearbit.com/skhynix.com"},
			{symbol: "005930", name: "Samsung Electronics Co Ltd", quantity: 100, imageURL: "https://logo.clearbit.com/samsung.com"},
		},
	},
	{
		slug:          "mirae",
		brokerage:     "미래에셋증권",
		accountNumber: "9876-5432-1098",
		holdings: []holdingSeed{
			{symbol: "035420", name: "Naver Corporation", quantity: 40, imageURL: "https://logo.clearbit.com/naver.com"},
			{symbol: "035720", name: "Kakao Corp", quantity: 30, imageURL: "https://logo.clearbit.com/kakao.com"},
		},
	},
}

// assetService handles token and stock-account state.
type assetService struct {
	db     *gorm.DB
	oracle *oracle.Client
	ledger LedgerServicer
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB, oracleClient *oracle.Client, ledger LedgerServicer) AssetServicer {
	return &assetService{db: db, oracle: oracleClient, ledger: ledger}
}

// InitializeAssets seeds the demo tokens and brokerage accounts. Prices are
// fetched sequentially before any write, so the committed snapshot is never
// partially priced. Safe to call repeatedly: a seeded store is left untouched.
func (s *assetService) InitializeAssets(ctx context.Context) error {
	var count int64
	if err := s.db.Model(&models.Token{}).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	coinData := make(map[string]oracle.CoinData, len(cryptoSymbols))
	for _, symbol := range cryptoSymbols {
		coinData[symbol] = s.oracle.GetCoinData(ctx, symbol)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, seed := range tokenSeeds {
			data := coinData[seed.symbol] // zero-valued for KRW1
			token := &models.Token{
				Symbol:      seed.symbol,
				Name:        seed.name,
				Balance:     seed.balance,
				Value:       seed.balance * data.Price,
				Icon:        seed.icon,
				ImageURL:    data.ImageURL,
				Network:     "ethereum",
				NetworkIcon: "🔷",
			}
			if err := tx.Create(token).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		for _, symbol := range cryptoSymbols {
			if err := upsertPrice(tx, models.PriceKindCrypto, symbol, coinData[symbol].Price); err != nil {
				return err
			}
		}

		for _, seed := range accountSeeds {
			account := &models.StockAccount{
				Slug:          seed.slug,
				Brokerage:     seed.brokerage,
				AccountNumber: seed.accountNumber,
			}
			if err := tx.Create(account).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			var total float64
			for _, h := range seed.holdings {
				price := oracle.GetStockPrice(h.symbol)
				holding := &models.StockHolding{
					StockAccountID: account.ID,
					Symbol:         h.symbol,
					Name:           h.name,
					Quantity:       h.quantity,
					CurrentPrice:   price,
					TotalValue:     float64(h.quantity) * price,
					ImageURL:       h.imageURL,
				}
				if err := tx.Create(holding).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				total += holding.TotalValue

				if err := upsertPrice(tx, models.PriceKindStock, h.symbol, price); err != nil {
					return err
				}
			}

			if err := tx.Model(account).Update("total_value", total).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return nil
	})
}

// RefreshPrices re-fetches crypto and stock prices and recomputes token values
// and holding/account totals. Collateral pledge values and loan snapshots are
// fixed at pledge/creation time and are not touched here.
func (s *assetService) RefreshPrices(ctx context.Context) error {
	coinData := make(map[string]oracle.CoinData, len(cryptoSymbols))
	for _, symbol := range cryptoSymbols {
		coinData[symbol] = s.oracle.GetCoinData(ctx, symbol)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, symbol := range cryptoSymbols {
			if err := upsertPrice(tx, models.PriceKindCrypto, symbol, coinData[symbol].Price); err != nil {
				return err
			}
		}

		var tokens []models.Token
		if err := tx.Find(&tokens).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for i := range tokens {
			if tokens[i].Symbol == models.StablecoinSymbol {
				continue
			}
			price := coinData[tokens[i].Symbol].Price // zero for symbols the oracle doesn't track
			if err := tx.Model(&tokens[i]).Update("value", tokens[i].Balance*price).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		var accounts []models.StockAccount
		if err := tx.Preload("Holdings").Find(&accounts).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for i := range accounts {
			for j := range accounts[i].Holdings {
				h := &accounts[i].Holdings[j]
				price := oracle.GetStockPrice(h.Symbol)
				h.CurrentPrice = price
				h.TotalValue = float64(h.Quantity) * price
				if err := tx.Model(h).Updates(map[string]interface{}{
					"current_price": h.CurrentPrice,
					"total_value":   h.TotalValue,
				}).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				if err := upsertPrice(tx, models.PriceKindStock, h.Symbol, price); err != nil {
					return err
				}
			}

			total := lo.SumBy(accounts[i].Holdings, func(h models.StockHolding) float64 {
				return h.TotalValue
			})
			if err := tx.Model(&accounts[i]).Update("total_value", total).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return nil
	})
}

// GetTokens returns all tokens, including those with zero balances.
func (s *assetService) GetTokens() ([]models.Token, error) {
	var tokens []models.Token
	if err := s.db.Order("symbol").Find(&tokens).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tokens, nil
}

// GetTokenBySymbol retrieves a token by its symbol.
func (s *assetService) GetTokenBySymbol(symbol string) (*models.Token, error) {
	var token models.Token
	if err := s.db.Where("symbol = ?", symbol).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &token, nil
}

// GetStockAccounts returns all brokerage accounts with their holdings.
func (s *assetService) GetStockAccounts() ([]models.StockAccount, error) {
	var accounts []models.StockAccount
	if err := s.db.Preload("Holdings").Order("slug").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetStockAccountBySlug retrieves a brokerage account by its stable slug.
func (s *assetService) GetStockAccountBySlug(slug string) (*models.StockAccount, error) {
	var account models.StockAccount
	if err := s.db.Preload("Holdings").Where("slug = ?", slug).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStockAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// BuyToken swaps amount of fromSymbol into toSymbol at cached prices, with
// KRW1 pinned at 1 KRW. No fee is charged.
func (s *assetService) BuyToken(userID, fromSymbol, toSymbol string, amount float64) (*SwapResult, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fromSymbol == toSymbol {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cannot swap a token for itself")
	}

	fromToken, err := s.GetTokenBySymbol(fromSymbol)
	if err != nil {
		return nil, err
	}
	toToken, err := s.GetTokenBySymbol(toSymbol)
	if err != nil {
		return nil, err
	}
	if fromToken.Balance < amount {
		return nil, apperrors.ErrInsufficientBalance
	}

	fromPrice, err := swapPrice(s.db, fromSymbol)
	if err != nil {
		return nil, err
	}
	toPrice, err := swapPrice(s.db, toSymbol)
	if err != nil {
		return nil, err
	}
	if toPrice == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no price available for "+toSymbol)
	}

	toAmount := amount * fromPrice / toPrice

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Model(fromToken).Updates(map[string]interface{}{
			"balance": fromToken.Balance - amount,
			"value":   (fromToken.Balance - amount) * fromPrice,
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if txErr := tx.Model(toToken).Updates(map[string]interface{}{
			"balance": toToken.Balance + toAmount,
			"value":   (toToken.Balance + toAmount) * toPrice,
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return s.ledger.Record(tx, userID, models.LedgerEntrySwap, amount, fmt.Sprintf("%s → %s", fromSymbol, toSymbol))
	})
	if err != nil {
		return nil, err
	}

	return &SwapResult{
		FromSymbol: fromSymbol,
		ToSymbol:   toSymbol,
		FromAmount: amount,
		ToAmount:   toAmount,
	}, nil
}
