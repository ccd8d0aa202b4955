package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"daechul/internal/models"
	"daechul/internal/pagination"
)

// UserServicer defines the contract for the demo session gate.
type UserServicer interface {
	SeedDemoUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// AssetServicer defines the contract for token and stock-account state.
type AssetServicer interface {
	// InitializeAssets seeds the demo tokens and brokerage accounts with
	// live-or-fallback prices. Idempotent: a no-op once tokens exist.
	InitializeAssets(ctx context.Context) error
	// RefreshPrices re-fetches crypto and stock prices, then recomputes every
	// token value and holding/account total in place. Collateral pledge values
	// and loan snapshots are deliberately left untouched.
	RefreshPrices(ctx context.Context) error
	GetTokens() ([]models.Token, error)
	GetTokenBySymbol(symbol string) (*models.Token, error)
	GetStockAccounts() ([]models.StockAccount, error)
	GetStockAccountBySlug(slug string) (*models.StockAccount, error)
	// BuyToken swaps amount of fromSymbol into toSymbol at cached prices.
	BuyToken(userID, fromSymbol, toSymbol string, amount float64) (*SwapResult, error)
}

// SwapResult describes a completed token swap.
type SwapResult struct {
	FromSymbol string  `json:"from_symbol"`
	ToSymbol   string  `json:"to_symbol"`
	FromAmount float64 `json:"from_amount"`
	ToAmount   float64 `json:"to_amount"`
}

// CollateralServicer defines the contract for pledge records.
type CollateralServicer interface {
	AddStockCollateral(userID, accountSlug string) (*models.CollateralItem, error)
	AddCryptoCollateral(userID, symbol string, amount float64) (*models.CollateralItem, error)
	RemoveCollateral(userID, refID string) error
	GetCollateral() ([]models.CollateralItem, error)
}

// CollateralPolicy names how pledged collateral is associated with loans.
type CollateralPolicy string

// CollateralPolicyPooled associates the entire pledged set with every loan
// created while it is pledged: all pledged assets back all active loans.
const CollateralPolicyPooled CollateralPolicy = "pooled"

// LoanServicer defines the contract for loan lifecycle operations.
type LoanServicer interface {
	CreateLoan(userID string, amount float64) (*models.Loan, error)
	RepayLoan(userID, loanID string, amount float64) (*models.Loan, error)
	GetLoans() ([]models.Loan, error)
	GetLoanByID(loanID string) (*models.Loan, error)
	// AccruedInterest returns the display-only interest figure for a loan:
	// principal x snapshot rate, pro-rated for the days elapsed since the
	// start date. It is never deducted from any balance.
	AccruedInterest(loan *models.Loan, asOf time.Time) float64
}

// PortfolioSummary aggregates the derived lending metrics. HealthFactor is
// math.Inf(1) when nothing is borrowed.
type PortfolioSummary struct {
	TotalCollateralValue float64 `json:"total_collateral_value"`
	TotalBorrowedValue   float64 `json:"total_borrowed_value"`
	HealthFactor         float64 `json:"-"`
	LiquidationRatio     float64 `json:"liquidation_ratio"`
	CurrentInterestRate  float64 `json:"current_interest_rate"`
	MaxBorrowAmount      float64 `json:"max_borrow_amount"`
}

// PortfolioServicer defines the contract for derived lending metrics.
// All methods are pure reads over current state.
type PortfolioServicer interface {
	TotalCollateralValue() (float64, error)
	TotalBorrowedValue() (float64, error)
	HealthFactor() (float64, error)
	LiquidationRatio() (float64, error)
	CurrentInterestRate() (float64, error)
	MaxBorrowAmount() (float64, error)
	Summary() (*PortfolioSummary, error)
}

// LedgerFilter holds optional filter parameters for listing ledger entries.
type LedgerFilter struct {
	Type     *models.LedgerEntryType
	Token    *string
	FromDate *time.Time
	ToDate   *time.Time
}

// LedgerServicer defines the contract for the append-only activity log.
type LedgerServicer interface {
	// Record appends an entry using the given database handle so it commits
	// atomically with the mutation it describes.
	Record(tx *gorm.DB, userID string, entryType models.LedgerEntryType, amount float64, token string) error
	GetEntries(page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.LedgerEntry], error)
}
