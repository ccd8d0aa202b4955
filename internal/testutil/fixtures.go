package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"daechul/internal/models"
)

// CreateTestToken inserts a token with the given balance and value.
func CreateTestToken(t *testing.T, db *gorm.DB, symbol string, balance, value float64) *models.Token {
	t.Helper()
	token := &models.Token{
		Symbol:  symbol,
		Name:    symbol,
		Balance: balance,
		Value:   value,
	}
	if err := db.Create(token).Error; err != nil {
		t.Fatalf("failed to create test token %s: %v", symbol, err)
	}
	return token
}

// CreateTestStockAccount inserts a brokerage account with the given total value.
func CreateTestStockAccount(t *testing.T, db *gorm.DB, slug, brokerage string, totalValue float64) *models.StockAccount {
	t.Helper()
	account := &models.StockAccount{
		Slug:          slug,
		Brokerage:     brokerage,
		AccountNumber: "0000-0000-0000",
		TotalValue:    totalValue,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test stock account %s: %v", slug, err)
	}
	return account
}

// CreateTestCollateral inserts a pledge record.
func CreateTestCollateral(t *testing.T, db *gorm.DB, itemType models.CollateralType, refID string, amount, value float64) *models.CollateralItem {
	t.Helper()
	item := &models.CollateralItem{
		Type:   itemType,
		RefID:  refID,
		Amount: amount,
		Value:  value,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test collateral %s: %v", refID, err)
	}
	return item
}

// CreateTestLoan inserts an active loan.
func CreateTestLoan(t *testing.T, db *gorm.DB, userID string, amount, rate float64) *models.Loan {
	t.Helper()
	now := time.Now()
	loan := &models.Loan{
		UserID:          userID,
		CollateralValue: amount / 0.5,
		LoanAmount:      amount,
		InterestRate:    rate,
		StartDate:       now,
		DueDate:         now.AddDate(0, 0, 180),
		Status:          models.LoanStatusActive,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("failed to create test loan: %v", err)
	}
	return loan
}

// SetTestPrice writes a price cache entry.
func SetTestPrice(t *testing.T, db *gorm.DB, kind models.PriceKind, symbol string, price float64) {
	t.Helper()
	entry := &models.PriceCache{
		Kind:      kind,
		Symbol:    symbol,
		Price:     price,
		UpdatedAt: time.Now(),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to set test price %s: %v", symbol, err)
	}
}

// CreateTestUser inserts an active user with a pre-hashed placeholder password.
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:         email,
		Password:      "$2a$10$placeholderplaceholderplaceholderplaceha",
		WalletAddress: "0x0000000000000000000000000000000000000000",
		IsActive:      true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}
	return user
}
