package services

import (
	"math"

	"github.com/samber/lo"
	"gorm.io/gorm"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
	"daechul/internal/oracle"
)

// MaxLTV is the loan-to-value cap enforced for new loans.
const MaxLTV = 0.7

// portfolioService computes derived lending metrics. All methods are pure
// reads over current state.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// TotalCollateralValue sums the pledge-time valuations of all collateral.
func (s *portfolioService) TotalCollateralValue() (float64, error) {
	var items []models.CollateralItem
	if err := s.db.Find(&items).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lo.SumBy(items, func(i models.CollateralItem) float64 { return i.Value }), nil
}

// TotalBorrowedValue sums the outstanding principal of active loans.
func (s *portfolioService) TotalBorrowedValue() (float64, error) {
	var loans []models.Loan
	if err := s.db.Where("status = ?", models.LoanStatusActive).Find(&loans).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lo.SumBy(loans, func(l models.Loan) float64 { return l.LoanAmount }), nil
}

// HealthFactor is collateral/borrowed; +Inf when nothing is borrowed.
func (s *portfolioService) HealthFactor() (float64, error) {
	collateral, err := s.TotalCollateralValue()
	if err != nil {
		return 0, err
	}
	borrowed, err := s.TotalBorrowedValue()
	if err != nil {
		return 0, err
	}
	if borrowed == 0 {
		return math.Inf(1), nil
	}
	return collateral / borrowed, nil
}

// LiquidationRatio is the inverse health factor; 0 when debt-free.
func (s *portfolioService) LiquidationRatio() (float64, error) {
	hf, err := s.HealthFactor()
	if err != nil {
		return 0, err
	}
	if math.IsInf(hf, 1) {
		return 0, nil
	}
	return 1 / hf, nil
}

// CurrentInterestRate recomputes the live rate from current totals. It may
// differ from the snapshot rate stored on existing loans.
func (s *portfolioService) CurrentInterestRate() (float64, error) {
	collateral, err := s.TotalCollateralValue()
	if err != nil {
		return 0, err
	}
	borrowed, err := s.TotalBorrowedValue()
	if err != nil {
		return 0, err
	}
	return oracle.CalculateInterestRate(borrowed, collateral), nil
}

// MaxBorrowAmount is collateral x MaxLTV minus outstanding borrowing. It can
// go negative when borrowing already exceeds the cap; callers clamp for
// display.
func (s *portfolioService) MaxBorrowAmount() (float64, error) {
	collateral, err := s.TotalCollateralValue()
	if err != nil {
		return 0, err
	}
	borrowed, err := s.TotalBorrowedValue()
	if err != nil {
		return 0, err
	}
	return collateral*MaxLTV - borrowed, nil
}

// Summary assembles all derived metrics in one read.
func (s *portfolioService) Summary() (*PortfolioSummary, error) {
	collateral, err := s.TotalCollateralValue()
	if err != nil {
		return nil, err
	}
	borrowed, err := s.TotalBorrowedValue()
	if err != nil {
		return nil, err
	}

	hf := math.Inf(1)
	liquidation := 0.0
	if borrowed > 0 {
		hf = collateral / borrowed
		liquidation = 1 / hf
	}

	return &PortfolioSummary{
		TotalCollateralValue: collateral,
		TotalBorrowedValue:   borrowed,
		HealthFactor:         hf,
		LiquidationRatio:     liquidation,
		CurrentInterestRate:  oracle.CalculateInterestRate(borrowed, collateral),
		MaxBorrowAmount:      collateral*MaxLTV - borrowed,
	}, nil
}
