package services

import (
	"errors"
	"math"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
)

// loanService handles loan lifecycle operations.
type loanService struct {
	db        *gorm.DB
	assets    AssetServicer
	portfolio PortfolioServicer
	ledger    LedgerServicer
	policy    CollateralPolicy
	termDays  int
}

// NewLoanService creates a new LoanServicer with the pooled collateral policy.
func NewLoanService(db *gorm.DB, assets AssetServicer, portfolio PortfolioServicer, ledger LedgerServicer, termDays int) LoanServicer {
	return &loanService{
		db:        db,
		assets:    assets,
		portfolio: portfolio,
		ledger:    ledger,
		policy:    CollateralPolicyPooled,
		termDays:  termDays,
	}
}

// CreateLoan borrows amount against the pledged collateral pool. The loan
// snapshots the pre-loan collateral value and live interest rate, captures the
// entire pledged set (pooled policy), and disburses amount into the KRW1
// token.
func (s *loanService) CreateLoan(userID string, amount float64) (*models.Loan, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	maxBorrow, err := s.portfolio.MaxBorrowAmount()
	if err != nil {
		return nil, err
	}
	if amount > maxBorrow {
		return nil, apperrors.ErrCapExceeded
	}

	collateralValue, err := s.portfolio.TotalCollateralValue()
	if err != nil {
		return nil, err
	}
	interestRate, err := s.portfolio.CurrentInterestRate()
	if err != nil {
		return nil, err
	}

	var collateral []models.CollateralItem
	if err := s.db.Find(&collateral).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stablecoin, err := s.assets.GetTokenBySymbol(models.StablecoinSymbol)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	loan := &models.Loan{
		UserID:          userID,
		CollateralValue: collateralValue,
		LoanAmount:      amount,
		InterestRate:    interestRate,
		StartDate:       now,
		DueDate:         now.AddDate(0, 0, s.termDays),
		Status:          models.LoanStatusActive,
		CollateralAccounts: lo.FilterMap(collateral, func(c models.CollateralItem, _ int) (string, bool) {
			return c.RefID, c.Type == models.CollateralTypeStock
		}),
		CollateralTokens: lo.FilterMap(collateral, func(c models.CollateralItem, _ int) (string, bool) {
			return c.RefID, c.Type == models.CollateralTypeCrypto
		}),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(loan).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		// KRW1 is pinned at 1 KRW, so value moves with balance.
		if txErr := tx.Model(stablecoin).Updates(map[string]interface{}{
			"balance": stablecoin.Balance + amount,
			"value":   stablecoin.Value + amount,
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return s.ledger.Record(tx, userID, models.LedgerEntryBorrow, amount, models.StablecoinSymbol)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// RepayLoan pays amount of KRW1 against a loan's principal, floored at zero.
// Full repayment flips the loan to repaid (one-way) and releases every pledge
// the loan captured, crediting crypto collateral back to its token.
func (s *loanService) RepayLoan(userID, loanID string, amount float64) (*models.Loan, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	loan, err := s.GetLoanByID(loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != models.LoanStatusActive {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "loan is not active")
	}

	stablecoin, err := s.assets.GetTokenBySymbol(models.StablecoinSymbol)
	if err != nil {
		return nil, err
	}
	if stablecoin.Balance < amount {
		return nil, apperrors.ErrInsufficientBalance
	}

	newAmount := math.Max(0, loan.LoanAmount-amount)
	fullyRepaid := loan.LoanAmount-amount <= 0

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"loan_amount": newAmount}
		if fullyRepaid {
			updates["status"] = models.LoanStatusRepaid
		}
		if txErr := tx.Model(loan).Updates(updates).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if txErr := tx.Model(stablecoin).Updates(map[string]interface{}{
			"balance": stablecoin.Balance - amount,
			"value":   stablecoin.Value - amount,
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if fullyRepaid {
			if txErr := s.releaseCollateral(tx, loan); txErr != nil {
				return txErr
			}
		}

		return s.ledger.Record(tx, userID, models.LedgerEntryRepay, amount, models.StablecoinSymbol)
	})
	if err != nil {
		return nil, err
	}

	loan.LoanAmount = newAmount
	if fullyRepaid {
		loan.Status = models.LoanStatusRepaid
	}
	return loan, nil
}

// releaseCollateral removes every pledge the loan captured, exactly once, and
// credits crypto pledges back to their tokens at the current cached price.
func (s *loanService) releaseCollateral(tx *gorm.DB, loan *models.Loan) error {
	refIDs := append(append(models.StringList{}, loan.CollateralAccounts...), loan.CollateralTokens...)

	for _, refID := range refIDs {
		var item models.CollateralItem
		if err := tx.Where("ref_id = ?", refID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // already released
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(&item).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if item.Type == models.CollateralTypeCrypto && item.Amount > 0 {
			var token models.Token
			if err := tx.Where("symbol = ?", refID).First(&token).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			price, err := cachedPrice(tx, models.PriceKindCrypto, refID)
			if err != nil {
				return err
			}
			if err := tx.Model(&token).Updates(map[string]interface{}{
				"balance": token.Balance + item.Amount,
				"value":   (token.Balance + item.Amount) * price,
			}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
	}

	return nil
}

// GetLoans returns all loans, newest first.
func (s *loanService) GetLoans() ([]models.Loan, error) {
	var loans []models.Loan
	if err := s.db.Order("start_date DESC").Find(&loans).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return loans, nil
}

// GetLoanByID retrieves a loan by ID.
func (s *loanService) GetLoanByID(loanID string) (*models.Loan, error) {
	var loan models.Loan
	if err := s.db.Where("id = ?", loanID).First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &loan, nil
}

// AccruedInterest is the display-only interest figure: principal x snapshot
// rate, pro-rated for days elapsed since the start date. Not persisted and
// never deducted from any balance.
func (s *loanService) AccruedInterest(loan *models.Loan, asOf time.Time) float64 {
	days := asOf.Sub(loan.StartDate).Hours() / 24
	if days < 0 {
		return 0
	}
	return loan.LoanAmount * loan.InterestRate * 0.01 * days / 365
}
