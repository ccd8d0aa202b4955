package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
)

// collateralService handles pledge records.
type collateralService struct {
	db     *gorm.DB
	assets AssetServicer
	ledger LedgerServicer
}

// NewCollateralService creates a new CollateralServicer.
func NewCollateralService(db *gorm.DB, assets AssetServicer, ledger LedgerServicer) CollateralServicer {
	return &collateralService{db: db, assets: assets, ledger: ledger}
}

// AddStockCollateral pledges an entire brokerage account at its current total
// value. An account can be pledged at most once.
func (s *collateralService) AddStockCollateral(userID, accountSlug string) (*models.CollateralItem, error) {
	account, err := s.assets.GetStockAccountBySlug(accountSlug)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.CollateralItem{}).Where("ref_id = ?", accountSlug).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyPledged
	}

	item := &models.CollateralItem{
		Type:  models.CollateralTypeStock,
		RefID: accountSlug,
		Value: account.TotalValue,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.Create(item).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return s.ledger.Record(tx, userID, models.LedgerEntryCollateralAdd, account.TotalValue, account.Brokerage)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AddCryptoCollateral pledges amount of a token at its current cached price.
// The token balance is debited; pledging the same symbol again accumulates
// into the existing item.
func (s *collateralService) AddCryptoCollateral(userID, symbol string, amount float64) (*models.CollateralItem, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	token, err := s.assets.GetTokenBySymbol(symbol)
	if err != nil {
		return nil, err
	}
	if token.Balance < amount {
		return nil, apperrors.ErrInsufficientBalance
	}

	price, err := cachedPrice(s.db, models.PriceKindCrypto, symbol)
	if err != nil {
		return nil, err
	}
	value := amount * price

	var item models.CollateralItem
	found := true
	if err := s.db.Where("ref_id = ?", symbol).First(&item).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		found = false
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if found {
			if txErr := tx.Model(&item).Updates(map[string]interface{}{
				"amount": item.Amount + amount,
				"value":  item.Value + value,
			}).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			item.Amount += amount
			item.Value += value
		} else {
			item = models.CollateralItem{
				Type:   models.CollateralTypeCrypto,
				RefID:  symbol,
				Amount: amount,
				Value:  value,
			}
			if txErr := tx.Create(&item).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}

		if txErr := tx.Model(token).Updates(map[string]interface{}{
			"balance": token.Balance - amount,
			"value":   (token.Balance - amount) * price,
		}).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		return s.ledger.Record(tx, userID, models.LedgerEntryCollateralAdd, value, symbol)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCollateral releases a pledge. Crypto pledges credit the pledged amount
// back to the token, revalued at the current cached price. That price may
// differ from the pledge-time valuation if prices moved in between.
func (s *collateralService) RemoveCollateral(userID, refID string) error {
	var item models.CollateralItem
	if err := s.db.Where("ref_id = ?", refID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCollateralNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&item).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if item.Type == models.CollateralTypeCrypto && item.Amount > 0 {
			token, err := s.assets.GetTokenBySymbol(refID)
			if err != nil {
				return err
			}
			price, err := cachedPrice(tx, models.PriceKindCrypto, refID)
			if err != nil {
				return err
			}
			if err := tx.Model(token).Updates(map[string]interface{}{
				"balance": token.Balance + item.Amount,
				"value":   (token.Balance + item.Amount) * price,
			}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return nil
	})
}

// GetCollateral returns all live pledge records.
func (s *collateralService) GetCollateral() ([]models.CollateralItem, error) {
	var items []models.CollateralItem
	if err := s.db.Order("created_at").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return items, nil
}
