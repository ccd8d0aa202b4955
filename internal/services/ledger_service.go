package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
	"daechul/internal/pagination"
)

// ledgerService handles the append-only activity log.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// Record appends a completed ledger entry on the given handle. Callers pass
// their transaction so the entry commits or rolls back with the mutation.
func (s *ledgerService) Record(tx *gorm.DB, userID string, entryType models.LedgerEntryType, amount float64, token string) error {
	entry := &models.LedgerEntry{
		UserID:    userID,
		Type:      entryType,
		Amount:    amount,
		Token:     token,
		Timestamp: time.Now(),
		Status:    models.LedgerEntryCompleted,
	}
	if err := tx.Create(entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetEntries retrieves a paginated, filtered list of ledger entries,
// newest first.
func (s *ledgerService) GetEntries(page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.LedgerEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.LedgerEntry{})
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Token != nil {
		base = base.Where("token = ?", *filter.Token)
	}
	if filter.FromDate != nil {
		base = base.Where("timestamp >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		base = base.Where("timestamp <= ?", *filter.ToDate)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.LedgerEntry
	if err := base.Scopes(pagination.Paginate(page)).
		Order("timestamp DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}
