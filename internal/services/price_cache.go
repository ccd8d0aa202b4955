package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "daechul/internal/errors"
	"daechul/internal/models"
)

// cachedPrice returns the last known unit price for a symbol, or 0 when the
// cache has no entry. Valuations against a missing price come out as zero
// rather than failing, matching the store's cache-or-nothing pricing.
func cachedPrice(db *gorm.DB, kind models.PriceKind, symbol string) (float64, error) {
	var entry models.PriceCache
	err := db.Where("kind = ? AND symbol = ?", kind, symbol).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry.Price, nil
}

// swapPrice is cachedPrice with the KRW1 stablecoin pinned at 1 KRW.
func swapPrice(db *gorm.DB, symbol string) (float64, error) {
	if symbol == models.StablecoinSymbol {
		return 1, nil
	}
	return cachedPrice(db, models.PriceKindCrypto, symbol)
}

// upsertPrice writes a price cache entry, replacing any existing one for the
// same (kind, symbol).
func upsertPrice(tx *gorm.DB, kind models.PriceKind, symbol string, price float64) error {
	entry := models.PriceCache{Kind: kind, Symbol: symbol, Price: price}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
