package models

// StockAccount represents one externally held brokerage account. Accounts are
// seeded at startup and refreshed by the price oracle; there is no user-facing
// operation that links or removes brokerages.
type StockAccount struct {
	Base
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"` // stable external id, e.g. "samsung"
	Brokerage     string         `gorm:"not null" json:"brokerage"`
	AccountNumber string         `gorm:"not null" json:"account_number"`
	TotalValue    float64        `gorm:"not null;default:0" json:"total_value"`
	Holdings      []StockHolding `gorm:"foreignKey:StockAccountID" json:"holdings,omitempty"`
}

// StockHolding is a single stock position within a brokerage account.
type StockHolding struct {
	Base
	StockAccountID string  `gorm:"type:uuid;not null" json:"stock_account_id"`
	Symbol         string  `gorm:"not null" json:"symbol"` // KRX ticker, e.g. "005930"
	Name           string  `gorm:"not null" json:"name"`
	Quantity       int64   `gorm:"not null" json:"quantity"`
	CurrentPrice   float64 `gorm:"not null;default:0" json:"current_price"`
	TotalValue     float64 `gorm:"not null;default:0" json:"total_value"`
	ImageURL       string  `json:"image_url"`
}
