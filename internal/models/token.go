package models

// Token represents a balance-bearing crypto asset held by the demo wallet.
// Tokens are seeded once and never destroyed; a symbol with zero balance
// remains in the table.
type Token struct {
	Base
	Symbol      string  `gorm:"uniqueIndex;not null" json:"symbol"`
	Name        string  `gorm:"not null" json:"name"`
	Balance     float64 `gorm:"not null;default:0" json:"balance"`
	Value       float64 `gorm:"not null;default:0" json:"value"` // balance x cached unit price, in KRW
	Icon        string  `json:"icon"`
	ImageURL    string  `json:"image_url"`
	Network     string  `gorm:"not null;default:'ethereum'" json:"network"`
	NetworkIcon string  `json:"network_icon"`
}

// StablecoinSymbol is the KRW-pegged token that loans disburse into and
// repayments draw from. Its unit price is pinned to 1 KRW.
const StablecoinSymbol = "KRW1"
