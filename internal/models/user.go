package models

// User represents the demo user the session gate authenticates against.
// The product has no multi-user model; one user is seeded at startup.
type User struct {
	Base
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	Password      string `gorm:"not null" json:"-"`
	WalletAddress string `json:"wallet_address"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
}
