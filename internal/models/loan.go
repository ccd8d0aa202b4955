package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusActive     LoanStatus = "active"
	LoanStatusRepaid     LoanStatus = "repaid"
	LoanStatusLiquidated LoanStatus = "liquidated"
)

// StringList stores a list of identifiers as a JSON array column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Loan represents an outstanding or settled borrow position. CollateralValue
// and InterestRate are snapshots taken at creation time; the live rate is
// recomputed from current totals and may differ. LoanAmount is the outstanding
// principal and only ever decreases. Loans are never deleted, only
// status-flagged, and the active -> repaid transition is one-way.
type Loan struct {
	Base
	UserID             string     `gorm:"type:uuid;not null" json:"user_id"`
	CollateralValue    float64    `gorm:"not null" json:"collateral_value"`
	LoanAmount         float64    `gorm:"not null" json:"loan_amount"`
	InterestRate       float64    `gorm:"not null" json:"interest_rate"` // annual %, snapshot at creation
	StartDate          time.Time  `gorm:"not null" json:"start_date"`
	DueDate            time.Time  `gorm:"not null" json:"due_date"`
	Status             LoanStatus `gorm:"not null;default:'active'" json:"status"`
	CollateralAccounts StringList `gorm:"type:text" json:"collateral_accounts"` // stock account slugs pledged
	CollateralTokens   StringList `gorm:"type:text" json:"collateral_tokens"`   // token symbols pledged
}
