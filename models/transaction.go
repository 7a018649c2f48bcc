package models

import "time"

// Transaction rows are append-only; amount sign carries direction
// (negative = debit, positive = credit).
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"userId"`
	Type        string    `gorm:"size:20;not null" json:"type"` // "withdrawal" | "payment" | "deposit"
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
