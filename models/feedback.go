package models

import "time"

type Feedback struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index" json:"userId"`
	TransactionID *uint     `json:"transactionId,omitempty"`
	Rating        int       `gorm:"check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
}
