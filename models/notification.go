package models

import "time"

const (
	NotificationLowBalance    = "low_balance"
	NotificationWeeklySummary = "weekly_summary"
)

// Notification is the persisted inbox entry. DedupeKey, when set, makes the
// insert a conditional write: the (user_id, dedupe_key) unique index turns a
// duplicate into a storage-level no-op. A nil key never conflicts.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;uniqueIndex:idx_notifications_dedupe" json:"userId"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	DedupeKey *string   `gorm:"size:64;uniqueIndex:idx_notifications_dedupe" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
