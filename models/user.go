package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	BankID    string    `gorm:"not null" json:"bankId"`
	Balance   float64   `gorm:"default:0" json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}
