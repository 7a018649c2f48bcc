package services

import (
	"github.com/Manelygb/haick-satim-challenge/models"
	"github.com/Manelygb/haick-satim-challenge/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDemoData inserts the demo accounts and their transaction history
// when the users table is empty. Re-running it is a no-op.
func SeedDemoData(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword("password123")
	if err != nil {
		return err
	}

	users := []models.User{
		{Email: "ahmed@email.com", Password: hashed, Name: "Ahmed Benali", BankID: "BNA", Balance: 15000.00},
		{Email: "fatima@email.com", Password: hashed, Name: "Fatima Khelil", BankID: "CCP", Balance: 8500.50},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	transactions := []models.Transaction{
		{UserID: users[0].ID, Type: "withdrawal", Amount: -2000.00, Description: "ATM Withdrawal - Place 1er Mai"},
		{UserID: users[0].ID, Type: "payment", Amount: -150.00, Description: "Coffee Shop Payment"},
		{UserID: users[0].ID, Type: "deposit", Amount: 5000.00, Description: "Salary Deposit"},
		{UserID: users[1].ID, Type: "withdrawal", Amount: -1000.00, Description: "ATM Withdrawal - University"},
		{UserID: users[1].ID, Type: "payment", Amount: -75.00, Description: "Bus Card Recharge"},
	}
	if err := db.Create(&transactions).Error; err != nil {
		return err
	}

	log.Info("seeded demo data", zap.Int("users", len(users)), zap.Int("transactions", len(transactions)))
	return nil
}
