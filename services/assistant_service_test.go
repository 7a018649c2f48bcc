package services

import (
	"context"
	"testing"
	"time"

	"github.com/Manelygb/haick-satim-challenge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_BalanceKeyword(t *testing.T) {
	svc := NewAssistantService(nil)
	user := &models.User{Balance: 8500.50}

	reply := svc.Chat(user, "what is my BALANCE?", "en")
	assert.Contains(t, reply.Response, "8500.50 DA")
	assert.Equal(t, []string{"View transactions", "Find ATM", "Transfer money"}, reply.Suggestions)
	assert.Equal(t, 0.95, reply.Confidence)
}

func TestChat_ArabicKeywordAndLanguage(t *testing.T) {
	svc := NewAssistantService(nil)
	user := &models.User{Balance: 1200}

	reply := svc.Chat(user, "كم رصيد حسابي؟", "ar")
	assert.Contains(t, reply.Response, "رصيدك")
	assert.Contains(t, reply.Response, "1200.00")
}

func TestChat_WithdrawKeyword(t *testing.T) {
	svc := NewAssistantService(nil)

	reply := svc.Chat(&models.User{}, "I want to withdraw cash", "en")
	assert.Contains(t, reply.Response, "Place 1er Mai")
}

func TestChat_PaymentKeyword(t *testing.T) {
	svc := NewAssistantService(nil)

	reply := svc.Chat(&models.User{}, "how do I pay my bill", "en")
	assert.Contains(t, reply.Response, "card or mobile")
}

func TestChat_FallbackHelp(t *testing.T) {
	svc := NewAssistantService(nil)

	reply := svc.Chat(&models.User{}, "weather today?", "en")
	assert.Contains(t, reply.Response, "here to help")
	assert.Contains(t, reply.Suggestions, "Contact support")
}

func TestChat_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	svc := NewAssistantService(nil)

	reply := svc.Chat(&models.User{Balance: 50}, "balance", "fr")
	assert.Contains(t, reply.Response, "Your current balance")
}

func TestPredictions_GroupsByType(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssistantService(db)

	user := models.User{Email: "p@email.com", Password: "x", Name: "P", BankID: "BNA"}
	require.NoError(t, db.Create(&user).Error)

	now := time.Now()
	transactions := []models.Transaction{
		{UserID: user.ID, Type: "withdrawal", Amount: -2000, CreatedAt: now.Add(-24 * time.Hour)},
		{UserID: user.ID, Type: "withdrawal", Amount: -1000, CreatedAt: now.Add(-48 * time.Hour)},
		{UserID: user.ID, Type: "deposit", Amount: 5000, CreatedAt: now.Add(-24 * time.Hour)},
	}
	require.NoError(t, db.Create(&transactions).Error)

	predictions, err := svc.Predictions(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, predictions, 2)

	byType := map[string]TypePrediction{}
	for _, p := range predictions {
		byType[p.Type] = p
	}
	assert.Equal(t, -1500, byType["withdrawal"].SuggestedAmount)
	assert.EqualValues(t, 2, byType["withdrawal"].Frequency)
	assert.Equal(t, 5000, byType["deposit"].SuggestedAmount)
}
