package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Manelygb/haick-satim-challenge/models"

	"gorm.io/gorm"
)

type AssistantService struct {
	db *gorm.DB
}

func NewAssistantService(db *gorm.DB) *AssistantService {
	return &AssistantService{db: db}
}

type AssistantReply struct {
	Response    string    `json:"response"`
	Suggestions []string  `json:"suggestions"`
	Confidence  float64   `json:"confidence"`
	Timestamp   time.Time `json:"timestamp"`
}

type assistantAnswer struct {
	en          string
	ar          string
	suggestions []string
}

// Chat routes the message through a canned keyword table. The balance
// answer interpolates the caller's current balance; everything else is
// static copy in English and Arabic.
func (s *AssistantService) Chat(user *models.User, message, language string) AssistantReply {
	msg := strings.ToLower(message)

	var answer assistantAnswer
	switch {
	case strings.Contains(msg, "balance") || strings.Contains(msg, "رصيد"):
		answer = assistantAnswer{
			en:          fmt.Sprintf("Your current balance is %.2f DA. Need anything else?", user.Balance),
			ar:          fmt.Sprintf("رصيدك الحالي هو %.2f دج. هل تريد معرفة المزيد؟", user.Balance),
			suggestions: []string{"View transactions", "Find ATM", "Transfer money"},
		}
	case strings.Contains(msg, "withdraw") || strings.Contains(msg, "سحب") || strings.Contains(msg, "نقود"):
		answer = assistantAnswer{
			en:          "Based on network data, ATM at Place 1er Mai has shortest wait time now",
			ar:          "بناءً على بيانات الشبكة، أقرب صراف آلي في مكان 1 ماي لديه أقل وقت انتظار الآن",
			suggestions: []string{"Find nearest ATM", "Check withdrawal limits", "Schedule withdrawal"},
		}
	case strings.Contains(msg, "pay") || strings.Contains(msg, "دفع"):
		answer = assistantAnswer{
			en:          "You can pay by card or mobile. Which do you prefer?",
			ar:          "يمكنك الدفع بالبطاقة أو الهاتف المحمول. أي طريقة تفضل؟",
			suggestions: []string{"Card payment guide", "Mobile payment setup", "Payment history"},
		}
	default:
		answer = assistantAnswer{
			en:          "I'm here to help! I can assist with payments, withdrawals, and account inquiries",
			ar:          "أنا هنا لمساعدتك! يمكنني مساعدتك في المدفوعات والسحوبات والاستعلامات",
			suggestions: []string{"Check balance", "Find ATM", "Transaction guide", "Contact support"},
		}
	}

	response := answer.en
	if language == "ar" {
		response = answer.ar
	}

	return AssistantReply{
		Response:    response,
		Suggestions: answer.suggestions,
		Confidence:  0.95,
		Timestamp:   time.Now(),
	}
}

type TypePrediction struct {
	Type            string `json:"type"`
	SuggestedAmount int    `json:"suggestedAmount"`
	Frequency       int64  `json:"frequency"`
	Prediction      string `json:"prediction"`
}

// Predictions summarizes the user's 30-day transaction history per
// type.
func (s *AssistantService) Predictions(ctx context.Context, userID uint) ([]TypePrediction, error) {
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	var rows []struct {
		Type      string
		AvgAmount float64
		Frequency int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("type, AVG(amount) AS avg_amount, COUNT(*) AS frequency").
		Where("user_id = ? AND created_at > ?", userID, thirtyDaysAgo).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	predictions := make([]TypePrediction, 0, len(rows))
	for _, row := range rows {
		amount := int(math.Round(row.AvgAmount))
		predictions = append(predictions, TypePrediction{
			Type:            row.Type,
			SuggestedAmount: amount,
			Frequency:       row.Frequency,
			Prediction:      fmt.Sprintf("Based on your history, you typically %s %d DA", row.Type, amount),
		})
	}
	return predictions, nil
}
