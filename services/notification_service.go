package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Manelygb/haick-satim-challenge/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const notificationListCap = 20

type NotificationService struct {
	db  *gorm.DB
	pub Publisher
	log *zap.Logger

	lowBalanceBelow float64
}

func NewNotificationService(db *gorm.DB, pub Publisher, log *zap.Logger, lowBalanceBelow float64) *NotificationService {
	return &NotificationService{db: db, pub: pub, log: log, lowBalanceBelow: lowBalanceBelow}
}

// ListForUser returns the user's notifications, newest first, capped
// at 20.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(notificationListCap).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the read flag. The update is keyed on both id and
// owner, so a mismatched owner (or missing id) silently affects zero
// rows; the boolean reports whether a row changed.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Create persists a notification and, when a row was actually
// inserted, publishes it to the owner's connected sessions. A set
// DedupeKey makes the insert conflict-as-no-op.
func (s *NotificationService) Create(ctx context.Context, n *models.Notification) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "dedupe_key"}},
			DoNothing: true,
		}).
		Create(n)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if s.pub != nil {
		s.pub.Publish(n.UserID, "new_notification", n)
	}
	return true, nil
}

// GenerateForAllUsers runs the proactive sweep: a low-balance pass and
// a weekly spending summary pass. Per-user failures are logged and
// skipped; only sweep-level query failures surface to the caller.
func (s *NotificationService) GenerateForAllUsers(ctx context.Context) (int, error) {
	created := 0

	var lowBalanceUsers []models.User
	if err := s.db.WithContext(ctx).
		Where("balance < ?", s.lowBalanceBelow).
		Find(&lowBalanceUsers).Error; err != nil {
		return created, err
	}
	for _, u := range lowBalanceUsers {
		key := models.NotificationLowBalance
		inserted, err := s.Create(ctx, &models.Notification{
			UserID:    u.ID,
			Type:      models.NotificationLowBalance,
			Title:     "Low Balance Alert",
			Message:   fmt.Sprintf("Your balance is %.2f DA. Consider topping up.", u.Balance),
			DedupeKey: &key,
		})
		if err != nil {
			s.log.Warn("low balance notification failed", zap.Uint("user_id", u.ID), zap.Error(err))
			continue
		}
		if inserted {
			created++
		}
	}

	since := time.Now().AddDate(0, 0, -7)
	var activeUserIDs []uint
	if err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("created_at > ?", since).
		Distinct("user_id").
		Pluck("user_id", &activeUserIDs).Error; err != nil {
		return created, err
	}
	weekKey := weeklySummaryKey(time.Now())
	for _, userID := range activeUserIDs {
		var spend float64
		err := s.db.WithContext(ctx).
			Model(&models.Transaction{}).
			Select("COALESCE(SUM(ABS(amount)), 0)").
			Where("user_id = ? AND amount < 0 AND created_at > ?", userID, since).
			Scan(&spend).Error
		if err != nil {
			s.log.Warn("weekly summary query failed", zap.Uint("user_id", userID), zap.Error(err))
			continue
		}

		key := weekKey
		inserted, err := s.Create(ctx, &models.Notification{
			UserID:    userID,
			Type:      models.NotificationWeeklySummary,
			Title:     "Weekly Spending Summary",
			Message:   fmt.Sprintf("You spent %.2f DA this week. 15%% less than network average!", spend),
			DedupeKey: &key,
		})
		if err != nil {
			s.log.Warn("weekly summary notification failed", zap.Uint("user_id", userID), zap.Error(err))
			continue
		}
		if inserted {
			created++
		}
	}

	return created, nil
}

// weeklySummaryKey buckets summaries by ISO week so re-running the
// sweep inside the same week is a no-op per user.
func weeklySummaryKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%s:%d-W%02d", models.NotificationWeeklySummary, year, week)
}
