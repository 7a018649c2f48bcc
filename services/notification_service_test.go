package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Manelygb/haick-satim-challenge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newNotificationService(t *testing.T) (*NotificationService, *gorm.DB, *fakePublisher) {
	t.Helper()
	db := newTestDB(t)
	pub := &fakePublisher{}
	return NewNotificationService(db, pub, zap.NewNop(), 1000), db, pub
}

func TestListForUser_CapAndOrder(t *testing.T) {
	svc, db, _ := newNotificationService(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&models.Notification{
			UserID:    1,
			Type:      models.NotificationLowBalance,
			Title:     "t",
			Message:   fmt.Sprintf("n%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	got, err := svc.ListForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 20)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt), "expected newest first")
	}
	assert.Equal(t, "n24", got[0].Message)
}

func TestListForUser_OnlyOwnRows(t *testing.T) {
	svc, db, _ := newNotificationService(t)

	require.NoError(t, db.Create(&models.Notification{UserID: 1, Type: "x", Title: "t", Message: "mine"}).Error)
	require.NoError(t, db.Create(&models.Notification{UserID: 2, Type: "x", Title: "t", Message: "theirs"}).Error)

	got, err := svc.ListForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mine", got[0].Message)
}

func TestMarkRead_Idempotent(t *testing.T) {
	svc, db, _ := newNotificationService(t)
	ctx := context.Background()

	n := models.Notification{UserID: 7, Type: "x", Title: "t", Message: "m"}
	require.NoError(t, db.Create(&n).Error)

	updated, err := svc.MarkRead(ctx, n.ID, 7)
	require.NoError(t, err)
	assert.True(t, updated)

	// second call must not error and must leave read=true
	_, err = svc.MarkRead(ctx, n.ID, 7)
	require.NoError(t, err)

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, n.ID).Error)
	assert.True(t, reloaded.Read)
}

func TestMarkRead_OwnerMismatchLeavesRowUnchanged(t *testing.T) {
	svc, db, _ := newNotificationService(t)

	n := models.Notification{UserID: 7, Type: "x", Title: "t", Message: "m"}
	require.NoError(t, db.Create(&n).Error)

	updated, err := svc.MarkRead(context.Background(), n.ID, 99)
	require.NoError(t, err)
	assert.False(t, updated)

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, n.ID).Error)
	assert.False(t, reloaded.Read)
}

func TestMarkRead_MissingID(t *testing.T) {
	svc, _, _ := newNotificationService(t)

	updated, err := svc.MarkRead(context.Background(), 12345, 7)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestCreate_DedupeKeyConflictIsNoOp(t *testing.T) {
	svc, db, pub := newNotificationService(t)
	ctx := context.Background()

	key := models.NotificationLowBalance
	first := models.Notification{UserID: 1, Type: key, Title: "t", Message: "m", DedupeKey: &key}
	inserted, err := svc.Create(ctx, &first)
	require.NoError(t, err)
	assert.True(t, inserted)

	key2 := models.NotificationLowBalance
	second := models.Notification{UserID: 1, Type: key, Title: "t", Message: "m2", DedupeKey: &key2}
	inserted, err = svc.Create(ctx, &second)
	require.NoError(t, err)
	assert.False(t, inserted)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// only the real insert was published
	events := pub.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, "new_notification", events[0].Event)
	assert.EqualValues(t, 1, events[0].UserID)
}

func TestCreate_NilDedupeKeyNeverConflicts(t *testing.T) {
	svc, db, _ := newNotificationService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		inserted, err := svc.Create(ctx, &models.Notification{UserID: 1, Type: "x", Title: "t", Message: "m"})
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestGenerateForAllUsers_Sweep(t *testing.T) {
	svc, db, _ := newNotificationService(t)
	ctx := context.Background()

	low := models.User{Email: "low@email.com", Password: "x", Name: "Low", BankID: "BNA", Balance: 300}
	rich := models.User{Email: "rich@email.com", Password: "x", Name: "Rich", BankID: "CCP", Balance: 5000}
	require.NoError(t, db.Create(&low).Error)
	require.NoError(t, db.Create(&rich).Error)

	// rich spent this week, low did not
	require.NoError(t, db.Create(&models.Transaction{
		UserID: rich.ID, Type: "payment", Amount: -250, Description: "Coffee",
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}).Error)

	created, err := svc.GenerateForAllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created) // one low_balance, one weekly_summary

	var lowNotifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", low.ID).Find(&lowNotifs).Error)
	require.Len(t, lowNotifs, 1)
	assert.Equal(t, models.NotificationLowBalance, lowNotifs[0].Type)
	assert.Contains(t, lowNotifs[0].Message, "300.00 DA")

	var richNotifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", rich.ID).Find(&richNotifs).Error)
	require.Len(t, richNotifs, 1)
	assert.Equal(t, models.NotificationWeeklySummary, richNotifs[0].Type)
	assert.Contains(t, richNotifs[0].Message, "250.00 DA")
}

func TestGenerateForAllUsers_RerunIsNoOp(t *testing.T) {
	svc, db, _ := newNotificationService(t)
	ctx := context.Background()

	user := models.User{Email: "u@email.com", Password: "x", Name: "U", BankID: "BNA", Balance: 300}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Transaction{
		UserID: user.ID, Type: "withdrawal", Amount: -100, Description: "ATM",
		CreatedAt: time.Now().Add(-time.Hour),
	}).Error)

	created, err := svc.GenerateForAllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = svc.GenerateForAllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestWeeklySummaryKey_BucketsByISOWeek(t *testing.T) {
	monday := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, weeklySummaryKey(monday), weeklySummaryKey(sunday))
	assert.NotEqual(t, weeklySummaryKey(monday), weeklySummaryKey(nextMonday))
}
