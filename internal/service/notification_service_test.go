package service

import (
	"errors"
	"testing"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"

	"gorm.io/gorm"
)

func newNotificationServiceForTest(t *testing.T) (*NotificationService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewNotificationService(repository.NewNotificationRepository(db), repository.NewOrderRepository(db)), db
}

func seedNotification(t *testing.T, db *gorm.DB, userID uint) *models.Notification {
	t.Helper()
	notification := &models.Notification{
		UserID:  userID,
		BizType: constants.NotificationBizTypeOrder,
		Title:   "Đơn hàng đã được xác nhận",
		Body:    "Đơn hàng MT20260901 đã được cửa hàng xác nhận.",
	}
	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("create notification failed: %v", err)
	}
	return notification
}

func TestMarkReadOwnNotification(t *testing.T) {
	svc, db := newNotificationServiceForTest(t)
	notification := seedNotification(t, db, 1)

	if err := svc.MarkRead(notification.ID, 1); err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}

	var stored models.Notification
	if err := db.First(&stored, notification.ID).Error; err != nil {
		t.Fatalf("load notification failed: %v", err)
	}
	if !stored.IsRead {
		t.Fatalf("notification should be marked read")
	}
}

func TestMarkReadForeignNotificationRejected(t *testing.T) {
	svc, db := newNotificationServiceForTest(t)
	notification := seedNotification(t, db, 1)

	// 他人通知与不存在的通知都按未找到处理，且不改动原行
	if err := svc.MarkRead(notification.ID, 2); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
	if err := svc.MarkRead(9999, 1); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound for unknown id, got %v", err)
	}

	var stored models.Notification
	if err := db.First(&stored, notification.ID).Error; err != nil {
		t.Fatalf("load notification failed: %v", err)
	}
	if stored.IsRead {
		t.Fatalf("foreign mark-read must not touch the row")
	}
}

func TestMarkAllReadAndUnreadCount(t *testing.T) {
	svc, db := newNotificationServiceForTest(t)
	seedNotification(t, db, 1)
	seedNotification(t, db, 1)
	seedNotification(t, db, 2)

	count, err := svc.CountUnread(1)
	if err != nil {
		t.Fatalf("CountUnread error: %v", err)
	}
	if count != 2 {
		t.Fatalf("unexpected unread count: %d", count)
	}

	if err := svc.MarkAllRead(1); err != nil {
		t.Fatalf("MarkAllRead error: %v", err)
	}
	count, err = svc.CountUnread(1)
	if err != nil {
		t.Fatalf("CountUnread error: %v", err)
	}
	if count != 0 {
		t.Fatalf("unread count should drop to 0, got %d", count)
	}

	// 其他用户的通知不受影响
	count, err = svc.CountUnread(2)
	if err != nil {
		t.Fatalf("CountUnread error: %v", err)
	}
	if count != 1 {
		t.Fatalf("user 2 unread count should stay 1, got %d", count)
	}
}
