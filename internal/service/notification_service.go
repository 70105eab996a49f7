package service

import (
	"fmt"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"
)

// NotificationService 站内通知服务
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	orderRepo        repository.OrderRepository
}

// NewNotificationService 创建站内通知服务
func NewNotificationService(notificationRepo repository.NotificationRepository, orderRepo repository.OrderRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		orderRepo:        orderRepo,
	}
}

// NotifyOrderStatus 写入一条订单状态通知。
// 任务载荷里的状态只是提示，以回查到的订单为准。
func (s *NotificationService) NotifyOrderStatus(orderID, userID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if userID == 0 {
		userID = order.UserID
	}

	title, body := orderStatusNotificationText(order)
	notification := &models.Notification{
		UserID:  userID,
		BizType: constants.NotificationBizTypeOrder,
		OrderID: &order.ID,
		Title:   title,
		Body:    body,
	}
	return s.notificationRepo.Create(notification)
}

// ListByUser 获取用户通知列表
func (s *NotificationService) ListByUser(filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrNotificationNotFound
	}
	return s.notificationRepo.ListByUser(filter)
}

// CountUnread 未读通知数
func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	if userID == 0 {
		return 0, nil
	}
	return s.notificationRepo.CountUnread(userID)
}

// MarkRead 标记单条通知已读
func (s *NotificationService) MarkRead(notificationID, userID uint) error {
	if notificationID == 0 || userID == 0 {
		return ErrNotificationNotFound
	}
	affected, err := s.notificationRepo.MarkRead(notificationID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead 标记用户全部通知已读
func (s *NotificationService) MarkAllRead(userID uint) error {
	if userID == 0 {
		return ErrNotificationNotFound
	}
	return s.notificationRepo.MarkAllRead(userID)
}

func orderStatusNotificationText(order *models.Order) (string, string) {
	switch order.Status {
	case constants.OrderStatusConfirmed:
		return "Đơn hàng đã được xác nhận",
			fmt.Sprintf("Đơn hàng %s đã được cửa hàng xác nhận và đang được chuẩn bị.", order.OrderNo)
	case constants.OrderStatusCompleted:
		return "Đơn hàng đã hoàn tất",
			fmt.Sprintf("Đơn hàng %s đã hoàn tất. Cảm ơn bạn đã mua hàng!", order.OrderNo)
	case constants.OrderStatusCancelled:
		body := fmt.Sprintf("Đơn hàng %s đã bị hủy.", order.OrderNo)
		if order.CancelReason != "" {
			body = fmt.Sprintf("Đơn hàng %s đã bị hủy. Lý do: %s", order.OrderNo, order.CancelReason)
		}
		return "Đơn hàng đã bị hủy", body
	default:
		return "Đặt hàng thành công",
			fmt.Sprintf("Đơn hàng %s đã được tạo và đang chờ cửa hàng xác nhận.", order.OrderNo)
	}
}
