package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/events"
	"github.com/milktea-next/internal/logger"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/queue"
	"github.com/milktea-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	cartRepo       repository.CartRepository
	voucherService *VoucherService
	settingService *SettingService
	queueClient    *queue.Client
	bus            events.Bus
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, voucherService *VoucherService, settingService *SettingService, queueClient *queue.Client, bus events.Bus) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		voucherService: voucherService,
		settingService: settingService,
		queueClient:    queueClient,
		bus:            bus,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID          uint
	VoucherCode     string
	PaymentMethod   string
	ReceiverName    string
	ReceiverPhone   string
	ReceiverAddress string
	Note            string
}

// OrderPreview 订单金额预览（结算页展示）
type OrderPreview struct {
	OriginalAmount models.Money      `json:"original_amount"`
	DiscountAmount models.Money      `json:"discount_amount"`
	TotalAmount    models.Money      `json:"total_amount"`
	VoucherCode    string            `json:"voucher_code,omitempty"`
	Items          []models.CartItem `json:"items"`
}

// PreviewOrder 结算预览：按购物车快照与最新优惠券资格计算金额，不落库。
func (s *OrderService) PreviewOrder(userID uint, voucherCode string) (*OrderPreview, error) {
	if userID == 0 {
		return nil, ErrOrderCreateFailed
	}
	items, err := s.loadCheckoutItems(userID)
	if err != nil {
		return nil, err
	}
	subtotal := cartSubtotal(items)
	discount, voucher, err := s.resolveDiscount(userID, voucherCode, subtotal)
	if err != nil {
		return nil, err
	}
	discount, total := settleAmounts(subtotal, discount)
	preview := &OrderPreview{
		OriginalAmount: subtotal,
		DiscountAmount: discount,
		TotalAmount:    total,
		Items:          items,
	}
	if voucher != nil {
		preview.VoucherCode = voucher.Code
	}
	return preview, nil
}

// CreateOrderFromCart 从购物车创建订单。
// 订单项完整快照购物车行，订单写入与清空购物车在同一事务内完成。
func (s *OrderService) CreateOrderFromCart(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrOrderCreateFailed
	}
	receiverName := strings.TrimSpace(input.ReceiverName)
	receiverPhone := strings.TrimSpace(input.ReceiverPhone)
	receiverAddress := strings.TrimSpace(input.ReceiverAddress)
	if receiverName == "" || receiverPhone == "" || receiverAddress == "" {
		return nil, ErrReceiverRequired
	}
	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if !s.isPaymentMethodAllowed(paymentMethod) {
		return nil, ErrPaymentMethodInvalid
	}

	items, err := s.loadCheckoutItems(input.UserID)
	if err != nil {
		return nil, err
	}

	subtotal := cartSubtotal(items)
	discount, voucher, err := s.resolveDiscount(input.UserID, input.VoucherCode, subtotal)
	if err != nil {
		return nil, err
	}
	discount, total := settleAmounts(subtotal, discount)

	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		OriginalAmount:  subtotal,
		DiscountAmount:  discount,
		TotalAmount:     total,
		PaymentMethod:   paymentMethod,
		ReceiverName:    receiverName,
		ReceiverPhone:   receiverPhone,
		ReceiverAddress: receiverAddress,
		Note:            strings.TrimSpace(input.Note),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if voucher != nil {
		order.VoucherID = &voucher.ID
		order.VoucherCode = voucher.Code
	}

	orderItems := buildOrderItems(items, now)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		return cartRepo.ClearByUser(input.UserID)
	})
	if err != nil {
		logger.Errorw("order_create_failed", "user_id", input.UserID, "error", err)
		return nil, ErrOrderCreateFailed
	}
	order.Items = orderItems

	s.notifyOrderChanged(order, constants.OrderStatusPending)
	return order, nil
}

// CancelOrderByUser 用户取消订单：仅限本人的 pending 订单，取消原因必填。
func (s *OrderService) CancelOrderByUser(orderID, userID uint, reason string) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.applyTransition(order, constants.OrderStatusCancelled, constants.ActorCustomer, reason)
}

// UpdateOrderStatusForAdmin 管理端状态流转：接单、完成、取消。
func (s *OrderService) UpdateOrderStatusForAdmin(orderID uint, target, reason string) (*models.Order, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if !isValidStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.applyTransition(order, target, constants.ActorAdmin, reason)
}

// applyTransition 执行一次状态流转：校验流转表与角色，落库后发布变更事件。
// 取消原因原样保存，不做改写；终态订单的任何流出均被拒绝。
func (s *OrderService) applyTransition(order *models.Order, target, actor, reason string) (*models.Order, error) {
	if !isTransitionAllowed(order.Status, target, actor) {
		return nil, ErrOrderStatusInvalid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch target {
	case constants.OrderStatusConfirmed:
		updates["confirmed_at"] = now
	case constants.OrderStatusCompleted:
		updates["completed_at"] = now
	case constants.OrderStatusCancelled:
		if strings.TrimSpace(reason) == "" {
			return nil, ErrCancelReasonRequired
		}
		updates["canceled_at"] = now
		updates["cancel_reason"] = reason
		updates["cancelled_by"] = actor
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, target, updates)
	})
	if err != nil {
		return nil, ErrOrderUpdateFailed
	}

	order.Status = target
	order.UpdatedAt = now
	switch target {
	case constants.OrderStatusConfirmed:
		order.ConfirmedAt = &now
	case constants.OrderStatusCompleted:
		order.CompletedAt = &now
	case constants.OrderStatusCancelled:
		order.CanceledAt = &now
		order.CancelReason = reason
		order.CancelledBy = actor
	}

	s.notifyOrderChanged(order, target)
	return order, nil
}

// notifyOrderChanged 发布订单变更：事件总线 + 站内通知任务。
// 两者均为尽力而为，失败只记日志，订单数据以数据库为准。
func (s *OrderService) notifyOrderChanged(order *models.Order, status string) {
	if s.bus != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		event := events.NewOrderChangedEvent(order.ID, status)
		if err := s.bus.PublishOrderChanged(ctx, event); err != nil {
			logger.Warnw("order_publish_changed_failed",
				"order_id", order.ID,
				"status", status,
				"error", err,
			)
		}
	}
	if s.queueClient != nil {
		payload := queue.OrderStatusNotifyPayload{
			OrderID: order.ID,
			UserID:  order.UserID,
			Status:  status,
		}
		if err := s.queueClient.EnqueueOrderStatusNotify(payload); err != nil {
			logger.Warnw("order_enqueue_status_notify_failed",
				"order_id", order.ID,
				"status", status,
				"error", err,
			)
		}
	}
}

// GetOrderByUser 获取用户订单详情
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByUserOrderNo 按订单号获取用户订单详情
func (s *OrderService) GetOrderByUserOrderNo(orderNo string, userID uint) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 获取用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrOrderFetchFailed
	}
	orders, total, err := s.orderRepo.ListByUser(filter)
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// ListOrdersForAdmin 管理端订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// GetOrderForAdmin 管理端订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// loadCheckoutItems 读取结算用的购物车行，空购物车不可下单。
func (s *OrderService) loadCheckoutItems(userID uint) ([]models.CartItem, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, ErrOrderCreateFailed
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			return nil, ErrProductNotAvailable
		}
		if item.Quantity < 1 {
			return nil, ErrQuantityInvalid
		}
	}
	return items, nil
}

// resolveDiscount 结算时重新校验优惠码。未填写优惠码则不打折。
func (s *OrderService) resolveDiscount(userID uint, voucherCode string, subtotal models.Money) (models.Money, *models.Voucher, error) {
	code := strings.TrimSpace(voucherCode)
	if code == "" {
		return models.NewMoneyFromInt(0), nil, nil
	}
	voucher, discount, err := s.voucherService.ValidateForCheckout(code, userID, subtotal, time.Now())
	if err != nil {
		if errors.Is(err, ErrVoucherNotFound) ||
			errors.Is(err, ErrVoucherInactive) ||
			errors.Is(err, ErrVoucherMinOrderNotMet) ||
			errors.Is(err, ErrVoucherNewUserOnly) ||
			errors.Is(err, ErrVoucherOutsideHours) {
			return models.NewMoneyFromInt(0), nil, err
		}
		return models.NewMoneyFromInt(0), nil, ErrOrderCreateFailed
	}
	return discount, voucher, nil
}

// isPaymentMethodAllowed 支付方式必须在配置白名单内
func (s *OrderService) isPaymentMethodAllowed(method string) bool {
	if method == "" {
		return false
	}
	allowed := []string{constants.PaymentMethodCOD, constants.PaymentMethodBankTransfer}
	if s.settingService != nil {
		if configured := s.settingService.PaymentMethods(); len(configured) > 0 {
			allowed = configured
		}
	}
	for _, m := range allowed {
		if m == method {
			return true
		}
	}
	return false
}

// settleAmounts 合计阶段统一封顶：优惠不超过小计，实付不为负。
func settleAmounts(subtotal, discount models.Money) (models.Money, models.Money) {
	d := discount.Decimal
	if d.LessThan(decimal.Zero) {
		d = decimal.Zero
	}
	if d.GreaterThan(subtotal.Decimal) {
		d = subtotal.Decimal
	}
	total := subtotal.Decimal.Sub(d)
	return models.NewMoneyFromDecimal(d), models.NewMoneyFromDecimal(total)
}

// buildOrderItems 将购物车行快照为订单项
func buildOrderItems(items []models.CartItem, now time.Time) []models.OrderItem {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItem := models.OrderItem{
			ProductID:  item.ProductID,
			SizeIndex:  item.SizeIndex,
			SugarLevel: item.SugarLevel,
			IceLevel:   item.IceLevel,
			Note:       item.Note,
			Toppings:   item.Toppings,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			TotalPrice: item.LineTotal,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if item.Product != nil {
			orderItem.ProductName = item.Product.Name
			orderItem.ProductImage = item.Product.Image
			if item.SizeIndex >= 0 && item.SizeIndex < len(item.Product.Sizes) {
				orderItem.SizeName = item.Product.Sizes[item.SizeIndex]
			}
		}
		orderItems = append(orderItems, orderItem)
	}
	return orderItems
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("MT%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
