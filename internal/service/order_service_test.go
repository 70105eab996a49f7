package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/events"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"

	"gorm.io/gorm"
)

type orderServiceFixture struct {
	db      *gorm.DB
	cartSvc *CartService
	svc     *OrderService
	bus     *events.MemoryBus
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()
	db := openTestDB(t)
	prevDB := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prevDB })

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	toppingRepo := repository.NewToppingRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	voucherSvc := NewVoucherService(repository.NewVoucherRepository(db), orderRepo)
	bus := events.NewMemoryBus()
	t.Cleanup(func() { _ = bus.Close() })

	return &orderServiceFixture{
		db:      db,
		cartSvc: NewCartService(cartRepo, productRepo, toppingRepo),
		svc:     NewOrderService(orderRepo, cartRepo, voucherSvc, nil, nil, bus),
		bus:     bus,
	}
}

// seedMilkTeaCart 造一行经典购物车：30000 基础价 + M 杯加价 5000 + 配料 12000，数量 2。
func (f *orderServiceFixture) seedMilkTeaCart(t *testing.T, userID uint) {
	t.Helper()
	product := models.Product{
		CategoryID: 1,
		Slug:       "tra-sua-truyen-thong",
		Name:       "Trà sữa truyền thống",
		BasePrice:  models.NewMoneyFromInt(30000),
		Sizes:      models.StringArray{"S", "M", "L"},
		IsActive:   true,
	}
	if err := f.db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	toppings := []models.Topping{
		{Name: "Thạch dừa", Price: models.NewMoneyFromInt(5000), IsActive: true},
		{Name: "Trân châu đen", Price: models.NewMoneyFromInt(7000), IsActive: true},
	}
	for i := range toppings {
		if err := f.db.Create(&toppings[i]).Error; err != nil {
			t.Fatalf("create topping failed: %v", err)
		}
	}

	if _, err := f.cartSvc.AddItem(AddCartItemInput{
		UserID:     userID,
		ProductID:  product.ID,
		SizeIndex:  1,
		SugarLevel: constants.SugarLevelHalf,
		IceLevel:   constants.IceLevelHalf,
		Quantity:   2,
		ToppingIDs: []uint{toppings[0].ID, toppings[1].ID},
	}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
}

func checkoutInput(userID uint, voucherCode string) CreateOrderInput {
	return CreateOrderInput{
		UserID:          userID,
		VoucherCode:     voucherCode,
		PaymentMethod:   constants.PaymentMethodCOD,
		ReceiverName:    "Nguyễn Văn A",
		ReceiverPhone:   "0909123456",
		ReceiverAddress: "12 Lý Thường Kiệt, Q.10",
	}
}

func TestPreviewOrderWithPercentVoucher(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)
	if err := f.db.Create(&models.Voucher{
		Code:     "GIAM10",
		Type:     constants.VoucherTypePercent,
		Value:    models.NewMoneyFromInt(10),
		IsActive: true,
	}).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}

	preview, err := f.svc.PreviewOrder(1, "GIAM10")
	if err != nil {
		t.Fatalf("PreviewOrder error: %v", err)
	}
	if got := preview.OriginalAmount.Decimal.IntPart(); got != 94000 {
		t.Fatalf("unexpected original amount: %d", got)
	}
	if got := preview.DiscountAmount.Decimal.IntPart(); got != 9400 {
		t.Fatalf("unexpected discount: %d", got)
	}
	if got := preview.TotalAmount.Decimal.IntPart(); got != 84600 {
		t.Fatalf("unexpected total: %d", got)
	}
	if preview.VoucherCode != "GIAM10" {
		t.Fatalf("unexpected voucher code: %s", preview.VoucherCode)
	}
	if len(preview.Items) != 1 {
		t.Fatalf("unexpected preview items: %d", len(preview.Items))
	}
}

func TestPreviewOrderEmptyCart(t *testing.T) {
	f := newOrderServiceFixture(t)
	if _, err := f.svc.PreviewOrder(1, ""); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCreateOrderFromCartSnapshotsAndClearsCart(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)

	sub, err := f.bus.SubscribeAll(context.Background())
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Close()

	order, err := f.svc.CreateOrderFromCart(checkoutInput(1, ""))
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if got := order.TotalAmount.Decimal.IntPart(); got != 94000 {
		t.Fatalf("unexpected total: %d", got)
	}
	if len(order.Items) != 1 {
		t.Fatalf("unexpected order items: %d", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductName != "Trà sữa truyền thống" || item.SizeName != "M" {
		t.Fatalf("unexpected item snapshot: %+v", item)
	}
	if got := item.UnitPrice.Decimal.IntPart(); got != 47000 {
		t.Fatalf("unexpected unit price snapshot: %d", got)
	}
	if len(item.Toppings) != 2 {
		t.Fatalf("unexpected topping snapshots: %d", len(item.Toppings))
	}

	// 下单后购物车已清空
	var count int64
	if err := f.db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("cart should be cleared, %d items left", count)
	}

	// 变更事件已发布
	select {
	case event := <-sub.C:
		if event.OrderID != order.ID || event.Status != constants.OrderStatusPending {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected order changed event")
	}
}

func TestCreateOrderFromCartValidation(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)

	input := checkoutInput(1, "")
	input.ReceiverPhone = "   "
	if _, err := f.svc.CreateOrderFromCart(input); !errors.Is(err, ErrReceiverRequired) {
		t.Fatalf("expected ErrReceiverRequired, got %v", err)
	}

	input = checkoutInput(1, "")
	input.PaymentMethod = "paypal"
	if _, err := f.svc.CreateOrderFromCart(input); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got %v", err)
	}

	if _, err := f.svc.CreateOrderFromCart(checkoutInput(2, "")); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty for another user, got %v", err)
	}
}

func TestCreateOrderFromCartVoucherRejected(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)

	if _, err := f.svc.CreateOrderFromCart(checkoutInput(1, "KHONGCO")); !errors.Is(err, ErrVoucherNotFound) {
		t.Fatalf("expected ErrVoucherNotFound, got %v", err)
	}
}

func TestCancelOrderByUserStoresReasonVerbatim(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)
	order, err := f.svc.CreateOrderFromCart(checkoutInput(1, ""))
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}

	cancelled, err := f.svc.CancelOrderByUser(order.ID, 1, "Đặt nhầm sản phẩm")
	if err != nil {
		t.Fatalf("CancelOrderByUser error: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("unexpected status: %s", cancelled.Status)
	}
	if cancelled.CancelledBy != constants.ActorCustomer {
		t.Fatalf("unexpected cancelled_by: %s", cancelled.CancelledBy)
	}

	stored, err := f.svc.GetOrderByUser(order.ID, 1)
	if err != nil {
		t.Fatalf("GetOrderByUser error: %v", err)
	}
	if stored.CancelReason != "Đặt nhầm sản phẩm" {
		t.Fatalf("cancel reason must be stored verbatim, got %q", stored.CancelReason)
	}
	if stored.CanceledAt == nil {
		t.Fatalf("canceled_at must be set")
	}
}

func TestCancelOrderByUserRequiresReason(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)
	order, err := f.svc.CreateOrderFromCart(checkoutInput(1, ""))
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}

	if _, err := f.svc.CancelOrderByUser(order.ID, 1, "   "); !errors.Is(err, ErrCancelReasonRequired) {
		t.Fatalf("expected ErrCancelReasonRequired, got %v", err)
	}
	if _, err := f.svc.CancelOrderByUser(order.ID, 99, "đổi ý"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got %v", err)
	}
}

func TestCancelOrderByUserConfirmedForbidden(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)
	order, err := f.svc.CreateOrderFromCart(checkoutInput(1, ""))
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}
	if _, err := f.svc.UpdateOrderStatusForAdmin(order.ID, constants.OrderStatusConfirmed, ""); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	// 已接单的订单用户不可再取消
	if _, err := f.svc.CancelOrderByUser(order.ID, 1, "đổi ý"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestAdminStatusTransitions(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)
	order, err := f.svc.CreateOrderFromCart(checkoutInput(1, ""))
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}

	// pending 不可直接完成
	if _, err := f.svc.UpdateOrderStatusForAdmin(order.ID, constants.OrderStatusCompleted, ""); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for pending->completed, got %v", err)
	}

	confirmed, err := f.svc.UpdateOrderStatusForAdmin(order.ID, constants.OrderStatusConfirmed, "")
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.ConfirmedAt == nil {
		t.Fatalf("confirmed_at must be set")
	}

	completed, err := f.svc.UpdateOrderStatusForAdmin(order.ID, constants.OrderStatusCompleted, "")
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("completed_at must be set")
	}

	// 终态吸收：任何流出均被拒绝
	for _, target := range []string{constants.OrderStatusPending, constants.OrderStatusConfirmed, constants.OrderStatusCancelled} {
		if _, err := f.svc.UpdateOrderStatusForAdmin(order.ID, target, "lý do"); !errors.Is(err, ErrOrderStatusInvalid) {
			t.Fatalf("terminal order must reject transition to %s, got %v", target, err)
		}
	}
}

func TestAdminCancelConfirmedOrder(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)
	order, err := f.svc.CreateOrderFromCart(checkoutInput(1, ""))
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}
	if _, err := f.svc.UpdateOrderStatusForAdmin(order.ID, constants.OrderStatusConfirmed, ""); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if _, err := f.svc.UpdateOrderStatusForAdmin(order.ID, constants.OrderStatusCancelled, ""); !errors.Is(err, ErrCancelReasonRequired) {
		t.Fatalf("expected ErrCancelReasonRequired, got %v", err)
	}

	cancelled, err := f.svc.UpdateOrderStatusForAdmin(order.ID, constants.OrderStatusCancelled, "hết nguyên liệu")
	if err != nil {
		t.Fatalf("admin cancel failed: %v", err)
	}
	if cancelled.CancelledBy != constants.ActorAdmin {
		t.Fatalf("unexpected cancelled_by: %s", cancelled.CancelledBy)
	}
	if cancelled.CancelReason != "hết nguyên liệu" {
		t.Fatalf("unexpected cancel reason: %q", cancelled.CancelReason)
	}
}

func TestUpdateOrderStatusForAdminUnknownStatus(t *testing.T) {
	f := newOrderServiceFixture(t)
	if _, err := f.svc.UpdateOrderStatusForAdmin(1, "shipping", ""); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
	if _, err := f.svc.UpdateOrderStatusForAdmin(12345, constants.OrderStatusConfirmed, ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestVoucherSnapshotOnOrder(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.seedMilkTeaCart(t, 1)
	voucher := models.Voucher{
		Code:     "GIAM10",
		Type:     constants.VoucherTypePercent,
		Value:    models.NewMoneyFromInt(10),
		IsActive: true,
	}
	if err := f.db.Create(&voucher).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}

	order, err := f.svc.CreateOrderFromCart(checkoutInput(1, "GIAM10"))
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}
	if order.VoucherID == nil || *order.VoucherID != voucher.ID {
		t.Fatalf("unexpected voucher id: %+v", order.VoucherID)
	}
	if order.VoucherCode != "GIAM10" {
		t.Fatalf("unexpected voucher code: %s", order.VoucherCode)
	}
	if got := order.DiscountAmount.Decimal.IntPart(); got != 9400 {
		t.Fatalf("unexpected discount: %d", got)
	}
	if got := order.TotalAmount.Decimal.IntPart(); got != 84600 {
		t.Fatalf("unexpected total: %d", got)
	}
}

func TestFixedVoucherClampedToSubtotal(t *testing.T) {
	f := newOrderServiceFixture(t)
	product := models.Product{
		CategoryID: 1,
		Slug:       "tra-da",
		Name:       "Trà đá",
		BasePrice:  models.NewMoneyFromInt(10000),
		IsActive:   true,
	}
	if err := f.db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if _, err := f.cartSvc.AddItem(AddCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	if err := f.db.Create(&models.Voucher{
		Code:     "QUATANG",
		Type:     constants.VoucherTypeFixed,
		Value:    models.NewMoneyFromInt(50000),
		IsActive: true,
	}).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}

	order, err := f.svc.CreateOrderFromCart(checkoutInput(1, "QUATANG"))
	if err != nil {
		t.Fatalf("CreateOrderFromCart error: %v", err)
	}
	if got := order.DiscountAmount.Decimal.IntPart(); got != 10000 {
		t.Fatalf("discount must be clamped to subtotal, got %d", got)
	}
	if got := order.TotalAmount.Decimal.IntPart(); got != 0 {
		t.Fatalf("total must not go negative, got %d", got)
	}
}
