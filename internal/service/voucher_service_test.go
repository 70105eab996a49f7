package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Topping{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Voucher{},
		&models.Setting{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newVoucherServiceForTest(t *testing.T) (*VoucherService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewVoucherService(repository.NewVoucherRepository(db), repository.NewOrderRepository(db)), db
}

func hourPtr(h int) *int { return &h }

func atHour(hour int) time.Time {
	return time.Date(2026, 3, 14, hour, 30, 0, 0, time.Local)
}

func TestValidateForCheckoutPercentDiscount(t *testing.T) {
	svc, db := newVoucherServiceForTest(t)
	if err := db.Create(&models.Voucher{
		Code:          "GIAM10",
		Title:         "Giảm 10%",
		Type:          constants.VoucherTypePercent,
		Value:         models.NewMoneyFromInt(10),
		MinOrderValue: models.NewMoneyFromInt(50000),
		IsActive:      true,
	}).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}

	voucher, discount, err := svc.ValidateForCheckout("GIAM10", 1, models.NewMoneyFromInt(94000), atHour(10))
	if err != nil {
		t.Fatalf("ValidateForCheckout error: %v", err)
	}
	if voucher.Code != "GIAM10" {
		t.Fatalf("unexpected voucher: %+v", voucher)
	}
	if got := discount.Decimal.IntPart(); got != 9400 {
		t.Fatalf("unexpected discount: %d", got)
	}
}

func TestValidateForCheckoutPercentDiscountFloors(t *testing.T) {
	svc, db := newVoucherServiceForTest(t)
	if err := db.Create(&models.Voucher{
		Code:     "GIAM15",
		Type:     constants.VoucherTypePercent,
		Value:    models.NewMoneyFromInt(15),
		IsActive: true,
	}).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}

	// 33333 * 15% = 4999.95，向下取整为 4999
	_, discount, err := svc.ValidateForCheckout("GIAM15", 1, models.NewMoneyFromInt(33333), atHour(10))
	if err != nil {
		t.Fatalf("ValidateForCheckout error: %v", err)
	}
	if got := discount.Decimal.IntPart(); got != 4999 {
		t.Fatalf("expected floored discount 4999, got %d", got)
	}
}

func TestValidateForCheckoutMinOrderNotMet(t *testing.T) {
	svc, db := newVoucherServiceForTest(t)
	if err := db.Create(&models.Voucher{
		Code:          "GIAM10",
		Type:          constants.VoucherTypePercent,
		Value:         models.NewMoneyFromInt(10),
		MinOrderValue: models.NewMoneyFromInt(50000),
		IsActive:      true,
	}).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}

	if _, _, err := svc.ValidateForCheckout("GIAM10", 1, models.NewMoneyFromInt(49999), atHour(10)); err != ErrVoucherMinOrderNotMet {
		t.Fatalf("expected ErrVoucherMinOrderNotMet, got %v", err)
	}
	// 恰好等于门槛可用
	if _, _, err := svc.ValidateForCheckout("GIAM10", 1, models.NewMoneyFromInt(50000), atHour(10)); err != nil {
		t.Fatalf("expected eligible at exact threshold, got %v", err)
	}
}

func TestValidateForCheckoutInactiveAndUnknown(t *testing.T) {
	svc, db := newVoucherServiceForTest(t)
	if err := db.Create(&models.Voucher{
		Code:  "TAMDUNG",
		Type:  constants.VoucherTypeFixed,
		Value: models.NewMoneyFromInt(10000),
	}).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}
	// IsActive 带 default:true，零值建行不会落 false，需显式停用
	if err := db.Model(&models.Voucher{}).Where("code = ?", "TAMDUNG").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate voucher failed: %v", err)
	}

	if _, _, err := svc.ValidateForCheckout("TAMDUNG", 1, models.NewMoneyFromInt(90000), atHour(10)); err != ErrVoucherInactive {
		t.Fatalf("expected ErrVoucherInactive, got %v", err)
	}
	if _, _, err := svc.ValidateForCheckout("KHONGCO", 1, models.NewMoneyFromInt(90000), atHour(10)); err != ErrVoucherNotFound {
		t.Fatalf("expected ErrVoucherNotFound, got %v", err)
	}
}

func TestValidateForCheckoutNewUserOnly(t *testing.T) {
	svc, db := newVoucherServiceForTest(t)
	if err := db.Create(&models.Voucher{
		Code:       "CHAOMUNG",
		Type:       constants.VoucherTypeFixed,
		Value:      models.NewMoneyFromInt(20000),
		ForNewUser: true,
		IsActive:   true,
	}).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}

	// 尚无订单，新用户可用
	if _, _, err := svc.ValidateForCheckout("CHAOMUNG", 9, models.NewMoneyFromInt(90000), atHour(10)); err != nil {
		t.Fatalf("expected new user eligible, got %v", err)
	}

	// 存在已取消订单仍算新用户
	cancelled := models.Order{OrderNo: "MT-C1", UserID: 9, Status: constants.OrderStatusCancelled}
	if err := db.Create(&cancelled).Error; err != nil {
		t.Fatalf("create cancelled order failed: %v", err)
	}
	if _, _, err := svc.ValidateForCheckout("CHAOMUNG", 9, models.NewMoneyFromInt(90000), atHour(10)); err != nil {
		t.Fatalf("cancelled orders should not break new-user status, got %v", err)
	}

	// 出现非取消订单后立即失去资格
	pending := models.Order{OrderNo: "MT-P1", UserID: 9, Status: constants.OrderStatusPending}
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("create pending order failed: %v", err)
	}
	if _, _, err := svc.ValidateForCheckout("CHAOMUNG", 9, models.NewMoneyFromInt(90000), atHour(10)); err != ErrVoucherNewUserOnly {
		t.Fatalf("expected ErrVoucherNewUserOnly, got %v", err)
	}
}

func TestValidateForCheckoutHourWindow(t *testing.T) {
	svc, db := newVoucherServiceForTest(t)
	if err := db.Create(&models.Voucher{
		Code:      "TRUA",
		Type:      constants.VoucherTypePercent,
		Value:     models.NewMoneyFromInt(5),
		StartHour: hourPtr(11),
		EndHour:   hourPtr(14),
		IsActive:  true,
	}).Error; err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}

	cases := map[int]bool{10: false, 11: true, 13: true, 14: false}
	for hour, want := range cases {
		_, _, err := svc.ValidateForCheckout("TRUA", 1, models.NewMoneyFromInt(90000), atHour(hour))
		if want && err != nil {
			t.Fatalf("hour %d: expected eligible, got %v", hour, err)
		}
		if !want && err != ErrVoucherOutsideHours {
			t.Fatalf("hour %d: expected ErrVoucherOutsideHours, got %v", hour, err)
		}
	}
}

func TestVoucherHourEligibleOvernightWindow(t *testing.T) {
	voucher := &models.Voucher{StartHour: hourPtr(22), EndHour: hourPtr(2)}

	cases := map[int]bool{21: false, 22: true, 23: true, 0: true, 1: true, 2: false, 12: false}
	for hour, want := range cases {
		if got := voucherHourEligible(voucher, hour); got != want {
			t.Fatalf("hour %d: expected %v, got %v", hour, want, got)
		}
	}
}

func TestVoucherHourEligibleEmptyAndOpenWindow(t *testing.T) {
	// start == end 为空窗口，任何时刻不可用
	empty := &models.Voucher{StartHour: hourPtr(8), EndHour: hourPtr(8)}
	for _, hour := range []int{0, 8, 23} {
		if voucherHourEligible(empty, hour) {
			t.Fatalf("hour %d: empty window should never be eligible", hour)
		}
	}

	// 未配置窗口则全天可用
	open := &models.Voucher{}
	if !voucherHourEligible(open, 3) {
		t.Fatalf("voucher without window should always be eligible")
	}
}

func TestListEligibleSkipsIneligible(t *testing.T) {
	svc, db := newVoucherServiceForTest(t)
	vouchers := []models.Voucher{
		{Code: "OK10", Type: constants.VoucherTypePercent, Value: models.NewMoneyFromInt(10), IsActive: true},
		{Code: "NGUONG", Type: constants.VoucherTypeFixed, Value: models.NewMoneyFromInt(15000), MinOrderValue: models.NewMoneyFromInt(200000), IsActive: true},
		{Code: "DEM", Type: constants.VoucherTypePercent, Value: models.NewMoneyFromInt(20), StartHour: hourPtr(22), EndHour: hourPtr(2), IsActive: true},
	}
	for i := range vouchers {
		if err := db.Create(&vouchers[i]).Error; err != nil {
			t.Fatalf("create voucher failed: %v", err)
		}
	}

	eligible, err := svc.ListEligible(1, models.NewMoneyFromInt(94000), atHour(10))
	if err != nil {
		t.Fatalf("ListEligible error: %v", err)
	}
	if len(eligible) != 1 {
		t.Fatalf("expected 1 eligible voucher, got %d", len(eligible))
	}
	if eligible[0].Voucher.Code != "OK10" {
		t.Fatalf("unexpected voucher: %s", eligible[0].Voucher.Code)
	}
	if got := eligible[0].Discount.Decimal.IntPart(); got != 9400 {
		t.Fatalf("unexpected discount: %d", got)
	}
}
