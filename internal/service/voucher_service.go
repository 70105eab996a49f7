package service

import (
	"strings"
	"time"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"

	"github.com/shopspring/decimal"
)

// VoucherService 优惠券服务
type VoucherService struct {
	voucherRepo repository.VoucherRepository
	orderRepo   repository.OrderRepository
}

// NewVoucherService 创建优惠券服务
func NewVoucherService(voucherRepo repository.VoucherRepository, orderRepo repository.OrderRepository) *VoucherService {
	return &VoucherService{
		voucherRepo: voucherRepo,
		orderRepo:   orderRepo,
	}
}

// EligibleVoucher 可用优惠券及预估优惠
type EligibleVoucher struct {
	Voucher  models.Voucher `json:"voucher"`
	Discount models.Money   `json:"discount"`
}

// ListEligible 获取当前用户此刻可用的优惠券。
// 新用户判定每次实时回查订单表，不做缓存。
func (s *VoucherService) ListEligible(userID uint, subtotal models.Money, now time.Time) ([]EligibleVoucher, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	vouchers, err := s.voucherRepo.ListActive()
	if err != nil {
		return nil, err
	}
	isNew, err := s.isNewUser(userID)
	if err != nil {
		return nil, err
	}

	eligible := make([]EligibleVoucher, 0, len(vouchers))
	for _, voucher := range vouchers {
		if checkVoucherEligibility(&voucher, isNew, subtotal, now) != nil {
			continue
		}
		eligible = append(eligible, EligibleVoucher{
			Voucher:  voucher,
			Discount: calculateDiscount(&voucher, subtotal),
		})
	}
	return eligible, nil
}

// ValidateForCheckout 结算时按优惠码重新校验资格并计算优惠金额。
// 结算必须用最新的订单历史与小计重算，不信任下单前的展示结果。
func (s *VoucherService) ValidateForCheckout(code string, userID uint, subtotal models.Money, now time.Time) (*models.Voucher, models.Money, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, models.NewMoneyFromInt(0), ErrVoucherNotFound
	}
	voucher, err := s.voucherRepo.GetByCode(code)
	if err != nil {
		return nil, models.NewMoneyFromInt(0), err
	}
	if voucher == nil {
		return nil, models.NewMoneyFromInt(0), ErrVoucherNotFound
	}
	isNew, err := s.isNewUser(userID)
	if err != nil {
		return nil, models.NewMoneyFromInt(0), err
	}
	if err := checkVoucherEligibility(voucher, isNew, subtotal, now); err != nil {
		return nil, models.NewMoneyFromInt(0), err
	}
	return voucher, calculateDiscount(voucher, subtotal), nil
}

// isNewUser 新用户 = 名下不存在任何非取消订单
func (s *VoucherService) isNewUser(userID uint) (bool, error) {
	count, err := s.orderRepo.CountNonCancelledByUser(userID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// checkVoucherEligibility 逐项校验资格条件，全部满足才可用。
func checkVoucherEligibility(voucher *models.Voucher, isNewUser bool, subtotal models.Money, now time.Time) error {
	if !voucher.IsActive {
		return ErrVoucherInactive
	}
	if voucher.ForNewUser && !isNewUser {
		return ErrVoucherNewUserOnly
	}
	if voucher.MinOrderValue.IsPositive() && subtotal.LessThan(voucher.MinOrderValue.Decimal) {
		return ErrVoucherMinOrderNotMet
	}
	if !voucherHourEligible(voucher, now.Hour()) {
		return ErrVoucherOutsideHours
	}
	return nil
}

// voucherHourEligible 小时窗口判定，区间左闭右开 [start, end)。
// start > end 视为跨零点窗口（如 22 点到次日 2 点）；start == end 为空窗口。
func voucherHourEligible(voucher *models.Voucher, hour int) bool {
	if voucher.StartHour == nil || voucher.EndHour == nil {
		return true
	}
	start, end := *voucher.StartHour, *voucher.EndHour
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// calculateDiscount 计算优惠金额。
// percent 向下取整到整数盾；fixed 在此处不做封顶，封顶统一发生在订单合计阶段。
func calculateDiscount(voucher *models.Voucher, subtotal models.Money) models.Money {
	switch voucher.Type {
	case constants.VoucherTypePercent:
		discount := subtotal.Decimal.Mul(voucher.Value.Decimal).Div(decimal.NewFromInt(100)).Floor()
		return models.NewMoneyFromDecimal(discount)
	case constants.VoucherTypeFixed:
		return voucher.Value
	default:
		return models.NewMoneyFromInt(0)
	}
}
