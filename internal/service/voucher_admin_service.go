package service

import (
	"strings"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"

	"github.com/shopspring/decimal"
)

// VoucherAdminService 优惠码管理服务
type VoucherAdminService struct {
	repo repository.VoucherRepository
}

// NewVoucherAdminService 创建优惠码管理服务
func NewVoucherAdminService(repo repository.VoucherRepository) *VoucherAdminService {
	return &VoucherAdminService{repo: repo}
}

// VoucherInput 创建/更新优惠码输入
type VoucherInput struct {
	Code          string
	Title         string
	Type          string
	Value         decimal.Decimal
	MinOrderValue decimal.Decimal
	ForNewUser    bool
	StartHour     *int
	EndHour       *int
	IsActive      *bool
}

// Create 创建优惠码
func (s *VoucherAdminService) Create(input VoucherInput) (*models.Voucher, error) {
	code, voucherType, value, minOrder, err := normalizeVoucherInput(input)
	if err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrVoucherCodeTaken
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	voucher := &models.Voucher{
		Code:          code,
		Title:         strings.TrimSpace(input.Title),
		Type:          voucherType,
		Value:         value,
		MinOrderValue: minOrder,
		ForNewUser:    input.ForNewUser,
		StartHour:     input.StartHour,
		EndHour:       input.EndHour,
		IsActive:      isActive,
	}
	if err := s.repo.Create(voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// Update 更新优惠码。历史订单保存的是快照金额，不受影响。
func (s *VoucherAdminService) Update(id uint, input VoucherInput) (*models.Voucher, error) {
	if id == 0 {
		return nil, ErrVoucherNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrVoucherNotFound
	}

	code, voucherType, value, minOrder, err := normalizeVoucherInput(input)
	if err != nil {
		return nil, err
	}

	if code != existing.Code {
		dup, err := s.repo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, ErrVoucherCodeTaken
		}
	}

	existing.Code = code
	existing.Title = strings.TrimSpace(input.Title)
	existing.Type = voucherType
	existing.Value = value
	existing.MinOrderValue = minOrder
	existing.ForNewUser = input.ForNewUser
	existing.StartHour = input.StartHour
	existing.EndHour = input.EndHour
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete 删除优惠码
func (s *VoucherAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrVoucherNotFound
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrVoucherNotFound
	}
	return s.repo.Delete(id)
}

// List 获取优惠码列表
func (s *VoucherAdminService) List(filter repository.VoucherListFilter) ([]models.Voucher, int64, error) {
	return s.repo.List(filter)
}

// GetByID 获取优惠码详情
func (s *VoucherAdminService) GetByID(id uint) (*models.Voucher, error) {
	voucher, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrVoucherNotFound
	}
	return voucher, nil
}

func normalizeVoucherInput(input VoucherInput) (string, string, models.Money, models.Money, error) {
	var zero models.Money
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return "", "", zero, zero, ErrVoucherCodeRequired
	}
	voucherType := strings.ToLower(strings.TrimSpace(input.Type))
	if voucherType != constants.VoucherTypeFixed && voucherType != constants.VoucherTypePercent {
		return "", "", zero, zero, ErrVoucherTypeInvalid
	}
	value := input.Value.Round(0)
	if value.LessThanOrEqual(decimal.Zero) {
		return "", "", zero, zero, ErrVoucherValueInvalid
	}
	if voucherType == constants.VoucherTypePercent && value.GreaterThan(decimal.NewFromInt(100)) {
		return "", "", zero, zero, ErrVoucherValueInvalid
	}
	minOrder := input.MinOrderValue.Round(0)
	if minOrder.LessThan(decimal.Zero) {
		return "", "", zero, zero, ErrVoucherValueInvalid
	}
	if err := validateVoucherHours(input.StartHour, input.EndHour); err != nil {
		return "", "", zero, zero, err
	}
	return code, voucherType, models.NewMoneyFromDecimal(value), models.NewMoneyFromDecimal(minOrder), nil
}

// validateVoucherHours 小时窗口要么都不填，要么都在 [0,24) 内。
func validateVoucherHours(start, end *int) error {
	if start == nil && end == nil {
		return nil
	}
	if start == nil || end == nil {
		return ErrVoucherHoursInvalid
	}
	if *start < 0 || *start > 23 || *end < 0 || *end > 23 {
		return ErrVoucherHoursInvalid
	}
	return nil
}
