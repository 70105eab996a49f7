package service

import (
	"strings"

	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ToppingService 配料业务服务
type ToppingService struct {
	repo repository.ToppingRepository
}

// NewToppingService 创建配料服务
func NewToppingService(repo repository.ToppingRepository) *ToppingService {
	return &ToppingService{repo: repo}
}

// ToppingInput 创建/更新配料输入
type ToppingInput struct {
	Name      string
	Price     decimal.Decimal
	IsActive  *bool
	SortOrder int
}

// ListPublic 获取可选配料列表
func (s *ToppingService) ListPublic() ([]models.Topping, error) {
	return s.repo.ListActive()
}

// ListAdmin 后台配料列表
func (s *ToppingService) ListAdmin(page, pageSize int) ([]models.Topping, int64, error) {
	return s.repo.List(page, pageSize)
}

// Create 创建配料
func (s *ToppingService) Create(input ToppingInput) (*models.Topping, error) {
	name := strings.TrimSpace(input.Name)
	price := input.Price.Round(0)
	if name == "" || price.LessThan(decimal.Zero) {
		return nil, ErrToppingInvalid
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	topping := models.Topping{
		Name:      name,
		Price:     models.NewMoneyFromDecimal(price),
		IsActive:  isActive,
		SortOrder: input.SortOrder,
	}
	if err := s.repo.Create(&topping); err != nil {
		return nil, err
	}
	return &topping, nil
}

// Update 更新配料。已存在的购物车与订单快照不受影响。
func (s *ToppingService) Update(id uint, input ToppingInput) (*models.Topping, error) {
	topping, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if topping == nil {
		return nil, ErrToppingNotFound
	}
	name := strings.TrimSpace(input.Name)
	price := input.Price.Round(0)
	if name == "" || price.LessThan(decimal.Zero) {
		return nil, ErrToppingInvalid
	}
	topping.Name = name
	topping.Price = models.NewMoneyFromDecimal(price)
	topping.SortOrder = input.SortOrder
	if input.IsActive != nil {
		topping.IsActive = *input.IsActive
	}
	if err := s.repo.Update(topping); err != nil {
		return nil, err
	}
	return topping, nil
}

// Delete 删除配料
func (s *ToppingService) Delete(id uint) error {
	topping, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if topping == nil {
		return ErrToppingNotFound
	}
	return s.repo.Delete(id)
}
