package repository

import (
	"errors"

	"github.com/milktea-next/internal/models"

	"gorm.io/gorm"
)

// ToppingRepository 配料数据访问接口
type ToppingRepository interface {
	ListActive() ([]models.Topping, error)
	List(page, pageSize int) ([]models.Topping, int64, error)
	GetByID(id uint) (*models.Topping, error)
	ListByIDs(ids []uint) ([]models.Topping, error)
	Create(topping *models.Topping) error
	Update(topping *models.Topping) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormToppingRepository
}

// GormToppingRepository GORM 实现
type GormToppingRepository struct {
	db *gorm.DB
}

// NewToppingRepository 创建配料仓库
func NewToppingRepository(db *gorm.DB) *GormToppingRepository {
	return &GormToppingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormToppingRepository) WithTx(tx *gorm.DB) *GormToppingRepository {
	if tx == nil {
		return r
	}
	return &GormToppingRepository{db: tx}
}

// ListActive 获取可选配料
func (r *GormToppingRepository) ListActive() ([]models.Topping, error) {
	var toppings []models.Topping
	if err := r.db.Where("is_active = ?", true).Order("sort_order DESC, id ASC").Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}

// List 配料列表（管理端）
func (r *GormToppingRepository) List(page, pageSize int) ([]models.Topping, int64, error) {
	var toppings []models.Topping
	query := r.db.Model(&models.Topping{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	if err := query.Order("sort_order DESC, id ASC").Find(&toppings).Error; err != nil {
		return nil, 0, err
	}
	return toppings, total, nil
}

// GetByID 根据 ID 获取配料
func (r *GormToppingRepository) GetByID(id uint) (*models.Topping, error) {
	var topping models.Topping
	if err := r.db.First(&topping, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topping, nil
}

// ListByIDs 批量获取配料
func (r *GormToppingRepository) ListByIDs(ids []uint) ([]models.Topping, error) {
	if len(ids) == 0 {
		return []models.Topping{}, nil
	}
	var toppings []models.Topping
	if err := r.db.Where("id IN ?", ids).Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}

// Create 创建配料
func (r *GormToppingRepository) Create(topping *models.Topping) error {
	return r.db.Create(topping).Error
}

// Update 更新配料
func (r *GormToppingRepository) Update(topping *models.Topping) error {
	return r.db.Save(topping).Error
}

// Delete 删除配料
func (r *GormToppingRepository) Delete(id uint) error {
	return r.db.Delete(&models.Topping{}, id).Error
}
