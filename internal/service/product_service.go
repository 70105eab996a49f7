package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/milktea-next/internal/cache"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	productListCacheKey = "catalog:products:front"
	productCacheTTL     = 5 * time.Minute
)

func productDetailCacheKey(slug string) string {
	return fmt.Sprintf("catalog:product:%s", slug)
}

// cachedProductPage 商品列表缓存载荷
type cachedProductPage struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

// ProductService 商品业务服务
type ProductService struct {
	repo        repository.ProductRepository
	toppingRepo repository.ToppingRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, toppingRepo repository.ToppingRepository) *ProductService {
	return &ProductService{repo: repo, toppingRepo: toppingRepo}
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	CategoryID  uint
	Slug        string
	Name        string
	Description string
	BasePrice   decimal.Decimal
	SalePrice   *decimal.Decimal
	Sizes       []string
	Image       string
	Images      []string
	ToppingIDs  []uint
	IsActive    *bool
	SortOrder   int
}

// ListPublic 获取公开商品列表。
// 无筛选的首页列表走缓存，带筛选的查询直接回源。
func (s *ProductService) ListPublic(categoryID, search string, page, pageSize int) ([]models.Product, int64, error) {
	cacheable := categoryID == "" && strings.TrimSpace(search) == "" && page <= 1
	if cacheable {
		var cached cachedProductPage
		if hit, err := cache.GetJSON(context.Background(), productListCacheKey, &cached); err == nil && hit {
			return cached.Items, cached.Total, nil
		}
	}

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		OnlyActive:   true,
		WithCategory: true,
		WithToppings: true,
	}
	items, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	if cacheable {
		_ = cache.SetJSON(context.Background(), productListCacheKey, cachedProductPage{Items: items, Total: total}, productCacheTTL)
	}
	return items, total, nil
}

// GetPublicBySlug 获取公开商品详情，命中缓存时不回源
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	var cached models.Product
	if hit, err := cache.GetJSON(context.Background(), productDetailCacheKey(slug), &cached); err == nil && hit {
		return &cached, nil
	}

	product, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	_ = cache.SetJSON(context.Background(), productDetailCacheKey(slug), product, productCacheTTL)
	return product, nil
}

// invalidateCatalogCache 商品写操作后清理公开缓存
func (s *ProductService) invalidateCatalogCache(slugs ...string) {
	ctx := context.Background()
	_ = cache.Del(ctx, productListCacheKey)
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		_ = cache.Del(ctx, productDetailCacheKey(slug))
	}
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(categoryID, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		OnlyActive:   false,
		WithCategory: true,
		WithToppings: true,
	}
	return s.repo.List(filter)
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	basePrice, salePrice, err := normalizeProductPrices(input.BasePrice, input.SalePrice)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	toppings, err := s.resolveToppings(input.ToppingIDs)
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	product := models.Product{
		CategoryID:  input.CategoryID,
		Slug:        slug,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		BasePrice:   basePrice,
		SalePrice:   salePrice,
		Sizes:       normalizeSizes(input.Sizes),
		Image:       strings.TrimSpace(input.Image),
		Images:      models.StringArray(input.Images),
		IsActive:    isActive,
		SortOrder:   input.SortOrder,
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceToppings(&product, toppings); err != nil {
		return nil, err
	}
	product.Toppings = toppings
	s.invalidateCatalogCache(product.Slug)
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	basePrice, salePrice, err := normalizeProductPrices(input.BasePrice, input.SalePrice)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	previousSlug := product.Slug

	count, err := s.repo.CountBySlug(slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugTaken
	}

	toppings, err := s.resolveToppings(input.ToppingIDs)
	if err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Slug = slug
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.BasePrice = basePrice
	product.SalePrice = salePrice
	product.Sizes = normalizeSizes(input.Sizes)
	product.Image = strings.TrimSpace(input.Image)
	product.Images = models.StringArray(input.Images)
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceToppings(product, toppings); err != nil {
		return nil, err
	}
	product.Toppings = toppings
	s.invalidateCatalogCache(previousSlug, product.Slug)
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalogCache(product.Slug)
	return nil
}

// resolveToppings 校验配料是否存在
func (s *ProductService) resolveToppings(ids []uint) ([]models.Topping, error) {
	if len(ids) == 0 {
		return []models.Topping{}, nil
	}
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	toppings, err := s.toppingRepo.ListByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(toppings) != len(unique) {
		return nil, ErrToppingNotFound
	}
	return toppings, nil
}

// normalizeProductPrices 校验价格：标准价必须为正，促销价可空但不可为负。
// 金额一律取整到越南盾。
func normalizeProductPrices(basePrice decimal.Decimal, salePrice *decimal.Decimal) (models.Money, *models.Money, error) {
	base := basePrice.Round(0)
	if base.LessThanOrEqual(decimal.Zero) {
		return models.Money{}, nil, ErrProductPriceInvalid
	}
	if salePrice == nil {
		return models.NewMoneyFromDecimal(base), nil, nil
	}
	sale := salePrice.Round(0)
	if sale.LessThan(decimal.Zero) {
		return models.Money{}, nil, ErrProductPriceInvalid
	}
	if sale.IsZero() {
		return models.NewMoneyFromDecimal(base), nil, nil
	}
	money := models.NewMoneyFromDecimal(sale)
	return models.NewMoneyFromDecimal(base), &money, nil
}

func normalizeSizes(sizes []string) models.StringArray {
	result := make(models.StringArray, 0, len(sizes))
	for _, size := range sizes {
		size = strings.TrimSpace(size)
		if size == "" {
			continue
		}
		result = append(result, size)
	}
	return result
}
