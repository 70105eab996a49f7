package service

import (
	"time"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartView 购物车视图（行 + 小计）
type CartView struct {
	Items    []models.CartItem `json:"items"`
	Subtotal models.Money      `json:"subtotal"`
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	UserID     uint
	ProductID  uint
	SizeIndex  int
	SugarLevel string
	IceLevel   string
	Note       string
	Quantity   int
	ToppingIDs []uint
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	toppingRepo repository.ToppingRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, toppingRepo repository.ToppingRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		toppingRepo: toppingRepo,
	}
}

// ListByUser 获取用户购物车。已下架商品的行直接清理。
// 小计只累加各行已存储的小计，不回读目录重算。
func (s *CartService) ListByUser(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			_ = s.cartRepo.DeleteByIDAndUser(item.ID, userID)
			continue
		}
		kept = append(kept, item)
	}
	return &CartView{
		Items:    kept,
		Subtotal: cartSubtotal(kept),
	}, nil
}

// AddItem 加入购物车。价格与配料在此刻快照，之后目录变动不影响该行。
// 同商品同规格（杯型、甜度、冰量、备注、配料组合一致）合并数量。
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidCartItem
	}
	if input.Quantity < 1 {
		return nil, ErrQuantityInvalid
	}
	sugar := input.SugarLevel
	if sugar == "" {
		sugar = constants.SugarLevelFull
	}
	ice := input.IceLevel
	if ice == "" {
		ice = constants.IceLevelFull
	}
	if !isSupportedLevel(sugar) || !isSupportedLevel(ice) {
		return nil, ErrLevelInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	snapshots, err := s.snapshotToppings(input.ToppingIDs)
	if err != nil {
		return nil, err
	}

	quote, err := buildLineQuote(product, input.SizeIndex, snapshots, input.Quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:     input.UserID,
		ProductID:  input.ProductID,
		SizeIndex:  input.SizeIndex,
		SugarLevel: sugar,
		IceLevel:   ice,
		Note:       input.Note,
		Quantity:   input.Quantity,
		BasePrice:  quote.BasePrice,
		Toppings:   snapshots,
		UnitPrice:  quote.UnitPrice,
		LineTotal:  quote.LineTotal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	existing, err := s.cartRepo.FindSameLine(item)
	if err != nil {
		return nil, err
	}
	if existing != nil && sameToppingSet(existing.Toppings, snapshots) {
		quantity := existing.Quantity + input.Quantity
		lineTotal := models.NewMoneyFromDecimal(existing.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
		updates := map[string]interface{}{
			"quantity":   quantity,
			"line_total": lineTotal,
			"updated_at": now,
		}
		if err := s.cartRepo.UpdateLine(existing.ID, updates); err != nil {
			return nil, err
		}
		existing.Quantity = quantity
		existing.LineTotal = lineTotal
		existing.UpdatedAt = now
		return existing, nil
	}

	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity 修改行数量，小计按该行已存储的单价重算。
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	if userID == 0 || itemID == 0 {
		return nil, ErrInvalidCartItem
	}
	if quantity < 1 {
		return nil, ErrQuantityInvalid
	}
	item, err := s.cartRepo.GetByIDAndUser(itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	now := time.Now()
	lineTotal := models.NewMoneyFromDecimal(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
	updates := map[string]interface{}{
		"quantity":   quantity,
		"line_total": lineTotal,
		"updated_at": now,
	}
	if err := s.cartRepo.UpdateLine(item.ID, updates); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	item.LineTotal = lineTotal
	item.UpdatedAt = now
	return item, nil
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(userID, itemID uint) error {
	if userID == 0 || itemID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.DeleteByIDAndUser(itemID, userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.ClearByUser(userID)
}

// snapshotToppings 读取配料并生成快照，已停用配料不可加入。
func (s *CartService) snapshotToppings(ids []uint) (models.ToppingSnapshotList, error) {
	if len(ids) == 0 {
		return models.ToppingSnapshotList{}, nil
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
	byID := make(map[uint]models.Topping, len(toppings))
	for _, t := range toppings {
		byID[t.ID] = t
	}
	snapshots := make(models.ToppingSnapshotList, 0, len(unique))
	for _, id := range unique {
		t, ok := byID[id]
		if !ok || !t.IsActive {
			return nil, ErrToppingNotAvailable
		}
		snapshots = append(snapshots, models.ToppingSnapshot{
			ToppingID: t.ID,
			Name:      t.Name,
			Price:     t.Price,
		})
	}
	return snapshots, nil
}

// sameToppingSet 比较两组配料快照是否同一组合
func sameToppingSet(a, b models.ToppingSnapshotList) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[uint]int, len(a))
	for _, t := range a {
		counts[t.ToppingID]++
	}
	for _, t := range b {
		counts[t.ToppingID]--
		if counts[t.ToppingID] < 0 {
			return false
		}
	}
	return true
}
