package service

import (
	"errors"
	"testing"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/repository"

	"gorm.io/gorm"
)

type cartServiceFixture struct {
	db       *gorm.DB
	svc      *CartService
	product  models.Product
	toppings []models.Topping
}

func newCartServiceFixture(t *testing.T) *cartServiceFixture {
	t.Helper()
	db := openTestDB(t)

	f := &cartServiceFixture{
		db:  db,
		svc: NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), repository.NewToppingRepository(db)),
		product: models.Product{
			CategoryID: 1,
			Slug:       "tra-sua-truyen-thong",
			Name:       "Trà sữa truyền thống",
			BasePrice:  models.NewMoneyFromInt(30000),
			Sizes:      models.StringArray{"S", "M", "L"},
			IsActive:   true,
		},
		toppings: []models.Topping{
			{Name: "Thạch dừa", Price: models.NewMoneyFromInt(5000), IsActive: true},
			{Name: "Trân châu đen", Price: models.NewMoneyFromInt(7000), IsActive: true},
			{Name: "Pudding trứng", Price: models.NewMoneyFromInt(8000), IsActive: true},
		},
	}
	if err := db.Create(&f.product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	for i := range f.toppings {
		if err := db.Create(&f.toppings[i]).Error; err != nil {
			t.Fatalf("create topping failed: %v", err)
		}
	}
	return f
}

func TestAddItemSnapshotsCatalogPrices(t *testing.T) {
	f := newCartServiceFixture(t)

	item, err := f.svc.AddItem(AddCartItemInput{
		UserID:     1,
		ProductID:  f.product.ID,
		SizeIndex:  1,
		Quantity:   2,
		ToppingIDs: []uint{f.toppings[0].ID, f.toppings[1].ID},
	})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if got := item.BasePrice.Decimal.IntPart(); got != 30000 {
		t.Fatalf("unexpected base price snapshot: %d", got)
	}
	if got := item.UnitPrice.Decimal.IntPart(); got != 47000 {
		t.Fatalf("unexpected unit price: %d", got)
	}
	if got := item.LineTotal.Decimal.IntPart(); got != 94000 {
		t.Fatalf("unexpected line total: %d", got)
	}
	if len(item.Toppings) != 2 {
		t.Fatalf("unexpected topping snapshots: %d", len(item.Toppings))
	}
	if item.Toppings[0].Name != "Thạch dừa" || item.Toppings[0].Price.Decimal.IntPart() != 5000 {
		t.Fatalf("unexpected topping snapshot: %+v", item.Toppings[0])
	}
	// 未指定甜度冰量则默认满配
	if item.SugarLevel != constants.SugarLevelFull || item.IceLevel != constants.IceLevelFull {
		t.Fatalf("unexpected default levels: %s / %s", item.SugarLevel, item.IceLevel)
	}
}

func TestAddItemValidation(t *testing.T) {
	f := newCartServiceFixture(t)

	if _, err := f.svc.AddItem(AddCartItemInput{UserID: 1, ProductID: f.product.ID, Quantity: 0}); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
	if _, err := f.svc.AddItem(AddCartItemInput{UserID: 1, ProductID: f.product.ID, Quantity: 1, SugarLevel: "30%"}); !errors.Is(err, ErrLevelInvalid) {
		t.Fatalf("expected ErrLevelInvalid, got %v", err)
	}
	if _, err := f.svc.AddItem(AddCartItemInput{UserID: 1, ProductID: f.product.ID, Quantity: 1, SizeIndex: 3}); !errors.Is(err, ErrSizeIndexInvalid) {
		t.Fatalf("expected ErrSizeIndexInvalid, got %v", err)
	}
	if _, err := f.svc.AddItem(AddCartItemInput{UserID: 1, ProductID: 9999, Quantity: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestAddItemInactiveToppingRejected(t *testing.T) {
	f := newCartServiceFixture(t)
	if err := f.db.Model(&models.Topping{}).Where("id = ?", f.toppings[2].ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate topping failed: %v", err)
	}

	_, err := f.svc.AddItem(AddCartItemInput{
		UserID:     1,
		ProductID:  f.product.ID,
		Quantity:   1,
		ToppingIDs: []uint{f.toppings[2].ID},
	})
	if !errors.Is(err, ErrToppingNotAvailable) {
		t.Fatalf("expected ErrToppingNotAvailable, got %v", err)
	}
}

func TestAddItemMergesSameLineKeepingSnapshot(t *testing.T) {
	f := newCartServiceFixture(t)
	input := AddCartItemInput{
		UserID:     1,
		ProductID:  f.product.ID,
		SizeIndex:  1,
		Quantity:   2,
		ToppingIDs: []uint{f.toppings[0].ID},
	}
	first, err := f.svc.AddItem(input)
	if err != nil {
		t.Fatalf("first AddItem error: %v", err)
	}

	// 目录涨价后再次加入，同一行合并数量，仍按入车时的快照单价计算
	if err := f.db.Model(&models.Product{}).Where("id = ?", f.product.ID).
		Update("base_price", models.NewMoneyFromInt(99000)).Error; err != nil {
		t.Fatalf("update product price failed: %v", err)
	}

	input.Quantity = 1
	merged, err := f.svc.AddItem(input)
	if err != nil {
		t.Fatalf("second AddItem error: %v", err)
	}
	if merged.ID != first.ID {
		t.Fatalf("expected merge into existing line, got new line %d", merged.ID)
	}
	if merged.Quantity != 3 {
		t.Fatalf("unexpected merged quantity: %d", merged.Quantity)
	}
	if got := merged.UnitPrice.Decimal.IntPart(); got != 40000 {
		t.Fatalf("merged line must keep snapshot unit price, got %d", got)
	}
	if got := merged.LineTotal.Decimal.IntPart(); got != 120000 {
		t.Fatalf("unexpected merged line total: %d", got)
	}

	var count int64
	if err := f.db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single cart line, got %d", count)
	}
}

func TestAddItemDifferentToppingsCreatesNewLine(t *testing.T) {
	f := newCartServiceFixture(t)
	base := AddCartItemInput{
		UserID:     1,
		ProductID:  f.product.ID,
		SizeIndex:  1,
		Quantity:   1,
		ToppingIDs: []uint{f.toppings[0].ID},
	}
	first, err := f.svc.AddItem(base)
	if err != nil {
		t.Fatalf("first AddItem error: %v", err)
	}

	base.ToppingIDs = []uint{f.toppings[1].ID}
	second, err := f.svc.AddItem(base)
	if err != nil {
		t.Fatalf("second AddItem error: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("differing topping sets must not merge")
	}
}

func TestUpdateQuantityRecomputesFromStoredUnitPrice(t *testing.T) {
	f := newCartServiceFixture(t)
	item, err := f.svc.AddItem(AddCartItemInput{
		UserID:     1,
		ProductID:  f.product.ID,
		SizeIndex:  1,
		Quantity:   2,
		ToppingIDs: []uint{f.toppings[0].ID, f.toppings[1].ID},
	})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	updated, err := f.svc.UpdateQuantity(1, item.ID, 3)
	if err != nil {
		t.Fatalf("UpdateQuantity error: %v", err)
	}
	if got := updated.LineTotal.Decimal.IntPart(); got != 141000 {
		t.Fatalf("unexpected recomputed line total: %d", got)
	}

	if _, err := f.svc.UpdateQuantity(1, item.ID, 0); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
	if _, err := f.svc.UpdateQuantity(1, 9999, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
	if _, err := f.svc.UpdateQuantity(2, item.ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("other user must not touch the line, got %v", err)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	f := newCartServiceFixture(t)
	item, err := f.svc.AddItem(AddCartItemInput{UserID: 1, ProductID: f.product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	if err := f.svc.RemoveItem(1, item.ID); err != nil {
		t.Fatalf("RemoveItem error: %v", err)
	}
	view, err := f.svc.ListByUser(1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("cart should be empty after remove, got %d items", len(view.Items))
	}

	if _, err := f.svc.AddItem(AddCartItemInput{UserID: 1, ProductID: f.product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := f.svc.Clear(1); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	view, err = f.svc.ListByUser(1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("cart should be empty after clear, got %d items", len(view.Items))
	}
}

func TestListByUserPrunesInactiveProductLines(t *testing.T) {
	f := newCartServiceFixture(t)
	other := models.Product{
		CategoryID: 1,
		Slug:       "ca-phe-sua-da",
		Name:       "Cà phê sữa đá",
		BasePrice:  models.NewMoneyFromInt(28000),
		IsActive:   true,
	}
	if err := f.db.Create(&other).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := f.svc.AddItem(AddCartItemInput{UserID: 1, ProductID: f.product.ID, SizeIndex: 1, Quantity: 2, ToppingIDs: []uint{f.toppings[0].ID, f.toppings[1].ID}}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := f.svc.AddItem(AddCartItemInput{UserID: 1, ProductID: other.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	// 第二个商品下架后，对应行应被清理，小计只剩存活行
	if err := f.db.Model(&models.Product{}).Where("id = ?", other.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	view, err := f.svc.ListByUser(1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 surviving line, got %d", len(view.Items))
	}
	if view.Items[0].ProductID != f.product.ID {
		t.Fatalf("unexpected surviving line: %+v", view.Items[0])
	}
	if got := view.Subtotal.Decimal.IntPart(); got != 94000 {
		t.Fatalf("unexpected subtotal: %d", got)
	}

	var count int64
	if err := f.db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("inactive line should be deleted, got %d rows", count)
	}
}
