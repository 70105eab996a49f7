package service

import (
	"testing"

	"github.com/milktea-next/internal/models"
)

func moneyInt(t *testing.T, m models.Money) int64 {
	t.Helper()
	return m.Decimal.IntPart()
}

func TestBuildLineQuoteWithSizeAndToppings(t *testing.T) {
	product := &models.Product{
		BasePrice: models.NewMoneyFromInt(30000),
		Sizes:     models.StringArray{"S", "M", "L"},
		IsActive:  true,
	}
	toppings := []models.ToppingSnapshot{
		{ToppingID: 1, Name: "Thạch dừa", Price: models.NewMoneyFromInt(5000)},
		{ToppingID: 2, Name: "Trân châu đen", Price: models.NewMoneyFromInt(7000)},
	}

	quote, err := buildLineQuote(product, 1, toppings, 2)
	if err != nil {
		t.Fatalf("buildLineQuote error: %v", err)
	}
	if got := moneyInt(t, quote.BasePrice); got != 30000 {
		t.Fatalf("unexpected base price: %d", got)
	}
	if got := moneyInt(t, quote.SizeUpcharge); got != 5000 {
		t.Fatalf("unexpected size upcharge: %d", got)
	}
	if got := moneyInt(t, quote.ToppingTotal); got != 12000 {
		t.Fatalf("unexpected topping total: %d", got)
	}
	if got := moneyInt(t, quote.UnitPrice); got != 47000 {
		t.Fatalf("unexpected unit price: %d", got)
	}
	if got := moneyInt(t, quote.LineTotal); got != 94000 {
		t.Fatalf("unexpected line total: %d", got)
	}
}

func TestBuildLineQuoteUsesSalePriceWhenLower(t *testing.T) {
	sale := models.NewMoneyFromInt(25000)
	product := &models.Product{
		BasePrice: models.NewMoneyFromInt(30000),
		SalePrice: &sale,
		Sizes:     models.StringArray{"S", "M"},
	}

	quote, err := buildLineQuote(product, 0, nil, 1)
	if err != nil {
		t.Fatalf("buildLineQuote error: %v", err)
	}
	if got := moneyInt(t, quote.UnitPrice); got != 25000 {
		t.Fatalf("expected sale price to apply, got %d", got)
	}
}

func TestBuildLineQuoteIgnoresInvalidSalePrice(t *testing.T) {
	zero := models.NewMoneyFromInt(0)
	higher := models.NewMoneyFromInt(40000)

	for name, sale := range map[string]*models.Money{"zero": &zero, "higher": &higher} {
		product := &models.Product{
			BasePrice: models.NewMoneyFromInt(30000),
			SalePrice: sale,
		}
		quote, err := buildLineQuote(product, 0, nil, 1)
		if err != nil {
			t.Fatalf("%s: buildLineQuote error: %v", name, err)
		}
		if got := moneyInt(t, quote.UnitPrice); got != 30000 {
			t.Fatalf("%s: expected base price to apply, got %d", name, got)
		}
	}
}

func TestBuildLineQuoteSizeIndexOutOfRange(t *testing.T) {
	product := &models.Product{
		BasePrice: models.NewMoneyFromInt(30000),
		Sizes:     models.StringArray{"S", "M"},
	}
	if _, err := buildLineQuote(product, 2, nil, 1); err != ErrSizeIndexInvalid {
		t.Fatalf("expected ErrSizeIndexInvalid, got %v", err)
	}
	if _, err := buildLineQuote(product, -1, nil, 1); err != ErrSizeIndexInvalid {
		t.Fatalf("expected ErrSizeIndexInvalid for negative index, got %v", err)
	}
}

func TestBuildLineQuoteNoSizesOnlyBaseTier(t *testing.T) {
	product := &models.Product{BasePrice: models.NewMoneyFromInt(28000)}

	quote, err := buildLineQuote(product, 0, nil, 1)
	if err != nil {
		t.Fatalf("buildLineQuote error: %v", err)
	}
	if got := moneyInt(t, quote.UnitPrice); got != 28000 {
		t.Fatalf("unexpected unit price: %d", got)
	}
	if _, err := buildLineQuote(product, 1, nil, 1); err != ErrSizeIndexInvalid {
		t.Fatalf("expected ErrSizeIndexInvalid without sizes, got %v", err)
	}
}

func TestBuildLineQuoteQuantityInvalid(t *testing.T) {
	product := &models.Product{BasePrice: models.NewMoneyFromInt(30000)}
	if _, err := buildLineQuote(product, 0, nil, 0); err != ErrQuantityInvalid {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
}

func TestCartSubtotalFoldsStoredLineTotals(t *testing.T) {
	items := []models.CartItem{
		{LineTotal: models.NewMoneyFromInt(94000)},
		{LineTotal: models.NewMoneyFromInt(28000)},
	}
	if got := moneyInt(t, cartSubtotal(items)); got != 122000 {
		t.Fatalf("unexpected subtotal: %d", got)
	}
	if got := moneyInt(t, cartSubtotal(nil)); got != 0 {
		t.Fatalf("empty cart subtotal should be 0, got %d", got)
	}
}

func TestSettleAmountsClampsDiscount(t *testing.T) {
	subtotal := models.NewMoneyFromInt(30000)

	discount, total := settleAmounts(subtotal, models.NewMoneyFromInt(50000))
	if moneyInt(t, discount) != 30000 || moneyInt(t, total) != 0 {
		t.Fatalf("expected clamp to subtotal, got discount=%d total=%d", moneyInt(t, discount), moneyInt(t, total))
	}

	discount, total = settleAmounts(subtotal, models.NewMoneyFromInt(-100))
	if moneyInt(t, discount) != 0 || moneyInt(t, total) != 30000 {
		t.Fatalf("expected negative discount to be zeroed, got discount=%d total=%d", moneyInt(t, discount), moneyInt(t, total))
	}
}
