package service

import (
	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"

	"github.com/shopspring/decimal"
)

// LineQuote 单行定价结果
type LineQuote struct {
	BasePrice    models.Money // 生效基础单价（不含杯型/配料）
	SizeUpcharge models.Money // 杯型加价
	ToppingTotal models.Money // 配料合计
	UnitPrice    models.Money // 单杯价格
	LineTotal    models.Money // 行小计
}

// sizeUpcharge 计算杯型加价：每上调一档加固定金额。
// 档位超出商品杯型范围视为非法；未配置杯型的商品仅允许档位 0。
func sizeUpcharge(product *models.Product, sizeIndex int) (decimal.Decimal, error) {
	if sizeIndex < 0 {
		return decimal.Zero, ErrSizeIndexInvalid
	}
	if len(product.Sizes) == 0 {
		if sizeIndex != 0 {
			return decimal.Zero, ErrSizeIndexInvalid
		}
		return decimal.Zero, nil
	}
	if sizeIndex >= len(product.Sizes) {
		return decimal.Zero, ErrSizeIndexInvalid
	}
	step := decimal.NewFromInt(constants.SizeStepAmount)
	return step.Mul(decimal.NewFromInt(int64(sizeIndex))), nil
}

// buildLineQuote 计算单行价格：生效单价 + 杯型加价 + 配料快照合计，再乘以数量。
// 配料价格一律取快照值，不回读目录。
func buildLineQuote(product *models.Product, sizeIndex int, toppings []models.ToppingSnapshot, quantity int) (LineQuote, error) {
	if quantity < 1 {
		return LineQuote{}, ErrQuantityInvalid
	}
	base := product.EffectivePrice()

	upcharge, err := sizeUpcharge(product, sizeIndex)
	if err != nil {
		return LineQuote{}, err
	}

	toppingTotal := decimal.Zero
	for _, t := range toppings {
		toppingTotal = toppingTotal.Add(t.Price.Decimal)
	}

	unit := base.Decimal.Add(upcharge).Add(toppingTotal)
	lineTotal := unit.Mul(decimal.NewFromInt(int64(quantity)))

	return LineQuote{
		BasePrice:    base,
		SizeUpcharge: models.NewMoneyFromDecimal(upcharge),
		ToppingTotal: models.NewMoneyFromDecimal(toppingTotal),
		UnitPrice:    models.NewMoneyFromDecimal(unit),
		LineTotal:    models.NewMoneyFromDecimal(lineTotal),
	}, nil
}

// cartSubtotal 汇总购物车小计：只累加已存储的行小计，不做任何重算。
func cartSubtotal(items []models.CartItem) models.Money {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal.Decimal)
	}
	return models.NewMoneyFromDecimal(sum)
}

// isSupportedLevel 校验甜度/冰量档位
func isSupportedLevel(level string) bool {
	for _, v := range constants.SupportedLevels {
		if v == level {
			return true
		}
	}
	return false
}
