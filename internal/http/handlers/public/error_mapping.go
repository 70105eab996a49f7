package public

import (
	"errors"

	"github.com/milktea-next/internal/http/response"
	"github.com/milktea-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartItemErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_available"},
	{target: service.ErrProductPriceInvalid, code: response.CodeBadRequest, key: "error.product_price_invalid"},
	{target: service.ErrToppingNotAvailable, code: response.CodeBadRequest, key: "error.topping_not_available"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrSizeIndexInvalid, code: response.CodeBadRequest, key: "error.size_invalid"},
	{target: service.ErrLevelInvalid, code: response.CodeBadRequest, key: "error.level_invalid"},
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
}

var voucherErrorRules = []mappedHandlerError{
	{target: service.ErrVoucherNotFound, code: response.CodeBadRequest, key: "error.voucher_not_found"},
	{target: service.ErrVoucherInactive, code: response.CodeBadRequest, key: "error.voucher_inactive"},
	{target: service.ErrVoucherMinOrderNotMet, code: response.CodeBadRequest, key: "error.voucher_min_order"},
	{target: service.ErrVoucherNewUserOnly, code: response.CodeBadRequest, key: "error.voucher_new_user_only"},
	{target: service.ErrVoucherOutsideHours, code: response.CodeBadRequest, key: "error.voucher_outside_hours"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrReceiverRequired, code: response.CodeBadRequest, key: "error.receiver_required"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, key: "error.payment_method_invalid"},
}

func respondOrderPreviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutErrorRules, cartItemErrorRules, voucherErrorRules), response.CodeInternal, "error.order_create_failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutErrorRules, cartItemErrorRules, voucherErrorRules), response.CodeInternal, "error.order_create_failed")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartItemErrorRules, response.CodeInternal, "error.cart_update_failed")
}
