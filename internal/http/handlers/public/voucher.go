package public

import (
	"time"

	"github.com/milktea-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListEligibleVouchers 获取当前购物车此刻可用的优惠券
// 新用户资格实时回查订单表，跨整点后结果可能变化。
func (h *Handler) ListEligibleVouchers(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}

	vouchers, err := h.VoucherService.ListEligible(uid, view.Subtotal, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.voucher_fetch_failed", err)
		return
	}

	response.Success(c, gin.H{
		"subtotal": view.Subtotal,
		"vouchers": vouchers,
	})
}
