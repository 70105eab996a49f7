package public

import (
	"errors"
	"strconv"

	handlershared "github.com/milktea-next/internal/http/handlers/shared"
	"github.com/milktea-next/internal/http/response"
	"github.com/milktea-next/internal/service"

	"github.com/gin-gonic/gin"
)

// StreamOrderEvents 以 SSE 订阅单个订单的状态变更。
// 仅限本人订单；连接保持到客户端断开为止。
func (h *Handler) StreamOrderEvents(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	// 订阅前校验订单归属
	if _, err := h.OrderService.GetOrderByUser(uint(orderID), uid); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	if h.EventBus == nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", nil)
		return
	}
	sub, err := h.EventBus.SubscribeOrder(c.Request.Context(), uint(orderID))
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	defer sub.Close()

	handlershared.StreamOrderChanges(c, sub)
}
