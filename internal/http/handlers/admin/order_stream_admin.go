package admin

import (
	handlershared "github.com/milktea-next/internal/http/handlers/shared"
	"github.com/milktea-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AdminStreamOrderEvents 以 SSE 订阅全量订单变更（订单看板实时刷新）。
func (h *Handler) AdminStreamOrderEvents(c *gin.Context) {
	if h.EventBus == nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", nil)
		return
	}
	sub, err := h.EventBus.SubscribeAll(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	defer sub.Close()

	handlershared.StreamOrderChanges(c, sub)
}
