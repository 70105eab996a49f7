package shared

import (
	"io"

	"github.com/milktea-next/internal/events"

	"github.com/gin-gonic/gin"
)

// StreamOrderChanges 以 SSE 推送订阅到的订单变更事件，直到客户端断开或订阅被关闭。
// 事件只携带订单ID与状态提示，消费端收到后需回查订单获取权威数据。
func StreamOrderChanges(c *gin.Context, sub *events.Subscription) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeaderNow()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("order_changed", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
