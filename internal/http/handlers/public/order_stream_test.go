package public

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/events"
	"github.com/milktea-next/internal/models"
	"github.com/milktea-next/internal/provider"
	"github.com/milktea-next/internal/repository"
	"github.com/milktea-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newOrderStreamRouter(t *testing.T, userID uint) (*gin.Engine, *models.Order, *events.MemoryBus) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	order := &models.Order{OrderNo: "MT20260901000001", UserID: 1, Status: constants.OrderStatusPending}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	bus := events.NewMemoryBus()
	t.Cleanup(func() { _ = bus.Close() })

	handler := New(&provider.Container{
		EventBus:     bus,
		OrderService: service.NewOrderService(repository.NewOrderRepository(db), repository.NewCartRepository(db), nil, nil, nil, bus),
	})

	r := gin.New()
	r.GET("/orders/:id/events", func(c *gin.Context) { c.Set("user_id", userID) }, handler.StreamOrderEvents)
	return r, order, bus
}

// closeNotifyRecorder 使 httptest.ResponseRecorder 满足 gin Stream 所需的 http.CloseNotifier
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

func TestStreamOrderEventsDeliversChange(t *testing.T) {
	r, order, bus := newOrderStreamRouter(t, 1)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d/events", order.ID), nil)
	rec := newCloseNotifyRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.ServeHTTP(rec, req)
	}()

	// 事件至少一次投递，重复发布直至订阅建立，随后关闭总线结束流
	event := events.NewOrderChangedEvent(order.ID, constants.OrderStatusConfirmed)
	for i := 0; i < 50; i++ {
		_ = bus.PublishOrderChanged(req.Context(), event)
		time.Sleep(10 * time.Millisecond)
	}
	_ = bus.Close()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("stream handler did not finish")
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/event-stream") {
		t.Fatalf("unexpected content type: %s", got)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "event:order_changed") {
		t.Fatalf("body should contain order_changed event, got %q", body)
	}
	if !strings.Contains(body, fmt.Sprintf("\"order_id\":%d", order.ID)) {
		t.Fatalf("body should reference the order, got %q", body)
	}
	if !strings.Contains(body, constants.OrderStatusConfirmed) {
		t.Fatalf("body should carry the status hint, got %q", body)
	}
}

func TestStreamOrderEventsForeignOrderRejected(t *testing.T) {
	r, order, _ := newOrderStreamRouter(t, 2)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d/events", order.ID), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "\"status_code\":404") {
		t.Fatalf("foreign order must be rejected, got %q", rec.Body.String())
	}
}

func TestStreamOrderEventsBadID(t *testing.T) {
	r, _, _ := newOrderStreamRouter(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/orders/abc/events", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "\"status_code\":400") {
		t.Fatalf("invalid id must be rejected, got %q", rec.Body.String())
	}
}
