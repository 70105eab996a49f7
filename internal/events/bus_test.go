package events

import (
	"context"
	"testing"
	"time"
)

func recvEvent(t *testing.T, sub *Subscription) OrderChangedEvent {
	t.Helper()
	select {
	case event, ok := <-sub.C:
		if !ok {
			t.Fatalf("subscription channel closed unexpectedly")
		}
		return event
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return OrderChangedEvent{}
}

func TestMemoryBusDeliversToOrderAndAllChannels(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	ctx := context.Background()

	orderSub, err := bus.SubscribeOrder(ctx, 7)
	if err != nil {
		t.Fatalf("SubscribeOrder error: %v", err)
	}
	defer orderSub.Close()
	allSub, err := bus.SubscribeAll(ctx)
	if err != nil {
		t.Fatalf("SubscribeAll error: %v", err)
	}
	defer allSub.Close()

	event := NewOrderChangedEvent(7, "confirmed")
	if err := bus.PublishOrderChanged(ctx, event); err != nil {
		t.Fatalf("PublishOrderChanged error: %v", err)
	}

	for _, sub := range []*Subscription{orderSub, allSub} {
		got := recvEvent(t, sub)
		if got.OrderID != 7 || got.Status != "confirmed" {
			t.Fatalf("unexpected event: %+v", got)
		}
		if got.EventID != event.EventID {
			t.Fatalf("event id mismatch: %s vs %s", got.EventID, event.EventID)
		}
	}
}

func TestMemoryBusOrderChannelIsScoped(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	ctx := context.Background()

	sub, err := bus.SubscribeOrder(ctx, 1)
	if err != nil {
		t.Fatalf("SubscribeOrder error: %v", err)
	}
	defer sub.Close()

	if err := bus.PublishOrderChanged(ctx, NewOrderChangedEvent(2, "pending")); err != nil {
		t.Fatalf("PublishOrderChanged error: %v", err)
	}

	select {
	case event := <-sub.C:
		t.Fatalf("order 1 subscriber must not see order 2 event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBusSubscriptionClose(t *testing.T) {
	bus := NewMemoryBus()
	defer bus.Close()
	ctx := context.Background()

	sub, err := bus.SubscribeAll(ctx)
	if err != nil {
		t.Fatalf("SubscribeAll error: %v", err)
	}
	sub.Close()
	// 重复关闭应当安全
	sub.Close()

	if _, ok := <-sub.C; ok {
		t.Fatalf("channel should be closed after unsubscribe")
	}

	// 取消订阅后发布不再投递
	if err := bus.PublishOrderChanged(ctx, NewOrderChangedEvent(3, "completed")); err != nil {
		t.Fatalf("PublishOrderChanged error: %v", err)
	}
}

func TestMemoryBusCloseClosesAllSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	orderSub, err := bus.SubscribeOrder(ctx, 5)
	if err != nil {
		t.Fatalf("SubscribeOrder error: %v", err)
	}
	allSub, err := bus.SubscribeAll(ctx)
	if err != nil {
		t.Fatalf("SubscribeAll error: %v", err)
	}

	if err := bus.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if _, ok := <-orderSub.C; ok {
		t.Fatalf("order subscription should be closed")
	}
	if _, ok := <-allSub.C; ok {
		t.Fatalf("all subscription should be closed")
	}
}

func TestNewBusFallsBackToMemory(t *testing.T) {
	bus := NewBus(nil, "")
	if _, ok := bus.(*MemoryBus); !ok {
		t.Fatalf("nil redis client should yield memory bus, got %T", bus)
	}
}
