package worker

import (
	"context"
	"testing"

	"github.com/milktea-next/internal/provider"

	"github.com/hibiken/asynq"
)

func TestHandleOrderStatusNotifyInvalidJSON(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask("order:status_notify", []byte("{not json"))
	if err := consumer.handleOrderStatusNotify(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error, got nil")
	}
}

func TestHandleOrderStatusNotifyZeroOrderID(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask("order:status_notify", []byte(`{"order_id":0,"user_id":1}`))
	if err := consumer.handleOrderStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("expected nil for zero order id, got %v", err)
	}
}

func TestHandleOrderStatusNotifyNilService(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask("order:status_notify", []byte(`{"order_id":7,"user_id":1,"status":"confirmed"}`))
	if err := consumer.handleOrderStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("expected nil when notification service missing, got %v", err)
	}
}

func TestHandleOrderStatusNotifyNilTask(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	if err := consumer.handleOrderStatusNotify(context.Background(), nil); err != nil {
		t.Fatalf("expected nil for nil task, got %v", err)
	}
}
