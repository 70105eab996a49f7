package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OrderChangedEvent 订单变更事件。
// 事件只携带订单定位信息与状态提示，消费者必须回查订单行获取权威数据。
// 投递语义为至少一次，消费端需按 EventID 幂等处理。
type OrderChangedEvent struct {
	EventID string    `json:"event_id"` // 事件ID
	OrderID uint      `json:"order_id"` // 订单ID
	Status  string    `json:"status"`   // 变更后状态提示
	At      time.Time `json:"at"`       // 发布时间
}

// NewOrderChangedEvent 创建订单变更事件
func NewOrderChangedEvent(orderID uint, status string) OrderChangedEvent {
	return OrderChangedEvent{
		EventID: uuid.NewString(),
		OrderID: orderID,
		Status:  status,
		At:      time.Now(),
	}
}

// Bus 订单变更事件总线。
// 每个订单一个专属频道，另有一个管理端全量频道。
type Bus interface {
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error
	SubscribeOrder(ctx context.Context, orderID uint) (*Subscription, error)
	SubscribeAll(ctx context.Context) (*Subscription, error)
	Close() error
}

// Subscription 订阅句柄
type Subscription struct {
	C <-chan OrderChangedEvent

	closeOnce sync.Once
	closeFn   func()
}

// Close 取消订阅并释放资源
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(func() {
		if s.closeFn != nil {
			s.closeFn()
		}
	})
}

// NewBus 创建事件总线：redis 可用时走 Pub/Sub，否则退化为进程内总线。
func NewBus(client *redis.Client, prefix string) Bus {
	if client != nil {
		return NewRedisBus(client, prefix)
	}
	return NewMemoryBus()
}

// RedisBus 基于 Redis Pub/Sub 的事件总线
type RedisBus struct {
	client *redis.Client
	prefix string
}

// NewRedisBus 创建 Redis 事件总线
func NewRedisBus(client *redis.Client, prefix string) *RedisBus {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = constants.RedisPrefixDefault
	}
	return &RedisBus{client: client, prefix: prefix}
}

func (b *RedisBus) channelAll() string {
	return fmt.Sprintf("%s:%s", b.prefix, constants.EventChannelOrderChanged)
}

func (b *RedisBus) channelForOrder(orderID uint) string {
	return fmt.Sprintf("%s:%s:%d", b.prefix, constants.EventChannelOrderChanged, orderID)
}

// PublishOrderChanged 同时发布到订单频道与全量频道
func (b *RedisBus) PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, b.channelForOrder(event.OrderID), payload).Err(); err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channelAll(), payload).Err()
}

// SubscribeOrder 订阅单个订单的变更
func (b *RedisBus) SubscribeOrder(ctx context.Context, orderID uint) (*Subscription, error) {
	return b.subscribe(ctx, b.channelForOrder(orderID))
}

// SubscribeAll 订阅全量订单变更（管理端）
func (b *RedisBus) SubscribeAll(ctx context.Context) (*Subscription, error) {
	return b.subscribe(ctx, b.channelAll())
}

func (b *RedisBus) subscribe(ctx context.Context, channel string) (*Subscription, error) {
	pubsub := b.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	out := make(chan OrderChangedEvent, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event OrderChangedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logger.Warnw("events_decode_failed", "channel", channel, "error", err)
				continue
			}
			select {
			case out <- event:
			default:
				// 消费过慢时丢弃，消费者需回查订单兜底
				logger.Warnw("events_subscriber_slow", "channel", channel, "order_id", event.OrderID)
			}
		}
	}()

	return &Subscription{
		C:       out,
		closeFn: func() { _ = pubsub.Close() },
	}, nil
}

// Close 关闭总线（客户端生命周期由外部管理）
func (b *RedisBus) Close() error {
	return nil
}

// MemoryBus 进程内事件总线，供未启用 Redis 的部署与测试使用。
type MemoryBus struct {
	mu   sync.RWMutex
	subs map[string][]chan OrderChangedEvent
}

// NewMemoryBus 创建进程内事件总线
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string][]chan OrderChangedEvent)}
}

func memoryChannelAll() string {
	return constants.EventChannelOrderChanged
}

func memoryChannelForOrder(orderID uint) string {
	return fmt.Sprintf("%s:%d", constants.EventChannelOrderChanged, orderID)
}

// PublishOrderChanged 投递到订单频道与全量频道的所有订阅者
func (b *MemoryBus) PublishOrderChanged(_ context.Context, event OrderChangedEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, channel := range []string{memoryChannelForOrder(event.OrderID), memoryChannelAll()} {
		for _, ch := range b.subs[channel] {
			select {
			case ch <- event:
			default:
				logger.Warnw("events_subscriber_slow", "channel", channel, "order_id", event.OrderID)
			}
		}
	}
	return nil
}

// SubscribeOrder 订阅单个订单的变更
func (b *MemoryBus) SubscribeOrder(_ context.Context, orderID uint) (*Subscription, error) {
	return b.subscribe(memoryChannelForOrder(orderID)), nil
}

// SubscribeAll 订阅全量订单变更
func (b *MemoryBus) SubscribeAll(_ context.Context) (*Subscription, error) {
	return b.subscribe(memoryChannelAll()), nil
}

func (b *MemoryBus) subscribe(channel string) *Subscription {
	ch := make(chan OrderChangedEvent, 16)
	b.mu.Lock()
	b.subs[channel] = append(b.subs[channel], ch)
	b.mu.Unlock()

	return &Subscription{
		C: ch,
		closeFn: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[channel]
			for i, c := range list {
				if c == ch {
					b.subs[channel] = append(list[:i], list[i+1:]...)
					close(ch)
					break
				}
			}
		},
	}
}

// Close 关闭所有订阅
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for channel, list := range b.subs {
		for _, ch := range list {
			close(ch)
		}
		delete(b.subs, channel)
	}
	return nil
}
