package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// OutcomeEvent 单次投递处理完成的通知
type OutcomeEvent struct {
	TraceID   string `json:"trace_id"`
	OrderID   int64  `json:"order_id"`
	PONumber  string `json:"po_number"`
	Outcome   string `json:"outcome"`
	Rule      string `json:"rule"`
	Sent      bool   `json:"sent"`
	TagAdded  bool   `json:"tag_added"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// OutcomePublisher 处理结果发布
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, event *OutcomeEvent) error
	Close() error
}

// PubSub Redis 发布客户端
type PubSub struct {
	client  *redis.Client
	channel string
}

var _ OutcomePublisher = (*PubSub)(nil)

// NewPubSub 创建 PubSub 实例并测试连接
func NewPubSub(addr, password string, db int, channel string) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PubSub{client: client, channel: channel}, nil
}

// PublishOutcome 发布处理结果到配置的频道
func (p *PubSub) PublishOutcome(ctx context.Context, event *OutcomeEvent) error {
	msgJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish outcome event: %w", err)
	}
	return nil
}

// Close 关闭 Redis 连接
func (p *PubSub) Close() error {
	return p.client.Close()
}

// NopPublisher 未配置 Redis 时使用
type NopPublisher struct{}

var _ OutcomePublisher = NopPublisher{}

func (NopPublisher) PublishOutcome(context.Context, *OutcomeEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
