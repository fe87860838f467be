// Package notify fans confirmation events out to interested listeners.
// The production implementation publishes on a Redis channel; clients
// (chat, wallet UI) subscribe for real-time updates.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"travelmate/internal/domain"
)

const defaultChannel = "wallet.tx.confirmed"

// RedisPublisher publishes confirmation events as JSON on a pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to Redis at addr. When channel is empty the
// default wallet channel is used.
func NewRedisPublisher(addr, channel string) *RedisPublisher {
	if channel == "" {
		channel = defaultChannel
	}
	return &RedisPublisher{
		client:  redis.NewClient(&redis.Options{Addr: addr}),
		channel: channel,
	}
}

// ConfirmationEvent is the wire shape of a confirmation notification.
// Subscribers (chat, wallet UI) parse these fields; changing a tag is a
// breaking change for them.
type ConfirmationEvent struct {
	ID          int64   `json:"id"`
	Hash        string  `json:"hash"`
	Amount      float64 `json:"amount"`
	CommunityID *int64  `json:"communityId,omitempty"`
	BlockNumber *int64  `json:"blockNumber"`
	Status      string  `json:"status"`
}

// NewConfirmationEvent projects a transaction onto the wire shape.
func NewConfirmationEvent(tx domain.Transaction) ConfirmationEvent {
	return ConfirmationEvent{
		ID:          tx.ID,
		Hash:        tx.Hash,
		Amount:      tx.Amount,
		CommunityID: tx.CommunityID,
		BlockNumber: tx.BlockNumber,
		Status:      string(tx.Status),
	}
}

// TransactionConfirmed publishes the confirmed transaction.
func (p *RedisPublisher) TransactionConfirmed(ctx context.Context, tx domain.Transaction) error {
	payload, err := json.Marshal(NewConfirmationEvent(tx))
	if err != nil {
		return fmt.Errorf("encode confirmation event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish confirmation event: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
