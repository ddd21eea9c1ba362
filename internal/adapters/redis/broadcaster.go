package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// refreshChannel is the pub/sub channel name the portal's views have always
// listened on; it must stay stable across versions and is named distinctly
// from the storage keys.
const refreshChannel = "srl_data_update"

// Broadcaster carries the payload-less cross-view refresh signal over Redis
// pub/sub. Publishers are administrator mutations and voucher redemption;
// subscribers are open views, which re-read their derived state on receipt.
type Broadcaster struct {
	client  redis.UniversalClient
	channel string
}

// NewBroadcaster creates a refresh broadcaster on the standard channel.
func NewBroadcaster(client redis.UniversalClient) *Broadcaster {
	return &Broadcaster{client: client, channel: refreshChannel}
}

// NewBroadcasterWithChannel creates a broadcaster on a custom channel (useful for tests).
func NewBroadcasterWithChannel(client redis.UniversalClient, channel string) *Broadcaster {
	return &Broadcaster{client: client, channel: channel}
}

// Publish emits one refresh signal. The message body is empty on purpose:
// the contract is "something changed, re-read", never a payload.
func (b *Broadcaster) Publish(ctx context.Context) error {
	if err := b.client.Publish(ctx, b.channel, "").Err(); err != nil {
		return fmt.Errorf("publish refresh signal: %w", err)
	}
	return nil
}

// Subscribe returns a channel that receives one element per refresh signal and
// a cancel function releasing the subscription. The returned channel is closed
// once the subscription ends. Signals that arrive while the receiver is busy
// are coalesced; a refresh is idempotent, so one delivery suffices.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan struct{}, func(), error) {
	sub := b.client.Subscribe(ctx, b.channel)

	// Force the subscription handshake so a broken connection surfaces here
	// rather than as a silently idle channel.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe refresh channel: %w", err)
	}

	out := make(chan struct{}, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
					// receiver already has a pending signal; coalesce
				}
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = sub.Close()
		})
	}
	return out, cancel, nil
}
