// Package revalidate implements the push-based view-invalidation signal:
// after a mutation, the owning service marks the logical views it staled,
// and consumers recompute them before next display.
package revalidate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"ripple/internal/observability"

	"github.com/redis/go-redis/v9"
)

// View names a logical cached view that can go stale.
type View string

// Stable view names. Parameterized views get their own constructors below.
const (
	ViewTimeline View = "timeline"
	ViewFriends  View = "friends"
)

// ViewProfile names the profile view of one user.
func ViewProfile(userID uint) View {
	return View(fmt.Sprintf("profile:%d", userID))
}

// ViewConversation names the message history between two users. The pair is
// ordered so both participants invalidate the same view.
func ViewConversation(a, b uint) View {
	if a > b {
		a, b = b, a
	}
	return View(fmt.Sprintf("conversation:%d:%d", a, b))
}

// ViewUnread names a user's unread-message counter.
func ViewUnread(userID uint) View {
	return View(fmt.Sprintf("unread:%d", userID))
}

const channelPrefix = "revalidate:view:"

// signal is the wire payload published for each stale view.
type signal struct {
	View View      `json:"view"`
	At   time.Time `json:"at"`
}

// Broadcaster publishes staleness signals into Redis channels.
type Broadcaster struct {
	rdb *redis.Client
}

// NewBroadcaster creates a new Broadcaster using the provided Redis client.
// A nil client yields a no-op broadcaster.
func NewBroadcaster(rdb *redis.Client) *Broadcaster {
	return &Broadcaster{rdb: rdb}
}

// Stale marks the given views stale. Delivery is best effort: a missing or
// unhealthy Redis never fails the mutation that triggered the signal.
func (b *Broadcaster) Stale(ctx context.Context, views ...View) {
	if b == nil || b.rdb == nil {
		return
	}
	for _, v := range views {
		payload, err := json.Marshal(signal{View: v, At: time.Now().UTC()})
		if err != nil {
			continue
		}
		if err := b.rdb.Publish(ctx, channelPrefix+string(v), payload).Err(); err != nil {
			log.Printf("revalidate: publish %s failed: %v", v, err)
			continue
		}
		observability.RevalidationsPublished.WithLabelValues(string(v)).Inc()
	}
}

// Subscribe subscribes to all revalidation signals and calls onStale for each
// incoming view until ctx is done.
func (b *Broadcaster) Subscribe(ctx context.Context, onStale func(View)) error {
	if b == nil || b.rdb == nil {
		return nil
	}
	sub := b.rdb.PSubscribe(ctx, channelPrefix+"*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in revalidate subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					var sig signal
					if err := json.Unmarshal([]byte(msg.Payload), &sig); err != nil {
						return
					}
					onStale(sig.View)
				}()
			}
		}
	}()

	return nil
}
