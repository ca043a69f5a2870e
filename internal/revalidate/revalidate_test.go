package revalidate

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroadcaster(t *testing.T) (*Broadcaster, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewBroadcaster(client), client
}

func TestViewConversationOrdersPair(t *testing.T) {
	// Both participants must resolve to the same channel.
	assert.Equal(t, ViewConversation(1, 2), ViewConversation(2, 1))
	assert.Equal(t, View("conversation:1:2"), ViewConversation(2, 1))
}

func TestStalePublishesSignal(t *testing.T) {
	b, client := newTestBroadcaster(t)
	ctx := context.Background()

	sub := client.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()
	// Wait for the subscription to be established.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	ch := sub.Channel()

	b.Stale(ctx, ViewTimeline, ViewUnread(7))

	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case msg := <-ch:
			var sig signal
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &sig))
			assert.False(t, sig.At.IsZero())
			got = append(got, string(sig.View))
		case <-timeout:
			t.Fatalf("timed out, received %v", got)
		}
	}
	assert.Contains(t, got, "timeline")
	assert.Contains(t, got, "unread:7")
}

func TestSubscribeDeliversViews(t *testing.T) {
	b, _ := newTestBroadcaster(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	views := make(chan View, 4)
	require.NoError(t, b.Subscribe(ctx, func(v View) { views <- v }))
	// Give the pattern subscription a moment to attach.
	time.Sleep(50 * time.Millisecond)

	b.Stale(ctx, ViewFriends)

	select {
	case v := <-views:
		assert.Equal(t, ViewFriends, v)
	case <-time.After(2 * time.Second):
		t.Fatal("no view delivered")
	}
}

func TestNilBroadcasterIsNoop(t *testing.T) {
	var b *Broadcaster
	// Must not panic.
	b.Stale(context.Background(), ViewTimeline)
	require.NoError(t, b.Subscribe(context.Background(), func(View) {}))

	empty := NewBroadcaster(nil)
	empty.Stale(context.Background(), ViewTimeline)
}
