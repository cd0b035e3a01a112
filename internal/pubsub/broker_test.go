package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestSubscribeReceivesLatestSnapshotFirst(t *testing.T) {
	b := GetBroker()
	topic := "test:snapshot"
	defer b.CloseTopic(topic)

	b.Publish(topic, []byte("stale"))
	b.Publish(topic, []byte("current"))

	ch, unsubscribe := b.Subscribe(topic)
	defer unsubscribe()

	// Only the latest snapshot is replayed, not the full history.
	assert.Equal(t, []byte("current"), recv(t, ch))

	b.Publish(topic, []byte("live"))
	assert.Equal(t, []byte("live"), recv(t, ch))
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := GetBroker()
	topic := "test:unsub"
	defer b.CloseTopic(topic)

	ch, unsubscribe := b.Subscribe(topic)
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)
}

func TestCloseTopicEndsSubscriptionsAndDropsSnapshot(t *testing.T) {
	b := GetBroker()
	topic := StandingsTopic(42)

	b.Publish(topic, []byte("final table"))
	ch, _ := b.Subscribe(topic)
	assert.Equal(t, []byte("final table"), recv(t, ch))

	b.CloseTopic(topic)

	_, open := <-ch
	assert.False(t, open)

	// A later subscriber starts clean: no stale snapshot from before the
	// close is replayed.
	ch2, unsubscribe := b.Subscribe(topic)
	defer unsubscribe()
	select {
	case msg := <-ch2:
		t.Fatalf("unexpected replayed message after close: %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage("standings", []string{"a", "b"})
	require.NotEmpty(t, msg)
	assert.JSONEq(t, `{"stream":"standings","data":["a","b"]}`, string(msg))
}
