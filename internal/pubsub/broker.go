package pubsub

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// StandingsTopic names the broker topic carrying one contest's standings
// feed. Publishers and the websocket handler must agree on it, and it is
// what gets closed once the contest has been rated or deleted.
func StandingsTopic(contestID uint) string {
	return fmt.Sprintf("contest:%d:standings", contestID)
}

// Broker is a simple in-memory pub/sub system used to push standings
// snapshots to websocket clients. Each topic remembers only its latest
// message: a subscriber joining mid-contest gets the current table, not a
// replay of every change.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string][]chan []byte // topic -> list of subscriber channels
	latest      map[string][]byte        // topic -> most recent message
}

type WsMessage struct {
	Stream string      `json:"stream"`
	Data   interface{} `json:"data"`
}

var (
	once   sync.Once
	broker *Broker
)

// GetBroker returns the singleton instance of the Broker.
func GetBroker() *Broker {
	once.Do(func() {
		broker = &Broker{
			subscribers: make(map[string][]chan []byte),
			latest:      make(map[string][]byte),
		}
	})
	return broker
}

// Subscribe subscribes to a topic. The current snapshot, if any, is
// delivered first; live messages follow.
func (b *Broker) Subscribe(topic string) (<-chan []byte, func()) {
	b.mu.Lock()

	ch := make(chan []byte, 16)
	if msg, ok := b.latest[topic]; ok {
		ch <- msg
	}
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subscribers := b.subscribers[topic]
		for i, sub := range subscribers {
			if sub == ch {
				b.subscribers[topic] = append(subscribers[:i], subscribers[i+1:]...)
				close(ch)
				break
			}
		}
		zap.S().Debugf("unsubscribed from topic %s", topic)
	}

	zap.S().Debugf("new subscription to topic %s", topic)
	return ch, unsubscribe
}

// Publish replaces the topic's snapshot and broadcasts it to all live
// subscribers without blocking on slow ones.
func (b *Broker) Publish(topic string, msg []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest[topic] = msg

	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			// A full subscriber channel means a slow client; it will catch
			// up on the next snapshot instead of blocking the publisher.
		}
	}
}

// CloseTopic closes all subscriber channels and drops the snapshot for a
// topic, typically when a contest ends.
func (b *Broker) CloseTopic(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[topic]; ok {
		for _, ch := range subscribers {
			close(ch)
		}
		delete(b.subscribers, topic)
	}
	delete(b.latest, topic)
	zap.S().Infof("closed pubsub topic %s", topic)
}

// FormatMessage wraps a payload in the websocket stream envelope.
func FormatMessage(streamType string, data interface{}) []byte {
	msg := WsMessage{Stream: streamType, Data: data}
	bytes, err := json.Marshal(msg)
	if err != nil {
		return []byte(`{"stream": "error", "data": "json format error"}`)
	}
	return bytes
}
