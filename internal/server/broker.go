package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blasherlabs/oshack/internal/oshack"
)

// AdminTopic receives every published event, regardless of session.
const AdminTopic = "*"

// redisChannel is the pub/sub channel events are mirrored to when a Redis
// client is configured.
const redisChannel = "oshack.events"

// Event is the payload delivered to SSE subscribers. The admin fleet view
// and the player notification listener share the same shape.
type Event struct {
	Type         string               `json:"type"`
	SessionID    string               `json:"sessionId,omitempty"`
	ObjectiveID  int                  `json:"objectiveId,omitempty"`
	GameID       string               `json:"gameId,omitempty"`
	SuccessCode  string               `json:"successCode,omitempty"`
	Notification *oshack.Notification `json:"notification,omitempty"`
}

// Broker is an in-process pub/sub for SSE events, keyed by session ID. When
// built with a Redis client it additionally mirrors every event onto a
// Redis channel so external observers can tail the fleet.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
	rdb  *redis.Client
}

func NewBroker(rdb *redis.Client) *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
		rdb:  rdb,
	}
}

// Subscribe returns a channel receiving JSON-encoded events for the given
// session ID, or for every session when topic is AdminTopic.
func (b *Broker) Subscribe(topic string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[chan []byte]struct{})
	}
	b.subs[topic][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the topic's subscribers.
func (b *Broker) Unsubscribe(topic string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[topic], ch)
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
	b.mu.Unlock()
}

// Publish sends an event to the session's subscribers and to the admin
// topic. Delivery is best-effort: slow subscribers are skipped.
func (b *Broker) Publish(sessionID string, event Event) {
	event.SessionID = sessionID
	data, _ := json.Marshal(event)

	b.mu.RLock()
	for _, topic := range []string{sessionID, AdminTopic} {
		for ch := range b.subs[topic] {
			select {
			case ch <- data:
			default:
				// Drop if subscriber is slow.
			}
		}
	}
	b.mu.RUnlock()

	if b.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		// Fire-and-forget; local delivery already happened.
		b.rdb.Publish(ctx, redisChannel, data)
	}
}
