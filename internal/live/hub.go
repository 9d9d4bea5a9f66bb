package live

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event types pushed to post subscribers.
const (
	EventLikeAdded      = "like_added"
	EventLikeRemoved    = "like_removed"
	EventCommentAdded   = "comment_added"
	EventCommentDeleted = "comment_deleted"
)

type Event struct {
	Type    string    `json:"type"`
	PostID  string    `json:"post_id"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Hub fans social events out to websocket subscribers, keyed by post.
// Publishing never blocks: a subscriber that cannot keep up has the event
// dropped.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[chan []byte]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   map[string]map[chan []byte]struct{}{},
		logger: logger,
	}
}

// Subscribe registers for a post's events. The returned cancel func must be
// called when the subscriber goes away.
func (h *Hub) Subscribe(postID string) (<-chan []byte, func()) {
	ch := make(chan []byte, 16)
	h.mu.Lock()
	set, ok := h.subs[postID]
	if !ok {
		set = map[chan []byte]struct{}{}
		h.subs[postID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[postID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, postID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(postID string, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	ev.PostID = postID
	b, err := json.Marshal(ev)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("live event marshal failed", zap.Error(err))
		}
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[postID] {
		select {
		case ch <- b:
		default:
			if h.logger != nil {
				h.logger.Warn("live subscriber lagging, event dropped", zap.String("post_id", postID))
			}
		}
	}
}

func (h *Hub) Subscribers(postID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[postID])
}
