package realtimesvc

import (
	"sync"
)

// Các loại sự kiện realtime đẩy ra SSE.
const (
	EventAdded        = "added"
	EventModified     = "modified"
	EventRemoved      = "removed"
	EventOrderPending = "order_pending"
)

// Event là một sự kiện realtime của một collection.
type Event struct {
	Collection string      `json:"collection"`
	Type       string      `json:"type"`
	DocumentID string      `json:"documentId,omitempty"`
	Document   interface{} `json:"document,omitempty"`
}

// subscriber là một client SSE đang nghe một tập collection
type subscriber struct {
	ch          chan Event
	collections map[string]bool
}

// Hub phát sự kiện realtime tới các client SSE đang đăng ký.
// Client chậm không chặn hub: buffer đầy thì sự kiện bị bỏ với client đó,
// snapshot kế tiếp là nguồn sự thật.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]bool
}

// NewHub tạo hub rỗng.
func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]bool)}
}

// Subscribe đăng ký nghe các collection cho trước (rỗng = tất cả).
// Trả về channel sự kiện và hàm hủy đăng ký.
func (h *Hub) Subscribe(collections []string) (<-chan Event, func()) {
	sub := &subscriber{
		ch:          make(chan Event, 64),
		collections: make(map[string]bool, len(collections)),
	}
	for _, name := range collections {
		sub.collections[name] = true
	}

	h.mu.Lock()
	h.subs[sub] = true
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if h.subs[sub] {
			delete(h.subs, sub)
			close(sub.ch)
		}
		h.mu.Unlock()
	}

	return sub.ch, cancel
}

// Publish phát một sự kiện tới mọi subscriber quan tâm, không bao giờ chặn.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if len(sub.collections) > 0 && !sub.collections[e.Collection] {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			// Client chậm: bỏ sự kiện này với client đó
		}
	}
}

// SubscriberCount trả về số client đang nghe (cho endpoint status).
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
