package notify

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tyrowin/goboard/internal/board"
)

// Event is the record pushed to every subscriber on a state change. Kind is
// "users" or "projects"; the matching snapshot field carries the full copy
// from which each client derives its own view (including its per-project
// chat-channel membership).
type Event struct {
	Kind     string                  `json:"kind"`
	Users    []board.User            `json:"users,omitempty"`
	Projects []board.ProjectSnapshot `json:"projects,omitempty"`
}

// Hub manages the set of subscribers and fans snapshot events out to them.
// Registration, unregistration, and broadcasting all flow through the Run
// loop; the mutex protects the subscriber map for the senders.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]*subscriber

	register   chan *subscriber
	unregister chan uuid.UUID
	broadcast  chan []byte

	// Snapshot sources used to seed a subscriber right after it connects,
	// so a fresh client starts from the current state instead of waiting
	// for the next change.
	UsersSource    func() []board.User
	ProjectsSource func() []board.ProjectSnapshot

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub creates a hub ready to manage subscribers.
func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		subscribers: make(map[uuid.UUID]*subscriber),
		register:    make(chan *subscriber),
		unregister:  make(chan uuid.UUID),
		broadcast:   make(chan []byte),
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
}

// PublishUsers pushes a full user-registry snapshot to every subscriber.
func (h *Hub) PublishUsers(users []board.User) {
	h.publish(Event{Kind: "users", Users: users})
}

// PublishProjects pushes a full project-set snapshot to every subscriber.
func (h *Hub) PublishProjects(projects []board.ProjectSnapshot) {
	h.publish(Event{Kind: "projects", Projects: projects})
}

func (h *Hub) publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Error encoding %s event: %v", ev.Kind, err)
		return
	}
	select {
	case h.broadcast <- payload:
	case <-h.ctx.Done():
	}
}

// Run starts the hub's event loop. It should be called in its own
// goroutine; it returns when Shutdown cancels the hub.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeSubscribers()
			return

		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub.id] = sub
			count := len(h.subscribers)
			h.mu.Unlock()
			log.Printf("Subscriber %s registered from %s. Total subscribers: %d", sub.id, sub.addr, count)

			h.wg.Add(2)
			go func() {
				defer h.wg.Done()
				sub.writePump()
			}()
			go func() {
				defer h.wg.Done()
				sub.readPump()
			}()

			h.seed(sub)

		case id := <-h.unregister:
			h.remove(id)

		case payload := <-h.broadcast:
			h.fanOut(payload)
		}
	}
}

// seed sends the current snapshots to a newly connected subscriber.
func (h *Hub) seed(sub *subscriber) {
	if h.UsersSource != nil {
		if payload, err := json.Marshal(Event{Kind: "users", Users: h.UsersSource()}); err == nil {
			h.send(sub, payload)
		}
	}
	if h.ProjectsSource != nil {
		if payload, err := json.Marshal(Event{Kind: "projects", Projects: h.ProjectsSource()}); err == nil {
			h.send(sub, payload)
		}
	}
}

// send queues a payload on one subscriber, reporting whether it fit.
func (h *Hub) send(sub *subscriber, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, exists := h.subscribers[sub.id]; !exists || sub.closed {
		return false
	}
	select {
	case sub.send <- payload:
		return true
	default:
		return false
	}
}

// fanOut delivers a payload to every subscriber, dropping the ones whose
// send buffers are full. One slow subscriber never blocks the rest.
func (h *Hub) fanOut(payload []byte) {
	h.mu.RLock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		if !h.send(sub, payload) {
			log.Printf("Dropping subscriber %s: send buffer full or closed", sub.id)
			h.remove(sub.id)
		}
	}
}

func (h *Hub) remove(id uuid.UUID) {
	h.mu.Lock()
	sub, exists := h.subscribers[id]
	if exists {
		delete(h.subscribers, id)
		sub.closed = true
	}
	count := len(h.subscribers)
	h.mu.Unlock()
	if exists {
		close(sub.send)
		log.Printf("Subscriber %s unregistered. Total subscribers: %d", id, count)
	}
}

func (h *Hub) closeSubscribers() {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if sub.conn != nil {
			_ = sub.conn.Close()
		}
	}
	log.Printf("Closed %d subscriber connections", len(subs))
}

// Shutdown stops the hub and waits for the pump goroutines to finish, up to
// the timeout.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	<-h.done

	finished := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-time.After(timeout):
		log.Println("Hub shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
