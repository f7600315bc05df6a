package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userMessage struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans messages out to the websocket clients of one user. All map
// mutations happen on the Run goroutine; mutex guards reads from other
// goroutines. stopMu guards stopped and is never taken by the Run loop, so a
// Register blocked on a full queue cannot stall it.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	send       chan userMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopped    bool
	stopMu     sync.RWMutex
	mutex      sync.RWMutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		send:       make(chan userMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run processes registrations and messages until ctx is done, then closes
// every client. Register and Unregister never block after Run returns.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			total := h.totalLocked()
			h.mutex.Unlock()
			h.log.Debug("ws connected", zap.String("user_id", client.userID.String()), zap.Int("total_clients", total))

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.send:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.userID]))
			for c := range h.clients[msg.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	h.mutex.Lock()
	set, ok := h.clients[client.userID]
	if ok {
		if _, exists := set[client]; exists {
			delete(set, client)
			close(client.send)
		}
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	total := h.totalLocked()
	h.mutex.Unlock()
	h.log.Debug("ws disconnected", zap.String("user_id", client.userID.String()), zap.Int("total_clients", total))
}

// shutdown releases blocked callers first, then closes connected clients
// and any registration still queued.
func (h *Hub) shutdown() {
	close(h.done)

	h.stopMu.Lock()
	defer h.stopMu.Unlock()
	h.stopped = true

	h.mutex.Lock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
	h.mutex.Unlock()

	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		default:
			return
		}
	}
}

func (h *Hub) totalLocked() int {
	total := 0
	for _, set := range h.clients {
		total += len(set)
	}
	return total
}

// Register hands client to the hub. Once the hub has stopped the client's
// send channel is closed instead, so its write pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.stopMu.RLock()
	defer h.stopMu.RUnlock()
	if h.stopped {
		close(client.send)
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// SendToUser queues payload for every connection of userID. The message is
// dropped when the queue is full.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- userMessage{userID: userID, payload: payload}:
	default:
		h.log.Warn("ws message dropped", zap.String("reason", "buffer_full"), zap.String("user_id", userID.String()))
	}
}

func (h *Hub) ClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
