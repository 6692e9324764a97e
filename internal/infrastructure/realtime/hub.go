package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/grafica/backend/internal/domain/production"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"go.uber.org/zap"
)

const (
	sendBufferSize = 64
	maxReadSize    = 512
)

// Message is what board subscribers receive
type Message struct {
	Type          string             `json:"type"`
	AggregateType string             `json:"aggregate_type"`
	AggregateID   uuid.UUID          `json:"aggregate_id"`
	OccurredAt    time.Time          `json:"occurred_at"`
	Event         shared.DomainEvent `json:"event"`
}

// Options configures the hub
type Options struct {
	AllowedOrigins []string
	WriteTimeout   time.Duration
	PingInterval   time.Duration
}

// ErrHubStopped is returned by Serve after Run has returned
var ErrHubStopped = errors.New("realtime hub stopped")

type envelope struct {
	tenantID uuid.UUID
	data     []byte
}

// Hub fans board events out to the websocket clients of the same tenant.
// It is registered on the event bus as a shared.EventHandler.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	upgrader   websocket.Upgrader
	opts       Options
	logger     *zap.Logger

	mu      sync.RWMutex
	running bool
}

// NewHub creates a hub; call Run before serving connections
func NewHub(opts Options, logger *zap.Logger) *Hub {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = 30 * time.Second
	}
	h := &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		broadcast:  make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		opts:       opts,
		logger:     logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(h.opts.AllowedOrigins, "*") || slices.Contains(h.opts.AllowedOrigins, origin)
}

// Run dispatches registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
		close(h.done)
		for _, set := range h.clients {
			for client := range set {
				close(client.send)
			}
		}
		h.clients = make(map[uuid.UUID]map[*Client]struct{})
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			set, ok := h.clients[client.tenantID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.tenantID] = set
			}
			set[client] = struct{}{}
			h.logger.Debug("Board subscriber connected",
				zap.String("tenant_id", client.tenantID.String()),
				zap.String("user_id", client.userID.String()),
			)
		case client := <-h.unregister:
			h.drop(client)
		case msg := <-h.broadcast:
			for client := range h.clients[msg.tenantID] {
				select {
				case client.send <- msg.data:
				default:
					h.logger.Warn("Board subscriber too slow, disconnecting",
						zap.String("user_id", client.userID.String()),
					)
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	set, ok := h.clients[client.tenantID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.tenantID)
	}
}

// EventTypes lists the board events forwarded to subscribers
func (h *Hub) EventTypes() []string {
	return []string{
		trade.EventTypeQuoteStatusChanged,
		trade.EventTypeServiceOrderStatusChanged,
		trade.EventTypeChecklistChanged,
		trade.EventTypePurchaseItemStatusChanged,
		production.EventTypeOrderMoved,
	}
}

// Handle queues the event for the subscribers of its tenant. Events are
// dropped when the hub is not running or its queue is full.
func (h *Hub) Handle(_ context.Context, event shared.DomainEvent) error {
	data, err := json.Marshal(Message{
		Type:          event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		OccurredAt:    event.OccurredAt(),
		Event:         event,
	})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.running {
		return nil
	}
	select {
	case h.broadcast <- envelope{tenantID: event.TenantID(), data: data}:
	default:
		h.logger.Warn("Board broadcast queue full, dropping event", zap.String("event_type", event.EventType()))
	}
	return nil
}

// Serve upgrades the request and subscribes the connection to the tenant's
// board events. The caller has already authenticated the user and resolved
// the tenant.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, tenantID, userID uuid.UUID) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		tenantID: tenantID,
		userID:   userID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return ErrHubStopped
	}

	go client.writePump()
	go client.readPump()
	return nil
}

var _ shared.EventHandler = (*Hub)(nil)
