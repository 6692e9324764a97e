package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/grafica/backend/internal/domain/production"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T, opts Options) (*Hub, *httptest.Server) {
	hub := NewHub(opts, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := uuid.MustParse(r.URL.Query().Get("tenant"))
		_ = hub.Serve(w, r, tenantID, uuid.New())
	}))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, tenantID uuid.UUID) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?tenant=" + tenantID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type receivedMessage struct {
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	Event         json.RawMessage `json:"event"`
}

// publishUntilReceived repeats the event until the subscriber sees it, since
// registration completes asynchronously after the dial returns
func publishUntilReceived(t *testing.T, hub *Hub, conn *websocket.Conn, order *production.Order) receivedMessage {
	received := make(chan []byte, 1)
	go func() {
		_, data, err := conn.ReadMessage()
		if err == nil {
			received <- data
		}
	}()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(2 * time.Second)
	for {
		require.NoError(t, hub.Handle(context.Background(), production.NewOrderMovedEvent(order, production.StageWaiting)))
		select {
		case data := <-received:
			var msg receivedMessage
			require.NoError(t, json.Unmarshal(data, &msg))
			return msg
		case <-timeout:
			t.Fatal("no board message received")
			return receivedMessage{}
		case <-ticker.C:
		}
	}
}

func newOrder(t *testing.T, tenantID uuid.UUID) *production.Order {
	order, err := production.NewOrder(tenantID, 7, production.OrderDetails{Description: "Cartões de visita"})
	require.NoError(t, err)
	return order
}

func TestHub_DeliversToSameTenantOnly(t *testing.T) {
	hub, server := startHub(t, Options{})
	tenantA, tenantB := uuid.New(), uuid.New()

	subscriber := dial(t, server, tenantA)
	outsider := dial(t, server, tenantB)

	order := newOrder(t, tenantA)
	msg := publishUntilReceived(t, hub, subscriber, order)

	assert.Equal(t, production.EventTypeOrderMoved, msg.Type)
	assert.Equal(t, "ProductionOrder", msg.AggregateType)
	assert.Equal(t, order.ID, msg.AggregateID)
	assert.Contains(t, string(msg.Event), `"to_stage":"waiting"`)

	_ = outsider.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := outsider.ReadMessage()
	assert.Error(t, err)
}

func TestHub_HandleWithoutRunIsNoop(t *testing.T) {
	hub := NewHub(Options{}, zap.NewNop())
	order := newOrder(t, uuid.New())

	assert.NoError(t, hub.Handle(context.Background(), production.NewOrderMovedEvent(order, production.StageWaiting)))
	assert.Empty(t, hub.broadcast)
}

func TestHub_EventTypes(t *testing.T) {
	hub := NewHub(Options{}, zap.NewNop())

	assert.Contains(t, hub.EventTypes(), trade.EventTypeServiceOrderStatusChanged)
	assert.Contains(t, hub.EventTypes(), production.EventTypeOrderMoved)
}

func TestHub_CheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{name: "no restriction", origin: "http://evil.test", want: true},
		{name: "no origin header", allowed: []string{"http://app.test"}, want: true},
		{name: "listed", allowed: []string{"http://app.test"}, origin: "http://app.test", want: true},
		{name: "unlisted", allowed: []string{"http://app.test"}, origin: "http://evil.test", want: false},
		{name: "wildcard", allowed: []string{"*"}, origin: "http://any.test", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := NewHub(Options{AllowedOrigins: tt.allowed}, zap.NewNop())
			req := httptest.NewRequest(http.MethodGet, "/ws/board", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, hub.checkOrigin(req))
		})
	}
}

func TestHub_ServeAfterStop(t *testing.T) {
	hub := NewHub(Options{}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.ErrorIs(t, hub.Serve(w, r, uuid.New(), uuid.New()), ErrHubStopped)
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err == nil {
		_ = conn.Close()
	}
}
