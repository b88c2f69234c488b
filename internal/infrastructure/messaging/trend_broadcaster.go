// Package messaging provides real-time fan-out of ranking snapshots to
// dashboard clients over websockets.
package messaging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/domain/entities/content"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/gorilla/websocket"
)

// TrendClient represents a single connected dashboard client.
type TrendClient struct {
	Conn     *websocket.Conn
	TenantID string
	Send     chan []byte
}

// TrendPayload is the message pushed to clients after each scoring pass.
type TrendPayload struct {
	TenantID    string               `json:"tenantId"`
	RefreshedAt string               `json:"refreshedAt"`
	RisingCount int                  `json:"risingCount"`
	Items       []content.ScoredItem `json:"items"`
}

// TrendBroadcaster manages all connected dashboard clients and pushes
// fresh trending snapshots to them.
type TrendBroadcaster struct {
	tenantClients map[string]map[*TrendClient]bool
	register      chan *TrendClient
	unregister    chan *TrendClient
	logger        *logging.ChanneledLogger
	mu            sync.RWMutex
}

// NewTrendBroadcaster creates a new broadcaster instance.
func NewTrendBroadcaster(logger *logging.ChanneledLogger) *TrendBroadcaster {
	return &TrendBroadcaster{
		tenantClients: make(map[string]map[*TrendClient]bool),
		register:      make(chan *TrendClient),
		unregister:    make(chan *TrendClient),
		logger:        logger,
	}
}

// SnapshotFunc supplies the current trending snapshot for a tenant
type SnapshotFunc func(tenantID string) ([]content.ScoredItem, bool)

// Run starts the broadcaster's main loop: client bookkeeping plus a
// periodic push of the current snapshot to every connected dashboard.
// This should be run as a goroutine.
func (b *TrendBroadcaster) Run(interval time.Duration, snapshots SnapshotFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case client := <-b.register:
			b.mu.Lock()
			if _, ok := b.tenantClients[client.TenantID]; !ok {
				b.tenantClients[client.TenantID] = make(map[*TrendClient]bool)
			}
			b.tenantClients[client.TenantID][client] = true
			b.mu.Unlock()
			b.logger.Socket().Info("Trend client registered", "tenantId", client.TenantID)

		case client := <-b.unregister:
			b.mu.Lock()
			if clients, ok := b.tenantClients[client.TenantID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(b.tenantClients, client.TenantID)
					}
				}
			}
			b.mu.Unlock()
			b.logger.Socket().Info("Trend client unregistered", "tenantId", client.TenantID)

		case <-ticker.C:
			b.mu.RLock()
			tenantIDs := make([]string, 0, len(b.tenantClients))
			for tenantID := range b.tenantClients {
				tenantIDs = append(tenantIDs, tenantID)
			}
			b.mu.RUnlock()

			for _, tenantID := range tenantIDs {
				if snapshot, ok := snapshots(tenantID); ok {
					b.BroadcastSnapshot(tenantID, snapshot)
				}
			}
		}
	}
}

// Register queues a client for registration.
func (b *TrendBroadcaster) Register(client *TrendClient) {
	b.register <- client
}

// Unregister queues a client for unregistration.
func (b *TrendBroadcaster) Unregister(client *TrendClient) {
	b.unregister <- client
}

// BroadcastSnapshot pushes a fresh scoring pass to every client watching
// the tenant. Slow clients are skipped rather than blocking the pass.
func (b *TrendBroadcaster) BroadcastSnapshot(tenantID string, snapshot []content.ScoredItem) {
	b.mu.RLock()
	clients, ok := b.tenantClients[tenantID]
	b.mu.RUnlock()
	if !ok || len(clients) == 0 {
		return
	}

	rising := 0
	for _, item := range snapshot {
		if item.Trend == content.TrendRising {
			rising++
		}
	}

	payload := TrendPayload{
		TenantID:    tenantID,
		RefreshedAt: logging.Timestamp(time.Now()),
		RisingCount: rising,
		Items:       snapshot,
	}

	message, err := json.Marshal(payload)
	if err != nil {
		b.logger.Socket().Error("Failed to marshal trend payload", "tenantId", tenantID, "error", err.Error())
		return
	}

	b.mu.RLock()
	for client := range clients {
		select {
		case client.Send <- message:
		default:
		}
	}
	b.mu.RUnlock()
}

// WritePump drains a client's send channel onto its websocket connection.
// Runs as a goroutine per client; exits when the channel closes.
func (c *TrendClient) WritePump() {
	defer c.Conn.Close()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
