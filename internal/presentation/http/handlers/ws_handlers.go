package handlers

import (
	"net/http"
	"time"

	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/messaging"
	"github.com/PulseWireMedia/pulsewire-go/internal/infrastructure/observability/logging"
	"github.com/PulseWireMedia/pulsewire-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandlers upgrades dashboard clients onto the trend broadcaster
type WSHandlers struct {
	broadcaster *messaging.TrendBroadcaster
	logger      *logging.ChanneledLogger
	upgrader    websocket.Upgrader
}

// NewWSHandlers creates websocket handlers with injected dependencies
func NewWSHandlers(broadcaster *messaging.TrendBroadcaster, logger *logging.ChanneledLogger) *WSHandlers {
	return &WSHandlers{
		broadcaster: broadcaster,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			HandshakeTimeout: 10 * time.Second,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// TrendSocket handles GET /ws/trends
func (h *WSHandlers) TrendSocket(c *gin.Context) {
	tenantCtx, ok := middleware.GetTenantContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant context not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Socket().Error("Websocket upgrade failed",
			"tenantId", tenantCtx.TenantID, "error", err.Error())
		return
	}

	client := &messaging.TrendClient{
		Conn:     conn,
		TenantID: tenantCtx.TenantID,
		Send:     make(chan []byte, 16),
	}
	h.broadcaster.Register(client)
	go client.WritePump()

	// Inbound messages are ignored; the read loop only detects disconnect.
	go func() {
		defer h.broadcaster.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
