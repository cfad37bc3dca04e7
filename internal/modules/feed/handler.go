package feed

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"carencia/internal/middleware"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub) *Handler {
	// Same origin allowlist as the CORS layer. Requests without an Origin
	// header (non-browser clients) pass; browsers must be allowlisted.
	allowed := middleware.AllowedOrigins()
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return allowed[origin]
			},
		},
	}
}

// Subscribe handles GET /api/v1/admin/feed (websocket upgrade)
// @Summary Realtime lead feed
// @Description Pushes lead_created/lead_distributed events to the admin dashboard
// @Tags Admin Feed
// @Security BearerAuth
// @Router /admin/feed [get]
func (h *Handler) Subscribe(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("feed: websocket upgrade failed err=%v", err)
		return
	}

	conn := &connection{conn: ws, send: make(chan []byte, 32)}
	h.hub.register(conn)

	go conn.writePump(h.hub)
	go conn.readPump(h.hub)
}

// RegisterAdminRoutes registers the feed websocket endpoint.
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/feed", handler.Subscribe)
}
