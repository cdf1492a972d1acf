package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"docflow/internal/domain"
	"docflow/internal/service"
)

// StatusServer serves status snapshots to a connected observer until it leaves.
type StatusServer interface {
	Serve(ctx context.Context, obs service.StatusObserver)
}

// StatusStreamHandler upgrades requests to WebSocket connections that
// receive periodic status snapshots.
type StatusStreamHandler struct {
	server   StatusServer
	upgrader websocket.Upgrader
}

// NewStatusStreamHandler creates a new StatusStreamHandler. Origins follow
// the CORS allow-list; "*" accepts any origin.
func NewStatusStreamHandler(server StatusServer, allowedOrigins []string) *StatusStreamHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	_, allowAll := allowed["*"]

	return &StatusStreamHandler{
		server: server,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowAll {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// Stream handles GET /api/process-docs/ws
// @Summary Status stream
// @Description Upgrades to a WebSocket that receives a status snapshot immediately and then periodically.
// @Tags process
// @Success 101 {object} domain.StatusMessage "Switching protocols"
// @Router /process-docs/ws [get]
func (h *StatusStreamHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written an HTTP error.
		log.Debug().Err(err).Msg("statusStreamHandler.Stream: upgrade failed")
		return
	}
	defer conn.Close()

	obs := newWSObserver(conn)
	h.server.Serve(c.Request.Context(), obs)

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}

// wsObserver adapts a WebSocket connection to service.StatusObserver. Only
// the broadcaster loop writes; a background reader detects disconnects.
type wsObserver struct {
	conn *websocket.Conn
	done chan struct{}
	once sync.Once
}

func newWSObserver(conn *websocket.Conn) *wsObserver {
	o := &wsObserver{conn: conn, done: make(chan struct{})}
	go o.readLoop()
	return o
}

func (o *wsObserver) readLoop() {
	defer o.once.Do(func() { close(o.done) })
	for {
		if _, _, err := o.conn.NextReader(); err != nil {
			return
		}
	}
}

func (o *wsObserver) Push(ctx context.Context, msg domain.StatusMessage) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	if err := o.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return o.conn.WriteJSON(msg)
}

func (o *wsObserver) Done() <-chan struct{} {
	return o.done
}
