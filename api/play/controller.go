package play

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/drivom-api/api/identity"
	"github.com/beka-birhanu/drivom-api/api/level"
	"github.com/beka-birhanu/drivom-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// PlayServer upgrades authenticated requests to a websocket and bridges the
// socket to a live play session: inbound messages become control input,
// outbound messages stream simulation frames.
type PlayServer struct {
	sessions i.SessionManager
	logger   i.Logger
	upgrader websocket.Upgrader
}

// NewPlayServer creates a new PlayServer.
func NewPlayServer(sessions i.SessionManager, logger i.Logger) *PlayServer {
	return &PlayServer{
		sessions: sessions,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The token already gates access, the socket accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RegisterPublic registers public routes.
func (c *PlayServer) RegisterPublic(route *gin.RouterGroup) {
}

// RegisterProtected registers privileged routes.
func (c *PlayServer) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/play", c.play)
}

// play starts a session for the authenticated player and serves it over the
// upgraded connection until the session ends or the client goes away.
func (c *PlayServer) play(ctx *gin.Context) {
	rawID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	playerID, err := uuid.Parse(rawID)
	if err != nil {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	seed, err := seedFromQuery(ctx.Query("seed"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
		return
	}

	session, err := c.sessions.NewSession(ctx.Request.Context(), playerID, seed)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		session.Stop()
		c.logger.Error("websocket upgrade failed: " + err.Error())
		return
	}

	go c.readInput(conn, session)
	c.writeFrames(conn, session)
}

// readInput pumps control messages from the socket into the session until
// the connection breaks, then stops the session.
func (c *PlayServer) readInput(conn *websocket.Conn, session i.PlaySession) {
	defer session.Stop()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg InputMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warning("play socket read failed: " + err.Error())
			}
			return
		}
		session.SetInput(msg.Input)
	}
}

// writeFrames sends the level once, then streams frames until the session's
// channel closes.
func (c *PlayServer) writeFrames(conn *websocket.Conn, session i.PlaySession) {
	defer func() { _ = conn.Close() }()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	levelResponse := level.NewLevelResponse(session.Level())
	hello := ServerMessage{
		Type:      MessageTypeLevel,
		SessionID: session.ID().String(),
		Level:     &levelResponse,
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(hello); err != nil {
		session.Stop()
		return
	}

	frames := session.Frames()
	for {
		select {
		case frame, open := <-frames:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !open {
				_ = conn.WriteJSON(ServerMessage{Type: MessageTypeEnd})
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ServerMessage{Type: MessageTypeFrame, Frame: &frame}); err != nil {
				session.Stop()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				session.Stop()
				return
			}
		}
	}
}

func seedFromQuery(raw string) (int64, error) {
	if raw == "" {
		return rand.New(rand.NewSource(time.Now().UnixNano())).Int63(), nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
