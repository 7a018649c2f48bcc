package controllers

import (
	"net/http"
	"time"

	"github.com/Manelygb/haick-satim-challenge/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type RealtimeController struct {
	Hub *services.RealtimeHub
	Log *zap.Logger
}

func NewRealtimeController(hub *services.RealtimeHub, log *zap.Logger) *RealtimeController {
	return &RealtimeController{Hub: hub, Log: log}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a reverse proxy if needed
}

// joinMessage is the only client->server event: an explicit request to
// join a user's broadcast group.
type joinMessage struct {
	Event  string `json:"event"`
	UserID uint   `json:"userId"`
}

// Serve upgrades the request and services the session until the client
// disconnects. The route runs behind the auth middleware, and a
// join_user is only honored for the authenticated identity — a session
// cannot claim another user's group.
func (rc *RealtimeController) Serve(c *gin.Context) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	session := rc.Hub.NewSession(uid, conn)

	// keep connections alive through proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := session.Ping(); err != nil {
				rc.Hub.Unregister(session)
				return
			}
		}
	}()

	for {
		var msg joinMessage
		if err := conn.ReadJSON(&msg); err != nil {
			rc.Hub.Unregister(session)
			return
		}
		if msg.Event != "join_user" {
			continue
		}
		if msg.UserID != uid {
			rc.Log.Warn("rejected join for foreign group",
				zap.Uint("claimed", msg.UserID), zap.Uint("authenticated", uid))
			continue
		}
		rc.Hub.Join(session)
	}
}
