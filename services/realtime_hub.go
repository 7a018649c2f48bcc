package services

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Publisher is the narrow capability handlers get for emitting live
// events; the hub implements it.
type Publisher interface {
	Publish(userID uint, event string, payload any)
	Broadcast(event string, payload any)
}

// wsConn is the slice of *websocket.Conn the hub needs. Tests swap in
// a recording implementation.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Session is one live websocket connection. A session delivers events
// only after it has joined its user's group.
type Session struct {
	ID     string
	UserID uint
	conn   wsConn

	mu sync.Mutex // serializes writes (broadcasts vs. keepalive pings)
}

func (s *Session) write(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(messageType, data)
}

// Ping sends a websocket ping frame to keep the connection alive
// through proxies.
func (s *Session) Ping() error {
	return s.write(websocket.PingMessage, nil)
}

// Envelope is the wire shape of every server-initiated event.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// RealtimeHub is the in-process session registry keyed by user
// identity. State is process-local and lost on restart; clients rejoin
// after reconnect.
type RealtimeHub struct {
	log *zap.Logger

	mu     sync.RWMutex
	groups map[uint]map[*Session]struct{}
}

func NewRealtimeHub(log *zap.Logger) *RealtimeHub {
	return &RealtimeHub{
		log:    log,
		groups: make(map[uint]map[*Session]struct{}),
	}
}

// NewSession wraps a connection. The session is not delivered to until
// Join is called.
func (h *RealtimeHub) NewSession(userID uint, conn wsConn) *Session {
	return &Session{ID: uuid.NewString(), UserID: userID, conn: conn}
}

func (h *RealtimeHub) Join(s *Session) {
	h.mu.Lock()
	if h.groups[s.UserID] == nil {
		h.groups[s.UserID] = make(map[*Session]struct{})
	}
	h.groups[s.UserID][s] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes the session from its group and closes the
// connection. Safe to call for sessions that never joined.
func (h *RealtimeHub) Unregister(s *Session) {
	h.mu.Lock()
	if set := h.groups[s.UserID]; set != nil {
		delete(set, s)
		if len(set) == 0 {
			delete(h.groups, s.UserID)
		}
	}
	h.mu.Unlock()
	_ = s.conn.Close()
}

// Publish delivers the event at most once to each session currently in
// the user's group. Offline sessions never see it; there is no queue
// and no replay.
func (h *RealtimeHub) Publish(userID uint, event string, payload any) {
	msg, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.log.Warn("marshal realtime event failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.groups[userID] {
		if err := s.write(websocket.TextMessage, msg); err != nil {
			h.log.Debug("realtime write failed",
				zap.String("session", s.ID), zap.Uint("user_id", userID), zap.Error(err))
		}
	}
}

// Broadcast delivers the event to every joined session of every user.
func (h *RealtimeHub) Broadcast(event string, payload any) {
	msg, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.log.Warn("marshal realtime event failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, set := range h.groups {
		for s := range set {
			if err := s.write(websocket.TextMessage, msg); err != nil {
				h.log.Debug("realtime write failed", zap.String("session", s.ID), zap.Error(err))
			}
		}
	}
}
