package services

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeConn records written frames in order.
type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if messageType == websocket.TextMessage {
		buf := make([]byte, len(data))
		copy(buf, data)
		c.frames = append(c.frames, buf)
	}
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) events(t *testing.T) []Envelope {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Envelope, 0, len(c.frames))
	for _, f := range c.frames {
		var e Envelope
		require.NoError(t, json.Unmarshal(f, &e))
		out = append(out, e)
	}
	return out
}

func TestPublish_NoJoinedSessionDeliversNothing(t *testing.T) {
	hub := NewRealtimeHub(zap.NewNop())

	conn := &fakeConn{}
	hub.NewSession(7, conn) // never joined

	hub.Publish(7, "new_notification", map[string]any{"id": 1})
	assert.Empty(t, conn.events(t))
}

func TestPublish_TwoSessionsReceiveOnceInOrder(t *testing.T) {
	hub := NewRealtimeHub(zap.NewNop())

	connA, connB := &fakeConn{}, &fakeConn{}
	hub.Join(hub.NewSession(7, connA))
	hub.Join(hub.NewSession(7, connB))

	hub.Publish(7, "new_notification", map[string]any{"seq": 1})
	hub.Publish(7, "new_notification", map[string]any{"seq": 2})

	for _, conn := range []*fakeConn{connA, connB} {
		events := conn.events(t)
		require.Len(t, events, 2)
		assert.EqualValues(t, 1, events[0].Data.(map[string]any)["seq"])
		assert.EqualValues(t, 2, events[1].Data.(map[string]any)["seq"])
	}
}

func TestPublish_OtherGroupsUnaffected(t *testing.T) {
	hub := NewRealtimeHub(zap.NewNop())

	mine, theirs := &fakeConn{}, &fakeConn{}
	hub.Join(hub.NewSession(7, mine))
	hub.Join(hub.NewSession(8, theirs))

	hub.Publish(7, "new_notification", map[string]any{"id": 1})

	assert.Len(t, mine.events(t), 1)
	assert.Empty(t, theirs.events(t))
}

func TestUnregister_StopsDeliveryAndClosesConn(t *testing.T) {
	hub := NewRealtimeHub(zap.NewNop())

	conn := &fakeConn{}
	session := hub.NewSession(7, conn)
	hub.Join(session)
	hub.Unregister(session)

	hub.Publish(7, "new_notification", map[string]any{"id": 1})
	assert.Empty(t, conn.events(t))
	assert.True(t, conn.closed)
}

func TestBroadcast_ReachesAllJoinedSessions(t *testing.T) {
	hub := NewRealtimeHub(zap.NewNop())

	a, b := &fakeConn{}, &fakeConn{}
	hub.Join(hub.NewSession(7, a))
	hub.Join(hub.NewSession(8, b))

	hub.Broadcast("new_feedback", map[string]any{"rating": 5})

	for _, conn := range []*fakeConn{a, b} {
		events := conn.events(t)
		require.Len(t, events, 1)
		assert.Equal(t, "new_feedback", events[0].Event)
	}
}

func TestSessions_HaveUniqueIDs(t *testing.T) {
	hub := NewRealtimeHub(zap.NewNop())

	s1 := hub.NewSession(7, &fakeConn{})
	s2 := hub.NewSession(7, &fakeConn{})
	assert.NotEqual(t, s1.ID, s2.ID)
}
