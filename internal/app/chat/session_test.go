package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// newSessionServer runs the upgrade-register-run sequence for each incoming
// connection, taking the user id from the "uid" query parameter.
func newSessionServer(t *testing.T, registry *Registry, relay *Relay) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.URL.Query().Get("uid"), 10, 64)
		require.NoError(t, err)

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		sess := NewSession(userID, conn, registry, relay)
		if evicted := registry.Register(sess); evicted != nil {
			evicted.Kick("signed in on another device")
		}
		go sess.Run(r.Context())
	}))
	t.Cleanup(server.Close)

	return server
}

func dialSession(t *testing.T, server *httptest.Server, userID int64) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?uid=" + strconv.FormatInt(userID, 10)
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestSession_MessageRoundTrip(t *testing.T) {
	req := require.New(t)

	sentAt := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	store := &fakeMessageStore{sentAt: sentAt}
	registry := NewRegistry()
	relay := NewRelay(store, registry)
	server := newSessionServer(t, registry, relay)

	sender := dialSession(t, server, 1)
	receiver := dialSession(t, server, 2)

	require.Eventually(t, func() bool { return registry.Len() == 2 }, time.Second, 10*time.Millisecond)

	err := sender.WriteJSON(InboundFrame{ReceiverID: 2, Content: "hello there"})
	req.NoError(err)

	req.NoError(receiver.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, payload, err := receiver.ReadMessage()
	req.NoError(err)

	var evt OutboundEvent
	req.NoError(json.Unmarshal(payload, &evt))
	req.Equal(int64(1), evt.SenderID)
	req.Equal(int64(2), evt.ReceiverID)
	req.Equal("hello there", evt.Content)
	req.True(evt.Timestamp.Equal(sentAt))
}

func TestSession_MalformedFrameTolerated(t *testing.T) {
	req := require.New(t)

	store := &fakeMessageStore{sentAt: time.Now()}
	registry := NewRegistry()
	relay := NewRelay(store, registry)
	server := newSessionServer(t, registry, relay)

	sender := dialSession(t, server, 1)
	receiver := dialSession(t, server, 2)

	require.Eventually(t, func() bool { return registry.Len() == 2 }, time.Second, 10*time.Millisecond)

	// Garbage and invalid frames are dropped without ending the session.
	req.NoError(sender.WriteMessage(websocket.TextMessage, []byte("not json")))
	req.NoError(sender.WriteJSON(InboundFrame{ReceiverID: 0, Content: "no receiver"}))
	req.NoError(sender.WriteJSON(InboundFrame{ReceiverID: 2, Content: "still alive"}))

	req.NoError(receiver.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, payload, err := receiver.ReadMessage()
	req.NoError(err)

	var evt OutboundEvent
	req.NoError(json.Unmarshal(payload, &evt))
	req.Equal("still alive", evt.Content)

	store.mu.Lock()
	saved := len(store.saved)
	store.mu.Unlock()
	req.Equal(1, saved)
}

func TestSession_CloseDeregisters(t *testing.T) {
	req := require.New(t)

	store := &fakeMessageStore{sentAt: time.Now()}
	registry := NewRegistry()
	relay := NewRelay(store, registry)
	server := newSessionServer(t, registry, relay)

	client := dialSession(t, server, 1)
	require.Eventually(t, func() bool { return registry.Len() == 1 }, time.Second, 10*time.Millisecond)

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
	req.NoError(client.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second)))

	require.Eventually(t, func() bool { return registry.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestSession_RecipientGoesOffline(t *testing.T) {
	req := require.New(t)

	store := &fakeMessageStore{sentAt: time.Now()}
	registry := NewRegistry()
	relay := NewRelay(store, registry)
	server := newSessionServer(t, registry, relay)

	sender := dialSession(t, server, 1)
	receiver := dialSession(t, server, 2)

	require.Eventually(t, func() bool { return registry.Len() == 2 }, time.Second, 10*time.Millisecond)

	req.NoError(sender.WriteJSON(InboundFrame{ReceiverID: 2, Content: "x"}))

	req.NoError(receiver.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, _, err := receiver.ReadMessage()
	req.NoError(err)

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	req.NoError(receiver.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second)))
	require.Eventually(t, func() bool { return registry.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	// The recipient is gone; the message is still persisted and the sender's
	// session keeps running.
	req.NoError(sender.WriteJSON(InboundFrame{ReceiverID: 2, Content: "y"}))

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.saved) == 2
	}, 2*time.Second, 10*time.Millisecond)

	p, ok := registry.Lookup(1)
	req.True(ok)
	req.True(p.IsOpen())
}

func TestSession_SecondLoginKicksFirst(t *testing.T) {
	req := require.New(t)

	store := &fakeMessageStore{sentAt: time.Now()}
	registry := NewRegistry()
	relay := NewRelay(store, registry)
	server := newSessionServer(t, registry, relay)

	first := dialSession(t, server, 1)
	require.Eventually(t, func() bool { return registry.Len() == 1 }, time.Second, 10*time.Millisecond)

	second := dialSession(t, server, 2)

	// Same user signs in again; the first connection receives the kick code.
	replacement := dialSession(t, server, 1)

	req.NoError(first.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, _, err := first.ReadMessage()
	closeErr, ok := err.(*websocket.CloseError)
	req.True(ok, "expected close error, got %v", err)
	req.Equal(WsCloseCodeSessionKicked, closeErr.Code)

	// The replacement session still receives messages for user 1.
	require.Eventually(t, func() bool {
		p, ok := registry.Lookup(1)
		return ok && p.IsOpen()
	}, 2*time.Second, 10*time.Millisecond)

	req.NoError(second.WriteJSON(InboundFrame{ReceiverID: 1, Content: "to the new session"}))

	req.NoError(replacement.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, payload, err := replacement.ReadMessage()
	req.NoError(err)

	var evt OutboundEvent
	req.NoError(json.Unmarshal(payload, &evt))
	req.Equal("to the new session", evt.Content)
}
