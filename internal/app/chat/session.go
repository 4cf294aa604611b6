/*
Package chat contains the real-time direct messaging core.

This file defines the Session struct, representing one authenticated WebSocket
connection. A session exclusively owns its transport for its whole lifetime and
runs the receive loop that feeds the Relay; it guarantees deregistration from
the Registry on every exit path so the registry never accumulates entries for
dead connections.
*/
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"cyberlink/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxMessageSize = 8192

	// WsCloseCodeSessionKicked is a custom WebSocket Close Code (4000-4999 range)
	// used to signal the client that the session was replaced by a new connection.
	WsCloseCodeSessionKicked = 4001
)

// Session lifecycle states.
const (
	stateOpen int32 = iota
	stateClosing
	stateClosed
)

// Session owns one live WebSocket connection for an authenticated user.
type Session struct {
	// userID is the stable identity the session is registered under.
	userID int64

	// underlying WebSocket connection object, owned exclusively by this session.
	conn *websocket.Conn

	// registry the session deregisters from on every exit path.
	registry *Registry

	// relay invoked synchronously for each valid inbound frame.
	relay *Relay

	// lifecycle state: Open -> Closing -> Closed.
	state atomic.Int32

	// writeMu serializes data writes to the connection.
	writeMu sync.Mutex

	// structured logger with session context.
	logger zerolog.Logger
}

// NewSession constructs a Session for an upgraded connection. The caller
// registers it and then drives it with Run.
func NewSession(userID int64, conn *websocket.Conn, registry *Registry, relay *Relay) *Session {
	sessionLogger := logx.Logger().With().
		Int64("user_id", userID).
		Str("component", "Session").
		Logger()

	return &Session{
		userID:   userID,
		conn:     conn,
		registry: registry,
		relay:    relay,
		logger:   sessionLogger,
	}
}

// UserID returns the identity the session was registered under.
func (s *Session) UserID() int64 {
	return s.userID
}

// IsOpen reports whether the session still accepts outbound events.
func (s *Session) IsOpen() bool {
	return s.state.Load() == stateOpen
}

// Run executes the receive loop until the peer closes, the transport fails,
// or the session is kicked. It blocks the calling goroutine; each connection
// gets its own. Frames are processed strictly in receipt order, one at a time.
func (s *Session) Run(ctx context.Context) {
	defer s.cleanup()

	s.conn.SetReadLimit(maxMessageSize)

	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Echo the peer's close frame back before the read loop observes the
	// close error, then stop accepting pushes.
	s.conn.SetCloseHandler(func(code int, text string) error {
		s.state.CompareAndSwap(stateOpen, stateClosing)
		ack := websocket.FormatCloseMessage(code, "")
		return s.conn.WriteControl(websocket.CloseMessage, ack, time.Now().Add(writeWait))
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go s.pingLoop(stopPing)

	for {
		_, frameBytes, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info().Err(err).Msg("Connection terminated without close handshake")
			}
			return
		}

		s.processInboundFrame(ctx, frameBytes)
	}
}

// processInboundFrame decodes one data frame and relays it. Malformed or
// invalid frames are dropped silently without persistence or push side
// effects; a persistence failure aborts only this frame, never the loop.
func (s *Session) processInboundFrame(ctx context.Context, frameBytes []byte) {
	var frame InboundFrame
	if err := json.Unmarshal(frameBytes, &frame); err != nil {
		s.logger.Warn().Err(err).Msg("Client sent invalid JSON frame")
		return
	}

	if !frame.Valid() {
		s.logger.Warn().
			Int64("receiver_id", frame.ReceiverID).
			Int("content_bytes", len(frame.Content)).
			Msg("Client sent frame with invalid fields")
		return
	}

	if err := s.relay.Relay(ctx, s.userID, frame); err != nil {
		s.logger.Error().Err(err).
			Int64("receiver_id", frame.ReceiverID).
			Msg("Failed to persist message, frame dropped")
	}
}

// cleanup deregisters the session and releases the transport. It runs on
// every Run exit path: peer close, transport error, or kick.
func (s *Session) cleanup() {
	s.registry.Unregister(s)
	s.state.Store(stateClosed)

	if err := s.conn.Close(); err != nil {
		s.logger.Debug().Err(err).Msg("Connection close error during cleanup")
	}

	s.logger.Info().Msg("Session closed and deregistered")
}

// pingLoop keeps the connection's heartbeat until the session exits.
func (s *Session) pingLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}

// SendEvent serializes the event and writes it to the connection. Only the
// recipient's relay path calls this; writes are serialized so concurrent
// senders cannot interleave frames.
func (s *Session) SendEvent(evt OutboundEvent) error {
	if !s.IsOpen() {
		return websocket.ErrCloseSent
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return s.conn.WriteJSON(evt)
}

// Kick closes the session's connection with a session-replaced close frame.
// The kicked session's own read loop then observes the closed transport and
// runs its normal cleanup; identity-checked deregistration keeps it from
// removing the replacement registry entry.
func (s *Session) Kick(reason string) {
	s.logger.Warn().
		Int("close_code", WsCloseCodeSessionKicked).
		Str("reason", reason).
		Msg("Closing session replaced by a new connection")

	s.state.Store(stateClosed)

	closeMessage := websocket.FormatCloseMessage(WsCloseCodeSessionKicked, reason)
	if err := s.conn.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(writeWait)); err != nil {
		s.logger.Debug().Err(err).Msg("Failed to send kick close frame")
	}

	if err := s.conn.Close(); err != nil {
		s.logger.Debug().Err(err).Msg("Connection close error during kick")
	}
}
