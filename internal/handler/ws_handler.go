package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"cyberlink/internal/app/chat"
	"cyberlink/internal/pkg/auth/jwt"
	"cyberlink/internal/pkg/logx"
)

// HandleMessageConnect upgrades the request to a websocket and runs a
// messaging session for the authenticated account.
//
// Authentication failures are reported over the socket itself: the upgrade
// is performed first, then the connection is closed with a normal-closure
// frame carrying the reason, so browser clients can read it. An account can
// hold one live session at a time; a new connection evicts the previous one.
func HandleMessageConnect(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !websocket.IsWebSocketUpgrade(r) {
			http.Error(w, "websocket upgrade required", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Warn("websocket upgrade failed", "error", err)
			return
		}

		payload := jwt.GetPayloadFromContext(r)
		if payload == nil {
			closeWithReason(conn, "Unauthorized")
			return
		}

		user, err := deps.DB.GetUserByEmail(r.Context(), payload.Email)
		if err != nil {
			logx.Warn("websocket auth: account lookup failed", "email", payload.Email, "error", err)
			closeWithReason(conn, "Unauthorized")
			return
		}

		sess := chat.NewSession(user.ID, conn, deps.Registry, deps.Relay)

		if evicted := deps.Registry.Register(sess); evicted != nil {
			evicted.Kick("You signed in on another device")
		}

		logx.Info("messaging session opened", "user_id", user.ID)
		sess.Run(r.Context())
		logx.Info("messaging session closed", "user_id", user.ID)
	}
}

// closeWithReason sends a normal-closure frame with the given reason and
// drops the connection.
func closeWithReason(conn *websocket.Conn, reason string) {
	deadline := time.Now().Add(5 * time.Second)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	if err := conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		logx.Warn("failed to send close frame", "error", err)
	}
	conn.Close()
}
