package handler

import (
	"log"
	"net/http"
	"time"

	"crypto-pulse/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

const (
	wsWriteTimeout = 5 * time.Second
	wsPingInterval = 45 * time.Second
	wsReadTimeout  = 90 * time.Second
)

// wsMessage is one snapshot event on the wire.
type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Stream upgrades the connection and forwards snapshot updates. On connect
// the client receives both current snapshots, then live updates as the
// refresh jobs publish them. A write failure prunes the subscriber.
func (h *Handler) Stream(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := h.snapshots.Subscribe()
	defer h.snapshots.Unsubscribe(sub)

	// Late joiners get the current state up front rather than waiting for
	// the next refresh tick.
	if err := h.writeMessage(conn, wsMessage{Type: string(store.UpdateMarket), Data: h.snapshots.Market()}); err != nil {
		return
	}
	if err := h.writeMessage(conn, wsMessage{Type: string(store.UpdateSentiment), Data: h.snapshots.Sentiment()}); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(conn, sub)
	}()

	// Reader drains control frames and detects disconnect.
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	}

	conn.Close()
	<-done
}

func (h *Handler) writeLoop(conn *websocket.Conn, sub *store.Subscription) {
	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case update, ok := <-sub.C:
			if !ok {
				return
			}
			msg := wsMessage{Type: string(update.Kind)}
			switch update.Kind {
			case store.UpdateMarket:
				msg.Data = update.Market
			case store.UpdateSentiment:
				msg.Data = update.Sentiment
			}
			if err := h.writeMessage(conn, msg); err != nil {
				log.Printf("ws write error, dropping subscriber: %v", err)
				conn.Close()
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) writeMessage(conn *websocket.Conn, msg wsMessage) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(msg)
}
