package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/virada/rolelist/internal/broadcast"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced on the mutation surface; the stream only pushes
	// server state.
	CheckOrigin: func(*http.Request) bool { return true },
}

// stream contains the realtime channel handler.
type stream struct {
	hub *broadcast.Hub
}

// Subscribe upgrades the connection to a websocket and forwards every
// broadcast event to it until the client disconnects. No client to server
// messages are defined on this channel.
func (h *stream) Subscribe(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "could not upgrade connection")
	}

	sub := h.hub.Subscribe()
	defer sub.Close()
	defer conn.Close()

	logrus.WithField("remote", conn.RemoteAddr().String()).Info("stream: client connected")
	go writePump(conn, sub)

	// Watch for close, discard anything else.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	logrus.WithField("remote", conn.RemoteAddr().String()).Info("stream: client disconnected")
	return nil
}

func writePump(conn *websocket.Conn, sub *broadcast.Subscriber) {
	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
