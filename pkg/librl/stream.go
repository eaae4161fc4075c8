package librl

import (
	"context"
	"net/url"
	"path"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// A Stream is a live subscription to the server's event channel.
// It must be closed to release the underlying connection.
type Stream struct {
	conn   *websocket.Conn
	events chan Event
	once   sync.Once
}

// Stream subscribes to the server's event channel.
func (c *client) Stream(ctx context.Context) (*Stream, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse endpoint")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = path.Join(u.Path, "/stream")

	conn, res, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not dial stream")
	}
	if res != nil && res.Body != nil {
		res.Body.Close()
	}

	s := &Stream{
		conn:   conn,
		events: make(chan Event),
	}

	go s.readPump(ctx)
	context.AfterFunc(ctx, s.Close)

	return s, nil
}

// Events returns the channel on which events are delivered.
// It is closed when the stream terminates.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Close terminates the subscription and releases the connection.
// It is idempotent.
func (s *Stream) Close() {
	s.once.Do(func() {
		_ = s.conn.Close()
	})
}

func (s *Stream) readPump(ctx context.Context) {
	defer close(s.events)
	defer s.Close()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		event, err := ParseEvent(data)
		if err != nil {
			continue
		}

		select {
		case s.events <- event:
		case <-ctx.Done():
			return
		}
	}
}
