// Package realtime implements the live-update layer: a per-process registry
// of open WebSocket channels and a notifier that broadcasts entity change
// events after committed mutations.
package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Channel is one open live-update connection. Send must not block the caller:
// implementations either buffer or fail fast.
type Channel interface {
	Send(data []byte) error
	Close() error
}

var (
	// ErrChannelClosed is returned by Send after the channel has closed.
	ErrChannelClosed = errors.New("channel closed")

	// ErrChannelBusy is returned by Send when the outbound buffer is full,
	// i.e. the client is not keeping up.
	ErrChannelBusy = errors.New("channel send buffer full")
)

const (
	sendBufferSize = 16
	writeTimeout   = 5 * time.Second
)

// WSChannel adapts a gorilla WebSocket connection to the Channel interface.
// A dedicated writer goroutine drains a buffered queue so a stalled peer
// never blocks a broadcaster; Send fails fast with ErrChannelBusy instead.
type WSChannel struct {
	conn      *websocket.Conn
	sendCh    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewWSChannel wraps conn and starts its writer goroutine.
func NewWSChannel(conn *websocket.Conn) *WSChannel {
	c := &WSChannel{
		conn:   conn,
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

func (c *WSChannel) writeLoop() {
	for {
		select {
		case data := <-c.sendCh:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				// The connection is dead; fail future Sends so the
				// registry evicts this channel on the next broadcast.
				_ = c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// Send queues data for delivery. It never blocks.
func (c *WSChannel) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}
	select {
	case c.sendCh <- data:
		return nil
	case <-c.done:
		return ErrChannelClosed
	default:
		return ErrChannelBusy
	}
}

// Close shuts down the writer and the underlying connection. Safe to call
// more than once.
func (c *WSChannel) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
	return nil
}
