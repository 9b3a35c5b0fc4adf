package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialTestConn upgrades against an in-process server and returns the client
// side of the pair. Messages the server reads are passed to onMessage.
func dialTestConn(t *testing.T, onMessage func([]byte)) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if onMessage != nil {
				onMessage(data)
			}
		}
	}))
	t.Cleanup(srv.Close)

	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWSChannel_DeliversQueuedMessages(t *testing.T) {
	t.Parallel()

	received := make(chan []byte, 1)
	ch := NewWSChannel(dialTestConn(t, func(data []byte) { received <- data }))
	defer func() { _ = ch.Close() }()

	require.NoError(t, ch.Send([]byte(`{"type":"task.created"}`)))

	select {
	case data := <-received:
		assert.JSONEq(t, `{"type":"task.created"}`, string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("message never reached the peer")
	}
}

func TestWSChannel_SendAfterClose(t *testing.T) {
	t.Parallel()

	ch := NewWSChannel(dialTestConn(t, nil))
	require.NoError(t, ch.Close())

	err := ch.Send([]byte("late"))
	assert.ErrorIs(t, err, ErrChannelClosed)
}

func TestWSChannel_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	ch := NewWSChannel(dialTestConn(t, nil))

	assert.NoError(t, ch.Close())
	assert.NotPanics(t, func() {
		assert.NoError(t, ch.Close())
	})
	assert.ErrorIs(t, ch.Send([]byte("x")), ErrChannelClosed)
}

func TestWSChannel_BusyWhenBufferFull(t *testing.T) {
	t.Parallel()

	// No writer goroutine, so the queue never drains and Send must fail
	// fast once the buffer fills instead of blocking the broadcaster.
	ch := &WSChannel{
		sendCh: make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}

	for i := 0; i < sendBufferSize; i++ {
		require.NoError(t, ch.Send([]byte("queued")))
	}

	assert.ErrorIs(t, ch.Send([]byte("overflow")), ErrChannelBusy)
}
