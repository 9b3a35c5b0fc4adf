package realtime

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel records sends and can be told to fail.
type fakeChannel struct {
	mu       sync.Mutex
	received [][]byte
	sendErr  error
	closed   bool
}

func (f *fakeChannel) Send(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.received = append(f.received, data)
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeChannel) messages() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]byte, len(f.received))
	copy(out, f.received)
	return out
}

func (f *fakeChannel) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestRegistry_BroadcastReachesAllChannels(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	a := &fakeChannel{}
	b := &fakeChannel{}
	reg.Register(a)
	reg.Register(b)

	reg.Broadcast([]byte(`{"type":"task.created"}`))

	require.Len(t, a.messages(), 1)
	require.Len(t, b.messages(), 1)
	assert.Equal(t, []byte(`{"type":"task.created"}`), a.messages()[0])
	assert.Equal(t, []byte(`{"type":"task.created"}`), b.messages()[0])
}

func TestRegistry_RegisterIsSetSemantics(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	ch := &fakeChannel{}
	reg.Register(ch)
	reg.Register(ch)

	assert.Equal(t, 1, reg.Len())

	reg.Broadcast([]byte("x"))
	assert.Len(t, ch.messages(), 1, "a doubly registered channel must receive each event once")
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	ch := &fakeChannel{}
	reg.Register(ch)

	reg.Unregister(ch)
	reg.Unregister(ch)
	assert.Equal(t, 0, reg.Len())

	reg.Broadcast([]byte("x"))
	assert.Empty(t, ch.messages())
}

func TestRegistry_UnregisterAbsentChannel(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	assert.NotPanics(t, func() {
		reg.Unregister(&fakeChannel{})
	})
}

func TestRegistry_FailedDeliveryEvictsChannel(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	healthy := &fakeChannel{}
	dead := &fakeChannel{sendErr: errors.New("connection reset")}
	reg.Register(healthy)
	reg.Register(dead)

	reg.Broadcast([]byte("first"))

	assert.Len(t, healthy.messages(), 1, "one dead channel must not abort delivery to the rest")
	assert.True(t, dead.isClosed(), "failed channel must be closed")
	assert.Equal(t, 1, reg.Len())

	reg.Broadcast([]byte("second"))
	assert.Len(t, healthy.messages(), 2)
	assert.Empty(t, dead.messages())
}

func TestRegistry_BroadcastSnapshotExcludesLateRegistrations(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	late := &fakeChannel{}

	// registering records a channel registered while the broadcast of the
	// current event is in flight.
	registering := &hookChannel{
		onSend: func() { reg.Register(late) },
	}
	reg.Register(registering)

	reg.Broadcast([]byte("during"))

	assert.Empty(t, late.messages(), "channels registered mid-broadcast receive only later events")

	reg.Broadcast([]byte("after"))
	assert.Len(t, late.messages(), 1)
}

// hookChannel runs a callback on Send, then delegates to fakeChannel.
type hookChannel struct {
	fakeChannel
	onSend func()
}

func (h *hookChannel) Send(data []byte) error {
	if h.onSend != nil {
		h.onSend()
	}
	return h.fakeChannel.Send(data)
}

func TestRegistry_ConcurrentRegisterAndBroadcast(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ch := &fakeChannel{}
			reg.Register(ch)
			reg.Unregister(ch)
		}()
		go func() {
			defer wg.Done()
			reg.Broadcast([]byte("event"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_CloseAll(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(nil)
	a := &fakeChannel{}
	b := &fakeChannel{}
	reg.Register(a)
	reg.Register(b)

	reg.CloseAll()

	assert.Equal(t, 0, reg.Len())
	assert.True(t, a.isClosed())
	assert.True(t, b.isClosed())
}
