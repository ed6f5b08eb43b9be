package seventv

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"twitch-chat-client/events"
	"twitch-chat-client/policy"
)

type fakeServer struct {
	*httptest.Server
	mu     sync.Mutex
	frames []outbound
	conns  chan *websocket.Conn
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{conns: make(chan *websocket.Conn, 4)}
	upgrader := websocket.Upgrader{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(outbound{Op: opHello, D: hello{SessionID: "s1", HeartbeatInterval: 1000}})
		fs.conns <- conn
		for {
			var frame struct {
				Op int          `json:"op"`
				D  subscription `json:"d"`
			}
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			fs.mu.Lock()
			fs.frames = append(fs.frames, outbound{Op: frame.Op, D: frame.D})
			fs.mu.Unlock()
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) url() string {
	return "ws" + strings.TrimPrefix(fs.URL, "http")
}

func (fs *fakeServer) received() []outbound {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]outbound(nil), fs.frames...)
}

func (fs *fakeServer) count(op int) int {
	n := 0
	for _, f := range fs.received() {
		if f.Op == op {
			n++
		}
	}
	return n
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []Dispatch
}

func (r *recordingEmitter) Emit(name string, payload any) error {
	if name != events.SevenTV {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, payload.(Dispatch))
	return nil
}

func (r *recordingEmitter) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startClient(t *testing.T, fs *fakeServer, emitter events.Emitter) (*Client, *websocket.Conn) {
	t.Helper()
	client := NewClient(discardLogger(), fs.url(), emitter)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- client.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	select {
	case conn := <-fs.conns:
		require.Eventually(t, func() bool {
			client.mu.Lock()
			defer client.mu.Unlock()
			return client.conn != nil
		}, 2*time.Second, 10*time.Millisecond)
		return client, conn
	case <-time.After(2 * time.Second):
		t.Fatal("client did not connect")
		return nil, nil
	}
}

func TestSubscribeIsReferenceCountedAcrossChannels(t *testing.T) {
	req := require.New(t)
	fs := newFakeServer(t)
	client, _ := startClient(t, fs, nil)
	ctx := context.Background()

	shared := policy.ObjectCondition("set-1")
	req.NoError(client.Subscribe(ctx, "foo", policy.TopicEmoteSetAll, shared))
	req.NoError(client.Subscribe(ctx, "bar", policy.TopicEmoteSetAll, shared))
	req.NoError(client.Subscribe(ctx, "foo", policy.TopicEmoteSetAll, shared))

	req.Eventually(func() bool { return fs.count(opSubscribe) == 1 }, 2*time.Second, 10*time.Millisecond)
	req.Len(client.Topics(), 1)

	req.NoError(client.UnsubscribeAll(ctx, "foo"))
	req.Len(client.Topics(), 1)
	req.Never(func() bool { return fs.count(opUnsubscribe) > 0 }, 100*time.Millisecond, 10*time.Millisecond)

	req.NoError(client.UnsubscribeAll(ctx, "bar"))
	req.Empty(client.Topics())
	req.Eventually(func() bool { return fs.count(opUnsubscribe) == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestSubscriptionsSentAfterConnect(t *testing.T) {
	req := require.New(t)
	fs := newFakeServer(t)
	client := NewClient(discardLogger(), fs.url(), nil)

	req.NoError(client.Subscribe(context.Background(), "foo", policy.TopicCosmeticCreate, policy.CosmeticsChannelCondition("42")))
	req.Equal(0, fs.count(opSubscribe))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = client.Run(ctx) }()

	req.Eventually(func() bool { return fs.count(opSubscribe) == 1 }, 2*time.Second, 10*time.Millisecond)
	frame := fs.received()[0]
	sub := frame.D.(subscription)
	req.Equal(policy.TopicCosmeticCreate, sub.Type)
	req.Equal("TWITCH", sub.Condition["platform"])
	req.Equal("42", sub.Condition["id"])
}

func TestDispatchIsForwarded(t *testing.T) {
	req := require.New(t)
	fs := newFakeServer(t)
	emitter := &recordingEmitter{}
	_, conn := startClient(t, fs, emitter)

	body := json.RawMessage(`{"id":"set-1"}`)
	req.NoError(conn.WriteJSON(outbound{Op: opDispatch, D: Dispatch{Type: "emote_set.update", Body: body}}))

	req.Eventually(func() bool { return emitter.len() == 1 }, 2*time.Second, 10*time.Millisecond)
	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	req.Equal("emote_set.update", emitter.events[0].Type)
	req.JSONEq(`{"id":"set-1"}`, string(emitter.events[0].Body))
}

func TestUnsubscribeUnknownChannel(t *testing.T) {
	req := require.New(t)
	client := NewClient(discardLogger(), "", nil)

	req.NoError(client.UnsubscribeAll(context.Background(), "nobody"))
	req.Equal(DefaultURL, client.url)
}

// stalledWriter держит запись, пока тест не закроет release.
type stalledWriter struct {
	entered chan struct{}
	release chan struct{}
	err     error
}

func (w *stalledWriter) WriteJSON(any) error {
	w.entered <- struct{}{}
	<-w.release
	return w.err
}

func TestSlowWriteDoesNotBlockState(t *testing.T) {
	req := require.New(t)
	writer := &stalledWriter{entered: make(chan struct{}, 1), release: make(chan struct{})}
	client := NewClient(discardLogger(), "", nil)
	client.conn = writer

	subscribed := make(chan error, 1)
	go func() {
		subscribed <- client.Subscribe(context.Background(), "foo", policy.TopicEmoteSetAll, policy.ObjectCondition("set-1"))
	}()
	<-writer.entered

	topics := make(chan int, 1)
	go func() { topics <- len(client.Topics()) }()
	select {
	case n := <-topics:
		req.Equal(1, n)
	case <-time.After(time.Second):
		req.Fail("Topics blocked by a pending write")
	}

	close(writer.release)
	req.NoError(<-subscribed)
}

func TestFailedSubscribeIsRolledBack(t *testing.T) {
	req := require.New(t)
	writer := &stalledWriter{entered: make(chan struct{}, 1), release: make(chan struct{}), err: errors.New("broken pipe")}
	close(writer.release)
	client := NewClient(discardLogger(), "", nil)
	client.conn = writer

	err := client.Subscribe(context.Background(), "foo", policy.TopicEmoteSetAll, policy.ObjectCondition("set-1"))

	req.ErrorContains(err, "broken pipe")
	req.Empty(client.Topics())
	req.Empty(client.byLogin)
}
