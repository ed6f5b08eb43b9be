package seventv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"twitch-chat-client/events"
	"twitch-chat-client/model"
)

const (
	minBackoff     = time.Second
	maxBackoff     = 30 * time.Second
	heartbeatSlack = 3
)

var errEndOfStream = errors.New("seventv: end of stream")

// frameWriter отправляет кадр в соединение EventAPI.
type frameWriter interface {
	WriteJSON(v any) error
}

type topicRef struct {
	sub   subscription
	count int
}

// Client держит соединение с 7TV EventAPI и общий пул подписок.
// Одна пара (topic, condition) подписывается один раз, сколько бы каналов её ни требовало.
// mu защищает состояние и не удерживается во время записи в сеть; записи упорядочивает writeMu.
type Client struct {
	log     *slog.Logger
	url     string
	dialer  *websocket.Dialer
	emitter events.Emitter

	writeMu sync.Mutex

	mu      sync.Mutex
	conn    frameWriter
	refs    map[string]*topicRef
	byLogin map[string][]string
}

// NewClient создаёт Client; соединение открывается в Run.
func NewClient(log *slog.Logger, url string, emitter events.Emitter) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		log:     log,
		url:     url,
		dialer:  websocket.DefaultDialer,
		emitter: emitter,
		refs:    make(map[string]*topicRef),
		byLogin: make(map[string][]string),
	}
}

func refKey(topic string, condition model.Condition) string {
	return topic + "|" + condition.Key()
}

// Subscribe регистрирует подписку канала. Без соединения она отправится после hello.
func (c *Client) Subscribe(ctx context.Context, login, topic string, condition model.Condition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := refKey(topic, condition)

	c.mu.Lock()
	if slices.Contains(c.byLogin[login], key) {
		c.mu.Unlock()
		return nil
	}
	ref, ok := c.refs[key]
	if !ok {
		ref = &topicRef{sub: subscription{Type: topic, Condition: condition.Clone()}}
		c.refs[key] = ref
	}
	ref.count++
	c.byLogin[login] = append(c.byLogin[login], key)
	conn := c.conn
	c.mu.Unlock()

	if ok {
		return nil
	}
	if err := c.write(conn, opSubscribe, ref.sub); err != nil {
		c.mu.Lock()
		c.release(login, key)
		c.mu.Unlock()
		return fmt.Errorf("seventv: subscribe %s %s: %w", login, topic, err)
	}
	return nil
}

// UnsubscribeAll снимает подписки канала; общие с другими каналами остаются.
func (c *Client) UnsubscribeAll(ctx context.Context, login string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	var last []subscription
	for _, key := range c.byLogin[login] {
		ref, ok := c.refs[key]
		if !ok {
			continue
		}
		ref.count--
		if ref.count > 0 {
			continue
		}
		delete(c.refs, key)
		last = append(last, ref.sub)
	}
	delete(c.byLogin, login)
	conn := c.conn
	c.mu.Unlock()

	var errs []error
	for _, sub := range last {
		if err := c.write(conn, opUnsubscribe, sub); err != nil {
			errs = append(errs, fmt.Errorf("seventv: unsubscribe %s %s: %w", login, sub.Type, err))
		}
	}

	return errors.Join(errs...)
}

// Topics возвращает активные подписки.
func (c *Client) Topics() []model.CosmeticsSubscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	return lo.MapToSlice(c.refs, func(_ string, ref *topicRef) model.CosmeticsSubscription {
		return model.CosmeticsSubscription{Topic: ref.sub.Type, Condition: ref.sub.Condition.Clone()}
	})
}

// release откатывает регистрацию key за каналом. Вызывается под mu.
func (c *Client) release(login, key string) {
	rest := slices.DeleteFunc(slices.Clone(c.byLogin[login]), func(k string) bool { return k == key })
	if len(rest) == 0 {
		delete(c.byLogin, login)
	} else {
		c.byLogin[login] = rest
	}

	if ref, ok := c.refs[key]; ok {
		ref.count--
		if ref.count <= 0 {
			delete(c.refs, key)
		}
	}
}

func (c *Client) write(conn frameWriter, op int, d any) error {
	if conn == nil {
		return nil
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(outbound{Op: op, D: d})
}

// Run держит соединение до отмены ctx, переподключаясь с экспоненциальной задержкой.
func (c *Client) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		err := c.serve(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			backoff = minBackoff
			continue
		}

		c.log.Warn("seventv: соединение потеряно", "error", err, "retry_in", backoff)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// serve возвращает nil, если сервер попросил переподключиться.
func (c *Client) serve(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("seventv: dial %s: %w", c.url, err)
	}
	defer c.detach(conn)
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	var deadline time.Duration
	for {
		var frame inbound
		if err := conn.ReadJSON(&frame); err != nil {
			return fmt.Errorf("seventv: read: %w", err)
		}
		if deadline > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(deadline))
		}

		switch frame.Op {
		case opHello:
			var h hello
			if err := json.Unmarshal(frame.D, &h); err != nil {
				return fmt.Errorf("seventv: decode hello: %w", err)
			}
			if h.HeartbeatInterval > 0 {
				deadline = time.Duration(h.HeartbeatInterval*heartbeatSlack) * time.Millisecond
				_ = conn.SetReadDeadline(time.Now().Add(deadline))
			}
			if err := c.attach(conn); err != nil {
				return err
			}
			c.log.Info("seventv: сессия установлена", "session_id", h.SessionID)
		case opHeartbeat, opAck:
		case opDispatch:
			c.dispatch(frame.D)
		case opReconnect:
			return nil
		case opError:
			c.log.Warn("seventv: сервер вернул ошибку", "payload", string(frame.D))
		case opEndOfStream:
			return fmt.Errorf("%w: %s", errEndOfStream, string(frame.D))
		default:
			c.log.Debug("seventv: кадр пропущен", "op", frame.Op)
		}
	}
}

// attach делает conn текущим и повторяет на нём все активные подписки.
// Подписки, добавленные после смены conn, Subscribe отправит сам.
func (c *Client) attach(conn *websocket.Conn) error {
	c.mu.Lock()
	c.conn = conn
	subs := lo.MapToSlice(c.refs, func(_ string, ref *topicRef) subscription { return ref.sub })
	c.mu.Unlock()

	for _, sub := range subs {
		if err := c.write(conn, opSubscribe, sub); err != nil {
			return fmt.Errorf("seventv: resubscribe %s: %w", sub.Type, err)
		}
	}
	return nil
}

func (c *Client) detach(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
	_ = conn.Close()
}

func (c *Client) dispatch(raw json.RawMessage) {
	var d Dispatch
	if err := json.Unmarshal(raw, &d); err != nil {
		c.log.Warn("seventv: dispatch отброшен", "error", err)
		return
	}
	if c.emitter == nil {
		return
	}
	if err := c.emitter.Emit(events.SevenTV, d); err != nil {
		c.log.Warn("seventv: не удалось отправить dispatch в UI", "error", err)
	}
}
