package eventsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"twitch-chat-client/events"
)

// ErrSessionClosed возвращается после завершения Run.
var ErrSessionClosed = errors.New("eventsub: session closed")

const (
	keepaliveSlack = 5 * time.Second
	minBackoff     = time.Second
	maxBackoff     = 30 * time.Second
)

// Session держит websocket-сессию EventSub и раздаёт её id подписчикам.
type Session struct {
	log      *slog.Logger
	url      string
	dialer   *websocket.Dialer
	emitter  events.Emitter
	onRevoke func(id string)
	onLost   func()
	backoff  time.Duration

	mu        sync.Mutex
	id        string
	keepalive time.Duration
	ready     chan struct{}
	done      chan struct{}
	closed    bool
}

// NewSession создаёт Session; соединение открывается в Run.
func NewSession(log *slog.Logger, url string, emitter events.Emitter) *Session {
	if url == "" {
		url = DefaultURL
	}
	return &Session{
		log:     log,
		url:     url,
		dialer:  websocket.DefaultDialer,
		emitter: emitter,
		backoff: minBackoff,
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// OnRevoke задаёт обработчик отозванных подписок. Вызывать до Run.
func (s *Session) OnRevoke(fn func(id string)) {
	s.onRevoke = fn
}

// OnLost задаёт обработчик потери установленной сессии. Вызывать до Run.
// Twitch удаляет websocket-подписки вместе с сессией.
func (s *Session) OnLost(fn func()) {
	s.onLost = fn
}

// ID ждёт session_welcome и возвращает id текущей сессии.
func (s *Session) ID(ctx context.Context) (string, error) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return "", ErrSessionClosed
		}
		if s.id != "" {
			id := s.id
			s.mu.Unlock()
			return id, nil
		}
		ready := s.ready
		s.mu.Unlock()

		select {
		case <-ready:
		case <-s.done:
			return "", ErrSessionClosed
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Run держит сессию до отмены ctx, переподключаясь с экспоненциальной паузой.
// session_reconnect переводит сессию на новый адрес без потери подписок.
func (s *Session) Run(ctx context.Context) error {
	defer s.close()

	url := s.url
	backoff := s.backoff
	for {
		next, err := s.serve(ctx, url)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			s.log.Info("eventsub: сервер запросил переподключение", "url", next)
			url = next
			continue
		}

		if s.lost() {
			backoff = s.backoff
		}
		url = s.url

		s.log.Warn("eventsub: соединение потеряно", "error", err, "retry_in", backoff)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

func (s *Session) serve(ctx context.Context, url string) (string, error) {
	conn, _, err := s.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return "", fmt.Errorf("eventsub: dial %s: %w", url, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			return "", fmt.Errorf("eventsub: read: %w", err)
		}

		switch msg.Metadata.MessageType {
		case messageWelcome:
			var payload sessionPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				return "", fmt.Errorf("eventsub: decode welcome: %w", err)
			}
			s.setID(payload.Session.ID)
			s.extendDeadline(conn, payload.Session.KeepaliveTimeoutSeconds)
			s.log.Info("eventsub: сессия установлена", "session_id", payload.Session.ID)
		case messageKeepalive:
			s.extendDeadline(conn, 0)
		case messageReconnect:
			var payload sessionPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				return "", fmt.Errorf("eventsub: decode reconnect: %w", err)
			}
			if payload.Session.ReconnectURL == "" {
				return "", fmt.Errorf("eventsub: reconnect without url")
			}
			return payload.Session.ReconnectURL, nil
		case messageNotification:
			s.extendDeadline(conn, 0)
			s.notify(msg)
		case messageRevocation:
			s.revoke(msg)
		default:
			s.log.Debug("eventsub: сообщение пропущено", "type", msg.Metadata.MessageType)
		}
	}
}

func (s *Session) setID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = id
	select {
	case <-s.ready:
	default:
		close(s.ready)
	}
}

// lost сбрасывает id и сообщает о потере, если сессия успела получить welcome.
func (s *Session) lost() bool {
	s.mu.Lock()
	established := s.id != ""
	s.id = ""
	s.keepalive = 0
	select {
	case <-s.ready:
		s.ready = make(chan struct{})
	default:
	}
	onLost := s.onLost
	s.mu.Unlock()

	if established && onLost != nil {
		onLost()
	}
	return established
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
}

// extendDeadline сдвигает дедлайн чтения; seconds > 0 задаёт новый интервал keepalive.
func (s *Session) extendDeadline(conn *websocket.Conn, seconds int) {
	s.mu.Lock()
	if seconds > 0 {
		s.keepalive = time.Duration(seconds)*time.Second + keepaliveSlack
	}
	keepalive := s.keepalive
	s.mu.Unlock()

	if keepalive > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(keepalive))
	}
}

func (s *Session) notify(msg message) {
	var payload notificationPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Warn("eventsub: уведомление отброшено", "error", err)
		return
	}
	if s.emitter == nil {
		return
	}
	notification := Notification{
		Type:      payload.Subscription.Type,
		Condition: payload.Subscription.Condition,
		Event:     payload.Event,
	}
	if err := s.emitter.Emit(events.EventSub, notification); err != nil {
		s.log.Warn("eventsub: не удалось отправить уведомление в UI", "error", err)
	}
}

func (s *Session) revoke(msg message) {
	var payload notificationPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Warn("eventsub: revocation отброшен", "error", err)
		return
	}
	s.log.Warn("eventsub: подписка отозвана",
		"subscription_id", payload.Subscription.ID,
		"type", payload.Subscription.Type,
		"status", payload.Subscription.Status,
	)
	if s.onRevoke != nil {
		s.onRevoke(payload.Subscription.ID)
	}
}
