package eventsub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"twitch-chat-client/model"
	"twitch-chat-client/twitch"
)

// ErrNoToken возвращается, если в сессии нет пользовательского токена.
var ErrNoToken = errors.New("eventsub: no user token")

const transportWebsocket = "websocket"

type subscriptionAPI interface {
	CreateEventSubSubscription(ctx context.Context, token model.UserToken, req twitch.CreateSubscriptionRequest) (string, error)
	DeleteEventSubSubscription(ctx context.Context, token model.UserToken, id string) error
}

type sessionSource interface {
	ID(ctx context.Context) (string, error)
}

// TokenFunc отдаёт текущий пользовательский токен.
type TokenFunc func() (model.UserToken, bool)

type tracked struct {
	id    string
	entry model.EventSubscriptionEntry
}

// Client создаёт и снимает подписки EventSub и помнит их id по каналам.
type Client struct {
	log     *slog.Logger
	api     subscriptionAPI
	session sessionSource
	token   TokenFunc

	mu   sync.Mutex
	subs map[string][]tracked
}

// NewClient собирает Client поверх Helix и websocket-сессии.
func NewClient(log *slog.Logger, api subscriptionAPI, session sessionSource, token TokenFunc) *Client {
	return &Client{
		log:     log,
		api:     api,
		session: session,
		token:   token,
		subs:    make(map[string][]tracked),
	}
}

// SubscribeAll создаёт каждую подписку; ошибки отдельных подписок объединяются.
func (c *Client) SubscribeAll(ctx context.Context, login string, entries []model.EventSubscriptionEntry) error {
	token, ok := c.token()
	if !ok {
		return ErrNoToken
	}
	sessionID, err := c.session.ID(ctx)
	if err != nil {
		return fmt.Errorf("eventsub: subscribe %s: session: %w", login, err)
	}

	c.mu.Lock()
	existing := lo.SliceToMap(c.subs[login], func(t tracked) (string, struct{}) {
		return t.entry.Key(), struct{}{}
	})
	c.mu.Unlock()

	var errs []error
	created := make([]tracked, 0, len(entries))
	for _, entry := range entries {
		if _, ok := existing[entry.Key()]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		id, err := c.api.CreateEventSubSubscription(ctx, token, twitch.CreateSubscriptionRequest{
			Type:      string(entry.Type),
			Version:   entry.Type.Version(),
			Condition: entry.Condition,
			Transport: twitch.SubscriptionTransport{Method: transportWebsocket, SessionID: sessionID},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("eventsub: subscribe %s %s: %w", login, entry.Type, err))
			continue
		}
		created = append(created, tracked{id: id, entry: entry})
	}

	c.mu.Lock()
	c.subs[login] = append(c.subs[login], created...)
	c.mu.Unlock()

	c.log.Debug("eventsub: подписки созданы", "channel", login, "created", len(created), "failed", len(errs))

	return errors.Join(errs...)
}

// UnsubscribeAll снимает все подписки канала и возвращает реально снятые.
// Не снятые подписки остаются отслеживаемыми.
func (c *Client) UnsubscribeAll(ctx context.Context, login string) ([]model.EventSubscriptionEntry, error) {
	token, ok := c.token()
	if !ok {
		return nil, ErrNoToken
	}

	c.mu.Lock()
	subs := c.subs[login]
	delete(c.subs, login)
	c.mu.Unlock()

	var errs []error
	var kept []tracked
	removed := make([]model.EventSubscriptionEntry, 0, len(subs))
	for _, sub := range subs {
		if err := c.api.DeleteEventSubSubscription(ctx, token, sub.id); err != nil {
			errs = append(errs, fmt.Errorf("eventsub: unsubscribe %s %s: %w", login, sub.entry.Type, err))
			kept = append(kept, sub)
			continue
		}
		removed = append(removed, sub.entry)
	}

	if len(kept) > 0 {
		c.mu.Lock()
		c.subs[login] = append(kept, c.subs[login]...)
		c.mu.Unlock()
	}

	return removed, errors.Join(errs...)
}

// Revoke забывает подписку, отозванную Twitch.
func (c *Client) Revoke(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for login, subs := range c.subs {
		rest := lo.Reject(subs, func(t tracked, _ int) bool { return t.id == id })
		if len(rest) == len(subs) {
			continue
		}
		if len(rest) == 0 {
			delete(c.subs, login)
		} else {
			c.subs[login] = rest
		}
		return
	}
}

// Reset забывает все подписки: Twitch удаляет их вместе с потерянной сессией.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.subs) > 0 {
		c.log.Info("eventsub: сессия потеряна, подписки сброшены", "channels", len(c.subs))
	}
	c.subs = make(map[string][]tracked)
}

// Tracked возвращает отслеживаемые подписки канала.
func (c *Client) Tracked(login string) []model.EventSubscriptionEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return lo.Map(c.subs[login], func(t tracked, _ int) model.EventSubscriptionEntry { return t.entry })
}
