package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"twitch-chat-client/config"
	"twitch-chat-client/events"
	"twitch-chat-client/eventsub"
	"twitch-chat-client/model"
	"twitch-chat-client/seventv"
	"twitch-chat-client/service"
	"twitch-chat-client/twitch"
)

// chatClient — IRC-транспорт вместе с его жизненным циклом.
type chatClient interface {
	service.ChatTransport
	SetToken(token model.UserToken)
	Run(ctx context.Context) error
}

// ircChat собирает chatClient поверх go-twitch-irc.
func ircChat(address string, handler twitch.Handler) func(*slog.Logger, model.UserToken) chatClient {
	return func(log *slog.Logger, token model.UserToken) chatClient {
		return twitch.NewClient(log, token, address, handler)
	}
}

// providers запускает IRC, EventSub и 7TV для текущего пользователя и
// перезапускает их при смене пользователя.
type providers struct {
	log     *slog.Logger
	cfg     config.Config
	session *service.Session
	helix   *twitch.Helix
	emitter events.Emitter
	newChat func(*slog.Logger, model.UserToken) chatClient

	mu     sync.Mutex
	user   model.UserToken
	chat   chatClient
	cancel context.CancelFunc
	done   chan struct{}
}

// start поднимает клиентов от имени token. Тот же пользователь с новым токеном
// не перезапускает их: каналы, в которые выполнен вход, сохраняются.
func (p *providers) start(parent context.Context, token model.UserToken) {
	if p.refresh(token) {
		return
	}
	p.stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithCancel(parent)
	log := p.log.With("login", token.Login)
	g, gctx := errgroup.WithContext(ctx)

	irc := p.newChat(log, token)
	p.session.SetChat(irc)
	g.Go(func() error { return ignoreCanceled(irc.Run(gctx)) })

	if p.cfg.EventSub.Enabled {
		ws := eventsub.NewSession(log.With("component", "eventsub"), p.cfg.EventSub.URL, p.emitter)
		client := eventsub.NewClient(log.With("component", "eventsub"), p.helix, ws, p.session.Token)
		ws.OnRevoke(client.Revoke)
		ws.OnLost(client.Reset)
		p.session.SetEventSub(client)
		g.Go(func() error { return ws.Run(gctx) })
	}

	if p.cfg.SevenTV.Enabled {
		client := seventv.NewClient(log.With("component", "seventv"), p.cfg.SevenTV.URL, p.emitter)
		p.session.SetCosmetics(client)
		g.Go(func() error { return client.Run(gctx) })
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := g.Wait(); err != nil {
			log.Error("клиенты Twitch остановлены с ошибкой", "error", err)
		}
	}()

	p.user = token
	p.chat = irc
	p.cancel = cancel
	p.done = done
	log.Info("клиенты Twitch запущены",
		"eventsub", p.cfg.EventSub.Enabled,
		"seventv", p.cfg.SevenTV.Enabled,
	)
}

// refresh передаёт новый токен работающему IRC-клиенту того же пользователя.
func (p *providers) refresh(token model.UserToken) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel == nil || p.user.UserID != token.UserID || p.user.Login != token.Login {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
	}
	p.chat.SetToken(token)
	p.user = token
	p.log.Info("токен обновлён, клиенты Twitch продолжают работу", "login", token.Login)
	return true
}

// stop гасит текущий набор клиентов и снимает их из Session.
func (p *providers) stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.user, p.chat = model.UserToken{}, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	p.session.SetChat(nil)
	p.session.SetEventSub(nil)
	p.session.SetCosmetics(nil)
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
