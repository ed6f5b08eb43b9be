package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"twitch-chat-client/config"
	"twitch-chat-client/model"
	"twitch-chat-client/service"
)

type fakeChat struct {
	mu     sync.Mutex
	token  model.UserToken
	joined []string
	fail   error
}

func (f *fakeChat) Join(login string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joined = append(f.joined, login)
}

func (f *fakeChat) Part(string) {}

func (f *fakeChat) SetToken(token model.UserToken) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeChat) Run(ctx context.Context) error {
	if f.fail != nil {
		return f.fail
	}
	<-ctx.Done()
	return ctx.Err()
}

func newTestProviders(session *service.Session) (*providers, *[]*fakeChat) {
	var built []*fakeChat
	p := &providers{
		log:     slog.New(slog.DiscardHandler),
		cfg:     config.Config{},
		session: session,
		newChat: func(_ *slog.Logger, token model.UserToken) chatClient {
			chat := &fakeChat{token: token}
			built = append(built, chat)
			return chat
		},
	}
	return p, &built
}

func TestProvidersKeepChatForSameUser(t *testing.T) {
	req := require.New(t)
	session := service.NewSession()
	p, built := newTestProviders(session)
	defer p.stop()

	first := model.UserToken{UserID: "1", Login: "foo", AccessToken: "old"}
	p.start(context.Background(), first)
	session.Snapshot().Chat.Join("bar")

	refreshed := model.UserToken{UserID: "1", Login: "foo", AccessToken: "new"}
	p.start(context.Background(), refreshed)

	req.Len(*built, 1)
	chat := (*built)[0]
	req.Same(chat, session.Snapshot().Chat)
	req.Equal([]string{"bar"}, chat.joined)
	req.Equal("new", chat.token.AccessToken)
}

func TestProvidersRestartForOtherUser(t *testing.T) {
	req := require.New(t)
	session := service.NewSession()
	p, built := newTestProviders(session)
	defer p.stop()

	p.start(context.Background(), model.UserToken{UserID: "1", Login: "foo"})
	p.start(context.Background(), model.UserToken{UserID: "2", Login: "baz"})

	req.Len(*built, 2)
	req.Same((*built)[1], session.Snapshot().Chat)
}

func TestProvidersStartAfterStop(t *testing.T) {
	req := require.New(t)
	session := service.NewSession()
	p, built := newTestProviders(session)

	token := model.UserToken{UserID: "1", Login: "foo"}
	p.start(context.Background(), token)
	p.stop()
	req.Nil(session.Snapshot().Chat)

	p.start(context.Background(), token)
	defer p.stop()

	req.Len(*built, 2)
	req.Same((*built)[1], session.Snapshot().Chat)
}

func TestProvidersRestartSameUserAfterFailure(t *testing.T) {
	req := require.New(t)
	session := service.NewSession()
	p, built := newTestProviders(session)
	build := p.newChat
	p.newChat = func(log *slog.Logger, token model.UserToken) chatClient {
		chat := build(log, token).(*fakeChat)
		if len(*built) == 1 {
			chat.fail = errors.New("login authentication failed")
		}
		return chat
	}
	defer p.stop()

	token := model.UserToken{UserID: "1", Login: "foo"}
	p.start(context.Background(), token)
	req.Eventually(func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		select {
		case <-p.done:
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	p.start(context.Background(), token)

	req.Len(*built, 2)
	req.Same((*built)[1], session.Snapshot().Chat)
}
