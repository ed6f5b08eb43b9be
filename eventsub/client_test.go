package eventsub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"twitch-chat-client/model"
	"twitch-chat-client/policy"
	"twitch-chat-client/twitch"
)

type fakeAPI struct {
	mu        sync.Mutex
	next      int
	created   []twitch.CreateSubscriptionRequest
	deleted   []string
	failTypes map[string]bool
	failIDs   map[string]bool
}

func (f *fakeAPI) CreateEventSubSubscription(_ context.Context, _ model.UserToken, req twitch.CreateSubscriptionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failTypes[req.Type] {
		return "", errors.New("forbidden")
	}
	f.next++
	f.created = append(f.created, req)
	return fmt.Sprintf("sub-%d", f.next), nil
}

func (f *fakeAPI) DeleteEventSubSubscription(_ context.Context, _ model.UserToken, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failIDs[id] {
		return errors.New("unavailable")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fixedSession string

func (s fixedSession) ID(context.Context) (string, error) { return string(s), nil }

func newTestClient(api *fakeAPI) *Client {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	token := func() (model.UserToken, bool) { return model.UserToken{UserID: "u1"}, true }
	return NewClient(log, api, fixedSession("session-1"), token)
}

func TestSubscribeAllCreatesEveryEntry(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{}
	client := newTestClient(api)
	entries := policy.Compute(
		model.ChannelIdentity{BroadcasterID: "1", Login: "foo"},
		model.ActorContext{UserID: "2", IsModerator: true},
	)

	req.NoError(client.SubscribeAll(context.Background(), "foo", entries))

	req.Len(api.created, len(entries))
	req.Equal("websocket", api.created[0].Transport.Method)
	req.Equal("session-1", api.created[0].Transport.SessionID)
	req.Equal(entries, client.Tracked("foo"))
}

func TestSubscribeAllSkipsTrackedEntries(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{}
	client := newTestClient(api)
	entries := policy.Compute(model.ChannelIdentity{BroadcasterID: "1", Login: "foo"}, model.ActorContext{UserID: "2"})

	req.NoError(client.SubscribeAll(context.Background(), "foo", entries))
	req.NoError(client.SubscribeAll(context.Background(), "foo", entries))

	req.Len(api.created, len(entries))
	req.Len(client.Tracked("foo"), len(entries))
}

func TestSubscribeAllCombinesFailures(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{failTypes: map[string]bool{
		string(model.ChannelUpdate): true,
		string(model.StreamOffline): true,
	}}
	client := newTestClient(api)
	entries := policy.Compute(model.ChannelIdentity{BroadcasterID: "1", Login: "foo"}, model.ActorContext{UserID: "2"})

	err := client.SubscribeAll(context.Background(), "foo", entries)

	req.Error(err)
	req.Contains(err.Error(), string(model.StreamOffline))
	req.Len(client.Tracked("foo"), len(entries)-2)
}

func TestSubscribeAllWithoutToken(t *testing.T) {
	req := require.New(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(log, &fakeAPI{}, fixedSession("s"), func() (model.UserToken, bool) { return model.UserToken{}, false })

	req.ErrorIs(client.SubscribeAll(context.Background(), "foo", nil), ErrNoToken)
	_, err := client.UnsubscribeAll(context.Background(), "foo")
	req.ErrorIs(err, ErrNoToken)
}

func TestUnsubscribeAllReturnsRemovedAndKeepsFailed(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{}
	client := newTestClient(api)
	entries := policy.Compute(model.ChannelIdentity{BroadcasterID: "1", Login: "foo"}, model.ActorContext{UserID: "2"})
	req.NoError(client.SubscribeAll(context.Background(), "foo", entries))
	api.failIDs = map[string]bool{"sub-1": true}

	removed, err := client.UnsubscribeAll(context.Background(), "foo")

	req.Error(err)
	req.Equal(entries[1:], removed)
	req.Equal(entries[:1], client.Tracked("foo"))

	api.failIDs = nil
	removed, err = client.UnsubscribeAll(context.Background(), "foo")
	req.NoError(err)
	req.Equal(entries[:1], removed)
	req.Empty(client.Tracked("foo"))
}

func TestUnsubscribeAllUnknownChannel(t *testing.T) {
	req := require.New(t)
	client := newTestClient(&fakeAPI{})

	removed, err := client.UnsubscribeAll(context.Background(), "nobody")

	req.NoError(err)
	req.Empty(removed)
}

func TestRevokeForgetsSubscription(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{}
	client := newTestClient(api)
	entries := policy.Compute(model.ChannelIdentity{BroadcasterID: "1", Login: "foo"}, model.ActorContext{UserID: "2"})
	req.NoError(client.SubscribeAll(context.Background(), "foo", entries))

	client.Revoke("sub-2")

	req.Len(client.Tracked("foo"), len(entries)-1)
	req.NotContains(client.Tracked("foo"), entries[1])
}

func TestUnsubscribeAllTreatsMissingSubscriptionAsRemoved(t *testing.T) {
	req := require.New(t)

	// Twitch уже удалил подписки вместе с сессией: DELETE отвечает 404.
	var next int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			next++
			w.WriteHeader(http.StatusAccepted)
			_, _ = fmt.Fprintf(w, `{"data":[{"id":"x%d","status":"enabled"}]}`, next)
		case http.MethodDelete:
			http.Error(w, `{"error":"Not Found","status":404}`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	helix := twitch.NewHelix(log, srv.URL, srv.Client())
	token := func() (model.UserToken, bool) { return model.UserToken{UserID: "u1"}, true }
	client := NewClient(log, helix, fixedSession("session-1"), token)
	entries := policy.Compute(model.ChannelIdentity{BroadcasterID: "1", Login: "foo"}, model.ActorContext{UserID: "2"})
	req.NoError(client.SubscribeAll(context.Background(), "foo", entries))

	removed, err := client.UnsubscribeAll(context.Background(), "foo")

	req.NoError(err)
	req.Equal(entries, removed)
	req.Empty(client.Tracked("foo"))
}

func TestResetForgetsEveryChannel(t *testing.T) {
	req := require.New(t)
	api := &fakeAPI{}
	client := newTestClient(api)
	foo := policy.Compute(model.ChannelIdentity{BroadcasterID: "1", Login: "foo"}, model.ActorContext{UserID: "2"})
	bar := policy.Compute(model.ChannelIdentity{BroadcasterID: "3", Login: "bar"}, model.ActorContext{UserID: "2"})
	req.NoError(client.SubscribeAll(context.Background(), "foo", foo))
	req.NoError(client.SubscribeAll(context.Background(), "bar", bar))

	client.Reset()

	req.Empty(client.Tracked("foo"))
	req.Empty(client.Tracked("bar"))
	removed, err := client.UnsubscribeAll(context.Background(), "foo")
	req.NoError(err)
	req.Empty(removed)
	req.Empty(api.deleted)

	req.NoError(client.SubscribeAll(context.Background(), "foo", foo))
	req.Len(api.created, len(foo)*2+len(bar))
}
