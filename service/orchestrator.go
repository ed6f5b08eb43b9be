package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"twitch-chat-client/events"
	"twitch-chat-client/ledger"
	"twitch-chat-client/model"
	"twitch-chat-client/policy"
)

// JoinRequest содержит параметры входа в канал.
type JoinRequest struct {
	BroadcasterID   string `validate:"required"`
	Login           string `validate:"required"`
	EmoteSetID      *string
	CosmeticsUserID *string
	IsModerator     bool
}

// RecentMessages — payload события recentmessages.
type RecentMessages struct {
	Channel  string              `json:"channel"`
	Messages []model.ChatMessage `json:"messages"`
}

// Options содержит зависимости Orchestrator, не входящие в Session.
type Options struct {
	Validator TokenValidator
	Tokens    TokenRecorder
	Emotes    EmoteSource
	History   HistoryReader
	Emitter   Emitter
}

// Orchestrator приводит IRC, EventSub и 7TV в согласованное состояние при join/leave/rejoin.
type Orchestrator struct {
	log        *slog.Logger
	session    *Session
	dispatcher *Dispatcher
	ledger     *ledger.Ledger
	locks      *channelLocks
	validate   *validator.Validate
	opts       Options
}

// NewOrchestrator собирает Orchestrator.
func NewOrchestrator(log *slog.Logger, session *Session, dispatcher *Dispatcher, opts Options) *Orchestrator {
	return &Orchestrator{
		log:        log,
		session:    session,
		dispatcher: dispatcher,
		ledger:     ledger.New(),
		locks:      newChannelLocks(),
		validate:   validator.New(),
		opts:       opts,
	}
}

// Join входит в канал. IRC join выполняется синхронно и не зависит от результата
// подписок EventSub и 7TV, которые уходят в фон и только логируют ошибки.
func (o *Orchestrator) Join(ctx context.Context, req JoinRequest) error {
	const op = "join"

	req.Login = NormalizeLogin(req.Login)
	if err := o.validate.Struct(req); err != nil {
		return newError(KindInvalid, op, req.Login, err)
	}

	opID := uuid.NewString()
	log := o.log.With("op", op, "op_id", opID, "channel", req.Login)
	log.Info("вход в канал")

	snap := o.session.Snapshot()
	if snap.Token == nil {
		log.Error("нет токена доступа")
		return newError(KindPrecondition, op, req.Login, ErrNoToken)
	}
	if snap.Chat == nil {
		log.Error("нет IRC соединения")
		return newError(KindPrecondition, op, req.Login, ErrNoChat)
	}

	release, err := o.locks.acquire(ctx, req.Login)
	if err != nil {
		return newError(KindCanceled, op, req.Login, err)
	}

	channel := model.ChannelIdentity{BroadcasterID: req.BroadcasterID, Login: req.Login}
	actor := model.ActorContext{UserID: snap.Token.UserID, IsModerator: req.IsModerator}
	scope := model.CosmeticsScope{EmoteSetID: req.EmoteSetID, CosmeticsUserID: req.CosmeticsUserID}

	if snap.EventSub == nil && snap.Cosmetics == nil {
		log.Warn("EventSub и 7TV не настроены, только чат",
			"error", newError(KindProviderUnavailable, op, req.Login, errors.Join(ErrNoEventSub, ErrNoCosmetics)))
		o.ledger.Remove(req.Login)
		release()
	} else {
		fanoutCtx := context.WithoutCancel(ctx)
		accepted := o.dispatcher.Go("join-fanout", []any{"op_id", opID, "channel", req.Login}, func() error {
			defer release()
			return o.fanOut(fanoutCtx, log, snap, channel, actor, scope)
		})
		if !accepted {
			release()
		}
	}

	snap.Chat.Join(req.Login)

	return nil
}

func (o *Orchestrator) fanOut(
	ctx context.Context,
	log *slog.Logger,
	snap Snapshot,
	channel model.ChannelIdentity,
	actor model.ActorContext,
	scope model.CosmeticsScope,
) error {
	var errs []error

	if snap.EventSub != nil {
		entries := policy.Compute(channel, actor)
		if err := snap.EventSub.SubscribeAll(ctx, channel.Login, entries); err != nil {
			errs = append(errs, newError(KindSubscription, "join", channel.Login, err))
		} else {
			log.Debug("подписки EventSub созданы", "count", len(entries))
		}
		o.ledger.Replace(channel.Login, entries)
	} else {
		log.Warn("EventSub не настроен, подписки пропущены",
			"error", newError(KindProviderUnavailable, "join", channel.Login, ErrNoEventSub))
		o.ledger.Remove(channel.Login)
	}

	if snap.Cosmetics != nil {
		for _, sub := range policy.ComputeCosmetics(channel, scope) {
			if err := snap.Cosmetics.Subscribe(ctx, channel.Login, sub.Topic, sub.Condition); err != nil {
				errs = append(errs, newError(KindCosmetics, "join", channel.Login, fmt.Errorf("%s: %w", sub.Topic, err)))
			}
		}
	} else {
		log.Debug("7TV не настроен, подписки пропущены",
			"error", newError(KindProviderUnavailable, "join", channel.Login, ErrNoCosmetics))
	}

	return errors.Join(errs...)
}

// Leave выходит из канала. Ошибка отписки EventSub прерывает leave до выхода из чата,
// ошибки 7TV только логируются.
func (o *Orchestrator) Leave(ctx context.Context, login string) error {
	const op = "leave"

	login = NormalizeLogin(login)
	if login == "" {
		return newError(KindInvalid, op, login, errors.New("login is required"))
	}

	log := o.log.With("op", op, "op_id", uuid.NewString(), "channel", login)
	log.Info("выход из канала")

	release, err := o.locks.acquire(ctx, login)
	if err != nil {
		return newError(KindCanceled, op, login, err)
	}
	defer release()

	snap := o.session.Snapshot()

	if snap.EventSub != nil {
		if _, err := snap.EventSub.UnsubscribeAll(ctx, login); err != nil {
			log.Error("не удалось отписаться от EventSub", "error", err)
			return newError(KindSubscription, op, login, err)
		}
	}

	if snap.Cosmetics != nil {
		if err := snap.Cosmetics.UnsubscribeAll(ctx, login); err != nil {
			log.Warn("не удалось отписаться от 7TV", "error", err)
		}
	}

	if snap.Chat != nil {
		snap.Chat.Part(login)
	} else {
		log.Warn("нет IRC соединения, part пропущен")
	}

	o.ledger.Remove(login)

	return nil
}

// Rejoin восстанавливает ровно тот набор подписок, который сейчас активен на EventSub,
// не пересчитывая его заново, и только потом входит в чат.
func (o *Orchestrator) Rejoin(ctx context.Context, login string) error {
	const op = "rejoin"

	login = NormalizeLogin(login)
	if login == "" {
		return newError(KindInvalid, op, login, errors.New("login is required"))
	}

	log := o.log.With("op", op, "op_id", uuid.NewString(), "channel", login)
	log.Info("повторный вход в канал")

	release, err := o.locks.acquire(ctx, login)
	if err != nil {
		return newError(KindCanceled, op, login, err)
	}
	defer release()

	snap := o.session.Snapshot()

	if snap.EventSub != nil {
		entries, err := snap.EventSub.UnsubscribeAll(ctx, login)
		if err != nil {
			log.Error("не удалось снять подписки EventSub", "error", err)
			return newError(KindSubscription, op, login, err)
		}

		if len(entries) == 0 {
			if recorded, ok := o.ledger.Get(login); ok && len(recorded) > 0 {
				log.Warn("EventSub не вернул подписок, используется локальная запись", "count", len(recorded))
				entries = recorded
			}
		}

		if len(entries) > 0 {
			if err := snap.EventSub.SubscribeAll(ctx, login, entries); err != nil {
				log.Error("не удалось восстановить подписки EventSub", "error", err)
				return newError(KindSubscription, op, login, err)
			}
			o.ledger.Replace(login, entries)
		}
	}

	if snap.Chat != nil {
		snap.Chat.Join(login)
	} else {
		log.Warn("нет IRC соединения, join пропущен")
	}

	return nil
}

// SetToken валидирует сырой токен. При ошибке токен сессии сбрасывается.
func (o *Orchestrator) SetToken(ctx context.Context, raw string) (*model.TokenInfo, error) {
	const op = "set_token"

	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "oauth:"))

	token, err := o.opts.Validator.Validate(ctx, raw)
	if err != nil {
		o.session.SetToken(nil)
		o.log.Warn("токен не прошёл валидацию", "op", op, "error", err)
		return nil, newError(KindToken, op, "", err)
	}

	o.session.SetToken(&token)
	o.log.Debug("токен установлен", "op", op, "user_id", token.UserID, "login", token.Login)

	if o.opts.Tokens != nil {
		if err := o.opts.Tokens.SaveUserToken(raw); err != nil {
			o.log.Warn("не удалось сохранить токен", "op", op, "error", err)
		}
	}

	info := token.Info()
	return &info, nil
}

// Logout сбрасывает токен, клиенты и сохранённый токен.
func (o *Orchestrator) Logout() {
	o.session.Logout()

	if o.opts.Tokens != nil {
		if err := o.opts.Tokens.ClearUserToken(); err != nil {
			o.log.Warn("не удалось удалить сохранённый токен", "op", "logout", "error", err)
		}
	}
}

// FetchProfileEmotes загружает эмоуты пользователя в фоне и публикует событие useremotes.
// Без токена ничего не делает; ошибки видны только в логах.
func (o *Orchestrator) FetchProfileEmotes(ctx context.Context) {
	const op = "fetch_profile_emotes"

	opID := uuid.NewString()
	log := o.log.With("op", op, "op_id", opID)
	bg := context.WithoutCancel(ctx)

	o.dispatcher.Go(op, []any{"op_id", opID}, func() error {
		token, ok := o.session.Token()
		if !ok {
			return nil
		}

		emotes, err := model.Drain(bg, o.opts.Emotes.UserEmotes(token))
		if err != nil {
			return newError(KindPagination, op, "", err)
		}

		log.Info("получены эмоуты пользователя", "count", len(emotes))

		return o.opts.Emitter.Emit(events.UserEmotes, emotes)
	})
}

// FetchRecentMessages публикует последние сообщения канала из архива.
func (o *Orchestrator) FetchRecentMessages(ctx context.Context, login string, limit int) {
	const op = "fetch_recent_messages"

	login = NormalizeLogin(login)
	if o.opts.History == nil {
		o.log.Debug("архив сообщений отключён", "op", op, "channel", login)
		return
	}

	opID := uuid.NewString()
	bg := context.WithoutCancel(ctx)

	o.dispatcher.Go(op, []any{"op_id", opID, "channel", login}, func() error {
		messages, err := o.opts.History.Recent(bg, login, limit)
		if err != nil {
			return newError(KindHistory, op, login, err)
		}

		return o.opts.Emitter.Emit(events.RecentMessages, RecentMessages{Channel: login, Messages: messages})
	})
}

// NormalizeLogin приводит имя канала к виду, который ожидает IRC.
func NormalizeLogin(login string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(login), "#"))
}
