package service

import (
	"context"

	"twitch-chat-client/model"
)

//go:generate mockgen -source=contract.go -destination=../mocks/mock_service.go -package=mocks

// ChatTransport — IRC-клиент. Вызовы не блокируют и не возвращают ошибок.
type ChatTransport interface {
	Join(login string)
	Part(login string)
}

// EventSubClient управляет подписками EventSub канала.
type EventSubClient interface {
	SubscribeAll(ctx context.Context, login string, entries []model.EventSubscriptionEntry) error
	// UnsubscribeAll возвращает подписки, которые действительно были сняты.
	UnsubscribeAll(ctx context.Context, login string) ([]model.EventSubscriptionEntry, error)
}

// CosmeticsClient управляет подписками 7TV канала.
type CosmeticsClient interface {
	Subscribe(ctx context.Context, login, topic string, condition model.Condition) error
	UnsubscribeAll(ctx context.Context, login string) error
}

// TokenValidator обменивает сырой токен на провалидированный UserToken.
type TokenValidator interface {
	Validate(ctx context.Context, raw string) (model.UserToken, error)
}

// TokenRecorder сохраняет последний валидный токен между запусками.
type TokenRecorder interface {
	SaveUserToken(raw string) error
	ClearUserToken() error
}

// EmoteSource отдаёт инвентарь эмоутов пользователя постранично.
type EmoteSource interface {
	UserEmotes(token model.UserToken) model.Pager[model.Emote]
}

// HistoryReader читает архив сообщений канала.
type HistoryReader interface {
	Recent(ctx context.Context, channel string, limit int) ([]model.ChatMessage, error)
}

// Emitter публикует именованные события для UI.
type Emitter interface {
	Emit(name string, payload any) error
}
