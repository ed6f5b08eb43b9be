package service

import (
	"context"
	"log/slog"

	"twitch-chat-client/model"
)

// ChatArchive принимает сообщения чата для асинхронной записи.
type ChatArchive interface {
	Enqueue(model.ChatMessage) bool
}

// NoticeArchive сохраняет notice-события.
type NoticeArchive interface {
	Save(ctx context.Context, notice model.Notice) error
}

// ArchiveHandler реализует twitch.Handler и перенаправляет события в архив.
// Если архив не настроен, события отбрасываются.
type ArchiveHandler struct {
	log     *slog.Logger
	chat    ChatArchive
	notices NoticeArchive
}

// NewArchiveHandler собирает ArchiveHandler, используемый IRC колбэками.
func NewArchiveHandler(log *slog.Logger, chat ChatArchive, notices NoticeArchive) *ArchiveHandler {
	return &ArchiveHandler{log: log, chat: chat, notices: notices}
}

// HandleChat помещает сообщение чата в очередь батчера.
func (h *ArchiveHandler) HandleChat(_ context.Context, msg model.ChatMessage) {
	if h.chat == nil {
		return
	}
	if ok := h.chat.Enqueue(msg); !ok {
		h.log.Debug("батчер: сообщение отброшено", "channel", msg.Channel)
	}
}

// HandleNotice сохраняет notice-событие напрямую.
func (h *ArchiveHandler) HandleNotice(ctx context.Context, notice model.Notice) {
	if h.notices == nil {
		return
	}
	if err := h.notices.Save(ctx, notice); err != nil {
		h.log.Error("ошибка сохранения NOTICE", "channel", notice.Channel, "error", err)
	}
}
