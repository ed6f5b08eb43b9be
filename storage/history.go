package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	"twitch-chat-client/model"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// History читает архив сообщений канала.
type History struct {
	db      querier
	timeout time.Duration
}

// NewHistory создаёт History поверх пула.
func NewHistory(db querier, timeout time.Duration) *History {
	return &History{db: db, timeout: timeout}
}

const selectRecent = `
select message_id, channel, coalesce(channel_id, ''), coalesce(user_id, ''), coalesce(username, ''),
  coalesce(display_name, ''), text, badges, coalesce(color, ''), is_mod, is_subscriber, bits, sent_at
from chat_history
where channel = $1
order by sent_at desc
limit $2;`

// Recent возвращает последние limit сообщений канала, от старых к новым.
func (h *History) Recent(ctx context.Context, channel string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		return nil, nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	rows, err := h.db.Query(dbCtx, selectRecent, channel, limit)
	if err != nil {
		return nil, fmt.Errorf("recent messages: query: %w", err)
	}

	messages, err := pgx.CollectRows(rows, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("recent messages: scan: %w", err)
	}

	slices.Reverse(messages)
	return messages, nil
}

func scanMessage(row pgx.CollectableRow) (model.ChatMessage, error) {
	var (
		msg    model.ChatMessage
		badges []byte
	)
	err := row.Scan(
		&msg.ID, &msg.Channel, &msg.ChannelID, &msg.UserID, &msg.Username,
		&msg.DisplayName, &msg.Text, &badges, &msg.Color, &msg.IsMod, &msg.IsSubscriber, &msg.Bits, &msg.SentAt,
	)
	if err != nil {
		return model.ChatMessage{}, err
	}
	if len(badges) > 0 {
		if err := json.Unmarshal(badges, &msg.Badges); err != nil {
			return model.ChatMessage{}, fmt.Errorf("decode badges: %w", err)
		}
	}
	return msg, nil
}
