package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"twitch-chat-client/model"
)

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// NoticeStore сохраняет notice-события канала.
type NoticeStore struct {
	db      execer
	timeout time.Duration
}

// NewNoticeStore создаёт NoticeStore поверх пула.
func NewNoticeStore(db execer, timeout time.Duration) *NoticeStore {
	return &NoticeStore{db: db, timeout: timeout}
}

// Save сохраняет notice-событие с учётом заданного таймаута.
func (s *NoticeStore) Save(ctx context.Context, notice model.Notice) error {
	dbCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tagsJSON, _ := json.Marshal(notice.Tags)

	_, err := s.db.Exec(dbCtx, `
insert into channel_notices (
  channel, msg_id, message, tags, notice_at
) values ($1, $2, $3, $4, $5);
`, notice.Channel, notice.ID, notice.Message, tagsJSON, notice.NoticeAt.UTC())

	return err
}
