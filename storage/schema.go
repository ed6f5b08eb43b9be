package storage

import (
	"context"
	"fmt"
)

const schema = `
create table if not exists chat_history (
  message_id    text primary key,
  channel       text not null,
  channel_id    text,
  user_id       text,
  username      text,
  display_name  text,
  text          text not null,
  badges        jsonb,
  color         text,
  is_mod        boolean not null default false,
  is_subscriber boolean not null default false,
  bits          integer not null default 0,
  sent_at       timestamptz not null
);
create index if not exists chat_history_channel_sent_at on chat_history (channel, sent_at desc);

create table if not exists channel_notices (
  id        bigserial primary key,
  channel   text not null,
  msg_id    text,
  message   text,
  tags      jsonb,
  notice_at timestamptz not null
);`

// Migrate создаёт таблицы архива, если их ещё нет.
func Migrate(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
