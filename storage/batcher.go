package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"twitch-chat-client/model"
)

// BatchConfig задаёт параметры батчинга для записи архива чата.
type BatchConfig struct {
	MaxBatch      int
	FlushEvery    time.Duration
	ChanBuffer    int
	StatsLogEvery time.Duration
	FlushTimeout  time.Duration
}

// Batcher асинхронно архивирует сообщения чата через pgx.Batch.
type Batcher struct {
	log     *slog.Logger
	input   chan model.ChatMessage
	config  BatchConfig
	sender  batchSender
	dropped atomic.Uint64
	done    chan struct{}
}

type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

const insertMessage = `
insert into chat_history (
  message_id, channel, channel_id, user_id, username, display_name, text, badges, color,
  is_mod, is_subscriber, bits, sent_at
) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
on conflict (message_id) do nothing;`

// NewBatcher создаёт батчер и запускает фоновые флаши.
func NewBatcher(ctx context.Context, log *slog.Logger, pool *pgxpool.Pool, cfg BatchConfig) *Batcher {
	return newBatcher(ctx, log, pool, cfg)
}

// Enqueue пытается добавить сообщение в очередь; при переполнении возвращает false.
func (b *Batcher) Enqueue(msg model.ChatMessage) bool {
	select {
	case b.input <- msg:
		return true
	default:
		dropped := b.dropped.Add(1)
		if dropped%100 == 0 {
			b.log.Warn("батчер: очередь заполнена", "dropped_total", dropped)
		}
		return false
	}
}

// Dropped возвращает число сообщений, отброшенных из-за переполнения.
func (b *Batcher) Dropped() uint64 {
	return b.dropped.Load()
}

// Done закрывается после финального флаша.
func (b *Batcher) Done() <-chan struct{} {
	return b.done
}

func (b *Batcher) run(ctx context.Context) {
	defer close(b.done)

	flushTicker := time.NewTicker(b.config.FlushEvery)
	statsTicker := time.NewTicker(b.config.StatsLogEvery)
	defer flushTicker.Stop()
	defer statsTicker.Stop()

	var (
		batch            = &pgx.Batch{}
		totalInserted    uint64
		intervalInserted uint64
	)

	flush := func() {
		pending := batch.Len()
		if pending == 0 {
			return
		}

		dbCtx, cancel := context.WithTimeout(context.Background(), b.config.FlushTimeout)
		defer cancel()

		if err := b.sender.SendBatch(dbCtx, batch).Close(); err != nil {
			b.log.Error("ошибка флаша батчера", "pending", pending, "error", err)
		} else {
			totalInserted += uint64(pending)
			intervalInserted += uint64(pending)
		}

		batch = &pgx.Batch{}
	}

	for {
		select {
		case <-ctx.Done():
			b.drain(batch)
			flush()
			b.log.Info("батчер: контекст отменён", "inserted_total", totalInserted)
			return
		case <-flushTicker.C:
			flush()
		case <-statsTicker.C:
			b.log.Info("батчер: статистика",
				"inserted", intervalInserted, "interval", b.config.StatsLogEvery, "inserted_total", totalInserted)
			intervalInserted = 0
		case msg := <-b.input:
			queue(batch, msg)
			if batch.Len() >= b.config.MaxBatch {
				flush()
			}
		}
	}
}

// drain забирает то, что уже лежит в очереди, без ожидания.
func (b *Batcher) drain(batch *pgx.Batch) {
	for {
		select {
		case msg := <-b.input:
			queue(batch, msg)
		default:
			return
		}
	}
}

func queue(batch *pgx.Batch, msg model.ChatMessage) {
	badgesJSON, _ := json.Marshal(msg.Badges)
	batch.Queue(insertMessage,
		msg.ID, msg.Channel, nullable(msg.ChannelID), nullable(msg.UserID), nullable(msg.Username),
		nullable(msg.DisplayName), msg.Text, badgesJSON, nullable(msg.Color),
		msg.IsMod, msg.IsSubscriber, msg.Bits, msg.SentAt.UTC(),
	)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newBatcher(ctx context.Context, log *slog.Logger, sender batchSender, cfg BatchConfig) *Batcher {
	b := &Batcher{
		log:    log,
		input:  make(chan model.ChatMessage, cfg.ChanBuffer),
		config: cfg,
		sender: sender,
		done:   make(chan struct{}),
	}

	go b.run(ctx)

	return b
}
