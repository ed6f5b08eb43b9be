package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"golang.org/x/sync/errgroup"

	"twitch-chat-client/auth"
	"twitch-chat-client/config"
	"twitch-chat-client/events"
	"twitch-chat-client/model"
	"twitch-chat-client/service"
	"twitch-chat-client/shell"
	"twitch-chat-client/storage"
	"twitch-chat-client/tokens"
	"twitch-chat-client/twitch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chat-client: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	archive, history, closeArchive, err := openArchive(ctx, log, cfg, g)
	if err != nil {
		return err
	}
	defer closeArchive()

	emitter := events.NewWriter(os.Stdout)
	session := service.NewSession()
	dispatcher := service.NewDispatcher(log, cfg.FanoutWorkers)
	helix := twitch.NewHelix(log, cfg.Twitch.HelixURL, nil)
	tokenManager := tokens.NewManager(tokens.FileTokenStore{Path: cfg.Twitch.TokenFile})

	opts := service.Options{
		Validator: auth.NewValidator(cfg.Twitch.OAuthURL, nil),
		Tokens:    tokenManager,
		Emotes:    helix,
		Emitter:   emitter,
	}
	if history != nil {
		opts.History = history
	}
	orchestrator := service.NewOrchestrator(log, session, dispatcher, opts)

	clients := &providers{
		log:     log,
		cfg:     cfg,
		session: session,
		helix:   helix,
		emitter: emitter,
		newChat: ircChat(cfg.Twitch.IRCAddress, archive),
	}
	onToken := func(ctx context.Context, _ model.TokenInfo) {
		token, ok := session.Token()
		if !ok {
			return
		}
		if cfg.Twitch.Username != "" && cfg.Twitch.Username != token.Login {
			log.Warn("токен выдан другому пользователю", "expected", cfg.Twitch.Username, "login", token.Login)
		}
		clients.start(ctx, token)
	}

	restoreToken(ctx, log, cfg, tokenManager, orchestrator, onToken)

	sh := shell.New(log, orchestrator, emitter, shell.Options{
		HistoryEnabled: cfg.History.Enabled && history != nil,
		HistoryLimit:   cfg.History.Limit,
		AfterToken:     onToken,
		AfterLogout:    clients.stop,
	})
	go func() {
		if err := sh.Run(ctx, os.Stdin); err != nil {
			log.Error("ошибка чтения команд", "error", err)
		}
		log.Info("ввод команд закрыт, завершение")
		cancel()
	}()

	g.Go(func() error {
		<-ctx.Done()
		clients.stop()
		dispatcher.Close()
		return nil
	})

	log.Info("клиент запущен", "archive", history != nil)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("завершение работы")
	return nil
}

// openArchive поднимает пул Postgres, батчер и чтение истории. Без POSTGRES_HOST архив выключен.
func openArchive(ctx context.Context, log *slog.Logger, cfg config.Config, g *errgroup.Group) (*service.ArchiveHandler, *storage.History, func(), error) {
	if !cfg.Postgres.Enabled() {
		log.Warn("POSTGRES_HOST не задан, архив чата отключён")
		return service.NewArchiveHandler(log, nil, nil), nil, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := storage.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	batcher := storage.NewBatcher(ctx, log, pool, storage.BatchConfig{
		MaxBatch:      cfg.Batch.MaxBatch,
		FlushEvery:    cfg.Batch.FlushEvery,
		ChanBuffer:    cfg.Batch.ChanBuffer,
		StatsLogEvery: cfg.Batch.StatsLogEvery,
		FlushTimeout:  cfg.Batch.FlushTimeout,
	})
	g.Go(func() error {
		<-batcher.Done()
		return nil
	})

	notices := storage.NewNoticeStore(pool, cfg.Batch.FlushTimeout)
	history := storage.NewHistory(pool, cfg.Batch.FlushTimeout)

	return service.NewArchiveHandler(log, batcher, notices), history, pool.Close, nil
}

// restoreToken устанавливает токен из окружения или из TOKEN_FILE.
func restoreToken(
	ctx context.Context,
	log *slog.Logger,
	cfg config.Config,
	manager *tokens.Manager,
	orchestrator *service.Orchestrator,
	onToken func(context.Context, model.TokenInfo),
) {
	raw := cfg.Twitch.AccessToken
	if raw == "" {
		restored, err := manager.Restore()
		if err != nil {
			if !errors.Is(err, tokens.ErrNoToken) {
				log.Warn("не удалось прочитать сохранённый токен", "error", err)
			}
			log.Info("токен не задан, ожидается команда token")
			return
		}
		raw = restored
	}

	info, err := orchestrator.SetToken(ctx, raw)
	if err != nil {
		log.Warn("сохранённый токен отклонён", "error", err)
		return
	}
	onToken(ctx, *info)
}
