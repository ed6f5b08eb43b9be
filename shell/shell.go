package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"twitch-chat-client/events"
	"twitch-chat-client/model"
	"twitch-chat-client/service"
)

// ErrUnknownCommand возвращается для нераспознанной команды.
var ErrUnknownCommand = errors.New("unknown command")

// Commands описывает операции, доступные из командной строки.
type Commands interface {
	Join(ctx context.Context, req service.JoinRequest) error
	Leave(ctx context.Context, login string) error
	Rejoin(ctx context.Context, login string) error
	SetToken(ctx context.Context, raw string) (*model.TokenInfo, error)
	Logout()
	FetchProfileEmotes(ctx context.Context)
	FetchRecentMessages(ctx context.Context, login string, limit int)
}

// Result — payload события result.
type Result struct {
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Options содержит необязательные параметры Shell.
type Options struct {
	HistoryEnabled bool
	HistoryLimit   int
	// AfterToken вызывается после успешного token.
	AfterToken func(ctx context.Context, info model.TokenInfo)
	// AfterLogout вызывается после logout.
	AfterLogout func()
}

// Shell читает команды построчно и публикует их результат событием result.
type Shell struct {
	log     *slog.Logger
	cmds    Commands
	emitter events.Emitter
	opts    Options
}

// New создаёт Shell.
func New(log *slog.Logger, cmds Commands, emitter events.Emitter, opts Options) *Shell {
	return &Shell{log: log, cmds: cmds, emitter: emitter, opts: opts}
}

// Run выполняет команды из r до EOF или отмены ctx.
func (s *Shell) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.emit(s.Execute(ctx, line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("shell: read: %w", err)
	}
	return nil
}

// Execute выполняет одну команду.
func (s *Shell) Execute(ctx context.Context, line string) Result {
	args := strings.Fields(line)
	if len(args) == 0 {
		return Result{Error: ErrUnknownCommand.Error()}
	}
	name, args := args[0], args[1:]

	data, err := s.execute(ctx, name, args)
	if err != nil {
		s.log.Warn("команда завершилась с ошибкой", "command", name, "error", err)
		return Result{Command: name, Error: err.Error()}
	}
	return Result{Command: name, OK: true, Data: data}
}

func (s *Shell) execute(ctx context.Context, name string, args []string) (any, error) {
	switch name {
	case "token":
		return s.token(ctx, args)
	case "join":
		return nil, s.join(ctx, args)
	case "leave":
		login, err := single(name, args)
		if err != nil {
			return nil, err
		}
		return nil, s.cmds.Leave(ctx, login)
	case "rejoin":
		login, err := single(name, args)
		if err != nil {
			return nil, err
		}
		return nil, s.cmds.Rejoin(ctx, login)
	case "emotes":
		s.cmds.FetchProfileEmotes(ctx)
		return nil, nil
	case "history":
		return nil, s.history(ctx, args)
	case "logout":
		s.cmds.Logout()
		if s.opts.AfterLogout != nil {
			s.opts.AfterLogout()
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}

func (s *Shell) token(ctx context.Context, args []string) (any, error) {
	raw, err := single("token", args)
	if err != nil {
		return nil, err
	}
	info, err := s.cmds.SetToken(ctx, raw)
	if err != nil {
		return nil, err
	}
	if s.opts.AfterToken != nil {
		s.opts.AfterToken(ctx, *info)
	}
	return info, nil
}

func (s *Shell) join(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("join", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	id := flagSet.String("id", "", "broadcaster id")
	login := flagSet.String("login", "", "channel login")
	moderator := flagSet.Bool("mod", false, "current user moderates the channel")
	setID := flagSet.String("set", "", "7TV emote set id")
	stvID := flagSet.String("stv", "", "7TV user id")
	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("join: %w", err)
	}

	req := service.JoinRequest{
		BroadcasterID: *id,
		Login:         *login,
		IsModerator:   *moderator,
	}
	if flagSet.Changed("set") {
		req.EmoteSetID = setID
	}
	if flagSet.Changed("stv") {
		req.CosmeticsUserID = stvID
	}

	if err := s.cmds.Join(ctx, req); err != nil {
		return err
	}
	if s.opts.HistoryEnabled {
		s.cmds.FetchRecentMessages(ctx, *login, s.opts.HistoryLimit)
	}
	return nil
}

func (s *Shell) history(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("history", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	limit := flagSet.Int("limit", s.opts.HistoryLimit, "number of messages")
	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if flagSet.NArg() != 1 {
		return fmt.Errorf("history: expected channel login")
	}
	if *limit <= 0 {
		return fmt.Errorf("history: limit must be positive")
	}

	s.cmds.FetchRecentMessages(ctx, flagSet.Arg(0), *limit)
	return nil
}

func (s *Shell) emit(result Result) {
	if err := s.emitter.Emit(events.Result, result); err != nil {
		s.log.Warn("не удалось отправить результат команды", "command", result.Command, "error", err)
	}
}

func single(name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected exactly one argument", name)
	}
	return args[0], nil
}
