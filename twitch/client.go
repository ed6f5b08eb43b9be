package twitch

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	twitchirc "github.com/gempir/go-twitch-irc/v4"

	"twitch-chat-client/model"
)

// Handler принимает Twitch-события, преобразованные в доменные модели.
type Handler interface {
	HandleChat(context.Context, model.ChatMessage)
	HandleNotice(context.Context, model.Notice)
}

// ircClient описывает часть go-twitch-irc, которой пользуется Client.
type ircClient interface {
	Join(channels ...string)
	Depart(channel string)
	Connect() error
	Disconnect() error
	SetIRCToken(ircToken string)
}

// Client оборачивает go-twitch-irc и реализует чат-транспорт.
type Client struct {
	log     *slog.Logger
	client  ircClient
	handler Handler
	baseCtx context.Context
}

// NewClient инициализирует IRC-клиент от имени пользователя токена и регистрирует колбэки.
// Пустой ircAddress оставляет адрес по умолчанию.
func NewClient(log *slog.Logger, token model.UserToken, ircAddress string, handler Handler) *Client {
	client := twitchirc.NewClient(token.Login, "oauth:"+token.AccessToken)
	if ircAddress != "" {
		client.IrcAddress = ircAddress
	}

	c := &Client{
		log:     log.With("component", "irc"),
		client:  client,
		handler: handler,
	}

	client.OnPrivateMessage(func(m twitchirc.PrivateMessage) {
		c.handler.HandleChat(c.context(), toChatMessage(m))
	})

	client.OnConnect(func() {
		c.log.Info("twitch: подключено", "login", token.Login)
	})

	client.OnSelfJoinMessage(func(m twitchirc.UserJoinMessage) {
		c.log.Debug("twitch: вход в канал подтверждён", "channel", m.Channel)
	})

	client.OnSelfPartMessage(func(m twitchirc.UserPartMessage) {
		c.log.Debug("twitch: выход из канала подтверждён", "channel", m.Channel)
	})

	client.OnReconnectMessage(func(message twitchirc.ReconnectMessage) {
		c.log.Warn("twitch: сервер запросил RECONNECT", "raw", message.Raw)
	})

	client.OnNoticeMessage(func(msg twitchirc.NoticeMessage) {
		c.handler.HandleNotice(c.context(), toNotice(msg))
	})

	return c
}

// Join ставит вход в канал в очередь клиента; go-twitch-irc сам повторяет его после переподключения.
func (c *Client) Join(login string) {
	c.client.Join(login)
}

// SetToken подменяет токен для следующих переподключений, не разрывая соединение.
func (c *Client) SetToken(token model.UserToken) {
	c.client.SetIRCToken("oauth:" + token.AccessToken)
}

// Part выходит из канала.
func (c *Client) Part(login string) {
	c.client.Depart(login)
}

// Run подключает клиента и блокируется до отмены контекста или ошибки.
func (c *Client) Run(ctx context.Context) error {
	c.baseCtx = ctx
	errCh := make(chan error, 1)

	go func() {
		errCh <- c.client.Connect()
	}()

	select {
	case <-ctx.Done():
		_ = c.client.Disconnect()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func toChatMessage(m twitchirc.PrivateMessage) model.ChatMessage {
	badges := make(map[string]int, len(m.User.Badges))
	for k, v := range m.User.Badges {
		badges[k] = v
	}

	sentAt := m.Time
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}

	return model.ChatMessage{
		ID:           m.ID,
		Channel:      normalizeChannel(m.Channel),
		ChannelID:    m.RoomID,
		UserID:       m.User.ID,
		Username:     m.User.Name,
		DisplayName:  m.User.DisplayName,
		Text:         m.Message,
		Badges:       badges,
		Color:        m.User.Color,
		IsMod:        m.User.Badges["moderator"] > 0 || m.User.Badges["broadcaster"] > 0,
		IsSubscriber: m.User.Badges["subscriber"] > 0,
		Bits:         m.Bits,
		SentAt:       sentAt,
	}
}

func toNotice(msg twitchirc.NoticeMessage) model.Notice {
	return model.Notice{
		Channel:  normalizeChannel(msg.Channel),
		ID:       msg.MsgID,
		Message:  msg.Message,
		Tags:     msg.Tags,
		NoticeAt: noticeTimestamp(msg.Tags),
	}
}

func noticeTimestamp(tags map[string]string) time.Time {
	if ts := tags["tmi-sent-ts"]; ts != "" {
		if ms, err := strconv.ParseInt(ts, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	}

	return time.Now().UTC()
}

func normalizeChannel(ch string) string {
	return strings.TrimPrefix(strings.TrimSpace(ch), "#")
}

func (c *Client) context() context.Context {
	if c.baseCtx != nil {
		return c.baseCtx
	}
	return context.Background()
}
