package config

import (
	"fmt"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

// Config агрегирует значения конфигурации из переменных окружения.
type Config struct {
	LogLevel      string `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	FanoutWorkers int    `env:"FANOUT_WORKERS,default=8" validate:"gt=0"`
	Twitch        TwitchConfig
	EventSub      EventSubConfig
	SevenTV       SevenTVConfig
	History       HistoryConfig
	Postgres      PostgresConfig
	Batch         BatchConfig
}

// TwitchConfig содержит учётные данные и адреса Twitch.
type TwitchConfig struct {
	Username    string `env:"TWITCH_USERNAME"`
	AccessToken string `env:"TWITCH_ACCESS_TOKEN"`
	TokenFile   string `env:"TOKEN_FILE,default=.secrets/twitch_tokens.json" validate:"required"`
	OAuthURL    string `env:"TWITCH_OAUTH_URL,default=https://id.twitch.tv/oauth2" validate:"required,url"`
	HelixURL    string `env:"TWITCH_HELIX_URL,default=https://api.twitch.tv/helix" validate:"required,url"`
	IRCAddress  string `env:"TWITCH_IRC_ADDRESS"`
}

// EventSubConfig включает websocket-сессию EventSub.
type EventSubConfig struct {
	Enabled bool   `env:"EVENTSUB_ENABLED,default=true"`
	URL     string `env:"EVENTSUB_URL,default=wss://eventsub.wss.twitch.tv/ws" validate:"required_if=Enabled true"`
}

// SevenTVConfig включает подписки на 7TV EventAPI.
type SevenTVConfig struct {
	Enabled bool   `env:"SEVENTV_ENABLED,default=true"`
	URL     string `env:"SEVENTV_URL,default=wss://events.7tv.io/v3" validate:"required_if=Enabled true"`
}

// HistoryConfig задаёт подгрузку истории после join.
type HistoryConfig struct {
	Enabled bool `env:"HISTORY_ENABLED,default=true"`
	Limit   int  `env:"HISTORY_LIMIT,default=50" validate:"gt=0,lte=1000"`
}

// PostgresConfig хранит параметры подключения к пулу базы данных.
// Пустой Host отключает архив и историю.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST"`
	Port     string `env:"POSTGRES_PORT,default=5432" validate:"required_with=Host"`
	DB       string `env:"POSTGRES_DB" validate:"required_with=Host"`
	User     string `env:"POSTGRES_USER" validate:"required_with=Host"`
	Password string `env:"POSTGRES_PASSWORD" validate:"required_with=Host"`
}

// Enabled сообщает, настроен ли Postgres.
func (p PostgresConfig) Enabled() bool {
	return strings.TrimSpace(p.Host) != ""
}

// DSN собирает строку подключения для pgx/pgxpool.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", p.User, p.Password, p.Host, p.Port, p.DB)
}

// BatchConfig задаёт параметры батчинга и флашей при записи чатов.
type BatchConfig struct {
	MaxBatch      int           `env:"BATCH_MAX,default=100" validate:"gt=0"`
	FlushEvery    time.Duration `env:"BATCH_FLUSH_EVERY,default=1500ms" validate:"gt=0"`
	ChanBuffer    int           `env:"BATCH_CHAN_BUFFER,default=4096" validate:"gt=0"`
	StatsLogEvery time.Duration `env:"BATCH_STATS_EVERY,default=5m" validate:"gt=0"`
	FlushTimeout  time.Duration `env:"BATCH_FLUSH_TIMEOUT,default=5s" validate:"gt=0"`
}

var validate = validator.New()

// Load читает переменные окружения и возвращает валидированную Config.
func Load() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: read env: %w", err)
	}

	cfg.Twitch.Username = strings.ToLower(strings.TrimSpace(cfg.Twitch.Username))
	cfg.Twitch.AccessToken = strings.TrimPrefix(strings.TrimSpace(cfg.Twitch.AccessToken), "oauth:")
	cfg.Postgres.Host = strings.TrimSpace(cfg.Postgres.Host)

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("load config: validate: %w", err)
	}

	return cfg, nil
}
