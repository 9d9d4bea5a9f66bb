package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Auth       AuthConfig       `mapstructure:"auth"`
	AI         AIConfig         `mapstructure:"ai"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Cron       CronConfig       `mapstructure:"cron"`
	Alerts     AlertsConfig     `mapstructure:"alerts"`
	Newsletter NewsletterConfig `mapstructure:"newsletter"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type AuthConfig struct {
	SecretEnv string        `mapstructure:"secret_env"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type AIConfig struct {
	Text   TextModelConfig   `mapstructure:"text"`
	Vision VisionModelConfig `mapstructure:"vision"`
}

type TextModelConfig struct {
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type VisionModelConfig struct {
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Bucket    string        `mapstructure:"bucket"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	URLTTL    time.Duration `mapstructure:"url_ttl"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	Backend   string `mapstructure:"backend"` // memory | redis
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
}

type CronConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	BalanceSnapshot string `mapstructure:"balance_snapshot"`
}

type AlertsConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	TelegramTokenEnv string `mapstructure:"telegram_token_env"`
}

type NewsletterConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("JX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("auth.secret_env", "JX_AUTH_SECRET")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("ai.text.model", "claude-sonnet-4-20250514")
	v.SetDefault("ai.text.max_tokens", 1024)
	v.SetDefault("ai.text.api_key_env", "ANTHROPIC_API_KEY")
	v.SetDefault("ai.text.timeout", "60s")
	v.SetDefault("ai.vision.model", "gpt-4o")
	v.SetDefault("ai.vision.max_tokens", 1024)
	v.SetDefault("ai.vision.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("ai.vision.timeout", "90s")
	v.SetDefault("storage.base_url", "")
	v.SetDefault("storage.bucket", "journalx-screenshots")
	v.SetDefault("storage.api_key_env", "JX_STORAGE_API_KEY")
	v.SetDefault("storage.url_ttl", "15m")
	v.SetDefault("storage.timeout", "10s")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.balance_snapshot", "@daily")
	v.SetDefault("alerts.enabled", false)
	v.SetDefault("alerts.telegram_token_env", "JX_TELEGRAM_BOT_TOKEN")
	v.SetDefault("newsletter.enabled", true)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
