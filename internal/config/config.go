// Package config provides application configuration.
//
// Values are resolved in order: built-in defaults, an optional YAML file, then
// POLLSTER_* environment variables (a .env file is loaded first when present).
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "POLLSTER_"

// Config holds all application configuration.
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Store    StoreConfig    `mapstructure:"store"`
	Sink     SinkConfig     `mapstructure:"sink"`
	Redis    RedisConfig    `mapstructure:"redis"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Runner   RunnerConfig   `mapstructure:"runner"`
}

// TelegramConfig configures the Telegram transport.
type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	PollTimeout int    `mapstructure:"poll_timeout"` // Long polling timeout, seconds
	Debug       bool   `mapstructure:"debug"`
}

// StoreConfig selects where sessions live.
type StoreConfig struct {
	Backend string        `mapstructure:"backend"` // memory | redis
	TTL     time.Duration `mapstructure:"ttl"`     // Redis only, 0 keeps sessions forever
	Lock    bool          `mapstructure:"lock"`    // Redis distributed lock per user
	LockTTL time.Duration `mapstructure:"lock_ttl"`

	// EncryptionKey seals stored contacts with AES-256-GCM. Base64, 32 bytes decoded.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`
}

// SinkConfig selects where completed records are appended.
type SinkConfig struct {
	Backend string `mapstructure:"backend"` // file | sqlite | redis | memory
	Path    string `mapstructure:"path"`    // file and sqlite
	Key     string `mapstructure:"key"`     // redis list key

	MaskContact bool `mapstructure:"mask_contact"` // Keep only the last digits of the phone
}

// RedisConfig is shared by the Redis store, locker and sink.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// HTTPConfig configures the JSON gateway and the metrics endpoint.
type HTTPConfig struct {
	Addr        string `mapstructure:"addr"`
	MetricsAddr string `mapstructure:"metrics_addr"` // Empty disables the metrics listener
}

// LogConfig configures the slog logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
}

// RunnerConfig configures the inbound event loop.
type RunnerConfig struct {
	Workers        int           `mapstructure:"workers"`
	SinkRetries    int           `mapstructure:"sink_retries"`
	SinkRetryDelay time.Duration `mapstructure:"sink_retry_delay"`
	MaxInputSize   int           `mapstructure:"max_input_size"` // Bytes of inbound text; larger text is dropped
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Telegram: TelegramConfig{PollTimeout: 60},
		Store:    StoreConfig{Backend: "memory", LockTTL: 30 * time.Second},
		Sink:     SinkConfig{Backend: "file", Path: "data.txt", Key: "pollster:records"},
		Redis:    RedisConfig{Addr: "localhost:6379", Prefix: "pollster:"},
		HTTP:     HTTPConfig{Addr: ":8080", MetricsAddr: ":2112"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Runner:   RunnerConfig{Workers: 4, SinkRetries: 2, SinkRetryDelay: 500 * time.Millisecond, MaxInputSize: 4096},
	}
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// decodeYAML overlays a YAML document on cfg. Unknown keys are rejected.
func decodeYAML(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Telegram.Token, "TELEGRAM_TOKEN")
	setString(&cfg.Store.Backend, "STORE")
	setString(&cfg.Sink.Backend, "SINK")
	setString(&cfg.Sink.Path, "SINK_PATH")
	setString(&cfg.Sink.Key, "SINK_KEY")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Redis.Prefix, "REDIS_PREFIX")
	setString(&cfg.HTTP.Addr, "HTTP_ADDR")
	setString(&cfg.HTTP.MetricsAddr, "METRICS_ADDR")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Store.EncryptionKey, "STORE_KEY")

	if err := setInt(&cfg.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&cfg.Runner.Workers, "WORKERS"); err != nil {
		return err
	}
	if err := setInt(&cfg.Runner.SinkRetries, "SINK_RETRIES"); err != nil {
		return err
	}
	return setInt(&cfg.Runner.MaxInputSize, "MAX_INPUT_SIZE")
}

func setString(dst *string, key string) {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s%s must be an integer: %w", EnvPrefix, key, err)
	}
	*dst = n
	return nil
}

// Validate checks that all configuration fields are usable.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("store.backend must be memory or redis, got %q", c.Store.Backend)
	}

	switch c.Sink.Backend {
	case "file", "sqlite":
		if c.Sink.Path == "" {
			return fmt.Errorf("sink.path cannot be empty for the %s sink", c.Sink.Backend)
		}
	case "redis":
		if c.Sink.Key == "" {
			return fmt.Errorf("sink.key cannot be empty for the redis sink")
		}
	case "memory":
	default:
		return fmt.Errorf("sink.backend must be file, sqlite, redis or memory, got %q", c.Sink.Backend)
	}

	if c.UsesRedis() && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr cannot be empty")
	}
	if c.Store.Lock && c.Store.Backend != "redis" {
		return fmt.Errorf("store.lock requires the redis store")
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return err
	}
	if c.Runner.Workers <= 0 {
		return fmt.Errorf("runner.workers must be > 0")
	}
	if c.Runner.SinkRetries < 0 {
		return fmt.Errorf("runner.sink_retries must be >= 0")
	}
	if c.Runner.MaxInputSize <= 0 {
		return fmt.Errorf("runner.max_input_size must be > 0")
	}
	return nil
}

// Keys decodes the encryption keys. Both results are nil when encryption is off.
func (s StoreConfig) Keys() ([]byte, [][]byte, error) {
	if s.EncryptionKey == "" {
		if len(s.FallbackKeys) > 0 {
			return nil, nil, fmt.Errorf("store.fallback_keys requires store.encryption_key")
		}
		return nil, nil, nil
	}
	active, err := decodeKey(s.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	var fallback [][]byte
	for i, k := range s.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Store.Backend == "redis" || c.Sink.Backend == "redis"
}

// RequireTelegram checks the settings needed by the Telegram transport.
func (c *Config) RequireTelegram() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required (set %sTELEGRAM_TOKEN)", EnvPrefix)
	}
	return nil
}
