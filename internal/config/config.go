package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that reads from TOML strings such as "2s"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	HTTP      HTTPConfig      `toml:"http"`
	Log       LogConfig       `toml:"log"`
	Postgres  PostgresConfig  `toml:"postgres"`
	Redis     RedisConfig     `toml:"redis"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Bidding   BiddingConfig   `toml:"bidding"`
	Events    EventsConfig    `toml:"events"`
	Lifecycle LifecycleConfig `toml:"lifecycle"`
}

type HTTPConfig struct {
	Addr            string   `toml:"addr"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// PostgresConfig selects the durable ledger; an empty DSN runs on the in-memory repository
type PostgresConfig struct {
	DSN      string `toml:"dsn"`
	MaxConns int32  `toml:"max_conns"`
	MinConns int32  `toml:"min_conns"`
}

// RedisConfig enables the cross-instance lease for background loops
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	LeaseTTL Duration `toml:"lease_ttl"`
}

// KafkaConfig enables notification delivery over Kafka; without brokers
// notifications are only logged
type KafkaConfig struct {
	Brokers     []string `toml:"brokers"`
	NotifyTopic string   `toml:"notify_topic"`
	Buffer      int      `toml:"buffer"`
}

type BiddingConfig struct {
	MinRatingPercent float64  `toml:"min_rating_percent"`
	RatingCacheSize  int      `toml:"rating_cache_size"`
	RatingCacheTTL   Duration `toml:"rating_cache_ttl"`
}

type EventsConfig struct {
	Interval   Duration `toml:"interval"`
	BatchSize  int      `toml:"batch_size"`
	MaxRetry   int      `toml:"max_retry"`
	StaleAfter Duration `toml:"stale_after"`
}

type LifecycleConfig struct {
	Interval Duration `toml:"interval"`
}

// Default returns the configuration used when no file or environment overrides are given
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Log: LogConfig{Level: "info"},
		Redis: RedisConfig{
			LeaseTTL: Duration{30 * time.Second},
		},
		Kafka: KafkaConfig{
			NotifyTopic: "auction.notifications",
			Buffer:      1024,
		},
		Bidding: BiddingConfig{
			MinRatingPercent: 80,
			RatingCacheSize:  1024,
			RatingCacheTTL:   Duration{time.Minute},
		},
		Events: EventsConfig{
			Interval:   Duration{2 * time.Second},
			BatchSize:  50,
			MaxRetry:   3,
			StaleAfter: Duration{5 * time.Minute},
		},
		Lifecycle: LifecycleConfig{
			Interval: Duration{time.Minute},
		},
	}
}

// Load reads the TOML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to open config: %w", err)
		default:
			defer file.Close()
			if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
				return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the background loops cannot run with
func (c Config) Validate() error {
	switch {
	case c.Events.Interval.Duration <= 0:
		return errors.New("config: events.interval must be positive")
	case c.Events.BatchSize <= 0:
		return errors.New("config: events.batch_size must be positive")
	case c.Events.MaxRetry < 0:
		return errors.New("config: events.max_retry must not be negative")
	case c.Lifecycle.Interval.Duration <= 0:
		return errors.New("config: lifecycle.interval must be positive")
	case c.Bidding.MinRatingPercent < 0 || c.Bidding.MinRatingPercent > 100:
		return errors.New("config: bidding.min_rating_percent must be within [0, 100]")
	case c.Bidding.RatingCacheSize <= 0:
		return errors.New("config: bidding.rating_cache_size must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := getenv("HTTP_ADDR", ""); v != "" {
		cfg.HTTP.Addr = v
	} else if port := getenv("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	cfg.Log.Level = getenv("LOG_LEVEL", cfg.Log.Level)
	cfg.Postgres.DSN = getenv("POSTGRES_DSN", cfg.Postgres.DSN)
	cfg.Redis.Addr = getenv("REDIS_ADDR", cfg.Redis.Addr)
	if v := getenv("KAFKA_BROKERS", ""); v != "" {
		cfg.Kafka.Brokers = splitCSV(v)
	}
	cfg.Kafka.NotifyTopic = getenv("NOTIFY_TOPIC", cfg.Kafka.NotifyTopic)

	if v := getenv("MIN_RATING_PERCENT", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: MIN_RATING_PERCENT: %w", err)
		}
		cfg.Bidding.MinRatingPercent = f
	}
	if v := getenv("EVENTS_BATCH_SIZE", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: EVENTS_BATCH_SIZE: %w", err)
		}
		cfg.Events.BatchSize = n
	}
	for key, dst := range map[string]*Duration{
		"EVENTS_INTERVAL":    &cfg.Events.Interval,
		"LIFECYCLE_INTERVAL": &cfg.Lifecycle.Interval,
	} {
		if v := getenv(key, ""); v != "" {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
		}
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
