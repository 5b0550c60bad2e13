package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"

	LockLocal = "local"
	LockRedis = "redis"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Store    StoreConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Access   AccessConfig
	Metrics  MetricsConfig
	Lock     LockConfig
}

type ServerConfig struct {
	AppEnv          string
	GRPCPort        string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type StoreConfig struct {
	Driver      string
	AutoMigrate bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Enabled      bool
	Addr         string
	Password     string
	DB           int
	CacheBatches bool
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
	GroupID string
	// Indexer starts the trace listener that feeds Elasticsearch.
	Indexer bool
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
}

type AccessConfig struct {
	// PolicyFile binds identities to roles. Empty means every identified caller is allowed.
	PolicyFile string
}

type MetricsConfig struct {
	Enabled bool
	Addr    string
}

type LockConfig struct {
	Backend  string
	TTL      time.Duration
	Attempts int
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "dev"),
			GRPCPort:        getEnv("GRPC_PORT", ":8090"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
			AutoMigrate: getEnvBool("STORE_AUTO_MIGRATE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "agritrace"),
			Password:        getEnv("POSTGRES_PASSWORD", "agritrace"),
			DBName:          getEnv("POSTGRES_DB", "agritrace"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "data/agritrace.db"),
		},
		Redis: RedisConfig{
			Enabled:      getEnvBool("REDIS_ENABLED", false),
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			CacheBatches: getEnvBool("REDIS_CACHE_BATCHES", true),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC", "agritrace.ledger.events"),
			GroupID: getEnv("KAFKA_GROUP_ID", "agritrace-indexer"),
			Indexer: getEnvBool("KAFKA_INDEXER_ENABLED", false),
		},
		Elastic: ElasticsearchConfig{
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", []string{"http://localhost:9200"}),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:     getEnv("ELASTIC_INDEX", "agritrace-events"),
		},
		Access: AccessConfig{
			PolicyFile: getEnv("ACCESS_POLICY_FILE", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Addr:    getEnv("METRICS_ADDR", ":9090"),
		},
		Lock: LockConfig{
			Backend:  strings.ToLower(getEnv("LOCK_BACKEND", LockLocal)),
			TTL:      getEnvDuration("LOCK_TTL", 5*time.Second),
			Attempts: getEnvInt("LOCK_ATTEMPTS", 50),
		},
	}
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Lock.Backend {
	case LockLocal:
	case LockRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("LOCK_BACKEND=redis requires REDIS_ENABLED")
		}
	default:
		return fmt.Errorf("unknown LOCK_BACKEND %q", c.Lock.Backend)
	}
	if c.Kafka.Indexer && !c.Kafka.Enabled {
		return fmt.Errorf("KAFKA_INDEXER_ENABLED requires KAFKA_ENABLED")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
