package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	RabbitMQ RabbitMQConfig
	Minio    MinioConfig
	SMTP     SMTPConfig
	Matching MatchingConfig
	Outbox   OutboxConfig
	Limits   LimitsConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
	LogFormat   string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type RabbitMQConfig struct {
	URL string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type MatchingConfig struct {
	RescoreInterval time.Duration
	RescoreOnStart  bool
	Workers         int
	CallTimeout     time.Duration
	PairTimeout     time.Duration
	LoadTimeout     time.Duration
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	SendTimeout  time.Duration
}

type LimitsConfig struct {
	UploadPerWindow int
	UploadWindow    time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    opt("LOG_LEVEL", "info"),
		LogFormat:   opt("LOG_FORMAT", "json"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR", "localhost:6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       optInt("REDIS_DB", 0),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: optDuration("JWT_EXPIRES_IN", 24*time.Hour),
	}

	cfg.RabbitMQ = RabbitMQConfig{
		URL: opt("RABBITMQ_URL", ""),
	}

	cfg.Minio = MinioConfig{
		Endpoint:  opt("MINIO_ENDPOINT", ""),
		AccessKey: opt("MINIO_ACCESS_KEY", ""),
		SecretKey: opt("MINIO_SECRET_KEY", ""),
		Bucket:    opt("MINIO_BUCKET", "resumes"),
		UseSSL:    optBool("MINIO_USE_SSL", false),
	}

	cfg.SMTP = SMTPConfig{
		Host:     opt("SMTP_HOST", ""),
		Port:     opt("SMTP_PORT", "587"),
		Username: opt("SMTP_USERNAME", ""),
		Password: opt("SMTP_PASSWORD", ""),
		From:     opt("SMTP_FROM", "no-reply@resume-match.local"),
	}

	cfg.Matching = MatchingConfig{
		RescoreInterval: optDuration("RESCORE_INTERVAL", 24*time.Hour),
		RescoreOnStart:  optBool("RESCORE_ON_START", false),
		Workers:         optInt("RESCORE_WORKERS", 4),
		CallTimeout:     optDuration("MATCH_CALL_TIMEOUT", 5*time.Second),
		PairTimeout:     optDuration("MATCH_PAIR_TIMEOUT", 15*time.Second),
		LoadTimeout:     optDuration("RESCORE_LOAD_TIMEOUT", time.Minute),
	}

	cfg.Outbox = OutboxConfig{
		PollInterval: optDuration("OUTBOX_POLL_INTERVAL", 5*time.Second),
		BatchSize:    optInt("OUTBOX_BATCH_SIZE", 20),
		MaxAttempts:  optInt("NOTIFY_MAX_ATTEMPTS", 5),
		SendTimeout:  optDuration("NOTIFY_SEND_TIMEOUT", 10*time.Second),
	}

	cfg.Limits = LimitsConfig{
		UploadPerWindow: optInt("UPLOAD_RATE_LIMIT", 5),
		UploadWindow:    optDuration("UPLOAD_RATE_WINDOW", time.Minute),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	if cfg.Matching.RescoreInterval <= 0 {
		return Config{}, fmt.Errorf("invalid environment variables: RESCORE_INTERVAL")
	}

	return cfg, nil
}
