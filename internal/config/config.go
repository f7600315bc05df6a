package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Analyzer AnalyzerConfig
	Log      LogConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	MigrationsDir string
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
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// AnalyzerConfig holds the gap analysis policy values.
type AnalyzerConfig struct {
	DefaultRequiredLevel int
	MaxLevel             int
	PriorityThreshold    int
	HoursPerLevel        int
	PrerequisiteHours    int
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var requiredKeys = []string{
	"APP_NAME",
	"APP_ENV",
	"HTTP_PORT",
	"JWT_ACCESS_SECRET",
	"JWT_REFRESH_SECRET",
}

// Load reads configuration from the environment, optionally layered over a
// config.yaml found in the working directory or ./config.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)
	v.SetDefault("DB_POOL_MIN_CONNS", 0)
	v.SetDefault("DB_POOL_MAX_CONN_LIFETIME", time.Hour)
	v.SetDefault("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute)
	v.SetDefault("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", 600*time.Second)

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", 15*time.Minute)
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour)

	v.SetDefault("ANALYZER_DEFAULT_REQUIRED_LEVEL", 4)
	v.SetDefault("ANALYZER_MAX_LEVEL", 5)
	v.SetDefault("ANALYZER_PRIORITY_THRESHOLD", 2)
	v.SetDefault("ANALYZER_HOURS_PER_LEVEL", 40)
	v.SetDefault("ANALYZER_PREREQUISITE_HOURS", 20)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "logs/app.log")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 30)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SAMPLE_RATIO", 0.1)
}

func fromViper(v *viper.Viper) (Config, error) {
	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	str := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{
		App: AppConfig{
			AppName:       str("APP_NAME"),
			Environment:   str("APP_ENV"),
			HTTPPort:      str("HTTP_PORT"),
			MigrationsDir: str("MIGRATIONS_DIR"),
		},
		Database: DatabaseConfig{
			DBHost:                str("DB_HOST"),
			DBPort:                str("DB_PORT"),
			DBName:                str("DB_NAME"),
			DBUser:                str("DB_USER"),
			DBPassword:            v.GetString("DB_PASSWORD"),
			DBSSLMode:             str("DB_SSL_MODE"),
			ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
			PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
			PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
			PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
			PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
			PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
		},
		Redis: RedisConfig{
			Host:     str("REDIS_HOST"),
			Port:     str("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("REDIS_TTL"),
		},
		JWT: JWTConfig{
			AccessSecret:     v.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret:    v.GetString("JWT_REFRESH_SECRET"),
			AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
			RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
		},
		Analyzer: AnalyzerConfig{
			DefaultRequiredLevel: v.GetInt("ANALYZER_DEFAULT_REQUIRED_LEVEL"),
			MaxLevel:             v.GetInt("ANALYZER_MAX_LEVEL"),
			PriorityThreshold:    v.GetInt("ANALYZER_PRIORITY_THRESHOLD"),
			HoursPerLevel:        v.GetInt("ANALYZER_HOURS_PER_LEVEL"),
			PrerequisiteHours:    v.GetInt("ANALYZER_PREREQUISITE_HOURS"),
		},
		Log: LogConfig{
			Level:      str("LOG_LEVEL"),
			File:       str("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Tracing: TracingConfig{
			Enabled:     v.GetBool("TRACING_ENABLED"),
			Endpoint:    str("TRACING_ENDPOINT"),
			SampleRatio: v.GetFloat64("TRACING_SAMPLE_RATIO"),
		},
	}

	if err := cfg.Analyzer.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (a AnalyzerConfig) validate() error {
	if a.MaxLevel < 1 {
		return fmt.Errorf("ANALYZER_MAX_LEVEL must be >= 1, got %d", a.MaxLevel)
	}
	if a.DefaultRequiredLevel < 1 || a.DefaultRequiredLevel > a.MaxLevel {
		return fmt.Errorf("ANALYZER_DEFAULT_REQUIRED_LEVEL must be within 1..%d, got %d", a.MaxLevel, a.DefaultRequiredLevel)
	}
	if a.PriorityThreshold < 1 {
		return fmt.Errorf("ANALYZER_PRIORITY_THRESHOLD must be >= 1, got %d", a.PriorityThreshold)
	}
	if a.HoursPerLevel < 0 || a.PrerequisiteHours < 0 {
		return errors.New("ANALYZER hour values must not be negative")
	}
	return nil
}
