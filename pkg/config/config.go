package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Mongo     MongoConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Admin     AdminConfig
	CORS      CORSConfig
	Log       LogConfig
	Dashboard DashboardConfig
	UserLogs  UserLogConfig
	Client    ClientConfig
}

// MongoConfig points at the document store holding accounts and courses.
type MongoConfig struct {
	URI                    string
	Database               string
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	HeartbeatInterval      time.Duration
}

// DatabaseConfig configures the PostgreSQL user-log store. An empty host disables it.
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AdminConfig holds the static admin credential pair.
type AdminConfig struct {
	ID         string
	Password   string
	HeaderAuth bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// DashboardConfig governs dashboard cache tuning.
type DashboardConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// UserLogConfig tunes the asynchronous user-log writer.
type UserLogConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// ClientConfig configures attendctl.
type ClientConfig struct {
	APIURL         string
	LoginTimeout   time.Duration
	SessionDir     string
	SessionHashKey string
	ExportDir      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Mongo = MongoConfig{
		URI:                    v.GetString("MONGO_URI"),
		Database:               v.GetString("MONGO_DATABASE"),
		MaxPoolSize:            v.GetUint64("MONGO_MAX_POOL_SIZE"),
		MinPoolSize:            v.GetUint64("MONGO_MIN_POOL_SIZE"),
		ServerSelectionTimeout: parseDuration(v.GetString("MONGO_SERVER_SELECTION_TIMEOUT"), 5*time.Second),
		SocketTimeout:          parseDuration(v.GetString("MONGO_SOCKET_TIMEOUT"), 45*time.Second),
		HeartbeatInterval:      parseDuration(v.GetString("MONGO_HEARTBEAT_INTERVAL"), 10*time.Second),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.Admin = AdminConfig{
		ID:         v.GetString("ADMIN_ID"),
		Password:   v.GetString("ADMIN_PASSWORD"),
		HeaderAuth: v.GetBool("ADMIN_HEADER_AUTH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Dashboard = DashboardConfig{
		CacheEnabled: v.GetBool("DASHBOARD_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	cfg.UserLogs = UserLogConfig{
		Workers:    v.GetInt("USER_LOG_WORKERS"),
		MaxRetries: v.GetInt("USER_LOG_MAX_RETRIES"),
		RetryDelay: parseDuration(v.GetString("USER_LOG_RETRY_DELAY"), time.Second),
	}

	cfg.Client = ClientConfig{
		APIURL:         strings.TrimRight(v.GetString("API_URL"), "/"),
		LoginTimeout:   parseDuration(v.GetString("LOGIN_TIMEOUT"), 8*time.Second),
		SessionDir:     v.GetString("SESSION_DIR"),
		SessionHashKey: v.GetString("SESSION_HASH_KEY"),
		ExportDir:      v.GetString("EXPORT_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "PXDB")
	v.SetDefault("MONGO_MAX_POOL_SIZE", 10)
	v.SetDefault("MONGO_MIN_POOL_SIZE", 5)
	v.SetDefault("MONGO_SERVER_SELECTION_TIMEOUT", "5s")
	v.SetDefault("MONGO_SOCKET_TIMEOUT", "45s")
	v.SetDefault("MONGO_HEARTBEAT_INTERVAL", "10s")

	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "attendance_logs")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "automated-attendance")

	v.SetDefault("ADMIN_ID", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("ADMIN_HEADER_AUTH", true)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("DASHBOARD_CACHE_ENABLED", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	v.SetDefault("USER_LOG_WORKERS", 1)
	v.SetDefault("USER_LOG_MAX_RETRIES", 3)
	v.SetDefault("USER_LOG_RETRY_DELAY", "1s")

	v.SetDefault("API_URL", "http://localhost:5000")
	v.SetDefault("LOGIN_TIMEOUT", "8s")
	v.SetDefault("SESSION_DIR", ".attendctl")
	v.SetDefault("SESSION_HASH_KEY", "dev_session_key")
	v.SetDefault("EXPORT_DIR", "./exports")
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
