package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server     ServerConfig     `env:",prefix=SERVER_"`
	Postgres   PostgresConfig   `env:",prefix=POSTGRES_"`
	Redis      RedisConfig      `env:",prefix=REDIS_"`
	JWT        JWTConfig        `env:",prefix=JWT_"`
	Security   SecurityConfig   `env:",prefix="`
	Cache      CacheConfig      `env:",prefix=CACHE_"`
	Migrations MigrationsConfig `env:",prefix=MIGRATIONS_"`
	CORS       CORSConfig       `env:",prefix=CORS_"`
	Env        string           `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8080"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=15s"`
}

type PostgresConfig struct {
	Host            string   `env:"HOST,default=localhost"`
	Port            string   `env:"PORT,default=5432"`
	User            string   `env:"USER,default=marketplace"`
	Password        string   `env:"PASSWORD,default=marketplace_password"`
	DBName          string   `env:"DB,default=marketplace_db"`
	SSLMode         string   `env:"SSLMODE,default=disable"`
	MaxOpenConns    int      `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns    int      `env:"MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetime Duration `env:"CONN_MAX_LIFETIME,default=30m"`
}

type RedisConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD,default="`
	DB       int    `env:"DB,default=0"`
}

type JWTConfig struct {
	Secret            string   `env:"SECRET,required"`
	AccessTokenExpiry Duration `env:"ACCESS_TOKEN_EXPIRY,default=1h"`
}

type SecurityConfig struct {
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=120"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CacheConfig struct {
	APITTL Duration `env:"API_TTL,default=5m"`
}

type MigrationsConfig struct {
	Path string `env:"PATH,default=file://migrations"`
	Auto bool   `env:"AUTO,default=false"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var config Config

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(config.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if config.Security.RateLimitRequests < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", config.Security.RateLimitRequests)
	}

	return &config, nil
}
