package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Uploads UploadsConfig
	Admin   AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=complaint_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type UploadsConfig struct {
	Dir         string `env:"UPLOADS_DIR,      default=uploads"`
	MaxFileSize int64  `env:"UPLOADS_MAX_SIZE, default=10485760"` // 10 MiB
}

// AdminConfig seeds the single bootstrap admin account at startup.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL,    default=admin@college.com"`
	Password string `env:"ADMIN_PASSWORD, default=admin123"`
	Name     string `env:"ADMIN_NAME,     default=System Administrator"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
