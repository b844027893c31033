package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string `env:"PORT,           default=5000"`
	Env            string `env:"ENV,            default=development"`
	LogLevel       string `env:"LOG_LEVEL,      default=info"`
	SecretKey      string `env:"SECRET_KEY,     default=super_secret_key_change_this_later"`
	UploadDir      string `env:"UPLOAD_DIR,     default=assets/uploads"`
	UploadPrefix   string `env:"UPLOAD_PREFIX,  default=assets/uploads"`
	ResetURL       string `env:"RESET_URL,      default=http://127.0.0.1:5000/reset-password.html"`
	LocalDBPath    string `env:"LOCAL_DB_PATH,  default=sparkconnect.db"`
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	Mongo MongoConfig
	Redis RedisConfig
	Mail  MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=sparkconnect"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailConfig struct {
	Host     string `env:"MAIL_SERVER,   default=smtp.gmail.com"`
	Port     int    `env:"MAIL_PORT,     default=587"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	Sender   string `env:"MAIL_SENDER"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.Mail.Sender == "" {
		cfg.Mail.Sender = cfg.Mail.Username
	}
	return &cfg
}
