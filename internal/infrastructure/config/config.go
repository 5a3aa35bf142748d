package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend  BackendConfig
	Web      WebConfig
	Messages MessageConfig
}

// BackendConfig locates the REST backend this frontend consumes. When
// BACKEND_URL is unset the local development default is used, mirroring the
// direct-vs-proxied base URL resolution of the original client.
type BackendConfig struct {
	URL            string        `env:"BACKEND_URL,     default=http://localhost:9090"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=30s"`
	LoginTimeout   time.Duration `env:"LOGIN_TIMEOUT,   default=10s"`
}

type WebConfig struct {
	TemplateDir   string        `env:"TEMPLATE_DIR,   default=web/templates"`
	StaticDir     string        `env:"STATIC_DIR,     default=web/static"`
	CheckoutDelay time.Duration `env:"CHECKOUT_DELAY, default=2s"`
}

type MessageConfig struct {
	PollInterval   time.Duration `env:"POLL_INTERVAL,    default=3s"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES, default=10485760"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
