package config

import (
	"crypto/rsa"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog/log"
	"github.com/skifte/skifte-server/utils-go"
)

type Config struct {
	Port               string `env:"LISTEN_ADDR" envDefault:":3000"`
	Timeout            uint64 `env:"TIMEOUT" envDefault:"10"`
	ReadBufferSize     int    `env:"READ_BUFFER_SIZE" envDefault:"4096"`
	BodyLimit          int    `env:"BODY_LIMIT" envDefault:"10485760"`
	AppName            string `env:"APP_NAME" envDefault:"Skifte"`
	IsProduction       bool   `env:"PRODUCTION"`
	CookieKey          string `env:"COOKIE_KEY"`
	JwtPublicKey       string `env:"JWT_PUBLIC_KEY"`
	JwtParsedPublicKey *rsa.PublicKey

	// Document store backend: "redis" or "postgres".
	StoreBackend string `env:"STORE_BACKEND" envDefault:"redis"`
	RedisUrl     string `env:"REDIS_URL"`
	Dsn          string `env:"DSN"`

	OpenAiApiKey        string `env:"OPENAI_API_KEY"`
	VisionApiKey        string `env:"GOOGLE_VISION_API_KEY"`
	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`

	// Base URL the invitation email links back to.
	InviteBaseUrl string      `env:"INVITE_BASE_URL"`
	EmailConfig   EmailConfig `envPrefix:"EMAIL_"`
}

type EmailConfig struct {
	SmtpHost         string `env:"SMTP_HOST"`
	SmtpPort         int    `env:"SMTP_PORT" envDefault:"587"`
	SmtpUser         string `env:"SMTP_USER"`
	SmtpPassword     string `env:"SMTP_PASSWORD"`
	SmtpSkipInsecure bool   `env:"SMTP_SKIP_INSECURE" envDefault:"false"`
}

func Parse() (*Config, error) {
	cfg := Config{
		IsProduction: utils.ParseFlags(),
	}

	if err := env.Parse(&cfg); err != nil {
		log.Panic().Err(err).Msg("Failed to parse env config")
	}

	cfg.JwtParsedPublicKey = utils.ParsePublicKey(cfg.JwtPublicKey)

	return &cfg, nil
}

func (c *Config) GetPort() string {
	return c.Port
}

func (c *Config) GetTimeout() int {
	return int(c.Timeout)
}

func (c *Config) GetReadBufferSize() int {
	return c.ReadBufferSize
}

func (c *Config) GetAppName() string {
	return c.AppName
}

func (c *Config) GetIsProduction() bool {
	return c.IsProduction
}

func (c *Config) GetCookieKey() string {
	return c.CookieKey
}

func (c *Config) GetBodyLimit() int {
	return c.BodyLimit
}
