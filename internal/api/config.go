package api

import "time"

type Config struct {
	HTTPAddr          string        `envconfig:"NTC_HTTP_ADDR" default:"0.0.0.0:8080"`
	DBDSN             string        `envconfig:"NTC_DB_DSN" required:"true"`
	MetricsAddr       string        `envconfig:"NTC_METRICS_ADDR" default:"0.0.0.0:9090"`
	LogLevel          string        `envconfig:"NTC_LOG_LEVEL" default:"info"`
	ShutdownTimeout   time.Duration `envconfig:"NTC_SHUTDOWN_TIMEOUT" default:"30s"`
	UsersAPIURL       string        `envconfig:"NTC_USERS_API_URL" default:"http://localhost:8600"`
	IdentityTimeout   time.Duration `envconfig:"NTC_IDENTITY_TIMEOUT" default:"5s"`
	IdentityCacheSize int           `envconfig:"NTC_IDENTITY_CACHE_SIZE" default:"1024"`
	IdentityCacheTTL  time.Duration `envconfig:"NTC_IDENTITY_CACHE_TTL" default:"5m"`
	WebhookTimeout    time.Duration `envconfig:"NTC_WEBHOOK_TIMEOUT" default:"10s"`
}
