package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Database is one postgres endpoint. The read and write pools may point at different hosts.
type Database struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"     default:"postgres"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"     default:"tourdesk"`
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"10"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"tourdesk"`
		Timezone string `envconfig:"TIMEZONE" default:"Africa/Nairobi"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS" default:"Authorization,Content-Type,X-API-Key"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS" default:"GET,POST,PUT,DELETE,OPTIONS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST" default:"localhost"`
				Port     string `envconfig:"PORT" default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"3600"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"60"`
		Issuer          string `envconfig:"ISSUER"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry        int      `envconfig:"MAX_RETRY"         default:"3"`
			RetryWaitTime   int      `envconfig:"RETRY_WAIT_TIME"   default:"2"`
			MaxOpenConns    int      `envconfig:"MAX_OPEN_CONNS"    default:"10"`
			MaxIdleConns    int      `envconfig:"MAX_IDLE_CONNS"    default:"10"`
			ConnMaxLifetime int      `envconfig:"CONN_MAX_LIFETIME" default:"300"`
			MigrationTable  string   `envconfig:"MIGRATION_TABLE"   default:"schema_migrations"`
			AutoMigrate     bool     `envconfig:"AUTO_MIGRATE"`
			Prefix          string   `envconfig:"PREFIX"`
			Read            Database `envconfig:"READ"`
			Write           Database `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"        default:"localhost:9092"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"tourdesk-archiver"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			DocumentSaved string `envconfig:"DOCUMENT_SAVED" default:"document.saved"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Document struct {
		ArchiveDirectory string `envconfig:"ARCHIVE_DIRECTORY" default:"documents"`
		CurrencyLabel    string `envconfig:"CURRENCY_LABEL"    default:"KES"`
		Defaults         struct {
			AgencyName string `envconfig:"AGENCY_NAME" default:"Tour Desk"`
			Color      string `envconfig:"COLOR"       default:"#1F4E79"`
			FooterNote string `envconfig:"FOOTER_NOTE"`
			Terms      string `envconfig:"TERMS"`
		} `envconfig:"DEFAULTS"`
	} `envconfig:"DOCUMENT"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf Config
	once sync.Once
)

// Load reads .env when present and then the process environment into a fresh Config.
func Load() (*Config, error) {
	var cfg Config

	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, using the process environment")
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &cfg, nil
}

// Get returns the process-wide configuration, loading it on first use. Invalid
// environment variables stop the process.
func Get() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		conf = *cfg

		log.Info().Str("env", conf.Server.Env).Msg("Service configuration initialized")
	})

	return &conf
}
