package config

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"     validate:"required"`
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"  validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

type Server struct {
	Env      string `envconfig:"ENV"       default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name     string `envconfig:"APP_NAME" default:"folio"`
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
	CORS     struct {
		AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
		AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
		AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
		AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
		Enable           bool     `envconfig:"ENABLE"`
		MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
	} `envconfig:"CORS"`
	RateLimiter struct {
		Enable        bool `envconfig:"ENABLE"`
		MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
		WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
	} `envconfig:"RATE_LIMITER"`
	// APIKey grants system access through X-API-Key. Empty disables key access.
	APIKey string `envconfig:"API_KEY"`
	Upload struct {
		MaxFileSizeMB  int `envconfig:"MAX_FILE_SIZE_MB" default:"10" validate:"gt=0"`
		MaxFiles       int `envconfig:"MAX_FILES"        default:"20" validate:"gt=0"`
		TimeoutSeconds int `envconfig:"TIMEOUT_SECONDS"  default:"60" validate:"gt=0"`
	} `envconfig:"UPLOAD"`
}

type Config struct {
	Server Server `envconfig:"SERVER"`
	App    App    `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"     default:"localhost"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"3600"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"      validate:"required"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"     validate:"required,nefield=AccessSecret"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"    validate:"gt=0"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080" validate:"gtfield=AccessExpireMin"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int          `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"3"`
			MigrationTable string       `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
			Prefix         string       `envconfig:"PREFIX"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"        validate:"min=1"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"folio-worker"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			ImageEvents string `envconfig:"IMAGE_EVENTS" default:"folio.image-events"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Worker struct {
		ReconcileIntervalSeconds int `envconfig:"RECONCILE_INTERVAL_SECONDS" default:"3600"`
		OrphanGracePeriodSeconds int `envconfig:"ORPHAN_GRACE_PERIOD_SECONDS" default:"3600"`
	} `envconfig:"WORKER"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"     validate:"required,url"`
			BucketName      string `envconfig:"BUCKET_NAME"       validate:"required"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			Region          string `envconfig:"REGION"            default:"auto"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// Load reads the environment into a Config with defaults applied. It does not touch .env.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	return &cfg, nil
}

// Validate reports missing secrets and inconsistent limits.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	return nil
}

var get = sync.OnceValue(func() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file, using the process environment")
	}

	cfg, err := Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err = cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration rejected")
	}

	log.Info().Str("env", cfg.Server.Env).Msg("configuration loaded")

	return cfg
})

// Get loads the configuration once per process and exits when it is unusable.
func Get() *Config {
	return get()
}
