package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type (
	Config struct {
		App      App      `yaml:"app"      env-prefix:"APP_"`
		Logger   Logger   `yaml:"logger"   env-prefix:"LOGGER_"`
		HTTP     HTTP     `yaml:"http"     env-prefix:"HTTP_"`
		Database Database `yaml:"database" env-prefix:"DB_"`
		Cache    Cache    `yaml:"cache"    env-prefix:"REDIS_"`
		Broker   Broker   `yaml:"broker"   env-prefix:"RABBITMQ_"`
		Service  Service  `yaml:"service"  env-prefix:"SERVICE_"`
		Worker   Worker   `yaml:"worker"   env-prefix:"WORKER_"`
		Metrics  Metrics  `yaml:"metrics"  env-prefix:"METRICS_"`
		Env      string   `yaml:"env"      env:"ENV" env-default:"local" validate:"oneof=local dev staging prod"`
	}

	App struct {
		Name    string `yaml:"name"    env:"NAME"    env-default:"art-notifier" validate:"required"`
		Version string `yaml:"version" env:"VERSION" env-default:"dev"          validate:"required"`
	}

	HTTP struct {
		Host              string        `yaml:"host"                env:"HOST"                validate:"required"                 env-default:"0.0.0.0"`
		Port              string        `yaml:"port"                env:"PORT"                validate:"required,numeric"         env-default:"8080"`
		ReadTimeout       time.Duration `yaml:"read_timeout"        env:"READ_TIMEOUT"        validate:"gte=10ms,lte=30s"         env-default:"5s"`
		WriteTimeout      time.Duration `yaml:"write_timeout"       env:"WRITE_TIMEOUT"       validate:"gte=10ms,lte=30s"         env-default:"5s"`
		IdleTimeout       time.Duration `yaml:"idle_timeout"        env:"IDLE_TIMEOUT"        validate:"gte=10ms,lte=120s"        env-default:"60s"`
		ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"    env:"SHUTDOWN_TIMEOUT"    validate:"gte=10ms,lte=30s"         env-default:"10s"`
		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT" validate:"gte=10ms,lte=30s"         env-default:"5s"`
		RequestTimeout    time.Duration `yaml:"request_timeout"     env:"REQUEST_TIMEOUT"     validate:"gte=10ms,lte=30s"         env-default:"3s"`
	}

	Database struct {
		DSN            string        `yaml:"dsn"              env:"DSN"              validate:"required"`
		PoolMax        int           `yaml:"pool_max"         env:"POOL_MAX"         validate:"min=1,max=200"     env-default:"10"`
		ConnAttempts   int           `yaml:"conn_attempts"    env:"CONN_ATTEMPTS"    validate:"min=1,max=20"      env-default:"5"`
		BaseRetryDelay time.Duration `yaml:"base_retry_delay" env:"BASE_RETRY_DELAY" validate:"gte=10ms,lte=10s"  env-default:"500ms"`
		MigrationsPath string        `yaml:"migrations_path"  env:"MIGRATIONS_PATH"  env-default:"./migrations"`
	}

	Cache struct {
		Addr        string        `yaml:"addr"          env:"ADDR"          validate:"required"           env-default:"localhost:6379"`
		Password    string        `yaml:"password"      env:"PASSWORD"`
		DB          int           `yaml:"db"            env:"DB"            validate:"min=0,max=15"       env-default:"0"`
		PoolSize    int           `yaml:"pool_size"     env:"POOL_SIZE"     validate:"min=1,max=100"      env-default:"20"`
		MinIdleCons int           `yaml:"min_idle_cons" env:"MIN_IDLE_CONS" validate:"min=0,max=100"      env-default:"5"`
		PoolTimeout time.Duration `yaml:"pool_timeout"  env:"POOL_TIMEOUT"  validate:"gte=10ms,lte=10s"   env-default:"100ms"`
		DedupTTL    time.Duration `yaml:"dedup_ttl"     env:"DEDUP_TTL"     validate:"gte=1s,lte=168h"    env-default:"24h"`
	}

	Broker struct {
		URL                string        `yaml:"url"                  env:"URL"                  validate:"required,url"`
		ConnectionName     string        `yaml:"connection_name"      env:"CONNECTION_NAME"      env-default:"art-notifier"`
		EventsExchange     string        `yaml:"events_exchange"      env:"EVENTS_EXCHANGE"      validate:"required" env-default:"events"`
		EventsQueue        string        `yaml:"events_queue"         env:"EVENTS_QUEUE"         validate:"required" env-default:"notifier.events"`
		DeliveryExchange   string        `yaml:"delivery_exchange"    env:"DELIVERY_EXCHANGE"    validate:"required" env-default:"notifications"`
		ReportsQueue       string        `yaml:"reports_queue"        env:"REPORTS_QUEUE"        validate:"required" env-default:"notifier.delivery_reports"`
		DeadLetterExchange string        `yaml:"dead_letter_exchange" env:"DEAD_LETTER_EXCHANGE" env-default:"notifier.dlx"`
		Prefetch           int           `yaml:"prefetch"             env:"PREFETCH"             validate:"min=1,max=1000" env-default:"20"`
		HandlerTimeout     time.Duration `yaml:"handler_timeout"      env:"HANDLER_TIMEOUT"      validate:"gte=100ms,lte=60s" env-default:"10s"`
		ConnectAttempts    int           `yaml:"connect_attempts"     env:"CONNECT_ATTEMPTS"     validate:"min=1,max=20"      env-default:"5"`
		RetryDelay         time.Duration `yaml:"retry_delay"          env:"RETRY_DELAY"          validate:"gte=10ms,lte=10s"  env-default:"1s"`
	}

	Service struct {
		MaxRetries       int           `yaml:"max_retries"        env:"MAX_RETRIES"        validate:"min=0,max=20"      env-default:"3"`
		DefaultPageLimit int           `yaml:"default_page_limit" env:"DEFAULT_PAGE_LIMIT" validate:"min=1,max=100"     env-default:"20"`
		MaxPageLimit     int           `yaml:"max_page_limit"     env:"MAX_PAGE_LIMIT"     validate:"min=1,max=500"     env-default:"100"`
		DispatchTimeout  time.Duration `yaml:"dispatch_timeout"   env:"DISPATCH_TIMEOUT"   validate:"gte=10ms,lte=30s"  env-default:"2s"`
		CASAttempts      int           `yaml:"cas_attempts"       env:"CAS_ATTEMPTS"       validate:"min=1,max=10"      env-default:"3"`
	}

	Worker struct {
		Enabled        bool          `yaml:"enabled"          env:"ENABLED"          env-default:"true"`
		SweepInterval  time.Duration `yaml:"sweep_interval"   env:"SWEEP_INTERVAL"   validate:"gte=100ms,lte=1h" env-default:"5s"`
		BatchSize      uint64        `yaml:"batch_size"       env:"BATCH_SIZE"       validate:"min=1,max=1000"   env-default:"50"`
		LeaseTTL       time.Duration `yaml:"lease_ttl"        env:"LEASE_TTL"        validate:"gte=1s,lte=1h"    env-default:"2m"`
		BaseRetryDelay time.Duration `yaml:"base_retry_delay" env:"BASE_RETRY_DELAY" validate:"gte=1s,lte=24h"   env-default:"1m"`
	}

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"ENABLED" env-default:"true"`
		Path    string `yaml:"path"    env:"PATH"    env-default:"/metrics" validate:"startswith=/"`
	}

	Logger struct {
		Level      string `yaml:"level"       env:"LEVEL"       env-default:"info"                     validate:"oneof=debug info warn error"`
		Filename   string `yaml:"filename"    env:"FILENAME"    env-default:"./logs/art-notifier.log"`
		MaxSize    int    `yaml:"max_size"    env:"MAX_SIZE"    env-default:"100"                      validate:"min=1,max=1000"`
		MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS" env-default:"3"                        validate:"min=0,max=20"`
		MaxAge     int    `yaml:"max_age"     env:"MAX_AGE"     env-default:"28"                       validate:"min=1,max=365"`
	}
)

// Load reads the config from the -config flag or CONFIG_PATH; with neither
// set it falls back to environment variables only.
func Load() (*Config, error) {
	path := fetchConfigPath()
	if path == "" {
		return LoadEnv()
	}
	return LoadPath(path)
}

func LoadPath(configPath string) (*Config, error) {
	const op = "config.LoadPath"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
	} else if err != nil {
		return nil, fmt.Errorf("%s: checking config file: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: read config: %w", op, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func LoadEnv() (*Config, error) {
	const op = "config.LoadEnv"

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: read env: %w", op, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	v := validator.New()

	if err := v.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, ve := range validationErrs {
				msgs = append(msgs, fmt.Sprintf("%s=%v must satisfy '%s'", ve.Field(), ve.Value(), ve.Tag()))
			}
			return fmt.Errorf("config validation: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config validation: %w", err)
	}

	if cfg.Service.DefaultPageLimit > cfg.Service.MaxPageLimit {
		return errors.New("config validation: default_page_limit exceeds max_page_limit")
	}
	if cfg.Cache.MinIdleCons > cfg.Cache.PoolSize {
		return errors.New("config validation: min_idle_cons exceeds pool_size")
	}
	return nil
}

func fetchConfigPath() string {
	var path string
	flag.StringVar(&path, "config", "", "Path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}
