package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Customers     CustomersConfig
	Checkout      CheckoutConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Resend        ResendConfig
	FCM           FCMConfig
	Outbox        OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AUREN_APP_ENV" required:"true"`
	Port         string `envconfig:"AUREN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AUREN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AUREN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AUREN_DB_DSN"`
	Driver string `envconfig:"AUREN_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"AUREN_DB_HOST"`
	Port     int    `envconfig:"AUREN_DB_PORT" default:"5432"`
	User     string `envconfig:"AUREN_DB_USER"`
	Password string `envconfig:"AUREN_DB_PASSWORD"`
	Name     string `envconfig:"AUREN_DB_NAME"`
	SSLMode  string `envconfig:"AUREN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AUREN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AUREN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AUREN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AUREN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	missing := []string{}
	for env, val := range map[string]string{
		EnvDBHost: d.Host,
		EnvDBUser: d.User,
		EnvDBName: d.Name,
	} {
		if val == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"AUREN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AUREN_REDIS_ADDR"`
	Password     string        `envconfig:"AUREN_REDIS_PASSWORD"`
	DB           int           `envconfig:"AUREN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AUREN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AUREN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AUREN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AUREN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AUREN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"AUREN_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"AUREN_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"AUREN_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"AUREN_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AUREN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AUREN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AUREN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AUREN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AUREN_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"AUREN_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"AUREN_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"AUREN_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"AUREN_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"AUREN_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"AUREN_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AUREN_AUTO_MIGRATE" default:"false"`
}

type CustomersConfig struct {
	// StatusTimeout caps how long a profile-status read may take before the
	// resolver fails closed to an unknown status.
	StatusTimeout time.Duration `envconfig:"AUREN_CUSTOMER_STATUS_TIMEOUT" default:"5s"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"AUREN_CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
	// CartTTL bounds how long an untouched device cart survives in Redis.
	CartTTL time.Duration `envconfig:"AUREN_CART_TTL" default:"720h"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"AUREN_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"AUREN_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"AUREN_PUBSUB_DOMAIN_TOPIC" default:"storefront-domain-events"`
	DomainSubscription string `envconfig:"AUREN_PUBSUB_DOMAIN_SUBSCRIPTION" default:"storefront-domain-events-worker"`
}

type ResendConfig struct {
	APIKey            string `envconfig:"AUREN_RESEND_API_KEY"`
	SenderEmail       string `envconfig:"AUREN_SENDER_EMAIL" default:"info@aurenecom.shop"`
	CompanyOrderEmail string `envconfig:"AUREN_COMPANY_ORDER_EMAIL"`
	DefaultCurrency   string `envconfig:"AUREN_DEFAULT_CURRENCY" default:"EUR"`
}

type FCMConfig struct {
	ProjectID          string `envconfig:"AUREN_FCM_PROJECT_ID"`
	ServiceAccountJSON string `envconfig:"AUREN_FCM_SERVICE_ACCOUNT_JSON"`
}

type OutboxConfig struct {
	BatchSize      int           `envconfig:"AUREN_OUTBOX_BATCH_SIZE" default:"50"`
	PollInterval   time.Duration `envconfig:"AUREN_OUTBOX_POLL_INTERVAL" default:"500ms"`
	PublishTimeout time.Duration `envconfig:"AUREN_OUTBOX_PUBLISH_TIMEOUT" default:"15s"`
	MaxAttempts    int           `envconfig:"AUREN_OUTBOX_MAX_ATTEMPTS" default:"10"`
}
