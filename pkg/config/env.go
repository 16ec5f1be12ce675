package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "auren"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "AUREN_APP_ENV"
	EnvPort                   = "AUREN_APP_PORT"
	EnvDBDSN                  = "AUREN_DB_DSN"
	EnvRedisURL               = "AUREN_REDIS_URL"
	EnvJWTSecret              = "AUREN_JWT_SECRET"
	EnvJWTIssuer              = "AUREN_JWT_ISSUER"
	EnvJWTExpMins             = "AUREN_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "AUREN_REFRESH_TOKEN_TTL_MINUTES"
	EnvDBHost                 = "AUREN_DB_HOST"
	EnvDBUser                 = "AUREN_DB_USER"
	EnvDBName                 = "AUREN_DB_NAME"
)
