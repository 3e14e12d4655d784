package config

// EnvPrefix is applied by envconfig when processing the tagged struct.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names referenced outside struct tags (tests, DSN assembly).
const (
	EnvAppEnv   = "RATEWISE_APP_ENV"
	EnvPort     = "RATEWISE_APP_PORT"
	EnvDBDSN    = "RATEWISE_DB_DSN"
	EnvDBHost   = "RATEWISE_DB_HOST"
	EnvDBUser   = "RATEWISE_DB_USER"
	EnvDBName   = "RATEWISE_DB_NAME"
	EnvRedisURL = "RATEWISE_REDIS_URL"

	EnvJWTSecret              = "RATEWISE_JWT_SECRET"
	EnvJWTIssuer              = "RATEWISE_JWT_ISSUER"
	EnvJWTExpMins             = "RATEWISE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "RATEWISE_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
