package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix mostly matters for error messages.
const EnvPrefix = "RHINO"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "RHINO_APP_ENV"
	EnvPort       = "RHINO_APP_PORT"
	EnvDBDSN      = "RHINO_DB_DSN"
	EnvDBHost     = "RHINO_DB_HOST"
	EnvDBUser     = "RHINO_DB_USER"
	EnvDBName     = "RHINO_DB_NAME"
	EnvRedisURL   = "RHINO_REDIS_URL"
	EnvJWTSecret  = "RHINO_JWT_SECRET"
	EnvJWTIssuer  = "RHINO_JWT_ISSUER"
	EnvJWTExpMins = "RHINO_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
