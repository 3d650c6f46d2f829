package config

const (
	EnvPrefix = "BRICKPOOL"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "BRICKPOOL_APP_ENV"
	EnvPort       = "BRICKPOOL_APP_PORT"
	EnvDBDSN      = "BRICKPOOL_DB_DSN"
	EnvDBHost     = "BRICKPOOL_DB_HOST"
	EnvDBUser     = "BRICKPOOL_DB_USER"
	EnvDBName     = "BRICKPOOL_DB_NAME"
	EnvRedisURL   = "BRICKPOOL_REDIS_URL"
	EnvJWTSecret  = "BRICKPOOL_JWT_SECRET"
	EnvJWTIssuer  = "BRICKPOOL_JWT_ISSUER"
	EnvJWTExpMins = "BRICKPOOL_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
