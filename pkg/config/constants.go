package config

// EnvPrefix is the envconfig prefix for all DESR variables.
const EnvPrefix = "desr"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, errors).
const (
	EnvAppEnv      = "DESR_APP_ENV"
	EnvPort        = "DESR_APP_PORT"
	EnvDBDriver    = "DESR_DB_DRIVER"
	EnvDBPath      = "DESR_DB_PATH"
	EnvDBDSN       = "DESR_DB_DSN"
	EnvTableCount  = "DESR_TABLE_COUNT"
	EnvDefaultLang = "DESR_DEFAULT_LANGUAGE"
)
