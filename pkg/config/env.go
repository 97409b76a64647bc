package config

// EnvPrefix namespaces every environment variable the platform reads.
const EnvPrefix = "industrahub"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	GCSAccessModePublic = "public"
	GCSAccessModeSigned = "signed"
)

const (
	EnvDBDSN  = "INDUSTRAHUB_DB_DSN"
	EnvDBHost = "INDUSTRAHUB_DB_HOST"
	EnvDBUser = "INDUSTRAHUB_DB_USER"
	EnvDBName = "INDUSTRAHUB_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
