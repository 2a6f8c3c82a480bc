package config

const (
	EnvPrefix = "tpp"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "TPP_DB_DSN"
	EnvDBHost = "TPP_DB_HOST"
	EnvDBUser = "TPP_DB_USER"
	EnvDBName = "TPP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
