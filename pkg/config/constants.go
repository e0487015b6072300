package config

// EnvPrefix is passed to envconfig; every variable also carries an
// explicit STOREBOT_ tag so the names stay greppable.
const EnvPrefix = "storebot"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv       = "STOREBOT_APP_ENV"
	EnvDiscordToken = "STOREBOT_DISCORD_TOKEN"
	EnvCatalogPath  = "STOREBOT_CATALOG_PATH"
)
