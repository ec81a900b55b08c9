package config

import "github.com/dmitrijs2005/fileshare/internal/flagx"

// Environment variable names understood by parseEnv.
const (
	EnvListenAddr   = "FILESHARE_ADDR"
	EnvStoreBackend = "FILESHARE_STORE"
	EnvFileBackend  = "FILESHARE_FILE_STORE"
	EnvDatabaseDSN  = "DATABASE_DSN"
	EnvSecretKey    = "JWT_SECRET"
	EnvTokenTTL     = "JWT_TTL"
	EnvAdminSecret  = "ADMIN_SECRET"
	EnvAIKey        = "GEMINI_API_KEY"
	EnvAMQPURL      = "AMQP_URL"
	EnvActivityCap  = "FILESHARE_ACTIVITY_LIMIT"
	EnvSeedDemo     = "FILESHARE_SEED_DEMO"
	EnvLogLevel     = "FILESHARE_LOG_LEVEL"
)

// parseEnv overlays values from environment variables that are set.
// Unset variables leave the current value untouched.
func parseEnv(c *Config) {
	flagx.EnvString(&c.EndpointAddrHTTP, EnvListenAddr)
	flagx.EnvString(&c.StoreBackend, EnvStoreBackend)
	flagx.EnvString(&c.FileBackend, EnvFileBackend)
	flagx.EnvString(&c.DatabaseDSN, EnvDatabaseDSN)
	flagx.EnvString(&c.SecretKey, EnvSecretKey)
	flagx.EnvDuration(&c.AccessTokenValidityDuration, EnvTokenTTL)
	flagx.EnvString(&c.AdminSecret, EnvAdminSecret)
	flagx.EnvString(&c.DescriptionAPIKey, EnvAIKey)
	flagx.EnvString(&c.AMQPURL, EnvAMQPURL)
	flagx.EnvInt(&c.ActivityLogLimit, EnvActivityCap)
	flagx.EnvBoolPtr(&c.SeedDemoUser, EnvSeedDemo)
	flagx.EnvString(&c.LogLevel, EnvLogLevel)
}
