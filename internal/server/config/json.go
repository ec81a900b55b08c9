package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fileshare/internal/flagx"
	"github.com/dmitrijs2005/fileshare/internal/timex"
)

// JsonConfig is the DTO read from the JSON config file. Durations use
// timex.Duration so both "1h" and integer nanoseconds are accepted. Pointer
// fields distinguish "absent" from zero values.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	StoreBackend                string         `json:"store_backend"`
	FileBackend                 string         `json:"file_backend"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	AdminSecret                 string         `json:"admin_secret"`
	DescriptionAPIKey           string         `json:"description_api_key"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	AMQPURL                     string         `json:"amqp_url"`
	AMQPExchange                string         `json:"amqp_exchange"`
	ActivityLogLimit            *int           `json:"activity_log_limit"`
	SeedDemoUser                *bool          `json:"seed_demo_user"`
	PasswordHashCost            int            `json:"password_hash_cost"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config in args and overlays every
// field present in it. Without the flag nothing happens. Read or decode
// failures panic: a broken config file is a startup error.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.FileBackend, c.FileBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setString(&config.AdminSecret, c.AdminSecret)
	setString(&config.DescriptionAPIKey, c.DescriptionAPIKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.AMQPURL, c.AMQPURL)
	setString(&config.AMQPExchange, c.AMQPExchange)
	if c.ActivityLogLimit != nil {
		config.ActivityLogLimit = *c.ActivityLogLimit
	}
	if c.SeedDemoUser != nil {
		config.SeedDemoUser = c.SeedDemoUser
	}
	if c.PasswordHashCost != 0 {
		config.PasswordHashCost = c.PasswordHashCost
	}
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
