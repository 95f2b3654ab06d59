package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/chainvote/internal/flagx"
	"github.com/dmitrijs2005/chainvote/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations use timex.Duration so
// both "1h" and integer nanoseconds are accepted; pointer fields tell an
// explicit false/zero apart from an absent key.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	EncryptionKey               string         `json:"encryption_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	AllowedOrigins              []string       `json:"allowed_origins"`
	RequireSignature            *bool          `json:"require_signature"`
	MaxUploadSize               int64          `json:"max_upload_size"`
	PinningBackend              string         `json:"pinning_backend"`
	PinningTimeout              timex.Duration `json:"pinning_timeout"`
	PinataEndpoint              string         `json:"pinata_endpoint"`
	PinataAPIKey                string         `json:"pinata_api_key"`
	PinataSecretAPIKey          string         `json:"pinata_secret_api_key"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	HealthCheckInterval         timex.Duration `json:"health_check_interval"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, and copies every
// key present in it over config. Unreadable or invalid files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.EncryptionKey, c.EncryptionKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.RequireSignature != nil {
		config.RequireSignature = *c.RequireSignature
	}
	if c.MaxUploadSize > 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	setString(&config.PinningBackend, c.PinningBackend)
	if c.PinningTimeout.Duration > 0 {
		config.PinningTimeout = c.PinningTimeout.Duration
	}
	setString(&config.PinataEndpoint, c.PinataEndpoint)
	setString(&config.PinataAPIKey, c.PinataAPIKey)
	setString(&config.PinataSecretAPIKey, c.PinataSecretAPIKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.HealthCheckInterval.Duration > 0 {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
