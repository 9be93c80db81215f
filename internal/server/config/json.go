package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/foodlog/internal/flagx"
	"github.com/dmitrijs2005/foodlog/internal/timex"
)

// JsonConfig mirrors Config for decoding JSON files. Durations accept both
// "15m" strings and integer nanoseconds. Absent keys leave Config untouched.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	RecordBackend                string         `json:"record_backend"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SQLitePath                   string         `json:"sqlite_path"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	ObjectBackend                string         `json:"object_backend"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	MealsBucket                  string         `json:"meals_bucket"`
	UsersBucket                  string         `json:"users_bucket"`
	PublicBaseURL                string         `json:"public_base_url"`
	LocalStorageRoot             string         `json:"local_storage_root"`
	UploadFailurePolicy          string         `json:"upload_failure_policy"`
	OtelEndpoint                 string         `json:"otel_endpoint"`
	LogLevel                     string         `json:"log_level"`
}

// parseJson loads the file named by -c / -config, if any.
func parseJson(config *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.RecordBackend, c.RecordBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.ObjectBackend, c.ObjectBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.MealsBucket, c.MealsBucket)
	setString(&config.UsersBucket, c.UsersBucket)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.LocalStorageRoot, c.LocalStorageRoot)
	setString(&config.UploadFailurePolicy, c.UploadFailurePolicy)
	setString(&config.OtelEndpoint, c.OtelEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
