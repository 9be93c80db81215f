package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/flagx"
)

var serverFlags = []string{
	"-a", "-grpc", "-db-backend", "-d", "-sqlite", "-s", "-t", "-r",
	"-object-backend", "-u", "-p", "-g", "-e",
	"-meals-bucket", "-users-bucket", "-public-url", "-storage-root",
	"-upload-policy", "-otel", "-log-level",
}

// parseFlags overlays command-line flags.
//
//	-a string               HTTP bind address (":8080")
//	-grpc string            gRPC health bind address (":50051")
//	-db-backend string      postgres | sqlite
//	-d string               PostgreSQL DSN
//	-sqlite string          SQLite database file
//	-s string               JWT HMAC secret key
//	-t int                  access token validity, minutes
//	-r int                  refresh token validity, minutes
//	-object-backend string  s3 | local
//	-u, -p, -g, -e string   S3 user, password, region, endpoint
//	-meals-bucket string    bucket for meal photos
//	-users-bucket string    bucket for avatars
//	-public-url string      base URL objects are served from
//	-storage-root string    root directory of the local object store
//	-upload-policy string   degrade | abort
//	-otel string            OTLP/HTTP collector endpoint
//	-log-level string       debug | info | warn | error
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "grpc", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.RecordBackend, "db-backend", config.RecordBackend, "record store backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SQLitePath, "sqlite", config.SQLitePath, "sqlite database file")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTTL := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTTL := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.ObjectBackend, "object-backend", config.ObjectBackend, "object store backend")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.MealsBucket, "meals-bucket", config.MealsBucket, "meal photo bucket")
	fs.StringVar(&config.UsersBucket, "users-bucket", config.UsersBucket, "avatar bucket")
	fs.StringVar(&config.PublicBaseURL, "public-url", config.PublicBaseURL, "public base URL of stored objects")
	fs.StringVar(&config.LocalStorageRoot, "storage-root", config.LocalStorageRoot, "local object store root")
	fs.StringVar(&config.UploadFailurePolicy, "upload-policy", config.UploadFailurePolicy, "upload failure policy")
	fs.StringVar(&config.OtelEndpoint, "otel", config.OtelEndpoint, "OTLP/HTTP collector endpoint")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Minutes granularity only applies when the flag was actually given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTTL) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTTL) * time.Minute
		}
	})
	return nil
}
