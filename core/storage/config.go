package storage

// Config holds configuration for the remote font library bucket.
type Config struct {
	// Enabled turns on the remote font library.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Bucket is the name of the bucket holding the shared fonts.
	Bucket string `mapstructure:"bucket" default:"fonts"`
	// Prefix restricts the library to objects below this key prefix.
	Prefix string `mapstructure:"prefix" default:""`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
