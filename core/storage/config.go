package storage

// Config locates the bucket published definition snapshots are pulled from.
type Config struct {
	// Endpoint is the storage host, optionally prefixed with http:// or https://.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey and SecretKey are the static credentials.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL enables TLS for endpoints given without a scheme.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds one directory per locale under the manifest object prefix.
	Bucket string `mapstructure:"bucket" default:"manifests"`
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, TLS and the first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
