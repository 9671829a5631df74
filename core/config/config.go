package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"manifest-resolver/core/database"
	"manifest-resolver/core/logger"
	"manifest-resolver/core/manifest"
	"manifest-resolver/core/server"
	"manifest-resolver/core/storage"
	"manifest-resolver/feature/item"
	"manifest-resolver/feature/search"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full resolver configuration, one section per package.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage snapshots are published to.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the snapshot database connection.
	Database database.Config `mapstructure:"database"`
	// Manifest holds configuration for locating and loading snapshots.
	Manifest manifest.Config `mapstructure:"manifest"`
	// Hydration holds configuration for item hydration.
	Hydration item.Config `mapstructure:"hydration"`
	// Search holds configuration for item search.
	Search search.Config `mapstructure:"search"`
}

// LoadConfig reads <dir>/.env into the environment, layers the environment
// over the struct tag defaults and validates the result.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	// SEARCH_LIMIT -> search.limit
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the resolver cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if !c.Server.IsValidLocale() {
		errs = append(errs, fmt.Errorf("server.locale %q is not supported", c.Server.Locale))
	}
	switch c.Manifest.Source {
	case manifest.SourceFile, manifest.SourceStorage:
	default:
		errs = append(errs, fmt.Errorf("manifest.source %q must be %s or %s", c.Manifest.Source, manifest.SourceFile, manifest.SourceStorage))
	}
	switch strings.ToLower(c.Database.Driver) {
	case database.DriverSQLite, database.DriverMySQL:
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if _, err := manifest.ParseCategories(c.Hydration.PerkCategories); err != nil {
		errs = append(errs, fmt.Errorf("hydration.perk_categories: %w", err))
	}
	if c.Search.Limit < 0 {
		errs = append(errs, fmt.Errorf("search.limit must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// bindValues registers every leaf field of iface as a viper key with its
// `default` tag. Keys must be registered, even with an empty default, for
// AutomaticEnv to resolve them on Unmarshal.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
