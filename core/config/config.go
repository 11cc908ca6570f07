package config

import (
	"reflect"
	"strings"

	"font-helper/core/database"
	"font-helper/core/fontsource"
	"font-helper/core/logger"
	"font-helper/core/server"
	"font-helper/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
// It is built once at startup and shared read-only by every handler.
type Config struct {
	// Server holds configuration for the HTTP server and its supervisor.
	Server server.Config `mapstructure:"server"`
	// Fonts holds configuration for local font discovery.
	Fonts fontsource.Config `mapstructure:"fonts"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the font index cache.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the remote font library bucket.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// 2. Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// 3. Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Decode into the typed struct; durations and comma lists are
	// converted by viper's default decode hooks
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns a Config populated only from the struct tag defaults.
func Default() *Config {
	v := viper.New()
	bindValues(v, Config{}, "")

	var config Config
	// Defaults are static strings, a decode failure here is a programming error.
	if err := v.Unmarshal(&config); err != nil {
		panic(err)
	}
	return &config
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Nested partial configs get their own prefix
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
