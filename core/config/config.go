package config

import (
	"reflect"
	"strings"

	"netbox-sync/core/database"
	"netbox-sync/core/logger"
	"netbox-sync/core/server"
	"netbox-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the report bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the snapshot database.
	Database database.Config `mapstructure:"database"`
	// Sync holds configuration for the sync pass.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig holds settings of a sync pass.
type SyncConfig struct {
	// SourceFile is the YAML inventory file applied on top of the snapshot.
	SourceFile string `mapstructure:"source_file" default:"inventory.yaml"`
	// DryRun builds and reports the plan without applying it.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// ReportPrefix is the object prefix of exported plans.
	ReportPrefix string `mapstructure:"report_prefix" default:"plans"`
	// ReportRetain is the number of exported plans kept; 0 keeps all.
	ReportRetain int `mapstructure:"report_retain" default:"0"`
	// PruneReport lists prune candidates in the printed report.
	PruneReport bool `mapstructure:"prune_report" default:"true"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// A missing .env is fine; the environment alone may configure everything.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// SYNC_SOURCE_FILE -> sync.source_file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues registers every mapstructure key with its `default` tag so that
// AutomaticEnv can see it.
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

		// Always set, even if empty, to register the key.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
