package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileName is the JSON config file the server looks for.
const ConfigFileName = "unimap_server.cfg.json"

// ServerConfig holds HTTP/WebSocket listener settings.
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// SQLiteConfig holds SQLite fallback settings.
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// StorageConfig holds catalog storage backend settings.
type StorageConfig struct {
	Type     string         `json:"type" mapstructure:"type"` // memory | gorm
	SeedPath string         `json:"seedPath" mapstructure:"seedPath"`
	SQLite   SQLiteConfig   `json:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresConfig `json:"postgres" mapstructure:"postgres"`
}

// GlobeConfig holds camera transition tuning for scene sessions.
type GlobeConfig struct {
	FocusDuration  time.Duration
	ResetDuration  time.Duration
	EntityAltitude float64
	RegionAltitude float64
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// Load reads configuration from a JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./unimaplogs")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.seedPath", "./data/catalog.json")
	viper.SetDefault("storage.sqlite.path", "./unimap_catalog.db")
	viper.SetDefault("storage.postgres.host", "localhost")
	viper.SetDefault("storage.postgres.port", "5432")
	viper.SetDefault("storage.postgres.username", "postgres")
	viper.SetDefault("storage.postgres.password", "postgres")
	viper.SetDefault("storage.postgres.database", "unimap")

	viper.SetDefault("globe.focusDuration", "1600ms")
	viper.SetDefault("globe.resetDuration", "1200ms")
	viper.SetDefault("globe.entityAltitude", 60_000.0)
	viper.SetDefault("globe.regionAltitude", 2_500_000.0)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "unimap-metrics")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "unimap-server")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	return nil
}

// GetServerConfig returns the HTTP listener configuration.
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Host: viper.GetString("server.host"),
		Port: viper.GetInt("server.port"),
	}
}

// GetStorageConfig returns the catalog storage configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type:     viper.GetString("storage.type"),
		SeedPath: viper.GetString("storage.seedPath"),
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("storage.postgres.host"),
			Port:     viper.GetString("storage.postgres.port"),
			Username: viper.GetString("storage.postgres.username"),
			Password: viper.GetString("storage.postgres.password"),
			Database: viper.GetString("storage.postgres.database"),
		},
	}
}

// GetGlobeConfig returns camera transition tuning.
func GetGlobeConfig() GlobeConfig {
	return GlobeConfig{
		FocusDuration:  viper.GetDuration("globe.focusDuration"),
		ResetDuration:  viper.GetDuration("globe.resetDuration"),
		EntityAltitude: viper.GetFloat64("globe.entityAltitude"),
		RegionAltitude: viper.GetFloat64("globe.regionAltitude"),
	}
}

// GetOTelConfig returns OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
