package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Database struct {
		Path string `yaml:"path" env:"SCHOOL_DB_PATH" validate:"required"`
	} `yaml:"database"`

	Snapshot struct {
		Dir string `yaml:"dir" env:"SCHOOL_SNAPSHOT_DIR" validate:"required"`
	} `yaml:"snapshot"`

	Backup struct {
		Dir string `yaml:"dir" env:"SCHOOL_BACKUP_DIR" validate:"required"`
	} `yaml:"backup"`

	Export struct {
		Dir string `yaml:"dir" env:"SCHOOL_EXPORT_DIR" validate:"required"`
	} `yaml:"export"`

	Logging struct {
		Level  string `yaml:"level" env:"SCHOOL_LOG_LEVEL" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" env:"SCHOOL_LOG_FORMAT" validate:"oneof=json text"`
	} `yaml:"logging"`
}

var validate = validator.New()

// LoadConfig loads configuration from a file and environment variables.
// The file is optional; defaults are used when it is absent, and
// environment variables override both.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Database.Path = "school.db"
	config.Snapshot.Dir = "snapshots"
	config.Backup.Dir = "backups"
	config.Export.Dir = "exports"
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}
