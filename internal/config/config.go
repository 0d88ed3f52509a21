package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Storage drivers accepted by storage.driver.
const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Gym       GymConfig       `mapstructure:"gym"`
	Security  SecurityConfig  `mapstructure:"security"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode" validate:"required,oneof=debug release test"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory mongo"`
}

// DatabaseConfig is only read when the mongo driver is selected.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret string `mapstructure:"secret" validate:"required,min=16"`
	// Expiration is parsed from a duration string such as "1h".
	Expiration time.Duration `mapstructure:"expiration" validate:"required"`
}

type GymConfig struct {
	// MaxMembersPerTrainer caps a trainer's roster.
	MaxMembersPerTrainer int `mapstructure:"max_members_per_trainer" validate:"required,gt=0"`
}

type SecurityConfig struct {
	// BcryptCost is the work factor for new password hashes.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// BootstrapConfig optionally seeds the first administrator at startup.
// Leaving the username empty disables seeding.
type BootstrapConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password" validate:"required_with=AdminUsername"`
	AdminEmail    string `mapstructure:"admin_email" validate:"required_with=AdminUsername"`
	AdminPhone    string `mapstructure:"admin_phone" validate:"required_with=AdminUsername"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	// Set the path to look for the config file in
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	v.AutomaticEnv()
	// Use replacer for nested keys e.g., server.address -> SERVER_ADDRESS
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	// A missing file is fine; defaults and env vars still apply.
	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key, which also lets AutomaticEnv see it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gym_management")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("gym.max_members_per_trainer", 20)
	v.SetDefault("security.bcrypt_cost", 10)
	v.SetDefault("bootstrap.admin_username", "")
	v.SetDefault("bootstrap.admin_password", "")
	v.SetDefault("bootstrap.admin_email", "")
	v.SetDefault("bootstrap.admin_phone", "")
}

var validate = validator.New()

// Validate checks field constraints and the mongo-specific requirements.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Driver == DriverMongo {
		if strings.TrimSpace(c.Database.URI) == "" {
			return errors.New("invalid config: database.uri is required for the mongo driver")
		}
		if strings.TrimSpace(c.Database.Name) == "" {
			return errors.New("invalid config: database.name is required for the mongo driver")
		}
	}
	return nil
}
