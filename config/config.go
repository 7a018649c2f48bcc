package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all runtime settings. Values come from the environment
// (optionally a local .env file) with sane defaults for local development.
type Config struct {
	Port      string `mapstructure:"PORT"`
	GinMode   string `mapstructure:"GIN_MODE"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	DBDriver   string `mapstructure:"DB_DRIVER"` // "postgres" | "sqlite"
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBPath     string `mapstructure:"DB_PATH"` // sqlite only

	AlertUrgentBelow  float64 `mapstructure:"ALERT_URGENT_BELOW"`
	AlertWarningBelow float64 `mapstructure:"ALERT_WARNING_BELOW"`

	SeedData bool `mapstructure:"SEED_DATA"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "5000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "satim_banking")
	v.SetDefault("DB_PATH", "satim_banking.db")
	v.SetDefault("ALERT_URGENT_BELOW", 500.0)
	v.SetDefault("ALERT_WARNING_BELOW", 1000.0)
	v.SetDefault("SEED_DATA", false)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
