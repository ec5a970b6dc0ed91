// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBDriver            string        `mapstructure:"DB_DRIVER"`
	DBSource            string        `mapstructure:"DB_SOURCE"`
	ServerAddress       string        `mapstructure:"SERVER_ADDRESS"`
	TokenType           string        `mapstructure:"TOKEN_TYPE"`
	TokenSymmetricKey   string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	Environement        string        `mapstructure:"GO_ENV"`
	DepositMinAmount    string        `mapstructure:"DEPOSIT_MIN_AMOUNT"`
	DepositLockTimeout  time.Duration `mapstructure:"DEPOSIT_LOCK_TIMEOUT"`
	DepositMaxRetries   int           `mapstructure:"DEPOSIT_MAX_RETRIES"`
	DepositRetryBackoff time.Duration `mapstructure:"DEPOSIT_RETRY_BACKOFF"`
}

// Defaults applied when neither the config file nor the environment sets a value.
const (
	DefaultTokenType           = "paseto"
	DefaultDepositMinAmount    = "100"
	DefaultDepositLockTimeout  = 2 * time.Second
	DefaultDepositMaxRetries   = 3
	DefaultDepositRetryBackoff = 50 * time.Millisecond
)

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("TOKEN_TYPE", DefaultTokenType)
	v.SetDefault("DEPOSIT_MIN_AMOUNT", DefaultDepositMinAmount)
	v.SetDefault("DEPOSIT_LOCK_TIMEOUT", DefaultDepositLockTimeout)
	v.SetDefault("DEPOSIT_MAX_RETRIES", DefaultDepositMaxRetries)
	v.SetDefault("DEPOSIT_RETRY_BACKOFF", DefaultDepositRetryBackoff)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
