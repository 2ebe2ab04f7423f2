package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the command-line configuration
type Config struct {
	Entities        string        `mapstructure:"entities"`
	Database        string        `mapstructure:"database"`
	Query           string        `mapstructure:"query"`
	CaseInsensitive bool          `mapstructure:"case_insensitive"`
	Concurrency     int           `mapstructure:"concurrency"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Verbose         bool          `mapstructure:"verbose"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper. An explicit cfgFile must exist;
// otherwise autolink.yaml is looked up in the usual places and may be absent.
func Init(cfgFile string) error {
	viper.SetDefault("entities", "")
	viper.SetDefault("database", "")
	viper.SetDefault("query", "")
	viper.SetDefault("case_insensitive", false)
	viper.SetDefault("concurrency", 1)
	viper.SetDefault("timeout", time.Duration(0))
	viper.SetDefault("verbose", false)

	viper.SetEnvPrefix("AUTOLINK")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
		return viper.Unmarshal(&C)
	}

	viper.SetConfigName("autolink")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "autolink"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return viper.Unmarshal(&C)
}
