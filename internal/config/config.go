// Package config provides the viper-backed configuration singleton for the
// goboard server: an optional YAML config file, GOBOARD_-prefixed
// environment variables, and sane defaults, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var v *viper.Viper

// Initialize sets up the configuration singleton. cfgFile, when non-empty,
// names an explicit config file; otherwise config.yaml is searched for in
// the working directory. A missing config file is not an error.
func Initialize(cfgFile string) error {
	v = viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GOBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen-addr", ":7890")
	v.SetDefault("events-addr", ":8080")
	v.SetDefault("workers", 8)
	v.SetDefault("state-dir", "state")
	v.SetDefault("multicast-base", "239.0.0.0")
	v.SetDefault("multicast-port", 10000)
	v.SetDefault("rate-burst", 32)
	v.SetDefault("rate-interval", time.Second)
	v.SetDefault("allowed-origins", []string{"http://localhost:8080"})
	v.SetDefault("shutdown-timeout", 10*time.Second)
	v.SetDefault("log-file", "")
	v.SetDefault("log-max-size", 10)
	v.SetDefault("log-max-backups", 3)
	v.SetDefault("log-max-age", 7)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	sanitize()
	return nil
}

// sanitize clamps invalid values back to their defaults.
func sanitize() {
	if v.GetInt("workers") <= 0 {
		v.Set("workers", 8)
	}
	if v.GetInt("rate-burst") <= 0 {
		v.Set("rate-burst", 32)
	}
	if v.GetDuration("rate-interval") <= 0 {
		v.Set("rate-interval", time.Second)
	}
	if v.GetString("listen-addr") == "" {
		v.Set("listen-addr", ":7890")
	}
	if v.GetString("events-addr") == "" {
		v.Set("events-addr", ":8080")
	}
	if v.GetString("state-dir") == "" {
		v.Set("state-dir", "state")
	}
	if v.GetDuration("shutdown-timeout") <= 0 {
		v.Set("shutdown-timeout", 10*time.Second)
	}
}

// GetString retrieves a string configuration value.
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetInt retrieves an integer configuration value.
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetDuration retrieves a duration configuration value.
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// GetStringSlice retrieves a string-slice configuration value.
func GetStringSlice(key string) []string {
	if v == nil {
		return nil
	}
	return v.GetStringSlice(key)
}

// Set overrides a configuration value (used by tests and flag binding).
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}
