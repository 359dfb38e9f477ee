package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// initViper wires viper to the process environment. A .env file in the
// working directory is loaded first so local development matches deploys.
func initViper() {
	_ = godotenv.Load()
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if viper.IsSet(key) {
		if v := viper.GetInt(key); v != 0 {
			return v
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if viper.IsSet(key) {
		if v := viper.GetInt64(key); v != 0 {
			return v
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return fallback
}
