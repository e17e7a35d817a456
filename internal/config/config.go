// Package config provides runtime configuration for the API server.
package config

import "github.com/spf13/viper"

type Config struct {
	ServerAddr  string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string
}

// Load collects configuration from the environment with sane defaults.
// Recognized variables: SERVER_ADDR, DATABASE_URL, REDIS_ADDR, JWT_SECRET.
func Load() Config {
	v := viper.New()
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("jwt_secret", "dev-secret-change-me")
	v.SetDefault("database_url", "")
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys on access; bind them so IsSet works too.
	for _, key := range []string{"server_addr", "database_url", "redis_addr", "jwt_secret"} {
		_ = v.BindEnv(key)
	}

	return Config{
		ServerAddr:  v.GetString("server_addr"),
		DatabaseURL: v.GetString("database_url"),
		RedisAddr:   v.GetString("redis_addr"),
		JWTSecret:   v.GetString("jwt_secret"),
	}
}
