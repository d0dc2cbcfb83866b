package config

import (
	"github.com/spf13/viper"
)

// Config holds the service configuration. Values come from the
// environment first, with an optional app.env file for local runs.
type Config struct {
	Port                string `mapstructure:"PORT"`
	MongoURI            string `mapstructure:"MONGO_URI"`
	MongoDB             string `mapstructure:"MONGO_DB"`
	RedisAddr           string `mapstructure:"REDIS_ADDR"` // Empty disables the leaderboard cache
	JWTSecret           string `mapstructure:"JWT_SECRET"`
	LeaderboardCacheTTL int    `mapstructure:"LEADERBOARD_CACHE_TTL"` // Seconds
}

// LoadConfig reads configuration from path/app.env and the environment
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "campus_rewards")
	viper.SetDefault("LEADERBOARD_CACHE_TTL", 30)

	viper.BindEnv("PORT")
	viper.BindEnv("MONGO_URI")
	viper.BindEnv("MONGO_DB")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("LEADERBOARD_CACHE_TTL")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}
