package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Storage      Storage
	Database     Database
	GeminiApiKey string
}

type Server struct {
	Port string
}

type Storage struct {
	// Backend selects the state store: "postgres" or "memory".
	Backend string
	// Key is the single storage key the full instructor state lives under.
	Key string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

const DefaultStorageKey = "tbank.instructor.state"

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("STORAGE_BACKEND", "memory")
	viper.SetDefault("STORAGE_KEY", DefaultStorageKey)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Storage.Backend = viper.GetString("STORAGE_BACKEND")
	config.Storage.Key = viper.GetString("STORAGE_KEY")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Str("backend", config.Storage.Backend).Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
