package config

import (
	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
}

func New() Config {
	// Missing .env is fine, real env vars still apply
	_ = godotenv.Load()
	return mainConfig{}
}
