package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	Version = "Dev"
	Build   = "Dev"
	Date    = "Dev"
)

const (
	EnvDltJwtSecret     = "DLT_JWT_SECRET"
	EnvDltApiKeyHash    = "DLT_API_KEY_HASH"
	EnvDltPort          = "DLT_BACKEND_PORT"
	EnvDltLogLevel      = "DLT_LOG_LEVEL"
	EnvDltMongodbUri    = "DLT_MONGODB_URI"
	EnvDltDatabase      = "DLT_MONGODB_DATABASE"
	EnvDltGinMode       = "DLT_GIN_MODE"
	EnvDltProfile       = "DLT_PROFILE"
	EnvDltXelisRPC      = "DLT_XELIS_WALLET_RPC"
	EnvDltXelisID       = "DLT_XELIS_WALLET_ID"
	EnvDltXelisPassword = "DLT_XELIS_WALLET_PASSWORD"

	EnvFile = ".env"
)

func init() {
	fmt.Printf("Build Date: %s\nBuild Version: %s\nBuild: %s\n\n", Date, Version, Build)
	envProfile := os.Getenv(EnvDltProfile)
	if envProfile != "" {
		envProfile = fmt.Sprintf("_%s", envProfile)
	}
	err := godotenv.Load(EnvFile + envProfile)
	if err != nil {
		log.Warnf("Error loading %s file: %v", EnvFile, err)
	}
	logLevel, err := log.ParseLevel(os.Getenv(EnvDltLogLevel))
	if err != nil {
		logLevel = log.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&log.JSONFormatter{})
}
