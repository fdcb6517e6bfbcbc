//go:build !apitest

package api

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/MrE-Fog/grindery-delight-api/internal/api/handlers"
	"github.com/MrE-Fog/grindery-delight-api/internal/config"
	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/database"
	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/lifecycle"
	"github.com/MrE-Fog/grindery-delight-api/internal/pkg/notify"
)

const defaultDatabase = "delight"

func NewApp(sig chan os.Signal) *http.Server {
	ctx := context.Background()
	if mode := os.Getenv(config.EnvDltGinMode); mode != "" {
		gin.SetMode(mode)
	}
	client, err := database.NewMongoDB(ctx, os.Getenv(config.EnvDltMongodbUri))
	if err != nil {
		log.Fatalln(err)
	}
	dbName := os.Getenv(config.EnvDltDatabase)
	if dbName == "" {
		dbName = defaultDatabase
	}
	if err := database.EnsureIndexes(ctx, client, dbName); err != nil {
		log.Fatalln(err)
	}

	hub := notify.NewHub()
	store := database.NewMongoStore(client, dbName)
	engine := lifecycle.NewEngine(store, hub)

	if os.Getenv(config.EnvDltXelisRPC) != "" {
		go monitorXelisDeposits(ctx, engine, sig)
	}

	return &http.Server{
		Addr:    ":" + os.Getenv(config.EnvDltPort),
		Handler: NewRouter(handlers.NewHandler(engine, hub)),
	}
}
