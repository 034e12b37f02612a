package server

import (
	"fmt"

	"caption-studio/config"
	"caption-studio/internal/router"
	"caption-studio/internal/storage"
	"caption-studio/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartBackend builds the HTTP engine and blocks serving it.
func StartBackend(jobs storage.JobRepository) error {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	router.SetupRouter(engine, jobs)

	address := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	log.GetLogger().Info("server starting", zap.String("address", address))
	return engine.Run(address)
}
