package main

import (
	"os"

	"caption-studio/config"
	"caption-studio/internal/appdirs"
	"caption-studio/internal/deps"
	"caption-studio/internal/server"
	"caption-studio/internal/storage"
	"caption-studio/log"

	"go.uber.org/zap"
)

func main() {
	log.InitLogger()
	defer log.GetLogger().Sync()

	created, err := config.LoadOrCreateConfig()
	if err != nil {
		log.GetLogger().Error("loading config failed", zap.Error(err))
		return
	}
	if created {
		log.GetLogger().Info("default config written, fill in the API keys before transcribing")
	}

	if err = config.CheckConfig(); err != nil {
		log.GetLogger().Error("config check failed", zap.Error(err))
		return
	}

	dirs, err := appdirs.Resolve()
	if err != nil {
		log.GetLogger().Error("resolving app directories failed", zap.Error(err))
		return
	}
	if err = appdirs.EnsureAll(dirs); err != nil {
		log.GetLogger().Error("preparing app directories failed", zap.Error(err))
		return
	}

	if err = deps.CheckDependency(); err != nil {
		log.GetLogger().Error("dependency check failed", zap.Error(err))
		return
	}

	jobs, err := buildJobRepository()
	if err != nil {
		log.GetLogger().Error("initializing job store failed", zap.Error(err))
		return
	}

	if err = server.StartBackend(jobs); err != nil {
		log.GetLogger().Error("backend server failed", zap.Error(err))
		os.Exit(1)
	}
}

func buildJobRepository() (storage.JobRepository, error) {
	if config.Conf.Storage.Driver == "sqlite" {
		return storage.NewSqliteJobRepository()
	}
	return storage.NewMemoryJobRepository(), nil
}
