package handler

import (
	"caption-studio/internal/deps"
	"caption-studio/internal/service"
	"caption-studio/internal/storage"
	"caption-studio/log"

	"go.uber.org/zap"
)

// configUpdated flags that the next request must rebuild collaborators from
// the saved config before serving.
var configUpdated bool

type Handler struct {
	Service *service.Service

	jobs storage.JobRepository
}

func NewHandler(jobs storage.JobRepository) *Handler {
	return &Handler{
		Service: service.NewService(jobs),
		jobs:    jobs,
	}
}

func (h *Handler) refreshService() {
	if !configUpdated {
		return
	}
	log.GetLogger().Info("config updated, reinitializing service")
	if err := deps.CheckDependency(); err != nil {
		log.GetLogger().Warn("dependency check after config update failed", zap.Error(err))
	}
	h.Service = service.NewService(h.jobs)
	configUpdated = false
}
