package service

import (
	"caption-studio/config"
	"caption-studio/internal/storage"
	"caption-studio/internal/types"
	"caption-studio/log"
	"caption-studio/pkg/assemblyai"
	"caption-studio/pkg/openai"

	"go.uber.org/zap"
)

type Service struct {
	Transcriber   types.Transcriber
	ChatCompleter types.ChatCompleter
	Jobs          storage.JobRepository
}

func NewService(jobs storage.JobRepository) *Service {
	var transcriber types.Transcriber

	switch config.Conf.Transcribe.Provider {
	case "", "assemblyai":
		transcriber = assemblyai.NewClient(
			config.Conf.Transcribe.Assemblyai.BaseUrl,
			config.Conf.Transcribe.Assemblyai.ApiKey,
			config.Conf.App.Proxy,
		)
	default:
		log.GetLogger().Error("unknown transcription provider", zap.String("provider", config.Conf.Transcribe.Provider))
		return nil
	}
	log.GetLogger().Info("transcription provider selected", zap.String("transcriber", config.Conf.Transcribe.Provider))

	chatCompleter := openai.NewClient(
		config.Conf.Llm.BaseUrl,
		config.Conf.Llm.ApiKey,
		config.Conf.Llm.Model,
		config.Conf.App.Proxy,
	)

	return &Service{
		Transcriber:   transcriber,
		ChatCompleter: chatCompleter,
		Jobs:          jobs,
	}
}
