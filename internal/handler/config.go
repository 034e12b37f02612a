package handler

import (
	"caption-studio/config"
	"caption-studio/internal/dto"
	"caption-studio/internal/response"
	"caption-studio/log"
	apperrors "caption-studio/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, dto.AppConfigResData{
		TranscribeProvider: config.Conf.Transcribe.Provider,
		AssemblyaiKeySet:   config.Conf.Transcribe.Assemblyai.ApiKey != "",
		AssemblyaiBaseUrl:  config.Conf.Transcribe.Assemblyai.BaseUrl,
		LlmKeySet:          config.Conf.Llm.ApiKey != "",
		LlmBaseUrl:         config.Conf.Llm.BaseUrl,
		LlmModel:           config.Conf.Llm.Model,
		StorageDriver:      config.Conf.Storage.Driver,
		ExportVideoCodec:   config.Conf.Export.VideoCodec,
	})
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req dto.UpdateAppConfigReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("UpdateConfig ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	if req.AssemblyaiApiKey != nil {
		config.Conf.Transcribe.Assemblyai.ApiKey = *req.AssemblyaiApiKey
	}
	if req.LlmApiKey != nil {
		config.Conf.Llm.ApiKey = *req.LlmApiKey
	}
	if req.LlmBaseUrl != nil {
		config.Conf.Llm.BaseUrl = *req.LlmBaseUrl
	}
	if req.LlmModel != nil {
		config.Conf.Llm.Model = *req.LlmModel
	}
	if req.ExportVideoCodec != nil {
		config.Conf.Export.VideoCodec = *req.ExportVideoCodec
	}

	if err := config.CheckConfig(); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid configuration", err))
		return
	}
	if err := config.SaveConfig(); err != nil {
		log.GetLogger().Error("UpdateConfig save err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to save configuration", err))
		return
	}

	configUpdated = true
	log.GetLogger().Info("configuration updated")
	response.Success(c, nil)
}
