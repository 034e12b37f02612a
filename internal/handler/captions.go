package handler

import (
	"caption-studio/internal/dto"
	"caption-studio/internal/response"
	"caption-studio/log"
	apperrors "caption-studio/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) AutoGenerateCaptions(c *gin.Context) {
	var req dto.AutoGenerateCaptionsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("AutoGenerateCaptions ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("AutoGenerateCaptions received request",
		zap.String("videoPath", req.VideoPath), zap.String("language", req.Language))

	h.refreshService()

	data, err := h.Service.AutoGenerateCaptions(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h *Handler) GenerateTimestamps(c *gin.Context) {
	var req dto.GenerateTimestampsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("GenerateTimestamps ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}

	data, err := h.Service.GenerateScriptTimestamps(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

func (h *Handler) Transliterate(c *gin.Context) {
	var req dto.TransliterateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("Transliterate ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("Transliterate received request", zap.Int("wordCount", len(req.Captions)))

	h.refreshService()

	data, err := h.Service.TransliterateCaptions(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}
