package handler

import (
	"os"
	"path/filepath"

	"caption-studio/internal/dto"
	"caption-studio/internal/response"
	"caption-studio/log"
	apperrors "caption-studio/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) StartExport(c *gin.Context) {
	var req dto.StartExportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.GetLogger().Error("StartExport ShouldBindJSON err", zap.Error(err))
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Invalid parameters", err))
		return
	}
	log.GetLogger().Info("StartExport received request",
		zap.String("videoPath", req.VideoPath),
		zap.Int("layers", len(req.Layers)),
		zap.Int("wordCount", len(req.WordTimestamps)))

	h.refreshService()

	data, err := h.Service.StartExport(req)
	if err != nil {
		response.ErrorResponse(c, err)
		return
	}
	response.Success(c, data)
}

// GetExportProgress returns the raw job record; the frontend polls this
// endpoint directly and treats 404 as a vanished job.
func (h *Handler) GetExportProgress(c *gin.Context) {
	jobId := c.Param("jobId")
	if jobId == "" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "Job id is required"))
		return
	}

	job, err := h.Service.GetExportProgress(jobId)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			response.NotFound(c, err)
			return
		}
		response.ErrorResponse(c, err)
		return
	}
	response.R(c, job)
}

func (h *Handler) UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeInvalidParams, "Failed to read upload", err))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "No file uploaded"))
		return
	}

	uploadRoot := preferredUploadRoot()
	if err := os.MkdirAll(uploadRoot, 0o755); err != nil {
		response.ErrorResponse(c, apperrors.Wrap(apperrors.CodeFileWriteError, "Failed to prepare upload directory", err))
		return
	}

	var saved []dto.UploadFileResData
	for _, file := range files {
		fileName := filepath.Base(file.Filename)
		savePath := filepath.Join(uploadRoot, fileName)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			log.GetLogger().Error("UploadFile save err", zap.String("file", fileName), zap.Error(err))
			response.ErrorResponse(c, apperrors.WrapWithDetail(apperrors.CodeFileWriteError, "Failed to save file", fileName, err))
			return
		}
		saved = append(saved, dto.UploadFileResData{
			FilePath: savePath,
			FileName: fileName,
		})
	}

	response.Success(c, gin.H{"files": saved})
}

func (h *Handler) DownloadFile(c *gin.Context) {
	requestedFile := c.Param("filepath")
	if requestedFile == "" || requestedFile == "/" {
		response.ErrorResponse(c, apperrors.New(apperrors.CodeInvalidParams, "File path is required"))
		return
	}

	localFilePath, ok := resolveDownloadPath(requestedFile)
	if !ok {
		response.NotFound(c, apperrors.ErrFileNotFound)
		return
	}
	if info, err := os.Stat(localFilePath); err != nil || info.IsDir() {
		response.NotFound(c, apperrors.ErrFileNotFound)
		return
	}
	c.FileAttachment(localFilePath, filepath.Base(localFilePath))
}
