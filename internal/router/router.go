package router

import (
	"caption-studio/internal/handler"
	"caption-studio/internal/storage"

	"github.com/gin-gonic/gin"
)

func SetupRouter(r *gin.Engine, jobs storage.JobRepository) {
	api := r.Group("/api")

	hdl := handler.NewHandler(jobs)
	{
		api.POST("/captions/auto-generate", hdl.AutoGenerateCaptions)
		api.POST("/captions/generate-timestamps", hdl.GenerateTimestamps)
		api.POST("/captions/transliterate", hdl.Transliterate)
		api.POST("/export", hdl.StartExport)
		api.GET("/export/progress/:jobId", hdl.GetExportProgress)
		api.POST("/file", hdl.UploadFile)
		api.GET("/file/*filepath", hdl.DownloadFile)
		api.HEAD("/file/*filepath", hdl.DownloadFile)
		api.GET("/config", hdl.GetConfig)
		api.POST("/config", hdl.UpdateConfig)
	}
}
