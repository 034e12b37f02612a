package dto

import "caption-studio/internal/types"

type StartExportReq struct {
	VideoPath      string                `json:"videoPath" binding:"required"`
	Layers         []types.Layer         `json:"layers"`
	WordTimestamps []types.WordTimestamp `json:"wordTimestamps"`
	CaptionStyle   *types.CaptionStyle   `json:"captionStyle"`
}

type StartExportResData struct {
	JobId   string `json:"jobId"`
	Message string `json:"message"`
}

type UploadFileResData struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
}
