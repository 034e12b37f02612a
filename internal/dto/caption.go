package dto

import "caption-studio/internal/types"

type AutoGenerateCaptionsReq struct {
	VideoPath string `json:"videoPath" binding:"required"`
	Language  string `json:"language"`
}

type AutoGenerateCaptionsResData struct {
	Captions   []types.WordTimestamp `json:"captions"`
	WordCount  int                   `json:"wordCount"`
	Confidence float64               `json:"confidence"`
}

type GenerateTimestampsReq struct {
	Script string `json:"script" binding:"required"`
}

type GenerateTimestampsResData struct {
	Timestamps []types.WordTimestamp `json:"timestamps"`
	WordCount  int                   `json:"wordCount"`
}

type TransliterateReq struct {
	Captions []types.WordTimestamp `json:"captions" binding:"required"`
}

type TransliterateResData struct {
	Captions      []types.WordTimestamp `json:"captions"`
	WordCount     int                   `json:"wordCount"`
	OriginalText  string                `json:"originalText"`
	ConvertedText string                `json:"convertedText"`
	Model         string                `json:"model"`
}
