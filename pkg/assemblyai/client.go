package assemblyai

import (
	"context"
	"fmt"
	"os"
	"time"

	"caption-studio/internal/types"
	"caption-studio/log"
	apperrors "caption-studio/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseUrl = "https://api.assemblyai.com/v2"

// Client talks to an AssemblyAI-style transcription API: binary upload,
// transcript creation, then polling until the transcript is ready.
type Client struct {
	client *resty.Client

	// Polling knobs, overridable in tests.
	PollInterval    time.Duration
	MaxPollAttempts int
}

type uploadResponse struct {
	UploadUrl string `json:"upload_url"`
}

type createTranscriptRequest struct {
	AudioUrl     string `json:"audio_url"`
	LanguageCode string `json:"language_code,omitempty"`
}

// Word carries collaborator-native millisecond timestamps.
type Word struct {
	Text       string  `json:"text"`
	Start      int64   `json:"start"`
	End        int64   `json:"end"`
	Confidence float64 `json:"confidence"`
}

type Transcript struct {
	Id         string  `json:"id"`
	Status     string  `json:"status"`
	Error      string  `json:"error,omitempty"`
	Words      []Word  `json:"words,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

func NewClient(baseUrl, apiKey, proxyAddr string) *Client {
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	client := resty.New().
		SetBaseURL(baseUrl).
		SetHeader("authorization", apiKey)
	if proxyAddr != "" {
		client.SetProxy(proxyAddr)
	}
	return &Client{
		client:          client,
		PollInterval:    5 * time.Second,
		MaxPollAttempts: 60,
	}
}

// Upload sends the audio file as a binary body and returns the opaque
// reference URL the collaborator assigned to it.
func (c *Client) Upload(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeFileNotFound, "Audio file not readable", err)
	}

	var result uploadResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("content-type", "application/octet-stream").
		SetBody(data).
		SetResult(&result).
		Post("/upload")
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUploadFailed, "Audio upload failed", err)
	}
	if resp.IsError() {
		return "", apperrors.WrapWithDetail(apperrors.CodeUploadFailed, "Audio upload failed", resp.String(), fmt.Errorf("status %d", resp.StatusCode()))
	}
	if result.UploadUrl == "" {
		return "", apperrors.New(apperrors.CodeUploadFailed, "Audio upload returned no reference URL")
	}
	return result.UploadUrl, nil
}

// CreateTranscript requests a transcription job for an uploaded audio
// reference. The "auto" language hint sends no language code, letting the
// collaborator detect it.
func (c *Client) CreateTranscript(ctx context.Context, audioUrl, language string) (string, error) {
	req := createTranscriptRequest{AudioUrl: audioUrl}
	if language != "" && language != "auto" {
		req.LanguageCode = language
	}

	var result Transcript
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/transcript")
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeTranscribeFailed, "Transcription request failed", err)
	}
	if resp.IsError() {
		return "", apperrors.WrapWithDetail(apperrors.CodeTranscribeFailed, "Transcription request failed", resp.String(), fmt.Errorf("status %d", resp.StatusCode()))
	}
	if result.Id == "" {
		return "", apperrors.New(apperrors.CodeTranscribeFailed, "Transcription request returned no job id")
	}
	return result.Id, nil
}

func (c *Client) GetTranscript(ctx context.Context, id string) (*Transcript, error) {
	var result Transcript
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/transcript/" + id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTranscribeFailed, "Transcription poll failed", err)
	}
	if resp.IsError() {
		return nil, apperrors.WrapWithDetail(apperrors.CodeTranscribeFailed, "Transcription poll failed", resp.String(), fmt.Errorf("status %d", resp.StatusCode()))
	}
	return &result, nil
}

// Transcribe implements types.Transcriber: upload, create, poll at a fixed
// interval up to the attempt ceiling, then normalize the word list.
func (c *Client) Transcribe(ctx context.Context, audioFile string, language string) ([]types.WordTimestamp, error) {
	uploadUrl, err := c.Upload(ctx, audioFile)
	if err != nil {
		return nil, err
	}
	log.GetLogger().Info("audio uploaded to transcription collaborator", zap.String("audioFile", audioFile))

	transcriptId, err := c.CreateTranscript(ctx, uploadUrl, language)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < c.MaxPollAttempts; attempt++ {
		transcript, err := c.GetTranscript(ctx, transcriptId)
		if err != nil {
			return nil, err
		}

		switch transcript.Status {
		case "completed":
			return normalizeWords(transcript.Words), nil
		case "error":
			return nil, apperrors.WrapWithDetail(apperrors.CodeTranscribeFailed, "Transcription failed", transcript.Error, nil)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}

	return nil, apperrors.New(apperrors.CodeTranscribeTimeout, "Transcription timeout")
}

// normalizeWords converts millisecond timestamps to seconds and fills in the
// default confidence for words the collaborator left unscored.
func normalizeWords(words []Word) []types.WordTimestamp {
	normalized := make([]types.WordTimestamp, 0, len(words))
	for _, word := range words {
		confidence := word.Confidence
		if confidence == 0 {
			confidence = 0.9
		}
		normalized = append(normalized, types.WordTimestamp{
			Word:       word.Text,
			Start:      float64(word.Start) / 1000,
			End:        float64(word.End) / 1000,
			Confidence: confidence,
		})
	}
	return normalized
}
