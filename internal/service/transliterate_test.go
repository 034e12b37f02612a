package service

import (
	"errors"
	"testing"

	"caption-studio/config"
	"caption-studio/internal/dto"
	"caption-studio/internal/mocks"
	"caption-studio/internal/types"
	"caption-studio/log"
	apperrors "caption-studio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.InitLogger()
}

func withLlmConfig(t *testing.T, apiKey, model string) {
	t.Helper()
	original := config.Conf.Llm
	config.Conf.Llm.ApiKey = apiKey
	config.Conf.Llm.Model = model
	t.Cleanup(func() { config.Conf.Llm = original })
}

func sampleCaptions() []types.WordTimestamp {
	return []types.WordTimestamp{
		{Word: "नमस्ते", Start: 0.0, End: 0.4, Confidence: 0.95},
		{Word: "कैसे", Start: 0.4, End: 0.8, Confidence: 0.9},
		{Word: "हो", Start: 0.8, End: 1.2, Confidence: 0.85},
		{Word: "आप", Start: 1.2, End: 1.6, Confidence: 0.8},
		{Word: "सब", Start: 1.6, End: 2.0, Confidence: 0.75},
	}
}

func TestTransliterateCaptions_EmptyInput(t *testing.T) {
	svc := Service{ChatCompleter: new(mocks.MockChatCompleter)}

	_, err := svc.TransliterateCaptions(dto.TransliterateReq{})

	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidParams))
}

func TestTransliterateCaptions_PreservesTimestamps(t *testing.T) {
	withLlmConfig(t, "test-key", "test-model")

	mockChatCompleter := new(mocks.MockChatCompleter)
	mockChatCompleter.On("ChatCompletion", transliterateSystemPrompt, "नमस्ते कैसे हो आप सब").
		Return("Namaste kaise ho aap sab", nil)

	svc := Service{ChatCompleter: mockChatCompleter}

	result, err := svc.TransliterateCaptions(dto.TransliterateReq{Captions: sampleCaptions()})

	require.NoError(t, err)
	require.Len(t, result.Captions, 5)
	assert.Equal(t, "Namaste", result.Captions[0].Word)
	assert.Equal(t, "sab", result.Captions[4].Word)
	assert.Equal(t, "test-model", result.Model)
	for index, caption := range result.Captions {
		assert.Equal(t, sampleCaptions()[index].Start, caption.Start)
		assert.Equal(t, sampleCaptions()[index].End, caption.End)
	}
	mockChatCompleter.AssertExpectations(t)
}

func TestTransliterateCaptions_ShortCandidateKeepsOriginals(t *testing.T) {
	withLlmConfig(t, "test-key", "test-model")

	// The model dropped two words: positions past the candidate list keep
	// their original text, and the output length never changes.
	mockChatCompleter := new(mocks.MockChatCompleter)
	mockChatCompleter.On("ChatCompletion", transliterateSystemPrompt, "नमस्ते कैसे हो आप सब").
		Return("Namaste kaise ho", nil)

	svc := Service{ChatCompleter: mockChatCompleter}

	result, err := svc.TransliterateCaptions(dto.TransliterateReq{Captions: sampleCaptions()})

	require.NoError(t, err)
	require.Len(t, result.Captions, 5)
	assert.Equal(t, "Namaste", result.Captions[0].Word)
	assert.Equal(t, "kaise", result.Captions[1].Word)
	assert.Equal(t, "ho", result.Captions[2].Word)
	assert.Equal(t, "आप", result.Captions[3].Word)
	assert.Equal(t, "सब", result.Captions[4].Word)
}

func TestTransliterateCaptions_CompletionErrorFallsBack(t *testing.T) {
	withLlmConfig(t, "test-key", "test-model")

	mockChatCompleter := new(mocks.MockChatCompleter)
	mockChatCompleter.On("ChatCompletion", transliterateSystemPrompt, "नहीं देखी").
		Return("", errors.New("upstream unavailable"))

	svc := Service{ChatCompleter: mockChatCompleter}

	captions := []types.WordTimestamp{
		{Word: "नहीं", Start: 0, End: 0.4},
		{Word: "देखी", Start: 0.4, End: 0.8},
	}
	result, err := svc.TransliterateCaptions(dto.TransliterateReq{Captions: captions})

	require.NoError(t, err)
	assert.Equal(t, fallbackModelName, result.Model)
	assert.Equal(t, "nahi", result.Captions[0].Word)
	assert.Equal(t, "dekhi", result.Captions[1].Word)
}

func TestTransliterateCaptions_EmptyCompletionFallsBack(t *testing.T) {
	withLlmConfig(t, "test-key", "test-model")

	mockChatCompleter := new(mocks.MockChatCompleter)
	mockChatCompleter.On("ChatCompletion", transliterateSystemPrompt, "क्या बवाल").
		Return("", nil)

	svc := Service{ChatCompleter: mockChatCompleter}

	captions := []types.WordTimestamp{
		{Word: "क्या", Start: 0, End: 0.4},
		{Word: "बवाल", Start: 0.4, End: 0.8},
	}
	result, err := svc.TransliterateCaptions(dto.TransliterateReq{Captions: captions})

	require.NoError(t, err)
	assert.Equal(t, fallbackModelName, result.Model)
	assert.Equal(t, "kya", result.Captions[0].Word)
	assert.Equal(t, "bawal", result.Captions[1].Word)
}

func TestTransliterateCaptions_NoApiKeyUsesLocalTable(t *testing.T) {
	withLlmConfig(t, "", "test-model")

	// No collaborator call is allowed when no key is configured.
	mockChatCompleter := new(mocks.MockChatCompleter)
	svc := Service{ChatCompleter: mockChatCompleter}

	captions := []types.WordTimestamp{
		{Word: "बहुत", Start: 0, End: 0.4},
		{Word: "खतरनाक", Start: 0.4, End: 0.8},
	}

	first, err := svc.TransliterateCaptions(dto.TransliterateReq{Captions: captions})
	require.NoError(t, err)
	second, err := svc.TransliterateCaptions(dto.TransliterateReq{Captions: captions})
	require.NoError(t, err)

	assert.Equal(t, first.Captions, second.Captions)
	assert.Equal(t, "bahut", first.Captions[0].Word)
	assert.Equal(t, "khatarnak", first.Captions[1].Word)
	mockChatCompleter.AssertNotCalled(t, "ChatCompletion")
}

func TestRomanizeLocally_UnmappedTokensPassThrough(t *testing.T) {
	assert.Equal(t, "hello world", romanizeLocally("hello world"))
	assert.Equal(t, "peak level BGM", romanizeLocally("पीक लेवल बीजीएम"))
}
