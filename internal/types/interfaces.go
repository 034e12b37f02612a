package types

import "context"

// Transcriber produces word-level timestamps for a local audio file.
// Implementations own their collaborator's upload/create/poll protocol.
type Transcriber interface {
	Transcribe(ctx context.Context, audioFile string, language string) ([]WordTimestamp, error)
}

// ChatCompleter is a chat-style completion collaborator.
type ChatCompleter interface {
	ChatCompletion(systemPrompt, userPrompt string) (string, error)
}
