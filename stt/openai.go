package stt

import (
	"bytes"
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/voice-tutor/logging"
	"github.com/mrsingh-rishi/voice-tutor/model"
)

//go:generate mockgen -destination=../mocks/mock_stt.go -package=mocks github.com/mrsingh-rishi/voice-tutor/stt Transcriber

// Transcriber converts one audio chunk into text.
type Transcriber interface {
	Transcribe(ctx context.Context, chunk model.AudioChunk) (string, error)
}

// OpenAITranscriber uploads chunks to the OpenAI transcription endpoint.
type OpenAITranscriber struct {
	Client   *openai.Client
	Model    string
	Language string
	Logger   *zap.Logger
}

func NewOpenAITranscriber(client *openai.Client, modelName string, logger *zap.Logger) (*OpenAITranscriber, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	if modelName == "" {
		modelName = openai.Whisper1
	}
	return &OpenAITranscriber{
		Client:   client,
		Model:    modelName,
		Language: "en",
		Logger:   logging.OrNop(logger),
	}, nil
}

// Transcribe returns the trimmed provider text. The provider infers the
// container from the file extension, so the chunk's Filename carries the type.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, chunk model.AudioChunk) (string, error) {
	t.Logger.Debug("sending audio for transcription",
		zap.String("filename", chunk.Filename),
		zap.String("content_type", chunk.ContentType),
		zap.Int("bytes", len(chunk.Data)),
		zap.String("model", t.Model),
	)

	resp, err := t.Client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.Model,
		FilePath: chunk.Filename,
		Reader:   bytes.NewReader(chunk.Data),
		Language: t.Language,
	})
	if err != nil {
		return "", errors.Wrap(err, "create transcription")
	}
	return strings.TrimSpace(resp.Text), nil
}
