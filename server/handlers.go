package server

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/voice-tutor/logging"
	"github.com/mrsingh-rishi/voice-tutor/model"
	"github.com/mrsingh-rishi/voice-tutor/stt"
)

type sttRequest struct {
	AudioBase64 string `json:"audioBase64" form:"audioBase64"`
	Mime        string `json:"mime" form:"mime"`
}

type sttResponse struct {
	Text string `json:"text"`
}

type hintsRequest struct {
	Student string `json:"student" form:"student"`
}

type hintsResponse struct {
	Card *model.HintCard `json:"card"`
}

const (
	errMissingAudio = "no audioBase64"
	errInvalidJSON  = "invalid JSON"
	sttFallbackMsg  = "STT error"
)

type handlers struct {
	transcriber stt.Transcriber
	hints       HintGenerator
	logger      *zap.Logger
}

// parseBody accepts JSON and form bodies. An empty body, or one with a
// content type neither parser understands, leaves v untouched.
func parseBody(c *fiber.Ctx, v any) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}
	err := c.BodyParser(v)
	if errors.Is(err, fiber.ErrUnprocessableEntity) {
		return nil
	}
	return err
}

// isTypeMismatch reports a well-formed body whose fields have the wrong type.
func isTypeMismatch(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

func (h *handlers) transcribe(ctx context.Context, req sttRequest) (string, error) {
	chunk, err := stt.DecodeAudio(req.AudioBase64, req.Mime)
	if err != nil {
		return "", err
	}
	return h.transcriber.Transcribe(ctx, chunk)
}

func (h *handlers) sttStudent(c *fiber.Ctx) error {
	var req sttRequest
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errInvalidJSON})
	}
	if req.AudioBase64 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errMissingAudio})
	}

	text, err := h.transcribe(c.UserContext(), req)
	if err != nil {
		status, msg := providerFailure(err, sttFallbackMsg)
		logProviderError(h.logger, "STT error", requestIDOf(c), err)
		return c.Status(status).SendString(msg)
	}
	return c.JSON(sttResponse{Text: text})
}

func (h *handlers) hintsForStudent(c *fiber.Ctx) error {
	var req hintsRequest
	if err := parseBody(c, &req); err != nil {
		logger := logging.WithRequest(h.logger, requestIDOf(c))
		if isTypeMismatch(err) {
			logger.Error("hints error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(hintsResponse{})
		}
		logger.Warn("hints request body rejected", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(hintsResponse{})
	}

	card, err := h.hints.Generate(c.UserContext(), req.Student)
	if err != nil {
		logProviderError(h.logger, "hints error", requestIDOf(c), err)
		return c.Status(fiber.StatusInternalServerError).JSON(hintsResponse{})
	}
	return c.JSON(hintsResponse{Card: card})
}
