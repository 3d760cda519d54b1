package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/voice-tutor/logging"
)

// providerFailure maps an error to the HTTP status it carries (500 otherwise)
// and a message for the client.
func providerFailure(err error, fallback string) (int, string) {
	status := fiber.StatusInternalServerError
	msg := ""

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = clientVisibleStatus(apiErr.HTTPStatusCode)
		msg = apiErr.Message
	case errors.As(err, &reqErr):
		status = clientVisibleStatus(reqErr.HTTPStatusCode)
		// reqErr.Error() embeds the raw provider response body.
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
	case err != nil:
		msg = err.Error()
	}

	if msg == "" {
		msg = fallback
	}
	return status, msg
}

func clientVisibleStatus(code int) int {
	if code >= 400 && code <= 599 {
		return code
	}
	return fiber.StatusInternalServerError
}

func logProviderError(logger *zap.Logger, msg, requestID string, err error) {
	fields := []zap.Field{zap.Error(err)}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		fields = append(fields,
			zap.Int("status", apiErr.HTTPStatusCode),
			zap.Any("code", apiErr.Code),
			zap.String("type", apiErr.Type),
			zap.String("provider_message", apiErr.Message),
		)
	case errors.As(err, &reqErr):
		fields = append(fields, zap.Int("status", reqErr.HTTPStatusCode))
	}

	logging.WithRequest(logger, requestID).Error(msg, fields...)
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			logging.WithRequest(logger, requestIDOf(c)).Error("request failed", zap.Error(err))
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(err.Error())
	}
}
