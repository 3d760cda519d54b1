package server

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/voice-tutor/logging"
)

// streamFrame is the reply to one audio frame on /api/stt_stream.
type streamFrame struct {
	Text   *string `json:"text,omitempty"`
	Error  string  `json:"error,omitempty"`
	Status int     `json:"status,omitempty"`
}

type inboundFrame struct {
	messageType int
	data        []byte
}

// sttStream transcribes every {audioBase64, mime} text frame and answers with
// one frame per request until the client goes away. Frames are read on their
// own goroutine so a closed socket cancels the transcription in flight.
func (h *handlers) sttStream(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())

	id, _ := conn.Locals(requestIDKey).(string)
	logger := logging.WithRequest(h.logger, id)
	logger.Debug("stt stream connected")

	frames := make(chan inboundFrame)
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer close(frames)
		defer cancel()
		for {
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug("stt stream closed")
				} else if ctx.Err() == nil {
					logger.Warn("stt stream read error", zap.Error(err))
				}
				return
			}
			select {
			case frames <- inboundFrame{messageType: mt, data: msg}:
			case <-ctx.Done():
				return
			}
		}
	}()
	// The connection is released once this handler returns, so the reader
	// must be gone first.
	defer func() {
		cancel()
		_ = conn.Close()
		<-readerDone
	}()

	for frame := range frames {
		reply := streamFrame{Error: "expected a JSON text frame", Status: fiber.StatusUnsupportedMediaType}
		if frame.messageType == websocket.TextMessage {
			reply = h.streamReply(ctx, id, frame.data)
		}
		if ctx.Err() != nil {
			return
		}
		if err := conn.WriteJSON(reply); err != nil {
			logger.Warn("stt stream write error", zap.Error(err))
			return
		}
	}
}

func (h *handlers) streamReply(ctx context.Context, requestID string, msg []byte) streamFrame {
	var req sttRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return streamFrame{Error: errInvalidJSON, Status: fiber.StatusBadRequest}
	}
	if req.AudioBase64 == "" {
		return streamFrame{Error: errMissingAudio, Status: fiber.StatusBadRequest}
	}

	text, err := h.transcribe(ctx, req)
	if err != nil {
		status, message := providerFailure(err, sttFallbackMsg)
		logProviderError(h.logger, "STT stream error", requestID, err)
		return streamFrame{Error: message, Status: status}
	}
	return streamFrame{Text: &text}
}
