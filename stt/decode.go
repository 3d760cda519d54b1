package stt

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	"github.com/mrsingh-rishi/voice-tutor/model"
)

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeAudio turns a base64 payload into an AudioChunk named after the mime hint.
// Whitespace is ignored and both the standard and URL alphabets are accepted,
// padded or not.
func DecodeAudio(payload, mime string) (model.AudioChunk, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)

	var firstErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(cleaned)
		if err == nil {
			return model.NewAudioChunk(data, mime), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return model.AudioChunk{}, errors.Wrap(firstErr, "decode audio payload")
}
