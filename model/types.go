package model

import "encoding/json"

const (
	MIMEWav  = "audio/wav"
	MIMEWebm = "audio/webm"
)

// AudioChunk is a decoded audio payload ready to be uploaded as a named file.
type AudioChunk struct {
	Data        []byte
	Filename    string
	ContentType string
}

// NewAudioChunk picks the container name from the client's mime hint.
// Only audio/wav is recognised; everything else is treated as WebM.
func NewAudioChunk(data []byte, mime string) AudioChunk {
	if mime == MIMEWav {
		return AudioChunk{Data: data, Filename: "chunk.wav", ContentType: MIMEWav}
	}
	return AudioChunk{Data: data, Filename: "chunk.webm", ContentType: MIMEWebm}
}

// Translation is a single word hint returned to the tutoring client.
type Translation struct {
	Word          string `json:"word"`
	PartOfSpeech  string `json:"pos"`
	TranslationRU string `json:"translation_ru"`
}

// HintCard groups the translations produced for one transcript.
type HintCard struct {
	Translations []Translation `json:"translations"`
}

// MarshalJSON keeps translations an array even when the card is empty.
func (c HintCard) MarshalJSON() ([]byte, error) {
	type card HintCard
	if c.Translations == nil {
		c.Translations = []Translation{}
	}
	return json.Marshal(card(c))
}
