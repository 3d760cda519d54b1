package hints

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mrsingh-rishi/voice-tutor/model"
)

// MaxTranslations caps the number of entries on a card.
const MaxTranslations = 8

var allowedPartsOfSpeech = map[string]bool{
	"noun":        true,
	"adjective":   true,
	"pronoun":     true,
	"adverb":      true,
	"preposition": true,
}

// AllowedPartOfSpeech reports whether pos may appear on a card.
func AllowedPartOfSpeech(pos string) bool {
	return allowedPartsOfSpeech[pos]
}

// ParseCard never fails: content that is not a JSON object, or whose
// translations field is not an array, produces an empty card.
func ParseCard(content string) model.HintCard {
	card := model.HintCard{Translations: []model.Translation{}}

	var payload struct {
		Translations json.RawMessage `json:"translations"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return card
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(payload.Translations, &entries); err != nil {
		return card
	}

	lower := cases.Lower(language.English)
	seen := make(map[string]bool, len(entries))
	for _, raw := range entries {
		if len(card.Translations) == MaxTranslations {
			break
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		entry := model.Translation{
			Word:          lower.String(textOf(fields["word"])),
			PartOfSpeech:  strings.ToLower(textOf(fields["pos"])),
			TranslationRU: textOf(fields["translation_ru"]),
		}

		if entry.Word == "" || !AllowedPartOfSpeech(entry.PartOfSpeech) || seen[entry.Word] {
			continue
		}
		seen[entry.Word] = true
		card.Translations = append(card.Translations, entry)
	}
	return card
}

// textOf reads a field the model may have typed loosely: a string, or a list
// of strings joined with ", ". Anything else reads as "".
func textOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			var part string
			if json.Unmarshal(item, &part) != nil {
				continue
			}
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
