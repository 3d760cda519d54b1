package hints

import "strings"

const promptHeader = `You are a concise English-to-Russian teaching assistant.
Use only the student's transcript below.
Find distinct words that actually appear in the student's speech which are nouns, adjectives, pronouns, adverbs, or prepositions.
Return JSON strictly in this shape:
{
  "translations": [
    {"word": "...", "pos": "noun|adjective|pronoun|adverb|preposition", "translation_ru": "..."}
  ]
}
Rules:
- Provide at most 8 items.
- Use the lowercase base form of the English word.
- Give a short (1-3 word) Russian translation.
- Do not include verbs or any other parts of speech.
- Avoid duplicates.
- If no qualifying words are found, return an empty array.
Student transcript: """`

// BuildPrompt embeds the transcript verbatim after the fixed instructions.
func BuildPrompt(transcript string) string {
	var sb strings.Builder
	sb.Grow(len(promptHeader) + len(transcript) + 3)
	sb.WriteString(promptHeader)
	sb.WriteString(transcript)
	sb.WriteString(`"""`)
	return sb.String()
}
