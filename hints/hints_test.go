package hints

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/mrsingh-rishi/voice-tutor/mocks"
	"github.com/mrsingh-rishi/voice-tutor/model"
)

func TestBuildPromptEmbedsTranscript(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(`The small cat sat on "it".`)
	require.True(t, strings.HasPrefix(prompt, "You are a concise English-to-Russian teaching assistant."))
	require.True(t, strings.HasSuffix(prompt, `Student transcript: """The small cat sat on "it"."""`))
	require.Contains(t, prompt, `"translation_ru"`)
	require.Contains(t, prompt, "at most 8 items")
	require.Contains(t, prompt, "Do not include verbs")
	require.Equal(t, prompt, BuildPrompt(`The small cat sat on "it".`))
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []model.Translation
	}{
		{name: "not json", content: "sure! here you go", want: []model.Translation{}},
		{name: "empty object", content: "{}", want: []model.Translation{}},
		{name: "top level array", content: `[{"word":"cat","pos":"noun","translation_ru":"кошка"}]`, want: []model.Translation{}},
		{name: "translations not array", content: `{"translations":{"word":"cat"}}`, want: []model.Translation{}},
		{name: "translations null", content: `{"translations":null}`, want: []model.Translation{}},
		{
			name:    "valid",
			content: `{"translations":[{"word":"cat","pos":"noun","translation_ru":"кошка"},{"word":"small","pos":"adjective","translation_ru":"маленький"}]}`,
			want: []model.Translation{
				{Word: "cat", PartOfSpeech: "noun", TranslationRU: "кошка"},
				{Word: "small", PartOfSpeech: "adjective", TranslationRU: "маленький"},
			},
		},
		{
			name:    "normalizes and filters",
			content: `{"translations":[{"word":" Cat ","pos":"Noun","translation_ru":" кошка "},"junk",{"word":"sat","pos":"verb","translation_ru":"сидел"},{"word":"cat","pos":"noun","translation_ru":"кот"},{"word":"","pos":"noun","translation_ru":"?"},{"word":"on","pos":"preposition","translation_ru":"на"}]}`,
			want: []model.Translation{
				{Word: "cat", PartOfSpeech: "noun", TranslationRU: "кошка"},
				{Word: "on", PartOfSpeech: "preposition", TranslationRU: "на"},
			},
		},
		{
			name:    "loosely typed fields",
			content: `{"translations":[{"word":"cat","pos":"noun","translation_ru":["кошка"," кот "]},{"word":"it","pos":"pronoun","translation_ru":null},{"word":"on","pos":"preposition"},{"word":"two","pos":"noun","translation_ru":2},{"word":42,"pos":"noun","translation_ru":"x"},{"word":"big","pos":["adjective"],"translation_ru":"большой"}]}`,
			want: []model.Translation{
				{Word: "cat", PartOfSpeech: "noun", TranslationRU: "кошка, кот"},
				{Word: "it", PartOfSpeech: "pronoun", TranslationRU: ""},
				{Word: "on", PartOfSpeech: "preposition", TranslationRU: ""},
				{Word: "two", PartOfSpeech: "noun", TranslationRU: ""},
				{Word: "big", PartOfSpeech: "adjective", TranslationRU: "большой"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ParseCard(tt.content).Translations)
		})
	}
}

func TestParseCardCapsAtEight(t *testing.T) {
	t.Parallel()

	words := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	var sb strings.Builder
	sb.WriteString(`{"translations":[`)
	for i, w := range words {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"word":"` + w + `","pos":"noun","translation_ru":"x"}`)
	}
	sb.WriteString(`]}`)

	card := ParseCard(sb.String())
	require.Len(t, card.Translations, MaxTranslations)
	require.Equal(t, "h", card.Translations[7].Word)
}

func TestGenerateBlankTranscriptSkipsProvider(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().CompleteJSON(gomock.Any(), gomock.Any()).Times(0)

	gen, err := NewGenerator(completer, nil)
	require.NoError(t, err)

	for _, transcript := range []string{"", "   ", "\n\t"} {
		card, err := gen.Generate(context.Background(), transcript)
		require.NoError(t, err)
		require.Nil(t, card)
	}
}

func TestGenerateUsesTrimmedTranscript(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().
		CompleteJSON(gomock.Any(), BuildPrompt("The small cat sat on it.")).
		Return(`{"translations":[{"word":"cat","pos":"noun","translation_ru":"кошка"}]}`, nil)

	gen, err := NewGenerator(completer, nil)
	require.NoError(t, err)

	card, err := gen.Generate(context.Background(), "  The small cat sat on it.  ")
	require.NoError(t, err)
	require.NotNil(t, card)
	require.Equal(t, []model.Translation{{Word: "cat", PartOfSpeech: "noun", TranslationRU: "кошка"}}, card.Translations)
}

func TestGenerateMalformedContentYieldsEmptyCard(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().CompleteJSON(gomock.Any(), gomock.Any()).Return("not json at all", nil)

	gen, err := NewGenerator(completer, nil)
	require.NoError(t, err)

	card, err := gen.Generate(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, card)
	require.Empty(t, card.Translations)
	require.NotNil(t, card.Translations)
}

func TestGenerateReturnsProviderError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().CompleteJSON(gomock.Any(), gomock.Any()).Return("", errors.New("connection reset"))

	gen, err := NewGenerator(completer, nil)
	require.NoError(t, err)

	card, err := gen.Generate(context.Background(), "hello")
	require.Error(t, err)
	require.Nil(t, card)
	require.Contains(t, err.Error(), "connection reset")
}
