package hints

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/voice-tutor/llm"
	"github.com/mrsingh-rishi/voice-tutor/logging"
	"github.com/mrsingh-rishi/voice-tutor/model"
)

type Generator struct {
	completer llm.Completer
	logger    *zap.Logger
}

func NewGenerator(completer llm.Completer, logger *zap.Logger) (*Generator, error) {
	if completer == nil {
		return nil, errors.New("completer is required")
	}
	return &Generator{completer: completer, logger: logging.OrNop(logger)}, nil
}

// Generate returns a nil card without calling the provider when the
// transcript is blank. Only provider failures are returned as errors.
func (g *Generator) Generate(ctx context.Context, transcript string) (*model.HintCard, error) {
	text := strings.TrimSpace(transcript)
	if text == "" {
		return nil, nil
	}

	content, err := g.completer.CompleteJSON(ctx, BuildPrompt(text))
	if err != nil {
		return nil, errors.Wrap(err, "generate hints")
	}

	card := ParseCard(content)
	g.logger.Debug("hints generated", zap.Int("translations", len(card.Translations)))
	return &card, nil
}
