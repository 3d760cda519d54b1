package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/voice-tutor/config"
	"github.com/mrsingh-rishi/voice-tutor/hints"
	"github.com/mrsingh-rishi/voice-tutor/llm"
	"github.com/mrsingh-rishi/voice-tutor/logging"
	"github.com/mrsingh-rishi/voice-tutor/server"
	"github.com/mrsingh-rishi/voice-tutor/stt"
)

// Sampling temperature for hint generation.
const hintsTemperature = 0.7

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "voice-tutor",
		Short:         "Serve the AI tutor client and its transcription and hint APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := logging.New(logging.Options{Verbose: cfg.LogVerbose, JSON: cfg.LogJSON})
	defer func() { _ = logger.Sync() }()

	if !cfg.EnvFileLoaded {
		logger.Debug("no .env file found, falling back to environment variables")
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; transcription and hint requests will fail")
	}
	if !cfg.ClientRootExists() {
		logger.Warn("client directory not found", zap.String("dir", cfg.ClientDir))
	}

	app, err := buildApp(cfg, logger)
	if err != nil {
		return err
	}
	return server.Run(ctx, app, cfg, logger)
}

func buildApp(cfg config.Config, logger *zap.Logger) (*fiber.App, error) {
	client := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	transcriber, err := stt.NewOpenAITranscriber(client, cfg.STTModel, logger.Named("stt"))
	if err != nil {
		return nil, err
	}
	completer, err := llm.NewOpenAIClient(client, cfg.HintsModel, hintsTemperature, logger.Named("llm"))
	if err != nil {
		return nil, err
	}
	generator, err := hints.NewGenerator(completer, logger.Named("hints"))
	if err != nil {
		return nil, err
	}

	return server.New(cfg, server.Deps{
		Transcriber: transcriber,
		Hints:       generator,
		Logger:      logger,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
