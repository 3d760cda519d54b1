package server

import (
	"context"
	"net"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/voice-tutor/config"
	"github.com/mrsingh-rishi/voice-tutor/logging"
	"github.com/mrsingh-rishi/voice-tutor/model"
	"github.com/mrsingh-rishi/voice-tutor/stt"
)

const shutdownTimeout = 10 * time.Second

// HintGenerator produces a hint card for a transcript. A nil card with a nil
// error means there was nothing to look at.
type HintGenerator interface {
	Generate(ctx context.Context, transcript string) (*model.HintCard, error)
}

type Deps struct {
	Transcriber stt.Transcriber
	Hints       HintGenerator
	Logger      *zap.Logger
}

// New builds the Fiber app: API routes first, then the static client, then the
// SPA fallback for every other GET.
func New(cfg config.Config, deps Deps) (*fiber.App, error) {
	if deps.Transcriber == nil {
		return nil, errors.New("transcriber is required")
	}
	if deps.Hints == nil {
		return nil, errors.New("hint generator is required")
	}
	logger := logging.OrNop(deps.Logger)

	clientDir, err := filepath.Abs(cfg.ClientDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve client dir %q", cfg.ClientDir)
	}
	entryPath := filepath.Join(clientDir, cfg.EntryPage)

	app := fiber.New(fiber.Config{
		AppName:               "voice-tutor",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(requestID())
	app.Use(accessLog(logger))

	h := &handlers{transcriber: deps.Transcriber, hints: deps.Hints, logger: logger}

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	api.Post("/stt_student", h.sttStudent)
	api.Post("/hints", h.hintsForStudent)

	api.Use("/stt_stream", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/stt_stream", websocket.New(h.sttStream))

	app.Static("/", clientDir)

	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(entryPath)
	})

	return app, nil
}

// Run listens on cfg.Addr() and serves until ctx is cancelled.
func Run(ctx context.Context, app *fiber.App, cfg config.Config, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return errors.Wrapf(err, "listen on %s", cfg.Addr())
	}
	return Serve(ctx, app, ln, cfg.EntryPage, logger)
}

// Serve logs the reachable URLs and serves on ln. Cancelling ctx shuts the app
// down gracefully.
func Serve(ctx context.Context, app *fiber.App, ln net.Listener, entryPage string, logger *zap.Logger) error {
	logger = logging.OrNop(logger)

	port := 0
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	logStartup(logger, port, entryPage)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listener(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return <-errCh
	}
}

func logStartup(logger *zap.Logger, port int, entryPage string) {
	ips, err := LANIPv4()
	if err != nil {
		logger.Warn("failed to list network interfaces", zap.Error(err))
	}
	local, lan := ReachableURLs(port, entryPage, ips)

	logger.Info("AI tutor running", zap.String("local", local))
	if len(lan) > 0 {
		logger.Info("reachable on LAN", zap.Strings("urls", lan))
	}
}
