// Package app wires configured adapters into the pipeline services and the HTTP server.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/adapters/llm"
	"github.com/satriahrh/bhasha/adapters/storage"
	"github.com/satriahrh/bhasha/adapters/stt"
	"github.com/satriahrh/bhasha/adapters/tts"
	"github.com/satriahrh/bhasha/domain/repositories"
	"github.com/satriahrh/bhasha/internal/api"
	"github.com/satriahrh/bhasha/internal/config"
	"github.com/satriahrh/bhasha/internal/websocket"
	"github.com/satriahrh/bhasha/usecase"
)

// Dependencies are the adapters behind each pipeline stage
type Dependencies struct {
	LLM   repositories.LargeLanguageModel
	STT   repositories.SpeechToText
	TTS   repositories.TextToSpeech
	Store repositories.AudioStore

	RequestTimeout time.Duration
	AudioDefaults  repositories.AudioConfig
}

// App is a ready-to-start server whose model endpoint has answered at least once
type App struct {
	echo   *echo.Echo
	logger *zap.Logger
}

// New builds adapters from cfg and confirms the model is reachable. When it is not,
// the model error is returned and no server is created.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	deps, err := BuildDependencies(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewWithDependencies(ctx, deps, logger)
}

// BuildDependencies selects an adapter for each stage by provider name
func BuildDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		RequestTimeout: cfg.RequestTimeout,
		AudioDefaults: repositories.AudioConfig{
			SampleRate: cfg.STTSampleRate,
			Encoding:   cfg.STTEncoding,
			Language:   cfg.STTLanguage,
		},
	}

	switch cfg.LLMProvider {
	case config.ProviderOllama:
		deps.LLM = llm.NewOllamaLLM(cfg.Ollama, logger)
	case config.ProviderOpenAI:
		deps.LLM = llm.NewOpenAILLM(cfg.OpenAI, logger)
	case config.ProviderGemini:
		gemini, err := llm.NewGeminiLLM(ctx, cfg.Gemini, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		deps.LLM = gemini
	case config.ProviderMock:
		deps.LLM = llm.NewMockLLM()
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}

	switch cfg.STTProvider {
	case config.ProviderGoogle:
		deps.STT = stt.NewGoogleSpeechToText(logger)
	case config.ProviderMock:
		deps.STT = stt.NewMockSpeechToText(logger)
	default:
		return nil, fmt.Errorf("unknown STT provider %q", cfg.STTProvider)
	}

	switch cfg.TTSProvider {
	case config.ProviderGoogleTranslate:
		deps.TTS = tts.NewGoogleTranslateTTS(cfg.GoogleTranslate, logger)
	case config.ProviderElevenLabs:
		elevenLabs, err := tts.NewElevenLabsTTS(cfg.ElevenLabs, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create eleven labs client: %w", err)
		}
		deps.TTS = elevenLabs
	case config.ProviderMock:
		deps.TTS = tts.NewMockTextToSpeech(logger)
	default:
		return nil, fmt.Errorf("unknown TTS provider %q", cfg.TTSProvider)
	}

	switch cfg.AudioStore {
	case config.StoreTempDir:
		store, err := storage.NewTempDirAudioStore(cfg.AudioDir, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create audio store: %w", err)
		}
		deps.Store = store
	case config.StoreMinio:
		store, err := storage.NewMinioAudioStore(ctx, cfg.Minio, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create audio store: %w", err)
		}
		deps.Store = store
	default:
		return nil, fmt.Errorf("unknown audio store %q", cfg.AudioStore)
	}

	return deps, nil
}

// NewWithDependencies checks the model and registers routes over the given adapters
func NewWithDependencies(ctx context.Context, deps *Dependencies, logger *zap.Logger) (*App, error) {
	translation := usecase.NewTranslationService(deps.LLM, deps.TTS, deps.Store, deps.RequestTimeout, logger)
	if err := translation.CheckModel(ctx); err != nil {
		logger.Error("Language model is not reachable", zap.String("provider", deps.LLM.Name()), zap.Error(err))
		return nil, err
	}
	logger.Info("Language model is reachable", zap.String("provider", deps.LLM.Name()))

	transcription := usecase.NewTranscriptionService(deps.STT, deps.AudioDefaults, deps.RequestTimeout, logger)

	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	handler := api.NewHandler(translation, transcription, deps.Store, logger)
	if err := api.InitRoutes(e, handler, websocket.NewHandler(transcription, logger), logger); err != nil {
		return nil, err
	}

	return &App{echo: e, logger: logger}, nil
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.echo
}

// Start blocks serving on addr until Shutdown is called
func (a *App) Start(addr string) error {
	a.logger.Info("Server starting", zap.String("addr", addr))
	return a.echo.Start(addr)
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.echo.Shutdown(ctx)
}
