package api

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain"
	"github.com/satriahrh/bhasha/domain/entities"
	"github.com/satriahrh/bhasha/domain/repositories"
	"github.com/satriahrh/bhasha/usecase"
)

// maxAudioUpload bounds a single recorded utterance
const maxAudioUpload = 10 << 20

// Handler serves the page and JSON API on top of the pipeline services
type Handler struct {
	translation   *usecase.TranslationService
	transcription *usecase.TranscriptionService
	store         repositories.AudioStore
	logger        *zap.Logger
}

func NewHandler(
	translation *usecase.TranslationService,
	transcription *usecase.TranscriptionService,
	store repositories.AudioStore,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		translation:   translation,
		transcription: transcription,
		store:         store,
		logger:        logger,
	}
}

// resolveLanguage maps the submitted name onto a known language. An empty
// selection means Hindi; unknown names are passed through as-is.
func resolveLanguage(name string) entities.Language {
	lang, ok := entities.ParseLanguage(name)
	if !ok && lang == "" {
		return entities.LanguageHindi
	}
	return lang
}

func (h *Handler) translate(c echo.Context) error {
	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("Failed to bind translate request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	result, err := h.translation.Translate(c.Request().Context(), entities.TranslationRequest{
		SourceText:     req.Text,
		TargetLanguage: resolveLanguage(req.Language),
	})
	if err != nil {
		return h.pipelineError(c, err)
	}

	return c.JSON(http.StatusOK, TranslateResponse{
		TranslatedText: result.TranslatedText,
		Language:       result.TargetLanguage.String(),
		SpeechCode:     result.SpeechCode,
		AudioURL:       audioURL(result.AudioID),
		AudioBase64:    base64.StdEncoding.EncodeToString(result.Audio),
	})
}

func (h *Handler) transcribe(c echo.Context) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "An audio file is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded audio", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Could not read the uploaded audio",
		})
	}
	defer src.Close()

	audio, err := io.ReadAll(io.LimitReader(src, maxAudioUpload+1))
	if err != nil {
		h.logger.Error("Failed to read uploaded audio", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Could not read the uploaded audio",
		})
	}
	if len(audio) > maxAudioUpload {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "audio_too_large",
			Message: "The recording is too long",
		})
	}

	sampleRate := 0
	if raw := c.FormValue("sample_rate"); raw != "" {
		sampleRate, err = strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Message: "sample_rate must be an integer",
			})
		}
	}

	text, err := h.transcription.Transcribe(c.Request().Context(), audio, c.FormValue("encoding"), sampleRate)
	if err != nil {
		return h.pipelineError(c, err)
	}
	return c.JSON(http.StatusOK, TranscribeResponse{Text: text})
}

func (h *Handler) audio(c echo.Context) error {
	rc, contentType, err := h.store.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrAudioNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Audio not found",
			})
		}
		h.logger.Error("Failed to open audio", zap.String("id", c.Param("id")), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Could not load audio",
		})
	}
	defer rc.Close()

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Stream(http.StatusOK, contentType, rc)
}

func (h *Handler) languages(c echo.Context) error {
	return c.JSON(http.StatusOK, languageOptions())
}

func (h *Handler) pipelineError(c echo.Context, err error) error {
	kind := domain.KindOf(err)
	status := domain.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("kind", kind.String()), zap.Error(err))
	} else {
		h.logger.Info("Request rejected", zap.String("kind", kind.String()), zap.Error(err))
	}
	return c.JSON(status, ErrorResponse{
		Error:   kind.String(),
		Message: domain.UserMessage(err),
	})
}

func audioURL(id string) string {
	if id == "" {
		return ""
	}
	return "/audio/" + id
}
