package api

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/bhasha/domain"
	"github.com/satriahrh/bhasha/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is everything the translator page renders
type PageData struct {
	Text           string
	Language       string
	Languages      []LanguageOption
	TranslatedText string
	AudioURL       string
	Error          string
}

// TemplateRenderer implements echo.Renderer over the embedded page templates
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: templates}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func newPageData(text, language string) PageData {
	if language == "" {
		language = entities.LanguageHindi.String()
	}
	return PageData{
		Text:      text,
		Language:  language,
		Languages: languageOptions(),
	}
}

func (h *Handler) index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", newPageData(c.QueryParam("text"), c.QueryParam("language")))
}

// translateForm handles the no-script form post and re-renders the page in place.
// Pipeline failures are shown on the page rather than as an error status.
func (h *Handler) translateForm(c echo.Context) error {
	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("Failed to bind translate form", zap.Error(err))
	}

	lang := resolveLanguage(req.Language)
	data := newPageData(req.Text, lang.String())

	result, err := h.translation.Translate(c.Request().Context(), entities.TranslationRequest{
		SourceText:     req.Text,
		TargetLanguage: lang,
	})
	if err != nil {
		h.logger.Info("Translation not shown", zap.String("kind", domain.KindOf(err).String()), zap.Error(err))
		data.Error = domain.UserMessage(err)
		return c.Render(http.StatusOK, "index.html", data)
	}

	data.TranslatedText = result.TranslatedText
	data.AudioURL = audioURL(result.AudioID)
	return c.Render(http.StatusOK, "index.html", data)
}
