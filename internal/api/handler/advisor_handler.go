package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weddingplan/planner-api/internal/api/metrics"
	"github.com/weddingplan/planner-api/internal/core/domain"
	"github.com/weddingplan/planner-api/internal/core/ports"
)

// AdvisorService defines the AI assistant use cases.
type AdvisorService interface {
	Chat(ctx context.Context, userID, message, apiKey string) (string, error)
	Speech(ctx context.Context, userID string, in ports.SpeechInput, apiKey string) (string, error)
	AnalyzeFengShui(ctx context.Context, userID, apiKey string) (*domain.FengShuiResult, error)
}

type AdvisorHandler struct {
	service AdvisorService
}

func NewAdvisorHandler(service AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

// Chat godoc
//
// @Summary      Ask the planning assistant
// @Tags         advisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Gemini-Key  header    string       false  "Personal API key"
// @Param        body          body      chatRequest  true   "Message"
// @Success      200           {object}  completionResponse
// @Failure      429           {object}  errorResponse
// @Failure      503           {object}  errorResponse
// @Router       /v1/advisor/chat [post]
func (h *AdvisorHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	text, err := h.service.Chat(c.Request().Context(), userID, req.Message, c.Request().Header.Get(apiKeyHeader))
	observe(domain.UsageChat, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, completionResponse{Text: text})
}

// Speech godoc
//
// @Summary      Draft a wedding speech
// @Tags         advisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Gemini-Key  header    string         false  "Personal API key"
// @Param        body          body      speechRequest  true   "Speech brief"
// @Success      200           {object}  completionResponse
// @Failure      429           {object}  errorResponse
// @Router       /v1/advisor/speech [post]
func (h *AdvisorHandler) Speech(c echo.Context) error {
	var req speechRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	in := ports.SpeechInput{Speaker: req.Speaker, Tone: req.Tone, Notes: req.Notes}
	text, err := h.service.Speech(c.Request().Context(), userID, in, c.Request().Header.Get(apiKeyHeader))
	observe(domain.UsageSpeech, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, completionResponse{Text: text})
}

// FengShui analyses the saved profile and stores the result.
//
// @Summary      Run a feng shui date analysis
// @Tags         advisor
// @Produce      json
// @Security     BearerAuth
// @Param        X-Gemini-Key  header    string  false  "Personal API key"
// @Success      201           {object}  domain.FengShuiResult
// @Failure      422           {object}  errorResponse
// @Failure      429           {object}  errorResponse
// @Router       /v1/advisor/fengshui [post]
func (h *AdvisorHandler) FengShui(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	res, err := h.service.AnalyzeFengShui(c.Request().Context(), userID, c.Request().Header.Get(apiKeyHeader))
	observe(domain.UsageFengShui, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func observe(kind domain.UsageKind, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUsageLimitReached):
		result = "limited"
	case errors.Is(err, domain.ErrForbidden):
		result = "forbidden"
	default:
		result = "error"
	}
	metrics.AdvisorCallsTotal.WithLabelValues(string(kind), result).Inc()
}
