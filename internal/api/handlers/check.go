package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/dsnparr/internal/controllers"
	"github.com/amaumene/dsnparr/internal/models"
	"github.com/amaumene/dsnparr/internal/services/telegram"
)

// checkingMessage is shown in the chat until the first report arrives
const checkingMessage = "Checking..."

// CheckHandler runs availability checks
type CheckHandler struct {
	checks   *controllers.CheckController
	telegram *telegram.Client
	baseCtx  context.Context
	wg       sync.WaitGroup
	logger   *logrus.Logger
}

// NewCheckHandler creates a new check handler. Background checks run under
// baseCtx and stop when it is cancelled.
func NewCheckHandler(baseCtx context.Context, checks *controllers.CheckController, tg *telegram.Client, logger *logrus.Logger) *CheckHandler {
	return &CheckHandler{
		checks:   checks,
		telegram: tg,
		baseCtx:  baseCtx,
		logger:   logger,
	}
}

// CheckRequest is the body of POST /api/check
type CheckRequest struct {
	URL       string `json:"url"`
	Quality   string `json:"quality"`
	Audio     string `json:"alang"`
	Subtitles string `json:"slang"`
	Seasons   string `json:"seasons"`
	Regions   string `json:"regions"`
	MetaLang  string `json:"mlang"`
	ChatID    int64  `json:"chat_id"`
}

func (r CheckRequest) filters() models.RawFilters {
	return models.RawFilters{
		Quality:   r.Quality,
		Audio:     r.Audio,
		Subtitles: r.Subtitles,
		Seasons:   r.Seasons,
		Regions:   r.Regions,
		MetaLang:  r.MetaLang,
	}
}

// CheckResponse is the result of a synchronous check
type CheckResponse struct {
	Status           models.Outcome         `json:"status"`
	Report           string                 `json:"report"`
	AvailableRegions []string               `json:"available_regions"`
	MatchingRegions  []string               `json:"matching_regions"`
	Outcomes         []models.RegionOutcome `json:"outcomes"`
	Deliveries       []string               `json:"deliveries"`
}

// Check handles POST /api/check. Without a chat id the sweep runs within
// the request; with one the report is delivered to the chat and the
// request returns as soon as the check is accepted.
func (h *CheckHandler) Check(c *fiber.Ctx) error {
	var req CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url is required"})
	}

	if req.ChatID != 0 {
		return h.checkAsync(c, req)
	}

	recorder := &controllers.Recorder{}
	result, err := h.checks.Check(c.UserContext(), req.URL, req.filters(), recorder)
	if result == nil {
		return h.requestError(c, req.URL, err)
	}

	resp := CheckResponse{
		Status:           result.Outcome,
		Report:           result.Report,
		AvailableRegions: result.State.AllAvailable,
		MatchingRegions:  result.State.Matching,
		Outcomes:         result.Outcomes,
		Deliveries:       recorder.Texts(),
	}
	if err != nil {
		h.logger.WithError(err).WithField("url", req.URL).Warn("Check did not finish")
		return c.Status(fiber.StatusGatewayTimeout).JSON(resp)
	}
	return c.JSON(resp)
}

func (h *CheckHandler) checkAsync(c *fiber.Ctx, req CheckRequest) error {
	if !h.telegram.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": telegram.ErrNotConfigured.Error()})
	}

	prepared, err := h.checks.Prepare(c.UserContext(), req.URL, req.filters())
	if err != nil {
		return h.requestError(c, req.URL, err)
	}

	editor, err := telegram.NewMessageEditor(c.UserContext(), h.telegram, req.ChatID, checkingMessage)
	if err != nil {
		h.logger.WithError(err).WithField("chat_id", req.ChatID).Error("Failed to send message")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	logger := h.logger.WithFields(logrus.Fields{
		"chat_id":    req.ChatID,
		"content_id": prepared.Ref.ID,
	})

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		result, err := h.checks.Sweep(h.baseCtx, prepared, editor)
		if err != nil {
			logger.WithError(err).Warn("Background check stopped")
			return
		}
		logger.WithField("outcome", result.Outcome).Info("Background check finished")
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"status":     "accepted",
		"message_id": editor.MessageID(),
	})
}

// Wait blocks until every background check has returned
func (h *CheckHandler) Wait() {
	h.wg.Wait()
}

func (h *CheckHandler) requestError(c *fiber.Ctx, url string, err error) error {
	h.logger.WithError(err).WithField("url", url).Info("Check request rejected")

	var (
		filterErr   *models.InvalidFilterError
		redirectErr *models.RedirectError
	)
	switch {
	case errors.As(err, &filterErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrLocate), errors.Is(err, models.ErrEntityURL), errors.As(err, &redirectErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
