package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/essay-grader/internal/history"
	"alfredoptarigan/essay-grader/internal/models"
	"alfredoptarigan/essay-grader/internal/ranking"
)

type HistoryHandler struct {
	sessions    *history.Sessions
	defaultTopN int
}

func NewHistoryHandler(sessions *history.Sessions, defaultTopN int) *HistoryHandler {
	return &HistoryHandler{
		sessions:    sessions,
		defaultTopN: defaultTopN,
	}
}

// entries reads the session's history without creating a store for it.
func (h *HistoryHandler) entries(c *fiber.Ctx) []models.HistoryEntry {
	store, ok := h.sessions.Lookup(SessionID(c))
	if !ok {
		return []models.HistoryEntry{}
	}
	return store.All()
}

// HandleHistory handles GET /history
func (h *HistoryHandler) HandleHistory(c *fiber.Ctx) error {
	entries := h.entries(c)
	return c.JSON(models.HistoryResponse{
		SessionID: SessionID(c),
		Count:     len(entries),
		Entries:   entries,
	})
}

// HandleTop handles GET /history/top?n=
func (h *HistoryHandler) HandleTop(c *fiber.Ctx) error {
	n := c.QueryInt("n", h.defaultTopN)
	return c.JSON(models.RankingResponse{
		SessionID: SessionID(c),
		N:         n,
		Entries:   ranking.TopN(h.entries(c), n),
	})
}

// HandleChart handles GET /history/chart?n=
func (h *HistoryHandler) HandleChart(c *fiber.Ctx) error {
	n := c.QueryInt("n", h.defaultTopN)
	return c.JSON(fiber.Map{
		"session_id": SessionID(c),
		"n":          n,
		"points":     ranking.Chart(h.entries(c), n),
	})
}

// HandleThemes handles GET /history/themes
func (h *HistoryHandler) HandleThemes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"session_id": SessionID(c),
		"themes":     ranking.ThemeAverages(h.entries(c)),
	})
}

// HandleEndSession handles DELETE /session
func (h *HistoryHandler) HandleEndSession(c *fiber.Ctx) error {
	ended := h.sessions.End(SessionID(c))
	c.ClearCookie(SessionCookie)
	return c.JSON(fiber.Map{
		"session_id": SessionID(c),
		"ended":      ended,
	})
}
