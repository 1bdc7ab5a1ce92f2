package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/essay-grader/internal/history"
	"alfredoptarigan/essay-grader/internal/models"
	"alfredoptarigan/essay-grader/internal/repositories"
)

type ResultHandler struct {
	sessions *history.Sessions
	subRepo  repositories.SubmissionRepository
}

// NewResultHandler serves graded essays. subRepo may be nil when the
// database is disabled.
func NewResultHandler(sessions *history.Sessions, subRepo repositories.SubmissionRepository) *ResultHandler {
	return &ResultHandler{
		sessions: sessions,
		subRepo:  subRepo,
	}
}

// HandleGetResult handles GET /essays/:id. The caller's session is checked
// first, then the archive, which only serves the session's own essays.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid essay ID format",
		})
	}

	if store, ok := h.sessions.Lookup(SessionID(c)); ok {
		if entry, found := store.Find(id); found {
			return c.JSON(models.SubmissionResponse{
				Source: models.SourceSession,
				Entry:  &entry,
			})
		}
	}

	if h.subRepo == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Essay not found",
		})
	}

	submission, err := h.subRepo.FindByID(id)
	if err == nil && submission.SessionID != SessionID(c) {
		err = repositories.ErrSubmissionNotFound
	}
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Essay not found",
			})
		}
		log.Errorf("❌ Failed to load submission %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load essay",
		})
	}

	return c.JSON(models.SubmissionResponse{
		Source:     models.SourceArchive,
		Submission: submission,
	})
}
