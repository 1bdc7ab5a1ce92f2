package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/essay-grader/internal/models"
	"alfredoptarigan/essay-grader/internal/services"
)

type EssayHandler struct {
	grader      services.GraderService
	maxFileSize int64
}

func NewEssayHandler(grader services.GraderService, maxFileSize int64) *EssayHandler {
	return &EssayHandler{
		grader:      grader,
		maxFileSize: maxFileSize,
	}
}

// HandleSubmit handles POST /essays. It accepts either a multipart form with
// "theme" and an "essay" file, or a JSON body with theme and text.
func (h *EssayHandler) HandleSubmit(c *fiber.Ctx) error {
	sessionID := SessionID(c)

	var (
		entry models.HistoryEntry
		err   error
	)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		file, ferr := c.FormFile("essay")
		if ferr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "essay file is required",
			})
		}

		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Essay file too large. Max size: %d bytes", h.maxFileSize),
			})
		}

		entry, err = h.grader.GradeUpload(c.UserContext(), sessionID, c.FormValue("theme"), file)
	} else {
		var req models.EssayRequest
		if perr := c.BodyParser(&req); perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request payload",
			})
		}

		entry, err = h.grader.GradeText(c.UserContext(), sessionID, req.Theme, req.Text)
	}

	if err != nil {
		return gradingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func gradingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyTheme),
		errors.Is(err, services.ErrEmptyEssay),
		errors.Is(err, services.ErrUnsupportedFileType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrGradingFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "The grading service did not answer. Please try again later.",
		})
	default:
		log.Errorf("❌ Failed to grade essay: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to grade essay",
		})
	}
}
