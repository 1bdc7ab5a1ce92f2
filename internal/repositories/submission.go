package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/essay-grader/internal/models"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type SubmissionRepository interface {
	Create(submission *models.Submission) error
	FindByID(id uuid.UUID) (*models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *models.Submission) error {
	if err := r.db.Create(submission).Error; err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *submissionRepository) FindByID(id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	if err := r.db.Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &submission, nil
}
