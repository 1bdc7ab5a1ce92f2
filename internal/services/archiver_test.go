package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"alfredoptarigan/essay-grader/internal/models"
)

type fakeSubmissionRepo struct {
	mu      sync.Mutex
	created []uuid.UUID
	failFor uuid.UUID
}

func (f *fakeSubmissionRepo) Create(s *models.Submission) error {
	if s.ID == f.failFor {
		return errors.New("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, s.ID)
	return nil
}

func (f *fakeSubmissionRepo) FindByID(id uuid.UUID) (*models.Submission, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSubmissionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func TestArchiverDrainsOnStop(t *testing.T) {
	failing := uuid.New()
	repo := &fakeSubmissionRepo{failFor: failing}
	a := NewArchiver(repo, 2, 10)
	a.Start(context.Background())

	for i := 0; i < 5; i++ {
		if !a.Enqueue(&models.Submission{ID: uuid.New()}) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	a.Enqueue(&models.Submission{ID: failing})
	a.Stop()

	if got := repo.count(); got != 5 {
		t.Fatalf("stored %d submissions, want 5", got)
	}
}

func TestArchiverRejectsAfterStop(t *testing.T) {
	a := NewArchiver(&fakeSubmissionRepo{}, 1, 1)
	a.Start(context.Background())
	a.Stop()
	a.Stop()

	if a.Enqueue(&models.Submission{ID: uuid.New()}) {
		t.Fatalf("enqueue accepted after Stop")
	}
}

func TestArchiverDropsWhenFull(t *testing.T) {
	// not started, so nothing consumes the queue
	a := NewArchiver(&fakeSubmissionRepo{}, 1, 1)
	if !a.Enqueue(&models.Submission{ID: uuid.New()}) {
		t.Fatalf("first enqueue rejected")
	}
	if a.Enqueue(&models.Submission{ID: uuid.New()}) {
		t.Fatalf("enqueue accepted on a full queue")
	}
}
