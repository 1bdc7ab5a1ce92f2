package services

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"alfredoptarigan/essay-grader/internal/models"
	"alfredoptarigan/essay-grader/internal/repositories"
)

// Archiver writes graded submissions to the database in the background so a
// slow or unavailable database never delays a grading response.
type Archiver interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(submission *models.Submission) bool
}

type archiver struct {
	repo        repositories.SubmissionRepository
	queue       chan *models.Submission
	concurrency int
	wg          sync.WaitGroup
	stopOnce    sync.Once
	stopChan    chan struct{}
}

func NewArchiver(repo repositories.SubmissionRepository, concurrency, queueSize int) Archiver {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 1 {
		queueSize = 100
	}
	return &archiver{
		repo:        repo,
		queue:       make(chan *models.Submission, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

func (a *archiver) Start(ctx context.Context) {
	log.Infof("🚀 Starting archiver with %d workers", a.concurrency)

	for i := 0; i < a.concurrency; i++ {
		a.wg.Add(1)
		go a.run(ctx, i+1)
	}
}

// Stop waits for queued submissions to be written.
func (a *archiver) Stop() {
	a.stopOnce.Do(func() {
		log.Info("🛑 Stopping archiver...")
		close(a.stopChan)
		a.wg.Wait()
		log.Info("✅ Archiver stopped")
	})
}

// Enqueue never blocks. It reports false when the submission was dropped.
func (a *archiver) Enqueue(submission *models.Submission) bool {
	select {
	case <-a.stopChan:
		log.Warnf("⚠️  Archiver stopped, dropping submission %s", submission.ID)
		return false
	default:
	}

	select {
	case a.queue <- submission:
		log.Debugf("📥 Submission %s queued for archiving", submission.ID)
		return true
	default:
		log.Warnf("⚠️  Archive queue full, dropping submission %s", submission.ID)
		return false
	}
}

func (a *archiver) run(ctx context.Context, workerID int) {
	defer a.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.stopChan:
			a.drain(workerID)
			return
		case submission := <-a.queue:
			a.archive(workerID, submission)
		}
	}
}

func (a *archiver) drain(workerID int) {
	for {
		select {
		case submission := <-a.queue:
			a.archive(workerID, submission)
		default:
			return
		}
	}
}

func (a *archiver) archive(workerID int, submission *models.Submission) {
	if err := a.repo.Create(submission); err != nil {
		log.Errorf("❌ Archiver #%d failed to store submission %s: %v", workerID, submission.ID, err)
		return
	}
	log.Debugf("💾 Archiver #%d stored submission %s", workerID, submission.ID)
}
