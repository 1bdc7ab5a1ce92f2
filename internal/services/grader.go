package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"alfredoptarigan/essay-grader/internal/history"
	"alfredoptarigan/essay-grader/internal/models"
	"alfredoptarigan/essay-grader/internal/parser"
)

var (
	ErrEmptyTheme    = errors.New("theme is required")
	ErrGradingFailed = errors.New("grading service failed")
)

// GraderService grades one essay and records it in the caller's session.
type GraderService interface {
	GradeUpload(ctx context.Context, sessionID, theme string, file *multipart.FileHeader) (models.HistoryEntry, error)
	GradeText(ctx context.Context, sessionID, theme, text string) (models.HistoryEntry, error)
}

type graderService struct {
	sessions      *history.Sessions
	geminiService GeminiService
	qdrantService QdrantService
	documents     DocumentService
	storage       StorageService
	archiver      Archiver
	promptBuilder *PromptBuilder
	maxRetries    int
}

// NewGraderService builds the grading pipeline. qdrantService and archiver
// may be nil to run without reference retrieval or without the database.
func NewGraderService(
	sessions *history.Sessions,
	geminiService GeminiService,
	qdrantService QdrantService,
	documents DocumentService,
	storage StorageService,
	archiver Archiver,
	maxRetries int,
) GraderService {
	return &graderService{
		sessions:      sessions,
		geminiService: geminiService,
		qdrantService: qdrantService,
		documents:     documents,
		storage:       storage,
		archiver:      archiver,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

func (g *graderService) GradeUpload(ctx context.Context, sessionID, theme string, file *multipart.FileHeader) (models.HistoryEntry, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return models.HistoryEntry{}, ErrEmptyTheme
	}

	filename, filePath, err := g.storage.SaveFile(file)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	defer func() {
		if err := g.storage.DeleteFile(filename); err != nil {
			log.Warnf("⚠️  Failed to remove upload %s: %v", filename, err)
		}
	}()

	essay, err := g.documents.LoadEssay(filePath, file.Filename)
	if err != nil {
		return models.HistoryEntry{}, err
	}

	src := models.SourceFile{
		OriginalName: file.Filename,
		FileType:     strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), "."),
	}
	return g.grade(ctx, sessionID, theme, essay, src)
}

func (g *graderService) GradeText(ctx context.Context, sessionID, theme, text string) (models.HistoryEntry, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return models.HistoryEntry{}, ErrEmptyTheme
	}

	essay, err := TextEssay(text)
	if err != nil {
		return models.HistoryEntry{}, err
	}

	return g.grade(ctx, sessionID, theme, essay, models.SourceFile{FileType: "text"})
}

func (g *graderService) grade(ctx context.Context, sessionID, theme string, essay *EssayDocument, src models.SourceFile) (models.HistoryEntry, error) {
	log.Infof("🔄 Grading essay for session %s (theme: %q)", sessionID, theme)

	reference := ""
	if g.qdrantService != nil {
		var err error
		reference, err = g.retrieveContext(ctx, theme)
		if err != nil {
			log.Warnf("⚠️  Failed to retrieve reference material: %v", err)
			reference = ""
		}
	}

	prompt := g.promptBuilder.BuildEssayGradingPrompt(theme, reference)
	log.Debugf("📝 Grading prompt length: %d characters", len(prompt))

	raw, err := g.geminiService.GradeEssayWithRetry(ctx, prompt, essay, g.maxRetries)
	if err != nil {
		log.Errorf("❌ Grading failed: %v", err)
		return models.HistoryEntry{}, fmt.Errorf("%w: %w", ErrGradingFailed, err)
	}

	result := parser.Parse(raw)
	if result.Degraded() {
		log.WithFields(log.Fields{
			"session":     sessionID,
			"diagnostics": len(result.Diagnostics),
		}).Warn("⚠️  Model reply only partially parsed")
	}

	entry := g.sessions.Get(sessionID).Append(theme, result)

	if g.archiver != nil {
		g.archiver.Enqueue(models.NewSubmission(sessionID, entry, src))
	}

	log.Infof("✅ Essay %s graded (sequence %d)", entry.ID, entry.SequenceIndex)
	return entry, nil
}

// retrieveContext looks up grading guides and model essays relevant to theme.
func (g *graderService) retrieveContext(ctx context.Context, theme string) (string, error) {
	embedding, err := g.geminiService.GenerateEmbedding(ctx, g.promptBuilder.BuildRetrievalQuery(theme))
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	var allResults []SearchResult
	for _, docType := range []string{DocTypeCompetencyGuide, DocTypeModelEssay} {
		results, err := g.qdrantService.SearchSimilar(ctx, embedding, docType, 3)
		if err != nil {
			log.Warnf("⚠️  Failed to search for %s: %v", docType, err)
			continue
		}
		allResults = append(allResults, results...)
	}

	return FormatRAGContext(allResults), nil
}
