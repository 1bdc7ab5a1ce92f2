package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"alfredoptarigan/essay-grader/internal/config"
	"alfredoptarigan/essay-grader/internal/services"
)

// referenceDirs maps each folder of reference material to the document type
// the grader searches for.
var referenceDirs = []struct {
	Dir     string
	DocType string
}{
	{Dir: "./reference_docs/competencias", DocType: services.DocTypeCompetencyGuide},
	{Dir: "./reference_docs/redacoes_nota_mil", DocType: services.DocTypeModelEssay},
}

func main() {
	cfg := config.Load()
	config.InitLogger(cfg)
	log.Println("🚀 Starting reference ingestion...")

	if !cfg.Qdrant.Enabled() {
		log.Fatal("❌ QDRANT_URL is not set")
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini, cfg.Grading.RetryInitialDelay)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	documents := services.NewDocumentService()
	chunker := services.NewTextChunker()
	ctx := context.Background()

	successCount := 0
	failCount := 0

	for _, ref := range referenceDirs {
		entries, err := os.ReadDir(ref.Dir)
		if err != nil {
			log.Warnf("⚠️  Cannot read %s, skipping: %v", ref.Dir, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(ref.Dir, entry.Name())
			if err := ingest(ctx, geminiService, qdrantService, documents, chunker, path, ref.DocType); err != nil {
				log.Errorf("❌ %s: %v", path, err)
				failCount++
				continue
			}
			successCount++
		}
	}

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}
}

func ingest(
	ctx context.Context,
	geminiService services.GeminiService,
	qdrantService services.QdrantService,
	documents services.DocumentService,
	chunker services.TextChunker,
	path, docType string,
) error {
	log.Printf("📄 Processing %s (%s)", path, docType)

	doc, err := documents.LoadEssay(path, filepath.Base(path))
	if err != nil {
		return err
	}
	if doc.Inline() {
		log.Warnf("   ⚠️  No extractable text, skipping")
		return nil
	}

	source := filepath.Base(path)
	if err := qdrantService.DeleteSource(ctx, source); err != nil {
		return err
	}

	chunks := chunker.ChunkText(doc.Text, 1000, 200)
	log.Printf("   ✂️  %d chunks", len(chunks))

	stored := 0
	for i, text := range chunks {
		embedding, err := geminiService.GenerateEmbedding(ctx, text)
		if err != nil {
			log.Warnf("   ⚠️  Failed to embed chunk %d: %v", i+1, err)
			continue
		}

		chunk := services.ReferenceChunk{Source: source, DocType: docType, Index: i, Text: text}
		if err := qdrantService.UpsertChunk(ctx, chunk, embedding); err != nil {
			log.Warnf("   ⚠️  Failed to store chunk %d: %v", i+1, err)
			continue
		}
		stored++
	}

	log.Printf("   ✅ Stored %d/%d chunks", stored, len(chunks))
	return nil
}
