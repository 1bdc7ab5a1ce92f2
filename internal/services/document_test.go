package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadEssayText(t *testing.T) {
	path := writeTemp(t, "upload.bin", []byte("  Introdução.  \r\n\r\n\r\nDesenvolvimento.\n"))
	doc, err := NewDocumentService().LoadEssay(path, "redacao.TXT")
	if err != nil {
		t.Fatalf("LoadEssay: %v", err)
	}
	if doc.Inline() || doc.Text != "Introdução.\n\nDesenvolvimento." {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.MIMEType != "text/plain" || doc.FileName != "redacao.TXT" {
		t.Fatalf("doc metadata = %+v", doc)
	}
}

func TestLoadEssayEmptyText(t *testing.T) {
	path := writeTemp(t, "a.txt", []byte(" \n\n "))
	if _, err := NewDocumentService().LoadEssay(path, "a.txt"); !errors.Is(err, ErrEmptyEssay) {
		t.Fatalf("err = %v, want ErrEmptyEssay", err)
	}
}

func TestLoadEssayUnsupported(t *testing.T) {
	path := writeTemp(t, "a.docx", []byte("x"))
	if _, err := NewDocumentService().LoadEssay(path, "a.docx"); !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("err = %v, want ErrUnsupportedFileType", err)
	}
}

func TestLoadEssayImageInline(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G'}
	path := writeTemp(t, "a.png", data)
	doc, err := NewDocumentService().LoadEssay(path, "foto.png")
	if err != nil {
		t.Fatalf("LoadEssay: %v", err)
	}
	if !doc.Inline() || doc.MIMEType != "image/png" || string(doc.Data) != string(data) {
		t.Fatalf("doc = %+v", doc)
	}
}

// TestLoadEssayPDFWithoutText falls back to sending the bytes
func TestLoadEssayPDFWithoutText(t *testing.T) {
	data := []byte("%PDF-1.4 not really a pdf")
	path := writeTemp(t, "a.pdf", data)
	doc, err := NewDocumentService().LoadEssay(path, "scan.pdf")
	if err != nil {
		t.Fatalf("LoadEssay: %v", err)
	}
	if !doc.Inline() || doc.MIMEType != "application/pdf" {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestExtractTextWithMetaDataMissingFile(t *testing.T) {
	if _, err := NewDocumentService().ExtractTextWithMetaData(filepath.Join(t.TempDir(), "none.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTextEssay(t *testing.T) {
	if _, err := TextEssay("   "); !errors.Is(err, ErrEmptyEssay) {
		t.Fatalf("err = %v", err)
	}
	doc, err := TextEssay("Texto.")
	if err != nil || doc.Text != "Texto." || doc.Inline() {
		t.Fatalf("doc = %+v, err = %v", doc, err)
	}
}

func TestSupportedExtension(t *testing.T) {
	for _, ext := range []string{".pdf", ".PNG", ".jpeg", ".txt"} {
		if !SupportedExtension(ext) {
			t.Errorf("%s should be supported", ext)
		}
	}
	if SupportedExtension(".docx") {
		t.Errorf(".docx should not be supported")
	}
}
