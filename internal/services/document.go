package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyEssay          = errors.New("essay has no content")
)

// supportedTypes maps accepted essay extensions to the MIME type sent to the model.
var supportedTypes = map[string]string{
	".txt":  "text/plain",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// SupportedExtension reports whether an essay file with extension ext can be graded.
func SupportedExtension(ext string) bool {
	_, ok := supportedTypes[strings.ToLower(ext)]
	return ok
}

// EssayDocument is an essay ready to be sent to the model: either its text or
// the raw bytes of a scan/PDF without a text layer.
type EssayDocument struct {
	FileName  string
	MIMEType  string
	Text      string
	Data      []byte
	PageCount int
}

// Inline reports whether the document must be sent as raw bytes.
func (d *EssayDocument) Inline() bool {
	return d.Text == ""
}

// TextEssay wraps pasted essay text.
func TextEssay(text string) (*EssayDocument, error) {
	text = CleanText(text)
	if text == "" {
		return nil, ErrEmptyEssay
	}
	return &EssayDocument{MIMEType: "text/plain", Text: text}, nil
}

type DocumentService interface {
	LoadEssay(filePath, originalName string) (*EssayDocument, error)
	ExtractTextWithMetaData(filePath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type documentService struct{}

func NewDocumentService() DocumentService {
	return &documentService{}
}

// LoadEssay reads an uploaded essay. Text files and PDFs with a text layer are
// sent as text, everything else as inline bytes.
func (d *documentService) LoadEssay(filePath, originalName string) (*EssayDocument, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	mimeType, ok := supportedTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}

	doc := &EssayDocument{FileName: originalName, MIMEType: mimeType}

	switch ext {
	case ".txt":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read essay: %w", err)
		}
		doc.Text = CleanText(strings.ToValidUTF8(string(data), ""))
		if doc.Text == "" {
			return nil, ErrEmptyEssay
		}
		return doc, nil

	case ".pdf":
		content, err := d.ExtractTextWithMetaData(filePath)
		if err == nil {
			doc.Text = CleanText(content.Text)
			doc.PageCount = content.PageCount
			return doc, nil
		}
		log.Warnf("⚠️  No text layer in %s, sending PDF bytes: %v", originalName, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read essay: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyEssay
	}
	doc.Data = data
	return doc, nil
}

func (d *documentService) ExtractTextWithMetaData(filePath string) (*PDFContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	text, totalPage, err := readPDF(filePath)
	if err != nil {
		return nil, err
	}

	return &PDFContent{
		Text:      text,
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

func readPDF(filePath string) (text string, totalPage int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage = r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Debugf("skipping page %d of %s: %v", pageIndex, filePath, err)
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	text = textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", totalPage, fmt.Errorf("no text content found in PDF")
	}

	return text, totalPage, nil
}

// CleanText trims every line and collapses runs of blank lines into one so
// paragraph breaks survive.
func CleanText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	cleaned := make([]string, 0, len(lines))

	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(cleaned) > 0 {
				cleaned = append(cleaned, "")
			}
			blank = true
			continue
		}
		blank = false
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
