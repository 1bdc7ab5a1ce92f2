package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits reference material into overlapping pieces for embedding.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText packs whole paragraphs into chunks of at most maxChunkSize runes.
// Paragraphs longer than that are packed sentence by sentence. Every chunk
// after the first starts with the last overlap runes of the previous one.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	p := &chunkPacker{max: maxChunkSize, overlap: overlap}
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= maxChunkSize {
			p.add(para, "\n\n")
			continue
		}
		for _, sentence := range splitIntoSentences(para) {
			p.add(sentence, " ")
		}
	}
	return p.finish()
}

type chunkPacker struct {
	max     int
	overlap int
	chunks  []string
	current strings.Builder
}

func (p *chunkPacker) add(piece, sep string) {
	size := utf8.RuneCountInString(p.current.String())
	if size > 0 && size+len(sep)+utf8.RuneCountInString(piece) > p.max {
		p.flush()
	}
	if p.current.Len() > 0 {
		p.current.WriteString(sep)
	}
	p.current.WriteString(piece)
}

// flush closes the current chunk and seeds the next one with its tail.
func (p *chunkPacker) flush() {
	full := p.current.String()
	p.chunks = append(p.chunks, full)
	p.current.Reset()
	p.current.WriteString(lastRunes(full, p.overlap))
}

func (p *chunkPacker) finish() []string {
	if p.current.Len() > 0 {
		p.chunks = append(p.chunks, p.current.String())
	}
	return p.chunks
}

// splitIntoSentences cuts after '.', '!' and '?' keeping the punctuation.
func splitIntoSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
