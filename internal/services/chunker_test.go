package services

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkTextPacksParagraphs(t *testing.T) {
	text := "Primeiro parágrafo.\n\nSegundo parágrafo.\n\n\n\nTerceiro parágrafo."
	chunks := NewTextChunker().ChunkText(text, 1000, 0)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1: %q", len(chunks), chunks)
	}
	if chunks[0] != "Primeiro parágrafo.\n\nSegundo parágrafo.\n\nTerceiro parágrafo." {
		t.Fatalf("chunk = %q", chunks[0])
	}
}

func TestChunkTextSplitsOnLimit(t *testing.T) {
	paras := []string{strings.Repeat("a", 40), strings.Repeat("b", 40), strings.Repeat("c", 40)}
	chunks := NewTextChunker().ChunkText(strings.Join(paras, "\n\n"), 50, 0)
	if !reflect.DeepEqual(chunks, paras) {
		t.Fatalf("chunks = %q", chunks)
	}
}

func TestChunkTextOverlap(t *testing.T) {
	paras := []string{strings.Repeat("a", 40), strings.Repeat("b", 40)}
	chunks := NewTextChunker().ChunkText(strings.Join(paras, "\n\n"), 50, 5)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks: %q", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[1], "aaaaa\n\nb") {
		t.Fatalf("second chunk does not carry overlap: %q", chunks[1])
	}
}

func TestChunkTextLongParagraphBySentence(t *testing.T) {
	para := "Frase um é longa. Frase dois também é longa! Frase três termina aqui?"
	chunks := NewTextChunker().ChunkText(para, 30, 0)
	want := []string{"Frase um é longa.", "Frase dois também é longa!", "Frase três termina aqui?"}
	if !reflect.DeepEqual(chunks, want) {
		t.Fatalf("chunks = %q", chunks)
	}
	for _, c := range chunks {
		if utf8.RuneCountInString(c) > 30 {
			t.Fatalf("chunk over limit: %q", c)
		}
	}
}

func TestChunkTextEmpty(t *testing.T) {
	if chunks := NewTextChunker().ChunkText("  \n\n ", 100, 10); len(chunks) != 0 {
		t.Fatalf("chunks = %q", chunks)
	}
}

func TestSplitIntoSentencesKeepsTail(t *testing.T) {
	got := splitIntoSentences("Um. Dois sem ponto")
	want := []string{"Um.", "Dois sem ponto"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q", got)
	}
}
