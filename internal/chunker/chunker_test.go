package chunker

import (
	"strings"
	"testing"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
)

func reconstruct(chunks []string, overlap int) string {
	var b strings.Builder
	for i, c := range chunks {
		runes := []rune(c)
		if i == 0 {
			b.WriteString(c)
			continue
		}
		if len(runes) > overlap {
			b.WriteString(string(runes[overlap:]))
		}
	}
	return b.String()
}

func TestSplit_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
	}{
		{"no overlap", strings.Repeat("regulation text ", 40), 50, 0},
		{"small overlap", strings.Repeat("fall protection requirements ", 30), 64, 8},
		{"large overlap", strings.Repeat("a b c d e ", 100), 100, 99},
		{"single chunk", "short text", 1000, 200},
		{"unicode", strings.Repeat("résumé naïve 日本語 ", 25), 37, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Split(tt.text, Config{ChunkSize: tt.chunkSize, Overlap: tt.overlap})
			if err != nil {
				t.Fatalf("Split failed: %v", err)
			}

			for i, c := range chunks {
				if c == "" {
					t.Fatalf("chunk %d is empty", i)
				}
			}

			got := reconstruct(chunks, tt.overlap)
			want := Normalize(tt.text)
			if got != want {
				t.Errorf("round trip mismatch:\n got %q\nwant %q", got, want)
			}
		})
	}
}

func TestSplit_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"overlap equals size", Config{ChunkSize: 10, Overlap: 10}},
		{"overlap exceeds size", Config{ChunkSize: 10, Overlap: 20}},
		{"zero size", Config{ChunkSize: 0, Overlap: 0}},
		{"negative overlap", Config{ChunkSize: 10, Overlap: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split("some text that would otherwise split", tt.cfg)
			if err == nil {
				t.Fatal("expected ConfigError, got nil")
			}
			if !faults.IsKind(err, faults.ConfigError) {
				t.Errorf("expected ConfigError kind, got %v", faults.KindOf(err))
			}
		})
	}
}

func TestSplit_EmptyText(t *testing.T) {
	chunks, err := Split("   \n\t  ", Config{ChunkSize: 100, Overlap: 10})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := strings.Repeat("Section 1910.23 fall protection. ", 50)
	cfg := Config{ChunkSize: 120, Overlap: 20}

	first, err := Split(text, cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Split(text, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitSegments_Metadata(t *testing.T) {
	doc := commonModels.Document{Id: "doc-1", Name: "regs.pdf"}
	segments := []commonModels.Segment{
		{Text: "Guarding floor and wall openings.", Kind: commonModels.SegmentPage, Position: 1, SourceId: "doc-1"},
		{Text: "Occupational noise exposure limits.", Kind: commonModels.SegmentPage, Position: 2, SourceId: "doc-1"},
	}

	chunks, err := SplitSegments(segments, doc, Config{ChunkSize: 1000, Overlap: 200}, "nomic-embed-text")
	if err != nil {
		t.Fatalf("SplitSegments failed: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Doc.Id != "doc-1" || chunks[0].Position != 1 {
		t.Errorf("metadata mismatch in chunk 0: %+v", chunks[0])
	}
	if chunks[1].Position != 2 || chunks[1].ChunkOrder != 0 {
		t.Errorf("metadata mismatch in chunk 1: %+v", chunks[1])
	}
}
