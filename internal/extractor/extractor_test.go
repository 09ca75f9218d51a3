package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
)

type stubBackend struct {
	name     string
	segments []commonModels.Segment
	err      error
	called   bool
}

func (b *stubBackend) Name() string { return b.name }
func (b *stubBackend) Extract(path string, sourceId string, cfg Config) ([]commonModels.Segment, error) {
	b.called = true
	return b.segments, b.err
}

func TestExtractPDF_PrimaryWins(t *testing.T) {
	primary := &stubBackend{name: "primary", segments: []commonModels.Segment{{Text: "page one", Position: 1}}}
	fallback := &stubBackend{name: "fallback"}

	e := NewWithBackends(primary, fallback)
	segments, err := e.ExtractPDF("doc.pdf", "doc.pdf", Config{})
	if err != nil {
		t.Fatalf("ExtractPDF failed: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if fallback.called {
		t.Error("fallback engine ran despite primary success")
	}
}

func TestExtractPDF_FallbackOnFailure(t *testing.T) {
	primary := &stubBackend{name: "primary", err: errors.New("encrypted stream")}
	fallback := &stubBackend{name: "fallback", segments: []commonModels.Segment{{Text: "whole doc", Position: 1}}}

	e := NewWithBackends(primary, fallback)
	segments, err := e.ExtractPDF("locked.pdf", "locked.pdf", Config{})
	if err != nil {
		t.Fatalf("expected fallback to succeed: %v", err)
	}
	if !fallback.called {
		t.Fatal("fallback engine never ran")
	}
	if segments[0].Text != "whole doc" {
		t.Errorf("unexpected segment text %q", segments[0].Text)
	}
}

func TestExtractPDF_AllEnginesFail(t *testing.T) {
	primary := &stubBackend{name: "primary", err: faults.New(faults.ParseFailure, "no extractable text, first failing page 3")}
	fallback := &stubBackend{name: "fallback", err: errors.New("unsupported")}

	e := NewWithBackends(primary, fallback)
	_, err := e.ExtractPDF("broken.pdf", "broken.pdf", Config{})
	if err == nil {
		t.Fatal("expected error when every engine fails")
	}
	if !faults.IsKind(err, faults.ParseFailure) {
		t.Errorf("expected ParseFailure, got %v", faults.KindOf(err))
	}
}

func TestScraper_FetchAndParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/laws-regs/1910.23" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := NewScraper(srv.URL, 5*time.Second)
	segments, fullURL, err := s.FetchAndParse(context.Background(), "/laws-regs/1910.23", Config{})
	if err != nil {
		t.Fatalf("FetchAndParse failed: %v", err)
	}
	if fullURL != srv.URL+"/laws-regs/1910.23" {
		t.Errorf("full url = %q", fullURL)
	}
	if len(segments) == 0 {
		t.Fatal("no segments extracted")
	}
	for _, seg := range segments {
		if seg.SourceId != fullURL {
			t.Errorf("segment source %q, want %q", seg.SourceId, fullURL)
		}
	}
}

func TestScraper_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := NewScraper(srv.URL, 5*time.Second)
	_, _, err := s.Fetch(context.Background(), "/missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !faults.IsKind(err, faults.ParseFailure) {
		t.Errorf("expected ParseFailure, got %v", faults.KindOf(err))
	}
}
