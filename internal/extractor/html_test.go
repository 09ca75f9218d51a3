package extractor

import (
	"regexp"
	"strings"
	"testing"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
)

const samplePage = `
<html><head><title>1910.23</title></head><body>
<h1>Guarding floor and wall openings</h1>
<p>Every ladderway floor opening shall be guarded.</p>
<p>Every hatchway shall be guarded by a hinged cover.</p>
<ul><li>Standard railing</li><li>Toe board</li></ul>
<table>
<tr><th>Standard</th><th>Topic</th></tr>
<tr><td>1910.23</td><td>Fall protection</td></tr>
</table>
<a href="/laws-regs/regulations/standardnumber/1910/1910.23">Full text</a>
</body></html>`

func kindCount(segments []commonModels.Segment, kind commonModels.SegmentKind) int {
	n := 0
	for _, s := range segments {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

func TestParseHTML_DefaultSelectors(t *testing.T) {
	segments, err := ParseHTML(samplePage, "https://www.osha.gov/1910.23", Config{})
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}

	if got := kindCount(segments, commonModels.SegmentHeading); got != 1 {
		t.Errorf("headings = %d, want 1", got)
	}
	if got := kindCount(segments, commonModels.SegmentParagraph); got != 2 {
		t.Errorf("paragraphs = %d, want 2", got)
	}
	if got := kindCount(segments, commonModels.SegmentList); got != 1 {
		t.Errorf("lists = %d, want 1", got)
	}
	// Header-only rows carry no td cells and are dropped
	if got := kindCount(segments, commonModels.SegmentTable); got != 1 {
		t.Errorf("table rows = %d, want 1", got)
	}
	if got := kindCount(segments, commonModels.SegmentLink); got != 1 {
		t.Errorf("links = %d, want 1", got)
	}

	for i, s := range segments {
		if s.SourceId != "https://www.osha.gov/1910.23" {
			t.Errorf("segment %d missing source id", i)
		}
		if s.Position == 0 {
			t.Errorf("segment %d has zero position", i)
		}
	}
}

func TestParseHTML_MissingCategoryIsEmptyNotError(t *testing.T) {
	cfg := Config{
		Selectors: map[commonModels.SegmentKind][]string{
			commonModels.SegmentHeading: {"h1"},
		},
	}

	segments, err := ParseHTML(samplePage, "src", cfg)
	if err != nil {
		t.Fatalf("ParseHTML failed: %v", err)
	}
	if kindCount(segments, commonModels.SegmentParagraph) != 0 {
		t.Error("paragraphs extracted despite no paragraph selector")
	}
	if kindCount(segments, commonModels.SegmentHeading) != 1 {
		t.Error("heading selector ignored")
	}
}

func TestParseHTML_ListJoining(t *testing.T) {
	segments, err := ParseHTML(samplePage, "src", Config{})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range segments {
		if s.Kind == commonModels.SegmentList {
			if !strings.Contains(s.Text, "Standard railing | Toe board") {
				t.Errorf("list items not joined: %q", s.Text)
			}
		}
	}
}

func TestApplyFilters(t *testing.T) {
	cfg := Config{
		IncludePatterns: []*regexp.Regexp{regexp.MustCompile(`(?i)1910\.\d+[^.]*\.`)},
		ExcludePatterns: []*regexp.Regexp{regexp.MustCompile(`(?i)reserved`)},
	}

	text := "Intro text. 1910.23 covers fall protection reserved items. Outro."
	got := applyFilters(text, cfg)

	if !strings.Contains(got, "1910.23") {
		t.Errorf("include pattern dropped the match: %q", got)
	}
	if strings.Contains(got, "reserved") {
		t.Errorf("exclude pattern not applied: %q", got)
	}
	if strings.Contains(got, "Intro text") {
		t.Errorf("non-matching text survived include filter: %q", got)
	}
}
