package extractor

import (
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
)

const pageExtractTimeout = 10 * time.Second

// dslipakBackend is the primary engine, page-aware extraction.
type dslipakBackend struct{}

func (b *dslipakBackend) Name() string { return "dslipak" }

func (b *dslipakBackend) Extract(path string, sourceId string, cfg Config) ([]commonModels.Segment, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return nil, faults.Wrap(faults.ParseFailure, err, "failed to open pdf %s", path)
	}

	numPages := f.NumPage()
	if cfg.MaxPages > 0 && numPages > cfg.MaxPages {
		numPages = cfg.MaxPages
	}

	var segments []commonModels.Segment
	failedPage := 0
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Remember the page and keep going, other pages may be fine
			failedPage = i
			continue
		}

		content = applyFilters(content, cfg)
		if strings.TrimSpace(content) == "" {
			continue
		}

		segments = append(segments, commonModels.Segment{
			Text:     content,
			Kind:     commonModels.SegmentPage,
			Position: i,
			SourceId: sourceId,
		})
	}

	if len(segments) == 0 {
		if failedPage > 0 {
			return nil, faults.New(faults.ParseFailure, "no extractable text, first failing page %d", failedPage)
		}
		return nil, faults.New(faults.ParseFailure, "no extractable text in %s", path)
	}
	return segments, nil
}

// catBackend is the fallback engine, whole-document extraction for pdfs the
// primary engine cannot read.
type catBackend struct{}

func (b *catBackend) Name() string { return "cat" }

func (b *catBackend) Extract(path string, sourceId string, cfg Config) ([]commonModels.Segment, error) {
	text, err := cat.File(path)
	if err != nil {
		return nil, faults.Wrap(faults.ParseFailure, err, "fallback extraction failed for %s", path)
	}

	text = applyFilters(text, cfg)
	if strings.TrimSpace(text) == "" {
		return nil, faults.New(faults.ParseFailure, "fallback produced no text for %s", path)
	}

	//page boundaries are lost here, everything lands on page 1
	return []commonModels.Segment{{
		Text:     text,
		Kind:     commonModels.SegmentPage,
		Position: 1,
		SourceId: sourceId,
	}}, nil
}

// protectExtract guards a single page extraction with a timeout, some
// malformed pages hang the parser.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageExtractTimeout):
		return "", fmt.Errorf("page extraction timed out after %s", pageExtractTimeout)
	}
}
