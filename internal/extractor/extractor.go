package extractor

import (
	"regexp"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
	"github.com/akolanti/DocAgent/pkg/logger_i"
)

// Config describes which structural elements to keep and optional text
// filters applied to every extracted segment.
type Config struct {
	//Selectors maps a content category to its CSS selectors. A missing
	//category yields no segments of that kind, never an error.
	Selectors map[commonModels.SegmentKind][]string

	//IncludePatterns keep only matching lines when set. ExcludePatterns
	//strip matches afterwards.
	IncludePatterns []*regexp.Regexp
	ExcludePatterns []*regexp.Regexp

	//MaxPages bounds PDF extraction, zero means all pages.
	MaxPages int
}

// DefaultHTMLSelectors mirrors the categories the regulation pages use.
func DefaultHTMLSelectors() map[commonModels.SegmentKind][]string {
	return map[commonModels.SegmentKind][]string{
		commonModels.SegmentHeading:   {"h1", "h2", "h3", "h4", "h5", "h6"},
		commonModels.SegmentParagraph: {"p"},
		commonModels.SegmentList:      {"ul", "ol"},
		commonModels.SegmentTable:     {"table"},
		commonModels.SegmentLink:      {"a"},
	}
}

// PDFBackend is one extraction engine. Backends are tried in order and the
// first one that yields segments wins.
type PDFBackend interface {
	Name() string
	Extract(path string, sourceId string, cfg Config) ([]commonModels.Segment, error)
}

// Extractor runs the PDF backend chain.
type Extractor struct {
	backends []PDFBackend
	logger   *logger_i.Logger
}

// New builds an extractor with the default engine chain.
func New() *Extractor {
	return NewWithBackends(&dslipakBackend{}, &catBackend{})
}

func NewWithBackends(backends ...PDFBackend) *Extractor {
	return &Extractor{
		backends: backends,
		logger:   logger_i.NewLogger("Extractor"),
	}
}

// ExtractPDF tries each engine in turn. A ParseFailure is returned only when
// every engine failed, carrying the last engine's failing page.
func (e *Extractor) ExtractPDF(path string, sourceId string, cfg Config) ([]commonModels.Segment, error) {
	var lastErr error
	for _, backend := range e.backends {
		segments, err := backend.Extract(path, sourceId, cfg)
		if err == nil && len(segments) > 0 {
			e.logger.Debug("pdf extracted", "engine", backend.Name(), "segments", len(segments))
			return segments, nil
		}
		if err != nil {
			e.logger.Warn("pdf engine failed, trying next", "engine", backend.Name(), "error", err)
			lastErr = err
		} else {
			lastErr = faults.New(faults.ParseFailure, "engine %s produced no text", backend.Name())
		}
	}
	return nil, faults.Wrap(faults.ParseFailure, lastErr, "all pdf engines failed for %s", path)
}

// applyFilters runs the include then exclude patterns over segment text.
func applyFilters(text string, cfg Config) string {
	filtered := text
	for _, p := range cfg.IncludePatterns {
		if matches := p.FindAllString(filtered, -1); len(matches) > 0 {
			joined := ""
			for i, m := range matches {
				if i > 0 {
					joined += "\n"
				}
				joined += m
			}
			filtered = joined
		}
	}
	for _, p := range cfg.ExcludePatterns {
		filtered = p.ReplaceAllString(filtered, "")
	}
	return filtered
}
