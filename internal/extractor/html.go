package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
)

// ParseHTML extracts segments from markup using the configured selectors per
// content category. Categories without selectors are simply skipped.
func ParseHTML(markup string, sourceId string, cfg Config) ([]commonModels.Segment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, faults.Wrap(faults.ParseFailure, err, "failed to parse html from %s", sourceId)
	}

	selectors := cfg.Selectors
	if selectors == nil {
		selectors = DefaultHTMLSelectors()
	}

	var segments []commonModels.Segment
	position := 0
	emit := func(text string, kind commonModels.SegmentKind) {
		text = applyFilters(text, cfg)
		if strings.TrimSpace(text) == "" {
			return
		}
		position++
		segments = append(segments, commonModels.Segment{
			Text:     text,
			Kind:     kind,
			Position: position,
			SourceId: sourceId,
		})
	}

	for _, sel := range selectors[commonModels.SegmentHeading] {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			emit(strings.TrimSpace(s.Text()), commonModels.SegmentHeading)
		})
	}

	for _, sel := range selectors[commonModels.SegmentParagraph] {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			emit(strings.TrimSpace(s.Text()), commonModels.SegmentParagraph)
		})
	}

	for _, sel := range selectors[commonModels.SegmentList] {
		doc.Find(sel).Each(func(_ int, list *goquery.Selection) {
			var items []string
			list.Find("li").Each(func(_ int, li *goquery.Selection) {
				if t := strings.TrimSpace(li.Text()); t != "" {
					items = append(items, t)
				}
			})
			if len(items) > 0 {
				emit(strings.Join(items, " | "), commonModels.SegmentList)
			}
		})
	}

	for _, sel := range selectors[commonModels.SegmentTable] {
		doc.Find(sel).Each(func(_ int, table *goquery.Selection) {
			table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
				var cells []string
				tr.Find("td").Each(func(_ int, td *goquery.Selection) {
					cells = append(cells, strings.TrimSpace(td.Text()))
				})
				if len(cells) > 0 {
					emit(strings.Join(cells, " | "), commonModels.SegmentTable)
				}
			})
		})
	}

	for _, sel := range selectors[commonModels.SegmentLink] {
		doc.Find(sel).Each(func(_ int, a *goquery.Selection) {
			href, ok := a.Attr("href")
			text := strings.TrimSpace(a.Text())
			if !ok || text == "" {
				return
			}
			emit(fmt.Sprintf("Link: %s -> %s", text, href), commonModels.SegmentLink)
		})
	}

	return segments, nil
}
