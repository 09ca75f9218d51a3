package commonModels

import "time"

// Document is one ingested unit, a staged PDF upload or a fetched page.
// It is discarded after chunk extraction, only its metadata travels on.
type Document struct {
	Id                  string    `json:"source_doc_id"`
	Name                string    `json:"doc_name"`
	LastIngestTimestamp time.Time `json:"ingested_at"`
	ContentType         DocType   `json:"contentType"`
}

// SegmentKind tags the structural element a segment came from.
type SegmentKind string

const (
	SegmentPage      SegmentKind = "page"
	SegmentHeading   SegmentKind = "heading"
	SegmentParagraph SegmentKind = "paragraph"
	SegmentList      SegmentKind = "list"
	SegmentTable     SegmentKind = "table"
	SegmentLink      SegmentKind = "link"
)

// Segment is one extracted unit of content, produced by the extractor and
// consumed by the chunker. Position is the 1-based page number for PDFs and
// the element index for HTML.
type Segment struct {
	Text     string      `json:"text"`
	Kind     SegmentKind `json:"kind"`
	Position int         `json:"position"`
	SourceId string      `json:"source_id"`
}

// DocChunk is a bounded span of segment text plus inherited metadata,
// owned by the store adapter once persisted.
type DocChunk struct {
	Doc              Document
	ChunkId          string      `json:"chunk_id"`
	Chunk            string      `json:"content"`
	SegmentKind      SegmentKind `json:"segment_kind"`
	Position         int         `json:"position"`
	ChunkOrder       int         `json:"chunk_order"`
	RegulationNumber string      `json:"regulation_number,omitempty"`
	RegulationType   string      `json:"regulation_type,omitempty"`
	EmbeddingModel   string      `json:"embedding_model"`
}

// Citation identifies a chunk referenced by a generated answer.
type Citation struct {
	ChunkId  string  `json:"chunk_id"`
	SourceId string  `json:"source_id"`
	DocName  string  `json:"doc_name"`
	Score    float32 `json:"score"`
}

// DocumentInfo is the registry view of an ingested source.
type DocumentInfo struct {
	SourceId   string    `json:"source_id"`
	Name       string    `json:"name"`
	ChunkCount int       `json:"chunk_count"`
	IngestedAt time.Time `json:"ingested_at"`
}

type DocType string

var (
	PDF  DocType = "PDF"
	HTML DocType = "HTML"
	ERR  DocType = "ERROR"
)
