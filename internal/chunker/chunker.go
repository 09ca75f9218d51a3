package chunker

import (
	"strings"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
	"github.com/akolanti/DocAgent/internal/domain/faults"
)

// Config controls splitting. Overlap must stay below ChunkSize so every
// window makes progress.
type Config struct {
	ChunkSize int
	Overlap   int
}

func (c Config) validate() error {
	if c.ChunkSize <= 0 {
		return faults.New(faults.ConfigError, "chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.Overlap < 0 {
		return faults.New(faults.ConfigError, "overlap must not be negative, got %d", c.Overlap)
	}
	if c.Overlap >= c.ChunkSize {
		return faults.New(faults.ConfigError, "overlap %d must be smaller than chunk size %d", c.Overlap, c.ChunkSize)
	}
	return nil
}

// Split breaks normalized segment text into overlapping windows. Dropping the
// first Overlap runes of every chunk after the first reconstructs the
// normalized text exactly. Empty chunks are never emitted.
func Split(text string, cfg Config) ([]string, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	runes := []rune(Normalize(text))
	if len(runes) == 0 {
		return nil, nil
	}

	step := cfg.ChunkSize - cfg.Overlap
	var chunks []string
	for i := 0; i < len(runes); i += step {
		end := i + cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}

// SplitSegments maps segments into chunks, carrying segment metadata onto
// every chunk. ChunkOrder is the chunk index within its segment.
func SplitSegments(segments []commonModels.Segment, doc commonModels.Document, cfg Config, embeddingModel string) ([]commonModels.DocChunk, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var all []commonModels.DocChunk
	for _, seg := range segments {
		pieces, err := Split(seg.Text, cfg)
		if err != nil {
			return nil, err
		}
		for i, text := range pieces {
			all = append(all, commonModels.DocChunk{
				Doc:            doc,
				Chunk:          text,
				SegmentKind:    seg.Kind,
				Position:       seg.Position,
				ChunkOrder:     i,
				EmbeddingModel: embeddingModel,
			})
		}
	}
	return all, nil
}

// Normalize collapses whitespace runs into single spaces and trims the ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
