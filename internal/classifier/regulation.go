package classifier

import (
	"regexp"

	"github.com/akolanti/DocAgent/internal/domain/commonModels"
)

// Rule maps a regulation-number pattern to a regulation type. Rules are
// evaluated in order and the first match wins.
type Rule struct {
	Pattern *regexp.Regexp
	Type    string
}

type Classifier struct {
	rules []Rule
}

// New builds a classifier from an ordered rule list. The rule table is
// injectable so other regulatory domains can supply their own.
func New(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// OSHARules is the packaged default table for federal OSHA standards.
func OSHARules() []Rule {
	return []Rule{
		{regexp.MustCompile(`1910\.\d+`), "general_industry"},
		{regexp.MustCompile(`1926\.\d+`), "construction"},
		{regexp.MustCompile(`1915\.\d+`), "maritime"},
		{regexp.MustCompile(`1917\.\d+`), "marine_terminals"},
		{regexp.MustCompile(`1918\.\d+`), "longshoring"},
	}
}

// Result carries the matched regulation number and its type. Both are empty
// when no rule matched.
type Result struct {
	RegulationNumber string
	RegulationType   string
}

// Classify inspects a source identifier and segment text. Pure and
// deterministic, the source identifier is checked before the text.
func (c *Classifier) Classify(sourceId string, text string) Result {
	for _, rule := range c.rules {
		if m := rule.Pattern.FindString(sourceId); m != "" {
			return Result{RegulationNumber: m, RegulationType: rule.Type}
		}
	}
	for _, rule := range c.rules {
		if m := rule.Pattern.FindString(text); m != "" {
			return Result{RegulationNumber: m, RegulationType: rule.Type}
		}
	}
	return Result{}
}

// Tag applies classification results to a chunk in place.
func (c *Classifier) Tag(chunk *commonModels.DocChunk) {
	res := c.Classify(chunk.Doc.Id, chunk.Chunk)
	chunk.RegulationNumber = res.RegulationNumber
	chunk.RegulationType = res.RegulationType
}
