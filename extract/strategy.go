package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/Aashish23092/salary-extraction-engine/dto"
	"github.com/Aashish23092/salary-extraction-engine/patterns"
)

// StrategyKind names one member of the closed strategy set.
type StrategyKind string

const (
	KindStandard  StrategyKind = "Standard"
	KindOptimized StrategyKind = "Optimized"
	KindStreaming StrategyKind = "Streaming"
	KindEnhanced  StrategyKind = "Enhanced"
)

// Metrics describes what one strategy run did. Stage timings are only
// populated when the options ask for detailed metrics.
type Metrics struct {
	StrategyName   string                   `json:"strategy_name"`
	PagesProcessed int                      `json:"pages_processed"`
	Duration       time.Duration            `json:"duration"`
	CacheHit       bool                     `json:"cache_hit,omitempty"`
	StageTimings   map[string]time.Duration `json:"stage_timings,omitempty"`
}

// Strategy is one complete algorithm for turning document text into an
// ExtractionResult. Options are ignored by strategies that carry their
// own fixed behavior.
type Strategy interface {
	Name() string
	Run(doc *dto.Document, opts *dto.ExtractionOptions) (*dto.ExtractionResult, *Metrics, error)
}

// ForKind dispatches the closed strategy set by selector value.
func ForKind(kind StrategyKind, extractor *Extractor) (Strategy, error) {
	switch kind {
	case KindStandard:
		return NewStandardStrategy(extractor), nil
	case KindOptimized:
		return NewOptimizedStrategy(extractor), nil
	case KindStreaming:
		return NewStreamingStrategy(extractor), nil
	case KindEnhanced:
		return NewEnhancedStrategy(extractor), nil
	default:
		return nil, fmt.Errorf("unknown strategy kind: %s", kind)
	}
}

// extractAllScopes runs the general, earnings and deductions passes
// over one chunk of text and merges them in that order.
func extractAllScopes(extractor *Extractor, text string) *dto.ExtractionResult {
	result := extractor.Extract(text, patterns.ScopeGeneral)
	result.Merge(extractor.Extract(text, patterns.ScopeEarnings))
	result.Merge(extractor.Extract(text, patterns.ScopeDeductions))
	return result
}

// preprocessText normalizes page text before matching: unifies line
// endings, collapses runs of spaces and strips characters the OCR
// layer tends to misread around figures.
func preprocessText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "—", "-")
	text = strings.ReplaceAll(text, "|", " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(strings.Join(strings.Fields(line), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func validatePages(doc *dto.Document) error {
	if doc == nil || doc.PageCount() == 0 {
		return fmt.Errorf("document has no pages")
	}
	return nil
}
