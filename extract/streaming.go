package extract

import (
	"time"

	"github.com/Aashish23092/salary-extraction-engine/dto"
)

// StreamingStrategy processes pages incrementally, never holding more
// than one page's raw text plus the accumulated matches.
type StreamingStrategy struct {
	extractor *Extractor
}

func NewStreamingStrategy(extractor *Extractor) *StreamingStrategy {
	return &StreamingStrategy{extractor: extractor}
}

func (s *StreamingStrategy) Name() string {
	return string(KindStreaming)
}

func (s *StreamingStrategy) Run(doc *dto.Document, _ *dto.ExtractionOptions) (*dto.ExtractionResult, *Metrics, error) {
	start := time.Now()
	if err := validatePages(doc); err != nil {
		return nil, nil, err
	}

	result := &dto.ExtractionResult{}
	for _, page := range doc.Pages {
		result.Merge(extractAllScopes(s.extractor, page))
	}

	return result, &Metrics{
		StrategyName:   s.Name(),
		PagesProcessed: doc.PageCount(),
		Duration:       time.Since(start),
	}, nil
}
