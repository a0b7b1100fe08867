package extract

import (
	"time"

	"github.com/Aashish23092/salary-extraction-engine/dto"
)

// StandardStrategy is the synchronous single-pass baseline: no
// preprocessing, no batching, no concurrency.
type StandardStrategy struct {
	extractor *Extractor
}

func NewStandardStrategy(extractor *Extractor) *StandardStrategy {
	return &StandardStrategy{extractor: extractor}
}

func (s *StandardStrategy) Name() string {
	return string(KindStandard)
}

func (s *StandardStrategy) Run(doc *dto.Document, _ *dto.ExtractionOptions) (*dto.ExtractionResult, *Metrics, error) {
	start := time.Now()
	if err := validatePages(doc); err != nil {
		return nil, nil, err
	}

	result := extractAllScopes(s.extractor, doc.FullText())

	return result, &Metrics{
		StrategyName:   s.Name(),
		PagesProcessed: doc.PageCount(),
		Duration:       time.Since(start),
	}, nil
}
