package extract

import (
	"strings"
	"sync"
	"time"

	"github.com/Aashish23092/salary-extraction-engine/dto"
)

// optimizedBatchPages is how many pages each worker takes at once.
const optimizedBatchPages = 2

// OptimizedStrategy splits the document into page batches and runs
// them on a bounded worker pool. All matches are merged back in page
// order on the calling goroutine before Run returns.
type OptimizedStrategy struct {
	extractor     *Extractor
	maxConcurrent int
}

func NewOptimizedStrategy(extractor *Extractor) *OptimizedStrategy {
	return &OptimizedStrategy{extractor: extractor, maxConcurrent: 4}
}

func (s *OptimizedStrategy) Name() string {
	return string(KindOptimized)
}

func (s *OptimizedStrategy) Run(doc *dto.Document, opts *dto.ExtractionOptions) (*dto.ExtractionResult, *Metrics, error) {
	start := time.Now()
	if err := validatePages(doc); err != nil {
		return nil, nil, err
	}

	workers := s.maxConcurrent
	if opts != nil && opts.MaxConcurrentOperations > 0 {
		workers = opts.MaxConcurrentOperations
	}

	batches := batchPages(doc.Pages, optimizedBatchPages)
	partials := make([]*dto.ExtractionResult, len(batches))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, batch := range batches {
		wg.Add(1)
		go func(idx int, text string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			partials[idx] = extractAllScopes(s.extractor, text)
		}(i, batch)
	}
	wg.Wait()

	// Merge in page order so the later-pattern-wins rule stays
	// deterministic regardless of worker scheduling.
	result := &dto.ExtractionResult{}
	for _, partial := range partials {
		result.Merge(partial)
	}

	return result, &Metrics{
		StrategyName:   s.Name(),
		PagesProcessed: doc.PageCount(),
		Duration:       time.Since(start),
	}, nil
}

// batchPages groups consecutive pages into joined text chunks.
func batchPages(pages []string, perBatch int) []string {
	if perBatch <= 0 {
		perBatch = 1
	}
	var batches []string
	for i := 0; i < len(pages); i += perBatch {
		end := i + perBatch
		if end > len(pages) {
			end = len(pages)
		}
		batches = append(batches, strings.Join(pages[i:end], "\n"))
	}
	return batches
}
