package extract

import (
	"runtime"
	"sync"
	"time"

	"github.com/Aashish23092/salary-extraction-engine/dto"
)

// minBatchBytes is the floor adaptive batching shrinks to under
// memory pressure.
const minBatchBytes = 4 * 1024

// EnhancedStrategy is fully configurable via ExtractionOptions: it
// composes preprocessing, adaptive byte-budget batching, bounded
// parallelism and a fingerprint-keyed result cache. Presets are plain
// option values; there is one code path.
type EnhancedStrategy struct {
	extractor *Extractor
	cache     *ResultCache
}

func NewEnhancedStrategy(extractor *Extractor) *EnhancedStrategy {
	return &EnhancedStrategy{extractor: extractor, cache: NewResultCache()}
}

func (s *EnhancedStrategy) Name() string {
	return string(KindEnhanced)
}

func (s *EnhancedStrategy) Run(doc *dto.Document, opts *dto.ExtractionOptions) (*dto.ExtractionResult, *Metrics, error) {
	start := time.Now()
	if err := validatePages(doc); err != nil {
		return nil, nil, err
	}

	options := dto.DefaultOptions()
	if opts != nil {
		options = opts.Normalize()
	}

	metrics := &Metrics{StrategyName: s.Name(), PagesProcessed: doc.PageCount()}
	if options.CollectDetailedMetrics {
		metrics.StageTimings = make(map[string]time.Duration)
	}

	var fingerprint string
	if options.UseCache {
		fingerprint = Fingerprint(doc)
		if cached, ok := s.cache.Get(fingerprint); ok {
			metrics.CacheHit = true
			metrics.Duration = time.Since(start)
			return cached, metrics, nil
		}
	}

	pages := doc.Pages
	if options.PreprocessText {
		stage := time.Now()
		normalized := make([]string, len(pages))
		for i, page := range pages {
			normalized[i] = preprocessText(page)
		}
		pages = normalized
		if metrics.StageTimings != nil {
			metrics.StageTimings["preprocess"] = time.Since(stage)
		}
	}

	stage := time.Now()
	var batches []string
	if options.UseAdaptiveBatching {
		batches = adaptiveBatches(pages, options.MaxBatchSize, options.MemoryThresholdMB)
	} else {
		batches = batchPages(pages, optimizedBatchPages)
	}
	if metrics.StageTimings != nil {
		metrics.StageTimings["batch"] = time.Since(stage)
	}

	stage = time.Now()
	var result *dto.ExtractionResult
	if options.UseParallelProcessing && options.MaxConcurrentOperations > 1 {
		result = s.runParallel(batches, options.MaxConcurrentOperations)
	} else {
		result = &dto.ExtractionResult{}
		for _, batch := range batches {
			result.Merge(extractAllScopes(s.extractor, batch))
		}
	}
	if metrics.StageTimings != nil {
		metrics.StageTimings["extract"] = time.Since(stage)
	}

	if options.UseCache {
		s.cache.Put(fingerprint, result)
	}

	metrics.Duration = time.Since(start)
	return result, metrics, nil
}

func (s *EnhancedStrategy) runParallel(batches []string, workers int) *dto.ExtractionResult {
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

	result := &dto.ExtractionResult{}
	for _, partial := range partials {
		result.Merge(partial)
	}
	return result
}

// adaptiveBatches packs pages into batches under a byte budget. The
// budget shrinks while observed heap use sits above the configured
// threshold and grows back toward the maximum when pressure clears.
func adaptiveBatches(pages []string, maxBatchBytes, memoryThresholdMB int) []string {
	budget := maxBatchBytes
	var batches []string
	var current []string
	currentBytes := 0

	flush := func() {
		if len(current) > 0 {
			batches = append(batches, joinPages(current))
			current = nil
			currentBytes = 0
		}
	}

	for _, page := range pages {
		if underMemoryPressure(memoryThresholdMB) {
			if budget/2 >= minBatchBytes {
				budget /= 2
			}
		} else if budget < maxBatchBytes {
			budget *= 2
			if budget > maxBatchBytes {
				budget = maxBatchBytes
			}
		}

		if currentBytes > 0 && currentBytes+len(page) > budget {
			flush()
		}
		current = append(current, page)
		currentBytes += len(page)
	}
	flush()

	return batches
}

func underMemoryPressure(thresholdMB int) bool {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.HeapAlloc > uint64(thresholdMB)*1024*1024
}

func joinPages(pages []string) string {
	total := 0
	for _, p := range pages {
		total += len(p) + 1
	}
	b := make([]byte, 0, total)
	for i, p := range pages {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, p...)
	}
	return string(b)
}
