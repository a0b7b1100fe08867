package benchmark

import (
	"log"
	"runtime"
	"time"

	"github.com/Aashish23092/salary-extraction-engine/dto"
	"github.com/Aashish23092/salary-extraction-engine/extract"
)

// largeDocumentPages is the page count past which the comprehensive
// run also benchmarks the Enhanced presets.
const largeDocumentPages = 5

// Result is one measured strategy run. Options is nil for strategies
// that do not take options. Never mutated after creation.
type Result struct {
	StrategyName string
	Elapsed      time.Duration
	MemoryDelta  int64
	Options      *dto.ExtractionOptions
	Err          error
}

// Engine executes strategies against a document and measures wall
// time and heap delta around each invocation. Results keep insertion
// order; interpretation lives in report.go.
type Engine struct {
	extractor *extract.Extractor
}

func NewEngine(extractor *extract.Extractor) *Engine {
	return &Engine{extractor: extractor}
}

// RunComprehensive benchmarks the full strategy set. Documents past
// the page threshold additionally run the Enhanced presets.
func (e *Engine) RunComprehensive(doc *dto.Document) []Result {
	results := []Result{
		e.measure(extract.NewStandardStrategy(e.extractor), doc, nil, ""),
		e.measure(extract.NewOptimizedStrategy(e.extractor), doc, nil, ""),
		e.measure(extract.NewStreamingStrategy(e.extractor), doc, nil, ""),
		e.measureEnhanced(doc, dto.DefaultOptions(), "Enhanced (default)"),
	}

	if doc.PageCount() > largeDocumentPages {
		results = append(results,
			e.measureEnhanced(doc, dto.SpeedOptions(), "Enhanced (speed)"),
			e.measureEnhanced(doc, dto.QualityOptions(), "Enhanced (quality)"),
			e.measureEnhanced(doc, dto.MemoryEfficientOptions(), "Enhanced (memory-efficient)"),
		)
	}

	return results
}

// RunPresets benchmarks the named preset set with Standard as the
// baseline.
func (e *Engine) RunPresets(doc *dto.Document) []Result {
	return []Result{
		e.measure(extract.NewStandardStrategy(e.extractor), doc, nil, ""),
		e.measureEnhanced(doc, dto.DefaultOptions(), "Enhanced (default)"),
		e.measureEnhanced(doc, dto.SpeedOptions(), "Enhanced (speed)"),
		e.measureEnhanced(doc, dto.QualityOptions(), "Enhanced (quality)"),
		e.measureEnhanced(doc, dto.MemoryEfficientOptions(), "Enhanced (memory-efficient)"),
	}
}

// RunCustom benchmarks the Enhanced strategy under caller-supplied
// options.
func (e *Engine) RunCustom(doc *dto.Document, opts dto.ExtractionOptions) Result {
	return e.measureEnhanced(doc, opts, "Enhanced (custom)")
}

func (e *Engine) measureEnhanced(doc *dto.Document, opts dto.ExtractionOptions, label string) Result {
	return e.measure(extract.NewEnhancedStrategy(e.extractor), doc, &opts, label)
}

// measure samples time and heap around one fully completed strategy
// run. The strategy returns before measurement closes, so no
// background work is attributed to a later run.
func (e *Engine) measure(strategy extract.Strategy, doc *dto.Document, opts *dto.ExtractionOptions, label string) Result {
	name := strategy.Name()
	if label != "" {
		name = label
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	_, _, err := strategy.Run(doc, opts)

	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	if err != nil {
		log.Printf("benchmark: %s failed: %v", name, err)
	}

	return Result{
		StrategyName: name,
		Elapsed:      elapsed,
		// Signed: a GC between samples can make the delta negative.
		MemoryDelta: int64(after.HeapAlloc) - int64(before.HeapAlloc),
		Options:     opts,
		Err:         err,
	}
}
