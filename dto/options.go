package dto

// ExtractionOptions selects strategy behavior. Immutable once
// constructed; presets are plain option values, not separate code
// paths, so callers can supply custom configurations the same way.
type ExtractionOptions struct {
	UseParallelProcessing   bool `json:"use_parallel_processing"`
	MaxConcurrentOperations int  `json:"max_concurrent_operations"`
	PreprocessText          bool `json:"preprocess_text"`
	UseAdaptiveBatching     bool `json:"use_adaptive_batching"`
	MaxBatchSize            int  `json:"max_batch_size"` // bytes per batch
	CollectDetailedMetrics  bool `json:"collect_detailed_metrics"`
	UseCache                bool `json:"use_cache"`
	MemoryThresholdMB       int  `json:"memory_threshold_mb"`
}

const (
	defaultMaxBatchSize      = 64 * 1024
	defaultMemoryThresholdMB = 200
)

// DefaultOptions matches the documented defaults table.
func DefaultOptions() ExtractionOptions {
	return ExtractionOptions{
		MaxConcurrentOperations: 1,
		MaxBatchSize:            defaultMaxBatchSize,
		MemoryThresholdMB:       defaultMemoryThresholdMB,
	}
}

// SpeedOptions trades memory for throughput: parallel batches and a
// warm result cache.
func SpeedOptions() ExtractionOptions {
	o := DefaultOptions()
	o.UseParallelProcessing = true
	o.MaxConcurrentOperations = 4
	o.UseCache = true
	return o
}

// QualityOptions runs a single preprocessed pass with per-stage
// timings captured.
func QualityOptions() ExtractionOptions {
	o := DefaultOptions()
	o.PreprocessText = true
	o.CollectDetailedMetrics = true
	return o
}

// MemoryEfficientOptions bounds resident memory with small adaptive
// batches and a low pressure trigger.
func MemoryEfficientOptions() ExtractionOptions {
	o := DefaultOptions()
	o.UseAdaptiveBatching = true
	o.MaxBatchSize = 16 * 1024
	o.MemoryThresholdMB = 50
	return o
}

// Normalize fills zero values with implementation defaults so a
// partially specified options object behaves predictably.
func (o ExtractionOptions) Normalize() ExtractionOptions {
	if o.MaxConcurrentOperations <= 0 {
		o.MaxConcurrentOperations = 1
	}
	if o.MaxBatchSize <= 0 {
		o.MaxBatchSize = defaultMaxBatchSize
	}
	if o.MemoryThresholdMB <= 0 {
		o.MemoryThresholdMB = defaultMemoryThresholdMB
	}
	return o
}
