package dto

// ExtractionResponse wraps the record handed back to the caller.
// Callers distinguish confidently extracted records from fallback
// defaults via Record.Source.
type ExtractionResponse struct {
	Record      *FinancialRecord `json:"record"`
	Strategy    string           `json:"strategy"`
	ProcessedAt string           `json:"processed_at"`
}

// BenchmarkEntry is one strategy run in a benchmark response.
type BenchmarkEntry struct {
	StrategyName    string             `json:"strategy_name"`
	ElapsedMs       float64            `json:"elapsed_ms"`
	MemoryDeltaByte int64              `json:"memory_delta_bytes"`
	Options         *ExtractionOptions `json:"options,omitempty"`
	VsBaseline      string             `json:"vs_baseline"`
}

// BenchmarkResponse lists runs in execution order.
type BenchmarkResponse struct {
	Results     []BenchmarkEntry `json:"results"`
	ProcessedAt string           `json:"processed_at"`
}

// PerformanceResponse returns analytics snapshots.
type PerformanceResponse struct {
	Performance []PatternPerformance `json:"performance"`
}
