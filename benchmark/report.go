package benchmark

import (
	"fmt"
	"time"
)

// BaselineName is the strategy every comparison is measured against.
const BaselineName = "Standard"

// ImprovementOverBaseline reports a result's elapsed time as a
// percentage delta versus the Standard baseline within already
// collected results. A missing or zero baseline yields "N/A", never
// an error: ranking is interpretation, not measurement.
func ImprovementOverBaseline(results []Result, strategyName string) string {
	baseline, ok := findResult(results, BaselineName)
	if !ok || baseline.Elapsed <= 0 {
		return "N/A"
	}
	target, ok := findResult(results, strategyName)
	if !ok {
		return "N/A"
	}

	delta := float64(baseline.Elapsed-target.Elapsed) / float64(baseline.Elapsed) * 100
	if delta >= 0 {
		return fmt.Sprintf("%.1f%% faster", delta)
	}
	return fmt.Sprintf("%.1f%% slower", -delta)
}

// Fastest returns the name of the quickest successful run, or "" when
// nothing succeeded.
func Fastest(results []Result) string {
	best := ""
	bestElapsed := time.Duration(0)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if best == "" || r.Elapsed < bestElapsed {
			best = r.StrategyName
			bestElapsed = r.Elapsed
		}
	}
	return best
}

func findResult(results []Result, name string) (Result, bool) {
	for _, r := range results {
		if r.StrategyName == name {
			return r, true
		}
	}
	return Result{}, false
}
