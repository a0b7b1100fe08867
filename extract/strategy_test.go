package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/salary-extraction-engine/dto"
)

func multiPageDocument() *dto.Document {
	return &dto.Document{
		Filename: "statement.pdf",
		Pages: []string{
			"STATEMENT OF ACCOUNT FOR March 2024\nName: John Doe\nA/C No: 1234567890",
			"BPAY 50000.00\nDA 15000\nMSP 15500",
			"DSOP Fund 8000\nAGIF 450\nITAX: 4500",
			"Total Credits: Rs. 80,500.00\nTotal Deductions 12,950",
		},
	}
}

func TestStrategiesAgreeOnResult(t *testing.T) {
	extractor := newTestExtractor()
	doc := multiPageDocument()

	strategies := []Strategy{
		NewStandardStrategy(extractor),
		NewOptimizedStrategy(extractor),
		NewStreamingStrategy(extractor),
		NewEnhancedStrategy(extractor),
	}

	for _, s := range strategies {
		result, metrics, err := s.Run(doc, nil)
		require.NoError(t, err, s.Name())
		require.NotNil(t, result, s.Name())
		assert.Equal(t, doc.PageCount(), metrics.PagesProcessed, s.Name())

		gross, ok := result.Amount("grossPay")
		assert.True(t, ok, s.Name())
		assert.Equal(t, 80500.0, gross, s.Name())

		dsop, ok := result.Amount("DSOP")
		assert.True(t, ok, s.Name())
		assert.Equal(t, 8000.0, dsop, s.Name())

		assert.Equal(t, "John Doe", result.Name, s.Name())
	}
}

func TestStrategiesRejectEmptyDocument(t *testing.T) {
	extractor := newTestExtractor()
	empty := &dto.Document{Filename: "empty.pdf"}

	for _, kind := range []StrategyKind{KindStandard, KindOptimized, KindStreaming, KindEnhanced} {
		s, err := ForKind(kind, extractor)
		require.NoError(t, err)

		_, _, err = s.Run(empty, nil)
		assert.Error(t, err, string(kind))
	}
}

func TestForKindUnknown(t *testing.T) {
	_, err := ForKind(StrategyKind("Quantum"), newTestExtractor())
	assert.Error(t, err)
}

func TestOptimizedHonorsWorkerBound(t *testing.T) {
	extractor := newTestExtractor()

	pages := make([]string, 40)
	for i := range pages {
		pages[i] = fmt.Sprintf("Page %d\nBPAY 50000\n", i+1)
	}
	doc := &dto.Document{Filename: "big.pdf", Pages: pages}

	opts := dto.DefaultOptions()
	opts.MaxConcurrentOperations = 2

	result, metrics, err := NewOptimizedStrategy(extractor).Run(doc, &opts)
	require.NoError(t, err)
	assert.Equal(t, 40, metrics.PagesProcessed)

	bpay, ok := result.Amount("BPAY")
	assert.True(t, ok)
	assert.Equal(t, 50000.0, bpay)
}

func TestEnhancedCacheHit(t *testing.T) {
	extractor := newTestExtractor()
	strategy := NewEnhancedStrategy(extractor)
	doc := multiPageDocument()

	opts := dto.DefaultOptions()
	opts.UseCache = true

	first, m1, err := strategy.Run(doc, &opts)
	require.NoError(t, err)
	assert.False(t, m1.CacheHit)

	second, m2, err := strategy.Run(doc, &opts)
	require.NoError(t, err)
	assert.True(t, m2.CacheHit)
	assert.Equal(t, first.Fields, second.Fields)
}

func TestEnhancedDetailedMetrics(t *testing.T) {
	strategy := NewEnhancedStrategy(newTestExtractor())

	opts := dto.QualityOptions()
	_, metrics, err := strategy.Run(multiPageDocument(), &opts)
	require.NoError(t, err)

	assert.Contains(t, metrics.StageTimings, "preprocess")
	assert.Contains(t, metrics.StageTimings, "extract")
}

func TestEnhancedParallelMatchesSequential(t *testing.T) {
	extractor := newTestExtractor()
	doc := multiPageDocument()

	sequential, _, err := NewEnhancedStrategy(extractor).Run(doc, nil)
	require.NoError(t, err)

	opts := dto.SpeedOptions()
	opts.UseCache = false
	parallel, _, err := NewEnhancedStrategy(extractor).Run(doc, &opts)
	require.NoError(t, err)

	for _, field := range sequential.Fields {
		got, ok := parallel.Amount(field.Key)
		assert.True(t, ok, field.Key)
		assert.Equal(t, field.Value, got, field.Key)
	}
}

func TestPreprocessTextNormalizes(t *testing.T) {
	text := "BPAY   |  50000\r\nDA\t15000"

	cleaned := preprocessText(text)

	assert.NotContains(t, cleaned, "\r")
	assert.NotContains(t, cleaned, "|")
	assert.Contains(t, cleaned, "BPAY 50000")
}

func TestBatchPages(t *testing.T) {
	pages := []string{"a", "b", "c", "d", "e"}

	batches := batchPages(pages, 2)

	assert.Len(t, batches, 3)
	assert.Equal(t, "a\nb", batches[0])
	assert.Equal(t, "e", batches[2])
}

func TestAdaptiveBatchesCoverAllPages(t *testing.T) {
	pages := make([]string, 12)
	for i := range pages {
		pages[i] = fmt.Sprintf("page %d content", i)
	}

	batches := adaptiveBatches(pages, 64, 1<<20) // threshold high enough to never trigger

	total := 0
	for _, b := range batches {
		assert.NotEmpty(t, b)
		total += len(b)
	}
	// Every page lands in exactly one batch.
	joined := 0
	for _, p := range pages {
		joined += len(p)
	}
	assert.GreaterOrEqual(t, total, joined)
}

func TestResultCacheCopiesEntries(t *testing.T) {
	cache := NewResultCache()

	original := &dto.ExtractionResult{}
	original.Set("BPAY", "50000", 50000)
	cache.Put("fp", original)

	cached, ok := cache.Get("fp")
	require.True(t, ok)
	cached.Set("BPAY", "1", 1)

	again, _ := cache.Get("fp")
	value, _ := again.Amount("BPAY")
	assert.Equal(t, 50000.0, value)

	cache.Drop()
	_, ok = cache.Get("fp")
	assert.False(t, ok)
}

func TestFingerprintStableAndDistinct(t *testing.T) {
	a := &dto.Document{Pages: []string{"one", "two"}}
	b := &dto.Document{Pages: []string{"one", "two"}}
	c := &dto.Document{Pages: []string{"onet", "wo"}}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}
