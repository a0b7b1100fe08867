package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/salary-extraction-engine/analytics"
	"github.com/Aashish23092/salary-extraction-engine/dto"
	"github.com/Aashish23092/salary-extraction-engine/extract"
	"github.com/Aashish23092/salary-extraction-engine/patterns"
)

func newTestOrchestrator() *Orchestrator {
	repo := patterns.NewRepository()
	tracker := analytics.NewTracker(nil)
	extractor := extract.New(repo, tracker)
	generator := extract.NewGenerator(extractor)
	return NewOrchestrator(repo, extractor, generator, tracker, 5)
}

func statementDocument() *dto.Document {
	return &dto.Document{
		Filename: "statement.pdf",
		Pages: []string{
			"STATEMENT OF ACCOUNT FOR March 2024\nName: John Doe\nA/C No: 1234567890",
			"BPAY 50000.00\nDA 15000\nMSP 15500\nTotal Credits: Rs. 80,500.00",
			"DSOP Fund 8000\nAGIF 450\nITAX: 4500\nTotal Deductions 12,950",
		},
	}
}

func TestProcessExtractsRecord(t *testing.T) {
	outcome, err := newTestOrchestrator().Process(statementDocument(), nil)

	require.NoError(t, err)
	require.NotNil(t, outcome.Record)
	assert.Equal(t, StateDone, outcome.State)
	assert.Equal(t, "Standard", outcome.Strategy)
	assert.Equal(t, dto.SourceExtracted, outcome.Record.Source)
	assert.Equal(t, 80500.0, outcome.Record.Credits)
	assert.Equal(t, "John Doe", outcome.Record.Name)
	assert.Equal(t, "March", outcome.Record.Period.Month)
}

func TestProcessRejectsNilDocument(t *testing.T) {
	_, err := newTestOrchestrator().Process(nil, nil)

	var docErr *dto.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, dto.DefectFileNotFound, docErr.Defect)
}

func TestProcessRejectsEmptyDocument(t *testing.T) {
	_, err := newTestOrchestrator().Process(&dto.Document{Filename: "empty.pdf"}, nil)

	var docErr *dto.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, dto.DefectEmptyFile, docErr.Defect)
}

func TestProcessRejectsBadHeader(t *testing.T) {
	doc := &dto.Document{Filename: "junk.bin", Raw: []byte("not a pdf at all")}

	_, err := newTestOrchestrator().Process(doc, nil)

	var docErr *dto.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, dto.DefectBadHeader, docErr.Defect)
}

func TestProcessRejectsZeroPages(t *testing.T) {
	doc := &dto.Document{Filename: "hollow.pdf", Raw: []byte("%PDF-1.7 ...")}

	_, err := newTestOrchestrator().Process(doc, nil)

	var docErr *dto.DocumentError
	require.True(t, errors.As(err, &docErr))
	assert.Equal(t, dto.DefectZeroPages, docErr.Defect)
}

func TestProcessFallsBackOnUnusableText(t *testing.T) {
	doc := &dto.Document{
		Filename: "scan.pdf",
		Pages:    []string{"no recognizable financial content whatsoever"},
	}

	outcome, err := newTestOrchestrator().Process(doc, nil)

	require.NoError(t, err)
	require.NotNil(t, outcome.Record)
	assert.Equal(t, StateFallingBack, outcome.State)
	assert.Equal(t, dto.SourceFallbackDefaulted, outcome.Record.Source)
	assert.Equal(t, dto.DefaultCredits, outcome.Record.Credits)
}

func TestProcessUsesEnhancedForCallerOptions(t *testing.T) {
	opts := dto.QualityOptions()

	outcome, err := newTestOrchestrator().Process(statementDocument(), &opts)

	require.NoError(t, err)
	assert.Equal(t, "Enhanced", outcome.Strategy)
	assert.Equal(t, dto.SourceExtracted, outcome.Record.Source)
}

func TestProcessUsesEnhancedForLargeDocuments(t *testing.T) {
	pages := make([]string, 8)
	for i := range pages {
		pages[i] = "BPAY 50000\nTotal Credits: 65,000"
	}
	doc := &dto.Document{Filename: "large.pdf", Pages: pages}

	outcome, err := newTestOrchestrator().Process(doc, nil)

	require.NoError(t, err)
	assert.Equal(t, "Enhanced", outcome.Strategy)
	assert.Equal(t, dto.SourceExtracted, outcome.Record.Source)
}

func TestValidateNeverReachesStrategies(t *testing.T) {
	// A rejected document must not leave a trace in analytics: no
	// extraction strategy ran.
	tracker := analytics.NewTracker(nil)
	repo := patterns.NewRepository()
	extractor := extract.New(repo, tracker)
	orchestrator := NewOrchestrator(repo, extractor, extract.NewGenerator(extractor), tracker, 5)

	_, err := orchestrator.Process(&dto.Document{Filename: "empty.pdf"}, nil)
	require.Error(t, err)

	assert.Empty(t, tracker.AllPerformance())
}

func TestHistoricalSuccessRateBiasesSelection(t *testing.T) {
	repo := patterns.NewRepository()
	tracker := analytics.NewTracker(nil)
	extractor := extract.New(repo, nil)
	orchestrator := NewOrchestrator(repo, extractor, extract.NewGenerator(extractor), tracker, 5)

	assert.Equal(t, 1.0, orchestrator.historicalSuccessRate())

	tracker.RecordFailure("BPAY", 0, "no_match")
	tracker.RecordFailure("DA", 0, "no_match")
	tracker.RecordSuccess("MSP", 0)

	assert.InDelta(t, 1.0/3.0, orchestrator.historicalSuccessRate(), 1e-9)
}
