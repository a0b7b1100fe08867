package service

import (
	"bytes"
	"fmt"
	"log"

	"github.com/Aashish23092/salary-extraction-engine/analytics"
	"github.com/Aashish23092/salary-extraction-engine/dto"
	"github.com/Aashish23092/salary-extraction-engine/extract"
	"github.com/Aashish23092/salary-extraction-engine/patterns"
)

// State names one step of the extraction lifecycle:
// Idle -> Validating -> {StrategySelection -> Extracting ->
// {Done | FallingBack -> Done}} | Rejected.
type State string

const (
	StateIdle              State = "idle"
	StateValidating        State = "validating"
	StateStrategySelection State = "strategy_selection"
	StateExtracting        State = "extracting"
	StateFallingBack       State = "falling_back"
	StateDone              State = "done"
	StateRejected          State = "rejected"
)

// Outcome is what a completed run hands back: a record (never nil),
// the strategy that produced it, and the terminal state reached.
type Outcome struct {
	Record   *dto.FinancialRecord
	Strategy string
	State    State
}

// Orchestrator sequences validation, strategy selection, extraction
// and fallback. It is the sole integration point exposed to external
// collaborators and the boundary that guarantees total output: every
// non-rejected document yields a FinancialRecord.
type Orchestrator struct {
	repo       *patterns.Repository
	extractor  *extract.Extractor
	generator  *extract.Generator
	tracker    *analytics.Tracker
	largePages int
}

func NewOrchestrator(repo *patterns.Repository, extractor *extract.Extractor, generator *extract.Generator, tracker *analytics.Tracker, largePages int) *Orchestrator {
	if largePages <= 0 {
		largePages = 5
	}
	return &Orchestrator{
		repo:       repo,
		extractor:  extractor,
		generator:  generator,
		tracker:    tracker,
		largePages: largePages,
	}
}

// Process runs one document through the state machine. The error is
// non-nil only for Rejected documents; it is always a
// *dto.DocumentError naming the defect.
func (o *Orchestrator) Process(doc *dto.Document, opts *dto.ExtractionOptions) (*Outcome, error) {
	if err := o.validate(doc); err != nil {
		log.Printf("orchestrator: rejected %s: %v", docName(doc), err)
		return nil, err
	}

	strategy, runOpts := o.selectStrategy(doc, opts)

	result, err := runGuarded(strategy, doc, runOpts)

	state := StateDone
	var record *dto.FinancialRecord
	if err == nil && result != nil {
		record = extract.BuildRecord(result, o.repo.Categories())
	}
	if record == nil || record.Credits <= 0 {
		// Internal failures and unusable extractions both recover
		// through the fallback generator, never propagate.
		if err != nil {
			log.Printf("orchestrator: %s failed on %s, falling back: %v", strategy.Name(), docName(doc), err)
		}
		state = StateFallingBack
		record = o.generator.Generate(doc.FullText(), result)
	}

	return &Outcome{Record: record, Strategy: strategy.Name(), State: state}, nil
}

// validate checks the document before any strategy runs. Rejected is
// terminal; no extraction strategy is ever invoked for a rejected
// document.
func (o *Orchestrator) validate(doc *dto.Document) error {
	if doc == nil {
		return dto.NewDocumentError(dto.DefectFileNotFound, "")
	}
	if len(doc.Raw) == 0 && doc.PageCount() == 0 {
		return dto.NewDocumentError(dto.DefectEmptyFile, doc.Filename)
	}
	// Pre-supplied page text overrides header validation: the text
	// layer arrives from an external reader for non-PDF inputs.
	if doc.PageCount() == 0 {
		if !bytes.HasPrefix(doc.Raw, []byte("%PDF-")) {
			return dto.NewDocumentError(dto.DefectBadHeader, doc.Filename)
		}
		return dto.NewDocumentError(dto.DefectZeroPages, doc.Filename)
	}
	return nil
}

// selectStrategy picks the extraction path: caller-supplied options
// force Enhanced under those options; otherwise small documents take
// Standard and large ones Enhanced defaults. Analytics history may
// bias the large-document path toward the quality preset — an
// optimization, never correctness-critical.
func (o *Orchestrator) selectStrategy(doc *dto.Document, opts *dto.ExtractionOptions) (extract.Strategy, *dto.ExtractionOptions) {
	if opts != nil {
		normalized := opts.Normalize()
		return extract.NewEnhancedStrategy(o.extractor), &normalized
	}
	if doc.PageCount() <= o.largePages {
		return extract.NewStandardStrategy(o.extractor), nil
	}

	options := dto.DefaultOptions()
	if o.historicalSuccessRate() < 0.5 {
		options = dto.QualityOptions()
	}
	return extract.NewEnhancedStrategy(o.extractor), &options
}

// historicalSuccessRate is the attempt-weighted success rate across
// all tracked patterns. No history reads as fully reliable.
func (o *Orchestrator) historicalSuccessRate() float64 {
	if o.tracker == nil {
		return 1.0
	}

	var attempts int
	var successes float64
	for _, perf := range o.tracker.AllPerformance() {
		attempts += perf.ExtractionCount
		successes += perf.SuccessRate * float64(perf.ExtractionCount)
	}
	if attempts == 0 {
		return 1.0
	}
	return successes / float64(attempts)
}

// runGuarded converts a strategy panic into an error so it recovers
// through the fallback path instead of escaping the orchestrator.
func runGuarded(strategy extract.Strategy, doc *dto.Document, opts *dto.ExtractionOptions) (result *dto.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("strategy panic: %v", r)
		}
	}()

	result, _, err = strategy.Run(doc, opts)
	return result, err
}

func docName(doc *dto.Document) string {
	if doc == nil {
		return "<nil>"
	}
	return doc.Filename
}
