package extract

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Aashish23092/salary-extraction-engine/dto"
	"github.com/Aashish23092/salary-extraction-engine/patterns"
)

// Recorder receives per-pattern outcomes during a tracked extraction.
// A nil Recorder disables tracking.
type Recorder interface {
	RecordSuccess(patternKey string, elapsed time.Duration)
	RecordFailure(patternKey string, elapsed time.Duration, errorKind string)
}

// Extractor applies repository patterns to page text and filters the
// raw matches through blacklist and threshold rules.
type Extractor struct {
	repo     *patterns.Repository
	recorder Recorder
	compiled sync.Map // pattern expression -> *regexp.Regexp
}

// New builds an extractor over a pattern repository. recorder may be
// nil when outcomes should not feed analytics.
func New(repo *patterns.Repository, recorder Recorder) *Extractor {
	return &Extractor{repo: repo, recorder: recorder}
}

// Repository exposes the backing pattern repository.
func (e *Extractor) Repository() *patterns.Repository {
	return e.repo
}

// Extract runs every pattern of the scope against the full page text
// and keeps the matches that survive blacklist, numeric-parse and
// threshold filtering. Duplicate keys are overwritten: the later
// pattern in declaration order is authoritative.
func (e *Extractor) Extract(pageText string, scope patterns.Scope) *dto.ExtractionResult {
	result := &dto.ExtractionResult{}
	cats := e.repo.Categories()
	thresholds := e.repo.Thresholds()

	for _, p := range e.repo.Patterns(scope) {
		start := time.Now()

		re, err := e.compile(p.Expr)
		if err != nil {
			// Malformed expressions fail at match time and count
			// against the field, not the repository.
			e.fail(p.Key, start, "bad_pattern")
			continue
		}

		match := re.FindStringSubmatch(pageText)
		if len(match) < 2 {
			e.fail(p.Key, start, "no_match")
			continue
		}
		raw := strings.TrimSpace(match[1])

		if cats.IsBlacklisted(strings.ToUpper(p.Key), scope) ||
			cats.IsBlacklisted(strings.ToUpper(raw), scope) {
			continue
		}

		if e.assignIdentity(result, p.Key, raw) {
			e.ok(p.Key, start)
			continue
		}

		value, err := parseAmount(raw)
		if err != nil {
			e.fail(p.Key, start, "parse_failure")
			continue
		}
		if value < thresholdFor(p.Key, cats, thresholds) {
			// Sub-threshold figures are extraction noise, not
			// zero-amount entries.
			continue
		}

		result.Set(p.Key, raw, value)
		e.ok(p.Key, start)
	}

	e.applyMergedCodes(pageText, scope, result, cats, thresholds)

	return result
}

// assignIdentity routes non-numeric keys into the identity and period
// fields. Returns false for amount keys.
func (e *Extractor) assignIdentity(result *dto.ExtractionResult, key, raw string) bool {
	switch key {
	case "name":
		result.Name = collapseSpaces(raw)
	case "accountNumber":
		result.AccountNumber = raw
	case "panNumber":
		result.PANNumber = strings.ToUpper(raw)
	case "month":
		result.Period.Month = normalizeMonth(raw)
	case "year":
		if year, err := strconv.Atoi(raw); err == nil {
			result.Period.Year = year
		}
	default:
		return false
	}
	return true
}

// applyMergedCodes runs the merged-code decomposition rules after
// primary extraction: tokens like "3600DSOP" or "DSOP-3600" are split
// and re-attributed to the textual code when that code is a known
// category member.
func (e *Extractor) applyMergedCodes(pageText string, scope patterns.Scope, result *dto.ExtractionResult, cats patterns.CategoryLists, thresholds patterns.Thresholds) {
	for _, rule := range e.repo.MergedCodeRules() {
		re, err := e.compile(rule.Expr)
		if err != nil {
			continue
		}
		for _, match := range re.FindAllStringSubmatch(pageText, -1) {
			if len(match) < 3 {
				continue
			}
			code, rawAmount, ok := splitMergedToken(match[1], match[2])
			if !ok {
				continue
			}
			code = strings.ToUpper(code)
			if !cats.IsEarningsCode(code) && !cats.IsDeductionsCode(code) {
				continue
			}
			if cats.IsBlacklisted(code, scope) {
				continue
			}
			value, err := parseAmount(rawAmount)
			if err != nil {
				continue
			}
			if value < thresholdFor(code, cats, thresholds) {
				continue
			}
			result.Set(code, match[0], value)
		}
	}
}

func (e *Extractor) compile(expr string) (*regexp.Regexp, error) {
	if cached, ok := e.compiled.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	e.compiled.Store(expr, re)
	return re, nil
}

func (e *Extractor) ok(key string, start time.Time) {
	if e.recorder != nil {
		e.recorder.RecordSuccess(key, time.Since(start))
	}
}

func (e *Extractor) fail(key string, start time.Time, kind string) {
	if e.recorder != nil {
		e.recorder.RecordFailure(key, time.Since(start), kind)
	}
}

// splitMergedToken decides which half of a merged token is the figure
// and which is the code.
func splitMergedToken(first, second string) (code, rawAmount string, ok bool) {
	switch {
	case isDigits(first) && !isDigits(second):
		return second, first, true
	case !isDigits(first) && isDigits(second):
		return first, second, true
	default:
		return "", "", false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseAmount normalizes a matched figure: thousands separators and
// currency markers are stripped before parsing.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.NewReplacer(
		",", "",
		"₹", "",
		"Rs.", "",
		"Rs", "",
		"INR", "",
		" ", "",
	).Replace(raw)
	return strconv.ParseFloat(cleaned, 64)
}

// thresholdFor picks the minimum plausible amount for a field key.
func thresholdFor(key string, cats patterns.CategoryLists, thresholds patterns.Thresholds) float64 {
	upper := strings.ToUpper(key)
	switch {
	case upper == "DSOP":
		return thresholds.ProvidentFund
	case upper == "ITAX":
		return thresholds.Tax
	case cats.IsDeductionsCode(upper):
		return thresholds.Deductions
	default:
		return thresholds.Earnings
	}
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var monthNames = map[string]string{
	"JAN": "January", "FEB": "February", "MAR": "March",
	"APR": "April", "MAY": "May", "JUN": "June",
	"JUL": "July", "AUG": "August", "SEP": "September",
	"OCT": "October", "NOV": "November", "DEC": "December",
}

// normalizeMonth expands abbreviated month names.
func normalizeMonth(raw string) string {
	upper := strings.ToUpper(raw)
	if len(upper) >= 3 {
		if full, ok := monthNames[upper[:3]]; ok {
			return full
		}
	}
	return raw
}
