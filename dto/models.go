package dto

import (
	"strings"
	"time"
)

// Document is the unit of work for extraction: the raw statement bytes
// plus page-indexed text supplied by the text-layer reader.
type Document struct {
	Filename string   `json:"filename"`
	Raw      []byte   `json:"-"`
	Pages    []string `json:"-"`
}

func (d *Document) PageCount() int {
	return len(d.Pages)
}

// FullText joins all pages with page breaks preserved.
func (d *Document) FullText() string {
	return strings.Join(d.Pages, "\n")
}

// Period is the statement month/year.
type Period struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// Field is one extracted key-value pair: the pattern key, the raw
// matched text, and the parsed amount.
type Field struct {
	Key   string  `json:"key"`
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
}

// ExtractionResult holds everything one extraction pass produced.
// Fields keep insertion order; a repeated key overwrites in place so
// the later pattern stays authoritative without reordering.
type ExtractionResult struct {
	Fields        []Field `json:"fields"`
	Name          string  `json:"name,omitempty"`
	AccountNumber string  `json:"account_number,omitempty"`
	PANNumber     string  `json:"pan_number,omitempty"`
	Period        Period  `json:"period"`
}

// Set inserts or overwrites a field value.
func (r *ExtractionResult) Set(key, raw string, value float64) {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			r.Fields[i].Raw = raw
			r.Fields[i].Value = value
			return
		}
	}
	r.Fields = append(r.Fields, Field{Key: key, Raw: raw, Value: value})
}

// Amount returns the value for a key, if present.
func (r *ExtractionResult) Amount(key string) (float64, bool) {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			return r.Fields[i].Value, true
		}
	}
	return 0, false
}

// Remove deletes a field by key, preserving the order of the rest.
func (r *ExtractionResult) Remove(key string) {
	for i := range r.Fields {
		if r.Fields[i].Key == key {
			r.Fields = append(r.Fields[:i], r.Fields[i+1:]...)
			return
		}
	}
}

// Merge overlays other on top of r: identity fields fill in when
// missing, amounts from other overwrite duplicates.
func (r *ExtractionResult) Merge(other *ExtractionResult) {
	if other == nil {
		return
	}
	for _, f := range other.Fields {
		r.Set(f.Key, f.Raw, f.Value)
	}
	if r.Name == "" {
		r.Name = other.Name
	}
	if r.AccountNumber == "" {
		r.AccountNumber = other.AccountNumber
	}
	if r.PANNumber == "" {
		r.PANNumber = other.PANNumber
	}
	if r.Period.Month == "" {
		r.Period.Month = other.Period.Month
	}
	if r.Period.Year == 0 {
		r.Period.Year = other.Period.Year
	}
}

// RecordSource marks how a FinancialRecord was produced.
type RecordSource string

const (
	SourceExtracted         RecordSource = "extracted"
	SourceFallbackDefaulted RecordSource = "fallback-defaulted"
)

// Fallback defaults, substituted when no usable financial data could be
// recovered from a statement. Downstream consumers rely on credits
// never being zero.
const (
	DefaultBasicPay           = 30000.0
	DefaultDearnessAllowance  = 15000.0
	DefaultMilitaryServicePay = 15500.0
	DefaultMiscAllowances     = 2500.0
)

// DefaultCredits is the credits total of a fully defaulted record.
const DefaultCredits = DefaultBasicPay + DefaultDearnessAllowance +
	DefaultMilitaryServicePay + DefaultMiscAllowances

// FinancialRecord is the structured output handed to the persistence
// collaborator. The engine does not retain it after returning.
type FinancialRecord struct {
	Period        Period             `json:"period"`
	Credits       float64            `json:"credits"`
	Debits        float64            `json:"debits"`
	DSOP          float64            `json:"dsop"`
	Tax           float64            `json:"tax"`
	Earnings      map[string]float64 `json:"earnings"`
	Deductions    map[string]float64 `json:"deductions"`
	Name          string             `json:"name,omitempty"`
	AccountNumber string             `json:"account_number,omitempty"`
	PANNumber     string             `json:"pan_number,omitempty"`
	Source        RecordSource       `json:"source"`
	CreatedAt     time.Time          `json:"created_at"`
}

// PatternPerformance is the rolling view over a pattern's event log,
// recomputed on demand.
type PatternPerformance struct {
	PatternKey            string        `json:"pattern_key"`
	SuccessRate           float64       `json:"success_rate"`
	ExtractionCount       int           `json:"extraction_count"`
	AverageExtractionTime time.Duration `json:"average_extraction_time"`
	LastUsed              *time.Time    `json:"last_used,omitempty"`
	UserAccuracyRate      float64       `json:"user_accuracy_rate"`
}
