package extract

import (
	"log"
	"strings"
	"time"

	"github.com/Aashish23092/salary-extraction-engine/dto"
	"github.com/Aashish23092/salary-extraction-engine/patterns"
)

// BuildRecord converts an extraction result into a FinancialRecord.
// Credits prefer the stated gross figure, falling back to the sum of
// itemized earnings; debits likewise.
func BuildRecord(result *dto.ExtractionResult, cats patterns.CategoryLists) *dto.FinancialRecord {
	record := &dto.FinancialRecord{
		Period:        result.Period,
		Earnings:      make(map[string]float64),
		Deductions:    make(map[string]float64),
		Name:          result.Name,
		AccountNumber: result.AccountNumber,
		PANNumber:     result.PANNumber,
		Source:        dto.SourceExtracted,
		CreatedAt:     time.Now(),
	}

	var earningsSum, deductionsSum float64
	for _, field := range result.Fields {
		code := strings.ToUpper(field.Key)
		switch {
		case cats.IsEarningsCode(code):
			record.Earnings[code] = field.Value
			earningsSum += field.Value
		case cats.IsDeductionsCode(code):
			record.Deductions[code] = field.Value
			deductionsSum += field.Value
		}
	}

	record.DSOP = record.Deductions["DSOP"]
	record.Tax = record.Deductions["ITAX"]

	if gross, ok := result.Amount("grossPay"); ok {
		record.Credits = gross
	} else {
		record.Credits = earningsSum
	}
	if total, ok := result.Amount("totalDeductions"); ok {
		record.Debits = total
	} else {
		record.Debits = deductionsSum
	}

	return record
}

// Generator produces a best-effort record when primary extraction
// yields nothing usable. It never fails: downstream consumers always
// receive a record with non-zero credits.
type Generator struct {
	extractor *Extractor
}

func NewGenerator(extractor *Extractor) *Generator {
	return &Generator{extractor: extractor}
}

// Generate runs a second, looser pass over the raw text and, if
// credits still come out non-positive, substitutes the documented
// default record. The source marker always tells the caller which
// path produced the record.
func (g *Generator) Generate(documentText string, partial *dto.ExtractionResult) (record *dto.FinancialRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("fallback generation panicked, substituting defaults: %v", r)
			record = g.defaultRecord(partial)
		}
	}()

	cats := g.extractor.Repository().Categories()

	loose := extractAllScopes(g.extractor, preprocessText(documentText))
	loose.Merge(partial)

	record = BuildRecord(loose, cats)
	if record.Credits > 0 {
		return record
	}

	return g.defaultRecord(partial)
}

// defaultRecord is the documented floor: current period, named
// defaults for basic pay, dearness allowance, military service pay and
// miscellaneous allowances.
func (g *Generator) defaultRecord(partial *dto.ExtractionResult) *dto.FinancialRecord {
	now := time.Now()
	record := &dto.FinancialRecord{
		Period: dto.Period{Month: now.Month().String(), Year: now.Year()},
		Earnings: map[string]float64{
			"BPAY":  dto.DefaultBasicPay,
			"DA":    dto.DefaultDearnessAllowance,
			"MSP":   dto.DefaultMilitaryServicePay,
			"OTHER": dto.DefaultMiscAllowances,
		},
		Deductions: make(map[string]float64),
		Credits:    dto.DefaultCredits,
		Source:     dto.SourceFallbackDefaulted,
		CreatedAt:  now,
	}

	if partial != nil {
		record.Name = partial.Name
		record.AccountNumber = partial.AccountNumber
		record.PANNumber = partial.PANNumber
		if partial.Period.Month != "" {
			record.Period.Month = partial.Period.Month
		}
		if partial.Period.Year != 0 {
			record.Period.Year = partial.Period.Year
		}
	}

	return record
}
