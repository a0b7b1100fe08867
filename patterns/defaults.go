package patterns

// Default rule data for Indian defence salary statements (PCDA-style
// pay slips). Loaded once at construction; the only runtime mutation
// is Repository.AddPattern.

// amount matches an optional currency marker followed by a figure with
// thousands separators.
const amount = `[\s:.]*(?:Rs\.?|INR|₹)?\s*([0-9,]+(?:\.[0-9]+)?)`

func defaultGeneralPatterns() *PatternSet {
	return NewPatternSet(
		Pattern{"name", `(?i)name\s*[:\-]\s*([A-Za-z][A-Za-z .]{2,40})`},
		Pattern{"accountNumber", `(?i)a\/?c(?:count)?\s*no\s*[:\-.]?\s*([0-9][0-9\/\-]{5,20})`},
		Pattern{"panNumber", `(?i)pan\s*(?:no|number)?\s*[:\-.]?\s*([A-Z]{5}[0-9]{4}[A-Z])`},
		Pattern{"month", `(?i)\b(?:for|month\s*of)\b[\s:]*([A-Za-z]{3,9})[\s,\-/]+[0-9]{4}`},
		Pattern{"year", `(?i)\b(?:for|month\s*of)\b[\s:]*[A-Za-z]{3,9}[\s,\-/]+([0-9]{4})`},
		Pattern{"grossPay", `(?i)(?:gross\s*(?:pay|salary)|total\s*credits?)` + amount},
		Pattern{"totalDeductions", `(?i)(?:total\s*deductions?|total\s*debits?)` + amount},
		Pattern{"netRemittance", `(?i)net\s*(?:remittance|pay(?:able)?|salary|amount)` + amount},
	)
}

func defaultEarningsPatterns() *PatternSet {
	return NewPatternSet(
		Pattern{"BPAY", `(?i)(?:BPAY|basic\s*pay)` + amount},
		Pattern{"DA", `(?i)(?:\bDA\b|dearness\s*allowance)` + amount},
		Pattern{"MSP", `(?i)(?:\bMSP\b|mil(?:itary)?\s*ser(?:vice)?\s*pay)` + amount},
		Pattern{"HRA", `(?i)(?:\bHRA\b|house\s*rent\s*allowance)` + amount},
		Pattern{"TPTA", `(?i)(?:\bTPTA\b|transport\s*allowance)` + amount},
		Pattern{"TPTADA", `(?i)\bTPTADA\b` + amount},
		Pattern{"CEA", `(?i)(?:\bCEA\b|children\s*education\s*allowance)` + amount},
		Pattern{"SPAY", `(?i)(?:\bSPAY\b|special\s*pay)` + amount},
	)
}

func defaultDeductionsPatterns() *PatternSet {
	return NewPatternSet(
		Pattern{"DSOP", `(?i)\bDSOP\b(?:\s*fund)?` + amount},
		Pattern{"AGIF", `(?i)\bAGIF\b` + amount},
		Pattern{"ITAX", `(?i)(?:\bITAX\b|income\s*tax)` + amount},
		Pattern{"EHCESS", `(?i)(?:\bEHCESS\b|edn\s*&?\s*hlth\s*cess)` + amount},
		Pattern{"SBI", `(?i)\bSBI\b(?:\s*loan)?` + amount},
		Pattern{"PLI", `(?i)\bPLI\b` + amount},
		Pattern{"CGHS", `(?i)\bCGHS\b` + amount},
		Pattern{"CGEIS", `(?i)\bCGEIS\b` + amount},
		Pattern{"FUR", `(?i)(?:\bFUR\b|furniture)` + amount},
		Pattern{"LF", `(?i)(?:\bLF\b|licen[cs]e\s*fee)` + amount},
	)
}

// Merged-code decomposition rules. A raw token welds a figure to a
// component code ("3600DSOP") or appends it after a dash
// ("DSOP-3600"); the rules split them back apart.
func defaultMergedCodeRules() *PatternSet {
	return NewPatternSet(
		Pattern{"numericPrefix", `\b([0-9]{3,8})([A-Z]{2,8})\b`},
		Pattern{"codeSuffix", `\b([A-Z]{2,8})-([0-9]{3,8})\b`},
	)
}

func defaultCategoryLists() CategoryLists {
	return CategoryLists{
		EarningsCodes: codeSet(
			"BPAY", "DA", "MSP", "HRA", "TPTA", "TPTADA", "CEA", "SPAY",
			"ARR-RSHNA", "RH12",
		),
		DeductionsCodes: codeSet(
			"DSOP", "AGIF", "ITAX", "EHCESS", "SBI", "PLI", "CGHS",
			"CGEIS", "FUR", "LF",
		),
		GlobalBlacklist: codeSet(
			"TOTAL", "GROSS", "NET", "AMOUNT", "BALANCE", "PAGE",
			"STATEMENT", "DETAILS", "DESCRIPTION", "REMARKS",
			"OPENING", "CLOSING", "CONTACT", "DATE",
		),
		ContextBlacklist: map[Scope]map[string]bool{
			// A deductions-style code matched inside the earnings
			// section is table bleed-through, never an earning.
			ScopeEarnings: codeSet(
				"DSOP", "AGIF", "ITAX", "EHCESS", "SBI", "PLI",
				"CGHS", "CGEIS",
			),
			ScopeDeductions: codeSet(
				"BPAY", "DA", "MSP", "HRA", "TPTA", "TPTADA", "CEA",
				"SPAY",
			),
		},
	}
}

func defaultThresholds() Thresholds {
	return Thresholds{
		Earnings:      100.0,
		Deductions:    10.0,
		ProvidentFund: 50.0,
		Tax:           10.0,
	}
}

func codeSet(codes ...string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}
