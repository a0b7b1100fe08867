package patterns

import "sync"

// Scope selects which pattern subset and blacklist are active.
type Scope string

const (
	ScopeGeneral    Scope = "general"
	ScopeEarnings   Scope = "earnings"
	ScopeDeductions Scope = "deductions"
)

// Pattern is one named extraction rule. Expr is a regular expression
// whose first capture group is the field value.
type Pattern struct {
	Key  string
	Expr string
}

// PatternSet is an ordered, keyed collection of patterns. Declaration
// order matters: when two patterns produce the same field key, the
// later one is authoritative.
type PatternSet struct {
	entries []Pattern
	index   map[string]int
}

func NewPatternSet(entries ...Pattern) *PatternSet {
	s := &PatternSet{index: make(map[string]int, len(entries))}
	for _, p := range entries {
		s.Add(p.Key, p.Expr)
	}
	return s
}

// Add inserts a pattern, last write wins on key collision. No
// expression validation happens here; a malformed expression fails at
// match time and the failure is attributed to the field.
func (s *PatternSet) Add(key, expr string) {
	if i, ok := s.index[key]; ok {
		s.entries[i].Expr = expr
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Pattern{Key: key, Expr: expr})
}

// Entries returns the patterns in declaration order. The returned
// slice is a copy; callers cannot mutate the set through it.
func (s *PatternSet) Entries() []Pattern {
	out := make([]Pattern, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *PatternSet) Len() int {
	return len(s.entries)
}

// CategoryLists groups the known component codes and the terms that
// must never be accepted as field keys.
type CategoryLists struct {
	EarningsCodes    map[string]bool
	DeductionsCodes  map[string]bool
	GlobalBlacklist  map[string]bool
	ContextBlacklist map[Scope]map[string]bool
}

// IsEarningsCode reports whether code is a known earnings component.
func (c CategoryLists) IsEarningsCode(code string) bool {
	return c.EarningsCodes[code]
}

// IsDeductionsCode reports whether code is a known deductions component.
func (c CategoryLists) IsDeductionsCode(code string) bool {
	return c.DeductionsCodes[code]
}

// IsBlacklisted checks the global list and the context list for the
// active scope.
func (c CategoryLists) IsBlacklisted(term string, scope Scope) bool {
	if c.GlobalBlacklist[term] {
		return true
	}
	if ctx, ok := c.ContextBlacklist[scope]; ok && ctx[term] {
		return true
	}
	return false
}

// Thresholds are per-category minimum plausible amounts. Values below
// threshold are extraction noise, not zero-amount entries.
type Thresholds struct {
	Earnings      float64
	Deductions    float64
	ProvidentFund float64
	Tax           float64
}

// Repository holds the extraction rules. Effectively immutable after
// construction aside from the append-only AddPattern, so reads are
// safe for concurrent callers.
type Repository struct {
	mu         sync.RWMutex
	general    *PatternSet
	earnings   *PatternSet
	deductions *PatternSet
	merged     *PatternSet
	categories CategoryLists
	thresholds Thresholds
}

// NewRepository loads the default rule data.
func NewRepository() *Repository {
	return &Repository{
		general:    defaultGeneralPatterns(),
		earnings:   defaultEarningsPatterns(),
		deductions: defaultDeductionsPatterns(),
		merged:     defaultMergedCodeRules(),
		categories: defaultCategoryLists(),
		thresholds: defaultThresholds(),
	}
}

// Patterns returns the pattern set for a scope in declaration order.
// General patterns precede the scope-specific set so scope patterns
// win duplicate keys.
func (r *Repository) Patterns(scope Scope) []Pattern {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch scope {
	case ScopeEarnings:
		return append(r.general.Entries(), r.earnings.Entries()...)
	case ScopeDeductions:
		return append(r.general.Entries(), r.deductions.Entries()...)
	default:
		return r.general.Entries()
	}
}

// Categories returns the code lists and blacklists.
func (r *Repository) Categories() CategoryLists {
	return r.categories
}

// MergedCodeRules returns the decomposition rules for merged
// amount+code tokens.
func (r *Repository) MergedCodeRules() []Pattern {
	return r.merged.Entries()
}

// Thresholds returns the minimum-amount thresholds.
func (r *Repository) Thresholds() Thresholds {
	return r.thresholds
}

// AddPattern inserts or overwrites a pattern in the general set.
func (r *Repository) AddPattern(key, expr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.general.Add(key, expr)
}
