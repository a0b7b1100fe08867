package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternSetOrderAndOverwrite(t *testing.T) {
	set := NewPatternSet(
		Pattern{"alpha", `a`},
		Pattern{"beta", `b`},
	)

	set.Add("gamma", `c`)
	set.Add("alpha", `a2`) // last write wins, position kept

	entries := set.Entries()
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, "alpha", entries[0].Key)
	assert.Equal(t, "a2", entries[0].Expr)
	assert.Equal(t, "beta", entries[1].Key)
	assert.Equal(t, "gamma", entries[2].Key)
}

func TestRepositoryScopeOrdering(t *testing.T) {
	repo := NewRepository()

	general := repo.Patterns(ScopeGeneral)
	earnings := repo.Patterns(ScopeEarnings)

	// General patterns precede the scope set so the scope set wins
	// duplicate keys.
	assert.Greater(t, len(earnings), len(general))
	for i, p := range general {
		assert.Equal(t, p.Key, earnings[i].Key)
	}
}

func TestRepositoryKeysUniqueWithinSet(t *testing.T) {
	repo := NewRepository()

	for _, scope := range []Scope{ScopeGeneral, ScopeEarnings, ScopeDeductions} {
		seen := make(map[string]bool)
		for _, p := range repo.Patterns(scope) {
			assert.NotEmpty(t, p.Key)
			assert.False(t, seen[p.Key], "duplicate key %s in scope %s", p.Key, scope)
			seen[p.Key] = true
		}
	}
}

func TestAddPatternNoValidation(t *testing.T) {
	repo := NewRepository()

	// Malformed expressions are accepted; they fail at match time.
	repo.AddPattern("broken", `([unclosed`)

	found := false
	for _, p := range repo.Patterns(ScopeGeneral) {
		if p.Key == "broken" {
			found = true
			assert.Equal(t, `([unclosed`, p.Expr)
		}
	}
	assert.True(t, found)
}

func TestCategoryListsBlacklist(t *testing.T) {
	cats := defaultCategoryLists()

	assert.True(t, cats.IsBlacklisted("TOTAL", ScopeGeneral))
	assert.True(t, cats.IsBlacklisted("DSOP", ScopeEarnings))
	assert.False(t, cats.IsBlacklisted("DSOP", ScopeDeductions))
	assert.True(t, cats.IsBlacklisted("BPAY", ScopeDeductions))
	assert.False(t, cats.IsBlacklisted("BPAY", ScopeEarnings))
}

func TestCategoryMembership(t *testing.T) {
	cats := defaultCategoryLists()

	assert.True(t, cats.IsEarningsCode("BPAY"))
	assert.True(t, cats.IsDeductionsCode("DSOP"))
	assert.False(t, cats.IsEarningsCode("DSOP"))
	assert.False(t, cats.IsDeductionsCode("BPAY"))
}

func TestThresholdDefaults(t *testing.T) {
	thr := defaultThresholds()

	assert.Equal(t, 100.0, thr.Earnings)
	assert.Equal(t, 10.0, thr.Deductions)
	assert.Equal(t, 50.0, thr.ProvidentFund)
	assert.Equal(t, 10.0, thr.Tax)
}
