package solver

import (
	"context"
	"strings"
	"testing"

	"github.com/spellbee/solver/pkg/constraintset"
	"github.com/spellbee/solver/pkg/wordindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fragment is a small dictionary reused across the scenario tests below.
const fragment = "face\ncafe\nbead\nfeed\ndecaf\nbadge\nbe\n"

func buildFragment(t *testing.T, caseSensitive bool) *wordindex.WordIndex {
	t.Helper()
	idx, err := wordindex.Build(strings.NewReader(fragment), caseSensitive)
	require.NoError(t, err)
	return idx
}

func intPtr(v int) *int { return &v }

func TestSolve_Scenario1_UnboundedRepeats(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{Available: "abcdefg", Required: "a", MinLength: intPtr(1)})
	require.NoError(t, err)

	got := Collect(context.Background(), idx, cs)
	// Alphabetical (lexicographic-over-alphabet) order: "badge" < "bead"
	// since their second symbols are 'a' < 'e'.
	assert.Equal(t, []string{"badge", "bead", "cafe", "decaf", "face"}, got)
}

func TestSolve_Scenario2_MinLength(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{Available: "abcdefg", Required: "a", MinLength: intPtr(5)})
	require.NoError(t, err)

	got := Collect(context.Background(), idx, cs)
	assert.Equal(t, []string{"badge", "decaf"}, got)
}

func TestSolve_Scenario3_MaxLength(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{Available: "abcdefg", Required: "a", MaxLength: intPtr(4)})
	require.NoError(t, err)

	got := Collect(context.Background(), idx, cs)
	assert.Equal(t, []string{"bead", "cafe", "face"}, got)
}

func TestSolve_Scenario4_RepeatsOne(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{Available: "abcdef", Required: "e", Repeats: intPtr(1)})
	require.NoError(t, err)

	got := Collect(context.Background(), idx, cs)
	// "be" also satisfies every stated constraint (e present, b/e both in
	// available, both distinct) and is included here.
	assert.Equal(t, []string{"be", "bead", "cafe", "decaf", "face"}, got)
	assert.NotContains(t, got, "feed")
}

func TestSolve_Scenario5_EmptyRequired(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{Available: "be", Required: "", MinLength: intPtr(1)})
	require.NoError(t, err)

	got := Collect(context.Background(), idx, cs)
	assert.Equal(t, []string{"be"}, got)
}

func TestSolve_Scenario6_CaseSensitive(t *testing.T) {
	idx, err := wordindex.Build(strings.NewReader("Walrus\nwalrus\nwar\n"), true)
	require.NoError(t, err)

	cs, err := constraintset.FromRequest(constraintset.Raw{
		Available: "Walrus", Required: "W", CaseSensitive: true,
	})
	require.NoError(t, err)

	got := Collect(context.Background(), idx, cs)
	assert.Equal(t, []string{"Walrus"}, got)
	assert.NotContains(t, got, "walrus")
	assert.NotContains(t, got, "war")
}

func TestSolve_MinEqualsMax_ExactLength(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{
		Available: "abcdefg", MinLength: intPtr(4), MaxLength: intPtr(4),
	})
	require.NoError(t, err)

	got := Collect(context.Background(), idx, cs)
	for _, w := range got {
		assert.Len(t, w, 4)
	}
	assert.ElementsMatch(t, []string{"bead", "cafe", "face", "feed"}, got)
}

func TestSolve_RequiredEqualsAvailable_Pangrams(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{Available: "cafe", Required: "cafe"})
	require.NoError(t, err)

	got := Collect(context.Background(), idx, cs)
	// "face" is also a pangram over {c,a,f,e}; both are emitted, alphabetically.
	assert.Equal(t, []string{"cafe", "face"}, got)
}

func TestSolve_NoDuplicates(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{Available: "abcdefg"})
	require.NoError(t, err)

	got := Collect(context.Background(), idx, cs)
	seen := make(map[string]bool)
	for _, w := range got {
		assert.False(t, seen[w], "duplicate candidate %q", w)
		seen[w] = true
	}
}

func TestSolve_EveryCandidateSatisfiesInvariants(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{
		Available: "abcdefg", Required: "a", Repeats: intPtr(2), MinLength: intPtr(2), MaxLength: intPtr(6),
	})
	require.NoError(t, err)

	availSet := map[rune]bool{}
	for _, r := range cs.Available() {
		availSet[r] = true
	}

	for w := range Solve(context.Background(), idx, cs) {
		assert.True(t, idx.Contains(w))
		assert.GreaterOrEqual(t, len(w), cs.MinLength())
		assert.LessOrEqual(t, len(w), *cs.MaxLength())

		counts := map[rune]int{}
		for _, r := range w {
			assert.True(t, availSet[r], "word %q uses symbol %q outside available", w, r)
			counts[r]++
			assert.LessOrEqual(t, counts[r], *cs.RepeatCap())
		}
		for _, r := range cs.Required() {
			assert.Contains(t, w, string(r))
		}
	}
}

func TestSolve_Deterministic(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{Available: "abcdefg", Required: "a"})
	require.NoError(t, err)

	first := Collect(context.Background(), idx, cs)
	second := Collect(context.Background(), idx, cs)
	assert.Equal(t, first, second)
}

func TestSolve_CancellationStopsEarly(t *testing.T) {
	idx := buildFragment(t, false)
	cs, err := constraintset.FromRequest(constraintset.Raw{Available: "abcdefg"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := Collect(ctx, idx, cs)
	assert.Empty(t, got)
}
