package ranges

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntSet(t testing.TB, ranges ...string) *TreeRangeSet[int] {
	t.Helper()
	set := NewTreeRangeSet(Natural[int]())
	for _, r := range ranges {
		set.Add(mustRange(t, r))
	}
	return set
}

// requireDisjoint checks that stored ranges are non-empty, ascending and pairwise
// disconnected.
func requireDisjoint[T any](t testing.TB, set RangeSet[T]) {
	t.Helper()
	stored := set.Ranges()
	for i, r := range stored {
		require.False(t, r.IsEmpty(), "stored range %s is empty", r)
		for _, other := range stored[i+1:] {
			require.False(t, r.IsConnected(other), "%s and %s are connected in %s", r, other, set)
		}
		if i > 0 {
			require.Negative(t, compareCuts(set.Ordering(), stored[i-1].lower, r.lower), "ranges out of order in %s", set)
		}
	}
}

func TestTreeRangeSetCoalescesOverlaps(t *testing.T) {
	t.Parallel()

	set := newIntSet(t, "[1..4]", "(2..6)")
	assert.Equal(t, "{[1..6)}", set.String())
	assert.Equal(t, "{(-inf..1)[6..+inf)}", set.Complement().String())
	requireDisjoint[int](t, set)
}

func TestTreeRangeSetMergesBridgedRanges(t *testing.T) {
	t.Parallel()

	set := newIntSet(t, "[1..3)", "[4..6)")
	assert.Equal(t, "{[1..3)[4..6)}", set.String())

	set.Add(mustRange(t, "[2..5)"))
	assert.Equal(t, "{[1..6)}", set.String())
}

func TestTreeRangeSetRemoveTrimsFront(t *testing.T) {
	t.Parallel()

	set := newIntSet(t, "[3..6]")
	set.Remove(mustRange(t, "[3..5)"))
	assert.Equal(t, "{[5..6]}", set.String())
}

func TestTreeRangeSetAdd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		adds   []string
		expect string
	}{
		{"empty range ignored", []string{"[3..3)"}, "{}"},
		{"touching closed edge merges", []string{"[1..3]", "(3..5)"}, "{[1..5)}"},
		{"touching open edges stay apart", []string{"[1..3)", "(3..5)"}, "{[1..3)(3..5)}"},
		{"half-open neighbours merge", []string{"[1..3)", "[3..5)"}, "{[1..5)}"},
		{"enclosed range absorbed", []string{"[1..10]", "[3..4]"}, "{[1..10]}"},
		{"enclosing range swallows", []string{"[3..4]", "[6..7]", "[1..10]"}, "{[1..10]}"},
		{"added out of order", []string{"[8..9]", "[1..2]", "[4..5]"}, "{[1..2][4..5][8..9]}"},
		{"unbounded absorbs", []string{"[1..2]", "[5..6]", "[4..+inf)"}, "{[1..2][4..+inf)}"},
		{"everything", []string{"(-inf..0]", "(0..+inf)"}, "{(-inf..+inf)}"},
		{"equal lower bound extends", []string{"[1..3]", "[1..5)"}, "{[1..5)}"},
		{"open lower next to closed upper", []string{"(1..3]", "[1..1]"}, "{[1..3]}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newIntSet(t, tt.adds...)
			assert.Equal(t, tt.expect, set.String())
			requireDisjoint[int](t, set)
		})
	}
}

func TestTreeRangeSetRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial []string
		remove  string
		expect  string
	}{
		{"split in the middle", []string{"[1..10]"}, "[3..5]", "{[1..3)(5..10]}"},
		{"open removal keeps endpoints", []string{"[1..10]"}, "(3..5)", "{[1..3][5..10]}"},
		{"trim back", []string{"[1..10]"}, "[8..12]", "{[1..8)}"},
		{"across several", []string{"[1..2]", "[4..5]", "[7..8]"}, "(1..7]", "{[1..1](7..8]}"},
		{"unbounded above", []string{"[1..2]", "[4..5]"}, "[2..+inf)", "{[1..2)}"},
		{"everything", []string{"[1..2]", "[4..5]"}, "(-inf..+inf)", "{}"},
		{"disjoint is noop", []string{"[1..2]"}, "(2..3]", "{[1..2]}"},
		{"empty is noop", []string{"[1..2]"}, "[1..1)", "{[1..2]}"},
		{"exact range", []string{"[1..2]", "[4..5]"}, "[4..5]", "{[1..2]}"},
		{"single point", []string{"[1..3]"}, "[2..2]", "{[1..2)(2..3]}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := newIntSet(t, tt.initial...)
			set.Remove(mustRange(t, tt.remove))
			assert.Equal(t, tt.expect, set.String())
			requireDisjoint[int](t, set)
		})
	}
}

func TestTreeRangeSetAddRemoveCancel(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"[1..4]", "(1..4)", "(-inf..3]", "(-inf..+inf)", "[5..5]"} {
		set := NewTreeRangeSet(Natural[int]())
		r := mustRange(t, expr)
		set.Add(r)
		set.Remove(r)
		assert.True(t, set.IsEmpty(), "%s left %s", expr, set)
	}
}

func TestTreeRangeSetQueries(t *testing.T) {
	t.Parallel()

	set := newIntSet(t, "[1..3)", "(5..8]", "[10..+inf)")

	assert.True(t, set.Contains(1))
	assert.False(t, set.Contains(3))
	assert.False(t, set.Contains(5))
	assert.True(t, set.Contains(8))
	assert.True(t, set.Contains(1_000_000))

	r, ok := set.RangeContaining(6)
	require.True(t, ok)
	assert.Equal(t, "(5..8]", r.String())
	_, ok = set.RangeContaining(9)
	assert.False(t, ok)

	assert.True(t, set.Encloses(mustRange(t, "[6..7]")))
	assert.True(t, set.Encloses(mustRange(t, "[1..3)")))
	assert.False(t, set.Encloses(mustRange(t, "[1..3]")))
	assert.False(t, set.Encloses(mustRange(t, "[2..6]")))
	assert.True(t, set.Encloses(mustRange(t, "[20..+inf)")))

	assert.True(t, set.EnclosesAll(newIntSet(t, "[1..2]", "[12..14]")))
	assert.False(t, set.EnclosesAll(newIntSet(t, "[1..2]", "[8..9]")))

	assert.True(t, set.Intersects(mustRange(t, "[2..4]")))
	assert.True(t, set.Intersects(mustRange(t, "[0..1]")))
	assert.False(t, set.Intersects(mustRange(t, "[3..5]")))
	assert.False(t, set.Intersects(mustRange(t, "[3..3]")))
	assert.True(t, set.Intersects(mustRange(t, "(-inf..+inf)")))

	span, ok := set.Span()
	require.True(t, ok)
	assert.Equal(t, "[1..+inf)", span.String())

	var descending []string
	for r := range set.Descending() {
		descending = append(descending, r.String())
	}
	assert.Equal(t, []string{"[10..+inf)", "(5..8]", "[1..3)"}, descending)
}

func TestTreeRangeSetEmptySpan(t *testing.T) {
	t.Parallel()

	set := NewTreeRangeSet(Natural[int]())
	_, ok := set.Span()
	assert.False(t, ok)
	assert.True(t, set.IsEmpty())
	assert.Equal(t, "{}", set.String())
	assert.Equal(t, "{(-inf..+inf)}", set.Complement().String())
}

func TestTreeRangeSetViewsAreIndependent(t *testing.T) {
	t.Parallel()

	set := newIntSet(t, "[1..3]", "[6..9]", "[12..15]")
	complement := set.Complement()
	sub := set.SubRangeSet(mustRange(t, "(2..13)"))

	assert.Equal(t, "{(-inf..1)(3..6)(9..12)(15..+inf)}", complement.String())
	assert.Equal(t, "{(2..3][6..9][12..13)}", sub.String())

	set.Add(mustRange(t, "[3..6]"))
	set.Remove(mustRange(t, "[12..15]"))

	assert.Equal(t, "{[1..9]}", set.String())
	assert.Equal(t, "{(-inf..1)(3..6)(9..12)(15..+inf)}", complement.String())
	assert.Equal(t, "{(2..3][6..9][12..13)}", sub.String())

	assert.True(t, set.Complement().Complement().Equal(set))
	assert.Equal(t, "{}", set.SubRangeSet(mustRange(t, "(9..10]")).String())
}

func TestTreeRangeSetBulkOperations(t *testing.T) {
	t.Parallel()

	set := newIntSet(t, "[1..3]")
	set.AddAll(newIntSet(t, "[5..6]", "(3..4]"))
	assert.Equal(t, "{[1..4][5..6]}", set.String())

	set.AddAll(set)
	assert.Equal(t, "{[1..4][5..6]}", set.String())

	set.RemoveAll(ImmutableRangeSetOf(Natural[int](), mustRange(t, "[2..2]"), mustRange(t, "[6..6]")))
	assert.Equal(t, "{[1..2)(2..4][5..6)}", set.String())

	set.RemoveAll(set)
	assert.True(t, set.IsEmpty())

	set = TreeRangeSetOf(Natural[int](), mustRange(t, "[4..5]"), mustRange(t, "[1..4)"), mustRange(t, "[7..7)"))
	assert.Equal(t, "{[1..5]}", set.String())
	set.Clear()
	assert.True(t, set.IsEmpty())
}

func TestTreeRangeSetEqualityAndHash(t *testing.T) {
	t.Parallel()

	a := newIntSet(t, "[1..3]", "[5..6]")
	b := newIntSet(t, "[5..6]", "[1..2]", "[2..3]")
	c := ImmutableRangeSetOf(Natural[int](), mustRange(t, "[1..3]"), mustRange(t, "[5..6]"))

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(c))
	assert.True(t, c.Equal(a))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Hash(), c.Hash())

	b.Add(mustRange(t, "[4..4]"))
	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(newIntSet(t, "[1..3]")))
}

func TestTreeRangeSetLogsMutations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	set := NewTreeRangeSet(Natural[int](), WithLogger(logger))
	set.Add(Must(Closed(1, 4)))
	set.Add(Must(Closed(3, 6)))
	set.Remove(Must(Closed(2, 2)))

	out := buf.String()
	assert.Contains(t, out, `msg="range set add"`)
	assert.Contains(t, out, `msg="range set remove"`)
	assert.Contains(t, out, "stored=[1..6]")
	assert.Contains(t, out, "touched=1")
}

func TestTreeRangeSetStringOrdering(t *testing.T) {
	t.Parallel()

	byLength := Ordering[string](func(a, b string) int { return len(a) - len(b) })
	set := NewTreeRangeSet(byLength)
	set.Add(byLength.AtLeast("aaaa"))
	set.Add(Must(byLength.Closed("a", "bb")))

	assert.True(t, set.Contains("zz"))
	assert.False(t, set.Contains("zzz"))
	assert.True(t, set.Contains("zzzzzz"))
	var stored []string
	for r := range set.All() {
		stored = append(stored, r.String())
	}
	assert.Equal(t, []string{"[a..bb]", "[aaaa..+inf)"}, stored)
}
