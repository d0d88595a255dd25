package ranges

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	rangeExpr string
	value     string
}

func newStringMap(t testing.TB, entries ...testEntry) *TreeRangeMap[int, string] {
	t.Helper()
	m := NewTreeRangeMap[int, string](Natural[int]())
	for _, e := range entries {
		m.Put(mustRange(t, e.rangeExpr), e.value)
	}
	return m
}

// scenarioMap is {[3..7)=1, [9..10]=2, [12..16]=3}.
func scenarioMap(t testing.TB) *TreeRangeMap[int, string] {
	return newStringMap(t,
		testEntry{"[3..7)", "1"},
		testEntry{"[9..10]", "2"},
		testEntry{"[12..16]", "3"},
	)
}

// requireNonOverlapping checks that entries are non-empty, ascending and share no value.
func requireNonOverlapping[K, V any](t testing.TB, m RangeMap[K, V]) {
	t.Helper()
	entries := m.Entries()
	for i, e := range entries {
		require.False(t, e.Range.IsEmpty(), "entry %s is empty", e)
		if i > 0 {
			prev := entries[i-1].Range
			require.False(t, prev.overlaps(e.Range), "%s overlaps %s in %s", prev, e.Range, m)
			require.Negative(t, compareCuts(m.Ordering(), prev.lower, e.Range.lower), "entries out of order in %s", m)
		}
	}
}

func TestSubRangeMapScenario(t *testing.T) {
	t.Parallel()

	m := scenarioMap(t)
	sub := m.SubRangeMap(mustRange(t, "[5..11]"))

	assert.Equal(t, "{[5..7)=1, [9..10]=2}", sub.String())

	require.NoError(t, sub.Put(mustRange(t, "[7..9)"), "4"))

	assert.Equal(t, "{[3..7)=1, [7..9)=4, [9..10]=2, [12..16]=3}", m.String())
	assert.Equal(t, "{[5..7)=1, [7..9)=4, [9..10]=2}", sub.String())
	requireNonOverlapping[int, string](t, m)
}

func TestTreeRangeMapPut(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial []testEntry
		put     testEntry
		want    string
	}{
		{
			name: "into empty map",
			put:  testEntry{"[1..4)", "a"},
			want: "{[1..4)=a}",
		},
		{
			name:    "splits an enclosing entry",
			initial: []testEntry{{"[1..10]", "a"}},
			put:     testEntry{"[4..6)", "b"},
			want:    "{[1..4)=a, [4..6)=b, [6..10]=a}",
		},
		{
			name:    "trims neighbours and drops enclosed entries",
			initial: []testEntry{{"[1..3]", "a"}, {"[5..7]", "b"}, {"[9..11]", "c"}},
			put:     testEntry{"(2..10)", "x"},
			want:    "{[1..2]=a, (2..10)=x, [10..11]=c}",
		},
		{
			name:    "replaces an identical range",
			initial: []testEntry{{"[1..3]", "a"}},
			put:     testEntry{"[1..3]", "b"},
			want:    "{[1..3]=b}",
		},
		{
			name:    "keeps touching equal values apart",
			initial: []testEntry{{"[1..3)", "a"}},
			put:     testEntry{"[3..5)", "a"},
			want:    "{[1..3)=a, [3..5)=a}",
		},
		{
			name:    "overwrites with the same value without merging",
			initial: []testEntry{{"[1..5)", "a"}},
			put:     testEntry{"[2..3)", "a"},
			want:    "{[1..2)=a, [2..3)=a, [3..5)=a}",
		},
		{
			name:    "unbounded put swallows the tail",
			initial: []testEntry{{"[1..3]", "a"}, {"[5..7]", "b"}},
			put:     testEntry{"[2..+inf)", "z"},
			want:    "{[1..2)=a, [2..+inf)=z}",
		},
		{
			name:    "empty range is ignored",
			initial: []testEntry{{"[1..3]", "a"}},
			put:     testEntry{"[2..2)", "z"},
			want:    "{[1..3]=a}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newStringMap(t, tt.initial...)
			m.Put(mustRange(t, tt.put.rangeExpr), tt.put.value)
			assert.Equal(t, tt.want, m.String())
			requireNonOverlapping[int, string](t, m)
		})
	}
}

func TestTreeRangeMapRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial []testEntry
		remove  string
		want    string
	}{
		{
			name:    "punches a hole",
			initial: []testEntry{{"[1..10]", "a"}},
			remove:  "(3..5)",
			want:    "{[1..3]=a, [5..10]=a}",
		},
		{
			name:    "trims both neighbours",
			initial: []testEntry{{"[1..4]", "a"}, {"[6..9]", "b"}},
			remove:  "[3..7)",
			want:    "{[1..3)=a, [7..9]=b}",
		},
		{
			name:    "drops enclosed entries",
			initial: []testEntry{{"[1..2]", "a"}, {"[4..5]", "b"}, {"[7..8]", "c"}},
			remove:  "(2..7)",
			want:    "{[1..2]=a, [7..8]=c}",
		},
		{
			name:    "everything",
			initial: []testEntry{{"[1..2]", "a"}, {"[4..5]", "b"}},
			remove:  "(-inf..+inf)",
			want:    "{}",
		},
		{
			name:    "gap only",
			initial: []testEntry{{"[1..2]", "a"}, {"[4..5]", "b"}},
			remove:  "(2..4)",
			want:    "{[1..2]=a, [4..5]=b}",
		},
		{
			name:    "empty range is ignored",
			initial: []testEntry{{"[1..5]", "a"}},
			remove:  "[3..3)",
			want:    "{[1..5]=a}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newStringMap(t, tt.initial...)
			m.Remove(mustRange(t, tt.remove))
			assert.Equal(t, tt.want, m.String())
			requireNonOverlapping[int, string](t, m)
		})
	}
}

func TestTreeRangeMapGet(t *testing.T) {
	t.Parallel()

	m := scenarioMap(t)

	tests := []struct {
		key       int
		wantValue string
		wantRange string
	}{
		{2, "", ""},
		{3, "1", "[3..7)"},
		{6, "1", "[3..7)"},
		{7, "", ""},
		{9, "2", "[9..10]"},
		{10, "2", "[9..10]"},
		{11, "", ""},
		{16, "3", "[12..16]"},
		{17, "", ""},
	}
	for _, tt := range tests {
		v, ok := m.Get(tt.key)
		e, entryOK := m.GetEntry(tt.key)
		if tt.wantRange == "" {
			assert.False(t, ok, "Get(%d)", tt.key)
			assert.False(t, entryOK, "GetEntry(%d)", tt.key)
			continue
		}
		require.True(t, ok, "Get(%d)", tt.key)
		require.True(t, entryOK, "GetEntry(%d)", tt.key)
		assert.Equal(t, tt.wantValue, v)
		assert.Equal(t, tt.wantRange, e.Range.String())
		assert.Equal(t, tt.wantValue, e.Value)
	}
}

func TestTreeRangeMapIteration(t *testing.T) {
	t.Parallel()

	m := scenarioMap(t)

	var asc, desc []string
	for r, v := range m.All() {
		asc = append(asc, r.String()+"="+v)
	}
	for r, v := range m.Descending() {
		desc = append(desc, r.String()+"="+v)
	}
	assert.Equal(t, []string{"[3..7)=1", "[9..10]=2", "[12..16]=3"}, asc)
	assert.Equal(t, []string{"[12..16]=3", "[9..10]=2", "[3..7)=1"}, desc)

	var first []string
	for r := range m.All() {
		first = append(first, r.String())
		break
	}
	assert.Equal(t, []string{"[3..7)"}, first)

	span, ok := m.Span()
	require.True(t, ok)
	assert.Equal(t, "[3..16]", span.String())

	entries := m.Entries()
	entries[0].Value = "changed"
	v, _ := m.Get(3)
	assert.Equal(t, "1", v)
}

func TestTreeRangeMapEmpty(t *testing.T) {
	t.Parallel()

	m := NewTreeRangeMap[int, string](Natural[int]())

	assert.True(t, m.IsEmpty())
	assert.Equal(t, "{}", m.String())
	_, ok := m.Span()
	assert.False(t, ok)
	_, ok = m.Get(1)
	assert.False(t, ok)

	m.Put(Must(Closed(1, 2)), "a")
	m.Clear()
	assert.True(t, m.IsEmpty())
}

func TestTreeRangeMapPutAll(t *testing.T) {
	t.Parallel()

	m := newStringMap(t, testEntry{"[1..10]", "a"})
	other, err := NewImmutableRangeMapBuilder[int, string](Natural[int]()).
		Put(Must(Closed(2, 3)), "b").
		Put(Must(Closed(8, 12)), "c").
		Build()
	require.NoError(t, err)

	m.PutAll(other)

	assert.Equal(t, "{[1..2)=a, [2..3]=b, (3..8)=a, [8..12]=c}", m.String())
}

func TestTreeRangeMapMerge(t *testing.T) {
	t.Parallel()

	sum := func(existing, value int) (int, bool) {
		return existing + value, true
	}

	t.Run("fills gaps and combines overlaps", func(t *testing.T) {
		t.Parallel()
		m := NewTreeRangeMap[int, int](Natural[int]())
		m.Put(Must(ClosedOpen(1, 5)), 1)
		m.Put(Must(ClosedOpen(8, 10)), 2)

		m.Merge(Must(ClosedOpen(3, 9)), 10, sum)

		assert.Equal(t, "{[1..3)=1, [3..5)=11, [5..8)=10, [8..9)=12, [9..10)=2}", m.String())
		requireNonOverlapping[int, int](t, m)
	})

	t.Run("remap can unmap", func(t *testing.T) {
		t.Parallel()
		m := NewTreeRangeMap[int, int](Natural[int]())
		m.Put(Must(ClosedOpen(1, 5)), 1)

		m.Merge(Must(Closed(2, 3)), 0, func(int, int) (int, bool) { return 0, false })

		assert.Equal(t, "{[1..2)=1, (3..5)=1}", m.String())
	})

	t.Run("into empty map", func(t *testing.T) {
		t.Parallel()
		m := NewTreeRangeMap[int, int](Natural[int]())

		m.Merge(AtLeast(4), 7, sum)

		assert.Equal(t, "{[4..+inf)=7}", m.String())
	})

	t.Run("empty range", func(t *testing.T) {
		t.Parallel()
		m := NewTreeRangeMap[int, int](Natural[int]())
		m.Put(Must(ClosedOpen(1, 5)), 1)

		m.Merge(Must(ClosedOpen(2, 2)), 7, sum)

		assert.Equal(t, "{[1..5)=1}", m.String())
	})
}

func TestRangeMapViewRejectsWritesOutsideView(t *testing.T) {
	t.Parallel()

	m := scenarioMap(t)
	before := m.String()
	sub := m.SubRangeMap(mustRange(t, "[5..11]"))

	err := sub.Put(mustRange(t, "[4..6)"), "x")
	require.ErrorIs(t, err, ErrOutOfViewBounds)

	err = sub.Remove(mustRange(t, "[10..12]"))
	require.ErrorIs(t, err, ErrOutOfViewBounds)

	err = sub.Merge(mustRange(t, "(-inf..6]"), "x", func(existing, value string) (string, bool) {
		return existing + value, true
	})
	require.ErrorIs(t, err, ErrOutOfViewBounds)

	assert.Equal(t, before, m.String())
}

func TestRangeMapViewWrites(t *testing.T) {
	t.Parallel()

	m := scenarioMap(t)
	sub := m.SubRangeMap(mustRange(t, "[5..11]"))

	require.NoError(t, sub.Remove(mustRange(t, "[6..10)")))
	assert.Equal(t, "{[3..6)=1, [10..10]=2, [12..16]=3}", m.String())

	require.NoError(t, sub.Merge(mustRange(t, "[5..11]"), "+", func(existing, value string) (string, bool) {
		return existing + value, true
	}))
	assert.Equal(t, "{[3..5)=1, [5..6)=1+, [6..10)=+, [10..10]=2+, (10..11]=+, [12..16]=3}", m.String())

	sub.Clear()
	assert.Equal(t, "{[3..5)=1, [12..16]=3}", m.String())
	assert.True(t, sub.IsEmpty())
}

func TestRangeMapViewIsLive(t *testing.T) {
	t.Parallel()

	m := scenarioMap(t)
	sub := m.SubRangeMap(mustRange(t, "[5..11]"))

	m.Put(mustRange(t, "[10..20]"), "z")

	assert.Equal(t, "{[5..7)=1, [9..10)=2, [10..11]=z}", sub.String())

	e, ok := sub.GetEntry(11)
	require.True(t, ok)
	assert.Equal(t, "[10..11]=z", e.String())

	_, ok = sub.Get(12)
	assert.False(t, ok, "keys outside the view are hidden")

	span, ok := sub.Span()
	require.True(t, ok)
	assert.Equal(t, "[5..11]", span.String())

	var desc []string
	for r := range sub.Descending() {
		desc = append(desc, r.String())
	}
	assert.Equal(t, []string{"[10..11]", "[9..10)", "[5..7)"}, desc)

	m.Clear()
	assert.True(t, sub.IsEmpty())
	_, ok = sub.Span()
	assert.False(t, ok)
}

func TestRangeMapViewNested(t *testing.T) {
	t.Parallel()

	m := scenarioMap(t)
	sub := m.SubRangeMap(mustRange(t, "[5..11]"))
	nested := sub.SubRangeMap(mustRange(t, "[6..9]"))

	assert.Equal(t, "[6..9]", nested.View().String())
	assert.Equal(t, "{[6..7)=1, [9..9]=2}", nested.String())

	require.NoError(t, nested.Put(mustRange(t, "[8..8]"), "n"))
	assert.Equal(t, "{[3..7)=1, [8..8]=n, [9..10]=2, [12..16]=3}", m.String())

	require.ErrorIs(t, nested.Put(mustRange(t, "[9..10]"), "n"), ErrOutOfViewBounds)

	widened := sub.SubRangeMap(mustRange(t, "[0..100]"))
	assert.Equal(t, "[5..11]", widened.View().String())
}

func TestRangeMapViewDetached(t *testing.T) {
	t.Parallel()

	m := scenarioMap(t)
	detached := m.SubRangeMap(mustRange(t, "[5..11]")).SubRangeMap(mustRange(t, "[13..14]"))

	assert.True(t, detached.IsEmpty())
	assert.Equal(t, "{}", detached.String())
	_, ok := detached.Get(13)
	assert.False(t, ok)
	_, ok = detached.GetEntry(13)
	assert.False(t, ok)

	require.ErrorIs(t, detached.Put(mustRange(t, "[13..13]"), "x"), ErrOutOfViewBounds)
	require.ErrorIs(t, detached.Remove(mustRange(t, "[13..13]")), ErrOutOfViewBounds)
	detached.Clear()

	assert.Equal(t, "{[3..7)=1, [9..10]=2, [12..16]=3}", m.String())
	assert.True(t, detached.SubRangeMap(mustRange(t, "[13..14]")).IsEmpty())
}

func TestRangeMapViewPutAllIsAtomic(t *testing.T) {
	t.Parallel()

	m := scenarioMap(t)
	before := m.String()
	sub := m.SubRangeMap(mustRange(t, "[5..11]"))

	batch := newStringMap(t,
		testEntry{"[0..1]", "z"},
		testEntry{"[6..7)", "x"},
		testEntry{"[10..12]", "y"},
	)

	err := sub.PutAll(batch)
	require.ErrorIs(t, err, ErrOutOfViewBounds)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Equal(t, before, m.String())

	inside := newStringMap(t,
		testEntry{"[5..6]", "x"},
		testEntry{"[8..9)", "y"},
	)
	require.NoError(t, sub.PutAll(inside))
	assert.Equal(t, "{[3..5)=1, [5..6]=x, (6..7)=1, [8..9)=y, [9..10]=2, [12..16]=3}", m.String())
}

func TestTreeRangeMapLogsMutations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := NewTreeRangeMap[int, string](Natural[int](), WithLogger(logger))
	m.Put(Must(Closed(1, 10)), "a")
	m.Remove(Must(Open(3, 5)))

	out := buf.String()
	assert.Contains(t, out, `msg="range map put"`)
	assert.Contains(t, out, "range=[1..10]")
	assert.Contains(t, out, `msg="range map remove"`)
	assert.Contains(t, out, "range=(3..5)")
}
