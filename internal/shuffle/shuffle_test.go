package shuffle

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceIsPermutation(t *testing.T) {
	src := Seeded(7)
	for n := 0; n < 12; n++ {
		in := make([]int, n)
		for i := range in {
			in[i] = i
		}
		out := Copy(src, in)
		require.Len(t, out, n)

		sorted := slices.Clone(out)
		slices.Sort(sorted)
		assert.Equal(t, in, sorted, "n=%d", n)
	}
}

func TestCopyLeavesInputAlone(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	_ = Copy(Seeded(1), in)
	assert.Equal(t, []string{"a", "b", "c", "d"}, in)
}

func TestSeededIsDeterministic(t *testing.T) {
	a := Copy(Seeded(42), []int{1, 2, 3, 4, 5, 6, 7, 8})
	b := Copy(Seeded(42), []int{1, 2, 3, 4, 5, 6, 7, 8})
	assert.Equal(t, a, b)
}

func TestSliceCoversAllOrders(t *testing.T) {
	src := Seeded(3)
	seen := map[[3]int]int{}
	for i := 0; i < 6000; i++ {
		s := []int{0, 1, 2}
		Slice(src, s)
		seen[[3]int{s[0], s[1], s[2]}]++
	}
	require.Len(t, seen, 6)
	for perm, count := range seen {
		assert.InDelta(t, 1000, count, 200, "perm %v", perm)
	}
}

func TestNilSourceUsesDefault(t *testing.T) {
	s := []int{1, 2, 3}
	Slice(nil, s)
	assert.ElementsMatch(t, []int{1, 2, 3}, s)
}
