package mergeinsert

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type sortCase struct {
	name    string
	newSeq  Factory[int32]
	options []Option
}

func sortCases() []sortCase {
	var cases []sortCase
	for _, c := range []struct {
		name   string
		newSeq Factory[int32]
	}{
		{"vector", VectorFactory[int32]()},
		{"deque", DequeFactory[int32]()},
	} {
		for _, w := range []Window{WindowBounded, WindowFull} {
			cases = append(cases, sortCase{
				name:    fmt.Sprintf("%s/%s", c.name, w),
				newSeq:  c.newSeq,
				options: []Option{WithWindow(w)},
			})
		}
	}
	return cases
}

func randomValues(r *rand.Rand, n int) []int32 {
	values := make([]int32, n)
	for i := range values {
		values[i] = r.Int31n(1000) + 1
	}
	return values
}

func reference(values []int32) []int32 {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

func TestSortScenarios(t *testing.T) {
	scenarios := []struct {
		in   []int32
		want []int32
	}{
		{[]int32{}, []int32{}},
		{[]int32{1}, []int32{1}},
		{[]int32{3, 5, 9, 7, 4}, []int32{3, 4, 5, 7, 9}},
		{[]int32{4, 4, 2, 2, 1}, []int32{1, 2, 2, 4, 4}},
		{[]int32{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{[]int32{11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{[]int32{2147483647, 1, 2147483646, 2, 5, 5, 5, 5, 5, 5, 5, 5}, []int32{1, 2, 5, 5, 5, 5, 5, 5, 5, 5, 2147483646, 2147483647}},
	}

	for _, tc := range sortCases() {
		t.Run(tc.name, func(t *testing.T) {
			for _, sc := range scenarios {
				got := SortWith(tc.newSeq, sc.in, tc.options...)
				if diff := cmp.Diff(sc.want, got); diff != "" {
					t.Errorf("sort(%v) mismatch (-want +got):\n%s", sc.in, diff)
				}
			}
		})
	}
}

func TestSortLengthBoundaries(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, tc := range sortCases() {
		t.Run(tc.name, func(t *testing.T) {
			for _, n := range []int{0, 1, 2, 9, 10, 11, 12, 13, 21, 22, 64, 65} {
				in := randomValues(r, n)
				require.Equal(t, reference(in), SortWith(tc.newSeq, in, tc.options...), "n=%d", n)
			}
		})
	}
}

func TestSortTwentyOneRandom(t *testing.T) {
	r := rand.New(rand.NewSource(21))
	in := randomValues(r, 21)
	want := reference(in)

	require.Equal(t, want, Sort(in))
	require.Equal(t, want, SortDeque(in))
}

func TestSortProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, tc := range sortCases() {
		t.Run(tc.name, func(t *testing.T) {
			for range 200 {
				n := r.Intn(300)
				in := randomValues(r, n)
				orig := slices.Clone(in)

				got := SortWith(tc.newSeq, in, tc.options...)

				// 입력은 그대로
				require.Equal(t, orig, in)
				// 같은 다중집합 + 오름차순
				require.Equal(t, reference(in), got)
				// 멱등
				require.Equal(t, got, SortWith(tc.newSeq, got, tc.options...))
			}
		})
	}
}

func TestSortWideRange(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	in := make([]int32, 1500)
	for i := range in {
		in[i] = r.Int31n(2147483647) + 1
	}
	require.Equal(t, reference(in), Sort(in))
	require.Equal(t, reference(in), SortDeque(in))
}

func TestComparisonsInsertionBase(t *testing.T) {
	s := New(VectorFactory[int32]())
	s.Sort(FromSlice(VectorFactory[int32](), []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
	require.EqualValues(t, 9, s.Comparisons())

	s.Reset()
	require.Zero(t, s.Comparisons())
}

func TestComparisonsByWindow(t *testing.T) {
	in := []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

	bounded := New(DequeFactory[int32](), WithWindow(WindowBounded))
	out := bounded.Sort(FromSlice(DequeFactory[int32](), in))
	require.Equal(t, in, Values(out))
	require.EqualValues(t, 19, bounded.Comparisons())

	full := New(DequeFactory[int32](), WithWindow(WindowFull))
	out = full.Sort(FromSlice(DequeFactory[int32](), in))
	require.Equal(t, in, Values(out))
	require.EqualValues(t, 24, full.Comparisons())
}

func TestBoundedNeverCostsMoreOnAverage(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	var boundedTotal, fullTotal uint64
	for range 50 {
		in := randomValues(r, 500)

		b := New(VectorFactory[int32](), WithWindow(WindowBounded))
		b.Sort(FromSlice(VectorFactory[int32](), in))
		boundedTotal += b.Comparisons()

		f := New(VectorFactory[int32](), WithWindow(WindowFull))
		f.Sort(FromSlice(VectorFactory[int32](), in))
		fullTotal += f.Comparisons()
	}
	require.Less(t, boundedTotal, fullTotal)
}

func TestWindowString(t *testing.T) {
	require.Equal(t, "bounded", WindowBounded.String())
	require.Equal(t, "full", WindowFull.String())
	require.Equal(t, "unknown", Window(9).String())
}

func BenchmarkSort(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	in := randomValues(r, 3000)

	b.Run("vector", func(b *testing.B) {
		for range b.N {
			Sort(in)
		}
	})
	b.Run("deque", func(b *testing.B) {
		for range b.N {
			SortDeque(in)
		}
	})
}
