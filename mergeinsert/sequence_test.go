package mergeinsert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequenceContainersAgree(t *testing.T) {
	factories := map[string]Factory[int]{
		"vector": VectorFactory[int](),
		"deque":  DequeFactory[int](),
	}

	for name, newSeq := range factories {
		t.Run(name, func(t *testing.T) {
			seq := newSeq(4)
			seq.PushBack(2)
			seq.PushBack(4)
			seq.PushFront(1)
			seq.Insert(2, 3)
			seq.Insert(seq.Len(), 5)
			seq.Set(0, 0)

			require.Equal(t, 5, seq.Len())
			require.Equal(t, []int{0, 2, 3, 4, 5}, Values(seq))
			require.Equal(t, 3, seq.At(2))
		})
	}
}

func TestFromSliceCopies(t *testing.T) {
	in := []int{3, 1, 2}
	seq := FromSlice(VectorFactory[int](), in)
	seq.Set(0, 9)
	require.Equal(t, []int{3, 1, 2}, in)
	require.Equal(t, []int{9, 1, 2}, Values(seq))
}
