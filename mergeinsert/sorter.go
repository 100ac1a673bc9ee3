// Package mergeinsert Ford-Johnson 병합-삽입 정렬.
//
// 같은 알고리즘을 Sequence 구현만 바꿔서 벡터와 덱 위에서 돌린다.
package mergeinsert

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// insertionThreshold 이하 길이는 삽입정렬로 끝낸다.
const insertionThreshold = 10

// Window 이진 탐색 범위
type Window int

const (
	// WindowBounded pend 원소의 짝 high 앞쪽까지만 탐색한다.
	WindowBounded Window = iota
	// WindowFull 매번 메인 체인 전체를 탐색한다.
	WindowFull
)

func (w Window) String() string {
	switch w {
	case WindowBounded:
		return "bounded"
	case WindowFull:
		return "full"
	default:
		return "unknown"
	}
}

type Option func(*options)

type options struct {
	window Window
}

func WithWindow(w Window) Option {
	return func(o *options) { o.window = w }
}

// Sorter 한 종류의 컨테이너 위에서 병합-삽입 정렬을 수행하고 비교 횟수를 센다.
// 동시 사용은 안전하지 않다.
type Sorter[T constraints.Integer] struct {
	newSeq      Factory[T]
	window      Window
	comparisons uint64
}

func New[T constraints.Integer](newSeq Factory[T], opts ...Option) *Sorter[T] {
	o := options{window: WindowBounded}
	for _, opt := range opts {
		opt(&o)
	}
	return &Sorter[T]{newSeq: newSeq, window: o.window}
}

// Comparisons 마지막 Reset 이후 누적된 원소 비교 횟수
func (s *Sorter[T]) Comparisons() uint64 { return s.comparisons }

func (s *Sorter[T]) Reset() { s.comparisons = 0 }

func (s *Sorter[T]) Window() Window { return s.window }

func (s *Sorter[T]) less(a, b T) bool {
	s.comparisons++
	return a < b
}

// Sort seq 를 오름차순으로 정렬한 새 시퀀스를 반환한다. seq 는 건드리지 않는다.
func (s *Sorter[T]) Sort(seq Sequence[T]) Sequence[T] {
	n := seq.Len()

	if n <= insertionThreshold {
		out := s.newSeq(n)
		for i := range n {
			out.PushBack(seq.At(i))
		}
		s.insertionSort(out, 0, n-1)
		return out
	}

	parts := s.buildChain(seq)
	chain, pend := parts.main, parts.pend

	// pend[0] 은 짝 high(체인의 최솟값)보다 작거나 같으므로 비교 없이 맨 앞
	chain.PushFront(pend[0])

	// highPos[k]: pend[k] 의 짝 high 가 현재 체인에서 놓인 위치
	var highPos []ChainPos
	if s.window == WindowBounded {
		highPos = make([]ChainPos, len(pend))
		for k := range highPos {
			highPos[k] = ChainPos(k + 1)
		}
	}

	if len(pend) > 1 {
		for _, idx := range InsertionOrder(len(pend) - 1) {
			p := idx + 1 // pend[0] 은 이미 들어갔다
			v := pend[p]

			bound := ChainPos(chain.Len())
			if highPos != nil {
				bound = highPos[p]
			}

			pos := s.lowerBound(chain, bound, v)
			chain.Insert(int(pos), v)

			for k := range highPos {
				if highPos[k] >= pos {
					highPos[k]++
				}
			}
		}
	}

	if parts.hasStraggler {
		pos := s.lowerBound(chain, ChainPos(chain.Len()), parts.straggler)
		chain.Insert(int(pos), parts.straggler)
	}

	return chain
}

// lowerBound [0, hi) 에서 v 이상인 첫 위치
func (s *Sorter[T]) lowerBound(chain Sequence[T], hi ChainPos, v T) ChainPos {
	return ChainPos(sort.Search(int(hi), func(i int) bool {
		return !s.less(chain.At(i), v)
	}))
}

// Sort 벡터 컨테이너로 정렬한 새 슬라이스를 반환한다.
func Sort(values []int32) []int32 {
	return SortWith(VectorFactory[int32](), values)
}

// SortDeque 덱 컨테이너로 정렬한 새 슬라이스를 반환한다.
func SortDeque(values []int32) []int32 {
	return SortWith(DequeFactory[int32](), values)
}

func SortWith[T constraints.Integer](newSeq Factory[T], values []T, opts ...Option) []T {
	s := New(newSeq, opts...)
	return Values(s.Sort(FromSlice(newSeq, values)))
}
