package mergeinsert

import (
	"slices"

	"github.com/gammazero/deque"
)

// Sequence 정렬기가 사용하는 순서 컨테이너 연산 집합
// 인덱스 읽기/쓰기, 위치 삽입, 앞/뒤 삽입만 있으면 같은 알고리즘을 그대로 돌릴 수 있다.
type Sequence[T any] interface {
	Len() int
	At(i int) T
	Set(i int, v T)
	Insert(i int, v T)
	PushFront(v T)
	PushBack(v T)
}

// Factory 주어진 용량 힌트로 빈 시퀀스를 만든다.
type Factory[T any] func(capacity int) Sequence[T]

// Vector 슬라이스 기반 임의 접근 컨테이너
type Vector[T any] struct {
	items []T
}

func NewVector[T any](capacity int) *Vector[T] {
	return &Vector[T]{items: make([]T, 0, capacity)}
}

func (v *Vector[T]) Len() int          { return len(v.items) }
func (v *Vector[T]) At(i int) T        { return v.items[i] }
func (v *Vector[T]) Set(i int, x T)    { v.items[i] = x }
func (v *Vector[T]) Insert(i int, x T) { v.items = slices.Insert(v.items, i, x) }
func (v *Vector[T]) PushFront(x T)     { v.Insert(0, x) }
func (v *Vector[T]) PushBack(x T)      { v.items = append(v.items, x) }

// Deque 양방향 큐 기반 컨테이너 (링 버퍼)
type Deque[T any] struct {
	q deque.Deque[T]
}

// NewDeque 용량 힌트는 무시한다. 링 버퍼가 스스로 늘어난다.
func NewDeque[T any](_ int) *Deque[T] {
	return &Deque[T]{}
}

func (d *Deque[T]) Len() int          { return d.q.Len() }
func (d *Deque[T]) At(i int) T        { return d.q.At(i) }
func (d *Deque[T]) Set(i int, x T)    { d.q.Set(i, x) }
func (d *Deque[T]) Insert(i int, x T) { d.q.Insert(i, x) }
func (d *Deque[T]) PushFront(x T)     { d.q.PushFront(x) }
func (d *Deque[T]) PushBack(x T)      { d.q.PushBack(x) }

func VectorFactory[T any]() Factory[T] {
	return func(capacity int) Sequence[T] { return NewVector[T](capacity) }
}

func DequeFactory[T any]() Factory[T] {
	return func(capacity int) Sequence[T] { return NewDeque[T](capacity) }
}

// FromSlice values 를 복사해 새 시퀀스를 채운다.
func FromSlice[T any](newSeq Factory[T], values []T) Sequence[T] {
	seq := newSeq(len(values))
	for _, v := range values {
		seq.PushBack(v)
	}
	return seq
}

// Values 시퀀스 내용을 새 슬라이스로 복사한다.
func Values[T any](seq Sequence[T]) []T {
	out := make([]T, seq.Len())
	for i := range out {
		out[i] = seq.At(i)
	}
	return out
}
