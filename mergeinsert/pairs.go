package mergeinsert

// pair 인접한 두 원소. low <= high
type pair[T any] struct {
	low, high T
}

// chainParts 짝짓기 결과
type chainParts[T any] struct {
	main         Sequence[T] // 정렬된 high 들
	pend         []T         // main 과 같은 순서의 low 들
	straggler    T
	hasStraggler bool
}

// makePairs (2i, 2i+1) 을 짝짓고 홀수 길이면 마지막 원소를 따로 뺀다.
func (s *Sorter[T]) makePairs(seq Sequence[T]) ([]pair[T], T, bool) {
	n := seq.Len()
	pairs := make([]pair[T], 0, n/2)

	i := 0
	for ; i+1 < n; i += 2 {
		a, b := seq.At(i), seq.At(i+1)
		if s.less(b, a) {
			pairs = append(pairs, pair[T]{low: b, high: a})
		} else {
			pairs = append(pairs, pair[T]{low: a, high: b})
		}
	}

	if i < n {
		return pairs, seq.At(i), true
	}
	var zero T
	return pairs, zero, false
}

// sortPairs high 기준 삽입정렬. 같은 high 끼리의 순서는 보장하지 않는다.
func (s *Sorter[T]) sortPairs(pairs []pair[T]) {
	for i := 1; i < len(pairs); i++ {
		key := pairs[i]
		j := i - 1
		for j >= 0 && s.less(key.high, pairs[j].high) {
			pairs[j+1] = pairs[j]
			j--
		}
		pairs[j+1] = key
	}
}

func (s *Sorter[T]) buildChain(seq Sequence[T]) chainParts[T] {
	pairs, straggler, ok := s.makePairs(seq)
	s.sortPairs(pairs)

	// 나중에 pend 와 straggler 가 모두 들어온다.
	main := s.newSeq(seq.Len())
	pend := make([]T, 0, len(pairs))
	for _, p := range pairs {
		main.PushBack(p.high)
		pend = append(pend, p.low)
	}

	return chainParts[T]{
		main:         main,
		pend:         pend,
		straggler:    straggler,
		hasStraggler: ok,
	}
}
