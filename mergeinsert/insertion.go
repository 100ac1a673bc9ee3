package mergeinsert

// insertionSort seq[low..high] 구간 삽입정렬 (작은 입력 전용)
func (s *Sorter[T]) insertionSort(seq Sequence[T], low, high int) {
	for i := low + 1; i <= high; i++ {
		key := seq.At(i)
		j := i - 1

		for j >= low && s.less(key, seq.At(j)) {
			seq.Set(j+1, seq.At(j))
			j--
		}
		seq.Set(j+1, key)
	}
}
