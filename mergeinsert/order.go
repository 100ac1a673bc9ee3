package mergeinsert

// PendIndex pend 리스트 안의 위치
type PendIndex int

// ChainPos 메인 체인 안의 위치
type ChainPos int

// firstJacobsthalIndex J(3)=3 부터 블록을 만든다.
const firstJacobsthalIndex = 3

// InsertionOrder [0, pendSize) 의 삽입 순서를 야콥스탈 블록 단위로 만든다.
//
// 블록 J(k) 는 J(k) 부터 이전 블록 경계+1 까지 내림차순으로 나온다.
// pendSize 이상이 되는 첫 야콥스탈 수는 pendSize-1 로 잘리고 거기서 끝난다.
// 블록에서 빠진 인덱스(항상 0 포함)는 마지막에 오름차순으로 붙는다.
func InsertionOrder(pendSize int) []PendIndex {
	if pendSize <= 0 {
		return nil
	}

	order := make([]PendIndex, 0, pendSize)
	inserted := make([]bool, pendSize)

	prev := 0
	for k := uint(firstJacobsthalIndex); ; k++ {
		top := int(Jacobsthal(k))
		last := top >= pendSize
		if last {
			top = pendSize - 1
		}

		for j := top; j > prev; j-- {
			if !inserted[j] {
				order = append(order, PendIndex(j))
				inserted[j] = true
			}
		}

		if last {
			break
		}
		prev = top
	}

	// 블록에 안 들어간 나머지
	for i := range pendSize {
		if !inserted[i] {
			order = append(order, PendIndex(i))
		}
	}
	return order
}
