package mergeinsert

// Jacobsthal J(0)=0, J(1)=1, J(n)=J(n-1)+2*J(n-2)
// 0, 1, 1, 3, 5, 11, 21, 43, 85, 171, 341, ...
func Jacobsthal(n uint) uint64 {
	if n == 0 {
		return 0
	}

	var prev2, prev1 uint64 = 0, 1
	for i := uint(2); i <= n; i++ {
		prev2, prev1 = prev1, prev1+2*prev2
	}
	return prev1
}
