package kvdb

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint 순서와 무관한 다중집합 지문. 정렬 전후 값이 같은지 확인할 때 쓴다.
type Fingerprint struct {
	Count int
	Sum   uint64
}

func FingerprintOf(values []int32) Fingerprint {
	var buf [4]byte
	fp := Fingerprint{Count: len(values)}
	for _, v := range values {
		binary.BigEndian.PutUint32(buf[:], uint32(v))
		fp.Sum += xxhash.Sum64(buf[:])
	}
	return fp
}
