// Package kvdb 정렬 입력 데이터셋을 여러 저장소(메모리, 파일, bbolt, BadgerDB, PebbleDB)에
// 같은 방식으로 저장하고 읽어오는 계층.
package kvdb

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind 저장소 종류
type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindBolt   Kind = "bbolt"
	KindBadger Kind = "badger"
	KindPebble Kind = "pebble"
)

// Kinds 지원하는 모든 저장소
var Kinds = []Kind{KindMemory, KindFile, KindBolt, KindBadger, KindPebble}

var (
	ErrNotFound     = errors.New("kvdb: dataset not found")
	ErrUnknownStore = errors.New("kvdb: unknown store kind")
	ErrInvalidName  = errors.New("kvdb: invalid dataset name")
	ErrCorrupt      = errors.New("kvdb: dataset fingerprint mismatch")
)

// Store 이름 붙은 정수 데이터셋 저장소
type Store interface {
	Kind() Kind
	// Save 같은 이름의 기존 데이터셋은 통째로 교체된다.
	Save(name string, values []int32) error
	Load(name string) ([]int32, error)
	// Size 디스크(메모리) 사용량 바이트
	Size() (int64, error)
	Close() error
}

const (
	bboltDBFile = "bbolt.db"
	badgerDir   = "badger"
	pebbleDir   = "pebble"
	fileDir     = "files"
)

// Open dir 아래에 kind 저장소를 연다. memory 는 dir 을 쓰지 않는다.
func Open(kind Kind, dir string) (Store, error) {
	if kind != KindMemory {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "kvdb: create %s", dir)
		}
	}

	switch kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindFile:
		return OpenFileStore(filepath.Join(dir, fileDir))
	case KindBolt:
		return OpenBoltStore(filepath.Join(dir, bboltDBFile))
	case KindBadger:
		return OpenBadgerStore(filepath.Join(dir, badgerDir))
	case KindPebble:
		return OpenPebbleStore(filepath.Join(dir, pebbleDir))
	default:
		return nil, errors.Wrapf(ErrUnknownStore, "%q", string(kind))
	}
}

// ParseKind 문자열을 Kind 로
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownStore, "%q", s)
}

func checkName(name string) error {
	if name == "" || strings.HasPrefix(name, "_") || strings.ContainsAny(name, "/\\") {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return nil
}

// ====================================================================================
// 키/값 인코딩 (KV 저장소 공통)
//   data/<name>/<index BE uint32> -> value BE uint32
//   meta/<name>                   -> count BE uint32 | fingerprint sum BE uint64
// ====================================================================================

const (
	valueSize  = 4
	headerSize = 12
)

func dataPrefix(name string) []byte {
	return []byte("data/" + name + "/")
}

func indexKey(i int) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, uint32(i))
	return key
}

func dataKey(name string, i int) []byte {
	return append(dataPrefix(name), indexKey(i)...)
}

func metaKey(name string) []byte {
	return []byte("meta/" + name)
}

// prefixEnd prefix 로 시작하는 모든 키보다 큰 첫 키
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	end[len(end)-1]++
	return end
}

func encodeValue(v int32) []byte {
	buf := make([]byte, valueSize)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return buf
}

func decodeValue(buf []byte) (int32, error) {
	if len(buf) != valueSize {
		return 0, errors.Wrapf(ErrCorrupt, "value length %d", len(buf))
	}
	return int32(binary.BigEndian.Uint32(buf)), nil
}

func encodeHeader(fp Fingerprint) []byte {
	buf := make([]byte, headerSize)
	binary.BigEndian.PutUint32(buf[:4], uint32(fp.Count))
	binary.BigEndian.PutUint64(buf[4:], fp.Sum)
	return buf
}

func decodeHeader(buf []byte) (Fingerprint, error) {
	if len(buf) != headerSize {
		return Fingerprint{}, errors.Wrapf(ErrCorrupt, "header length %d", len(buf))
	}
	return Fingerprint{
		Count: int(binary.BigEndian.Uint32(buf[:4])),
		Sum:   binary.BigEndian.Uint64(buf[4:]),
	}, nil
}

// verify 읽어온 값이 저장할 때의 지문과 같은지 확인
func verify(name string, want Fingerprint, values []int32) error {
	if got := FingerprintOf(values); got != want {
		return errors.Wrapf(ErrCorrupt, "%s: stored %+v, loaded %+v", name, want, got)
	}
	return nil
}

// getDirSize 디렉터리 전체 파일 크기 합
func getDirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "kvdb: size of %s", path)
	}
	return size, nil
}
