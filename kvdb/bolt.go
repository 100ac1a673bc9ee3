package kvdb

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"go.etcd.io/bbolt"
)

var metaBucket = []byte("_meta")

// BoltStore 데이터셋마다 버킷 하나. 키는 BE 인덱스라 커서 순서가 곧 원래 순서다.
type BoltStore struct {
	path string
	db   *bbolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "bbolt: open %s", path)
	}
	return &BoltStore{path: path, db: db}, nil
}

func (s *BoltStore) Kind() Kind { return KindBolt }

func (s *BoltStore) Save(name string, values []int32) error {
	if err := checkName(name); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := []byte(name)
		if tx.Bucket(bucket) != nil {
			if err := tx.DeleteBucket(bucket); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket(bucket)
		if err != nil {
			return err
		}
		// 순차 키만 들어가므로 페이지를 꽉 채운다.
		b.FillPercent = 1.0

		for i, v := range values {
			if err := b.Put(indexKey(i), encodeValue(v)); err != nil {
				return err
			}
		}

		meta, err := tx.CreateBucketIfNotExists(metaBucket)
		if err != nil {
			return err
		}
		return meta.Put(bucket, encodeHeader(FingerprintOf(values)))
	})
	return errors.Wrapf(err, "bbolt: save %s", name)
}

func (s *BoltStore) Load(name string) ([]int32, error) {
	var (
		values []int32
		header Fingerprint
	)

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(name))
		meta := tx.Bucket(metaBucket)
		if b == nil || meta == nil {
			return ErrNotFound
		}

		var err error
		if header, err = decodeHeader(meta.Get([]byte(name))); err != nil {
			return err
		}

		values = make([]int32, 0, header.Count)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			n, err := decodeValue(v)
			if err != nil {
				return err
			}
			values = append(values, n)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "bbolt: load %s", name)
	}
	if err := verify(name, header, values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *BoltStore) Size() (int64, error) {
	fi, err := os.Stat(s.path)
	if err != nil {
		return 0, errors.Wrapf(err, "bbolt: stat %s", s.path)
	}
	return fi.Size(), nil
}

func (s *BoltStore) Close() error {
	return errors.Wrap(s.db.Close(), "bbolt: close")
}
