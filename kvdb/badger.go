package kvdb

import (
	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v3"
)

// BadgerStore BadgerDB 저장소
type BadgerStore struct {
	dir string
	db  *badger.DB
}

func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "badger: open %s", dir)
	}
	return &BadgerStore{dir: dir, db: db}, nil
}

func (s *BadgerStore) Kind() Kind { return KindBadger }

func (s *BadgerStore) Save(name string, values []int32) error {
	if err := checkName(name); err != nil {
		return err
	}

	// 이전 데이터셋이 더 길었으면 꼬리가 남으므로 먼저 지운다.
	if err := s.db.DropPrefix(dataPrefix(name)); err != nil {
		return errors.Wrapf(err, "badger: drop %s", name)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for i, v := range values {
		if err := wb.Set(dataKey(name, i), encodeValue(v)); err != nil {
			return errors.Wrapf(err, "badger: save %s", name)
		}
	}
	if err := wb.Set(metaKey(name), encodeHeader(FingerprintOf(values))); err != nil {
		return errors.Wrapf(err, "badger: save %s", name)
	}
	return errors.Wrapf(wb.Flush(), "badger: flush %s", name)
}

func (s *BadgerStore) Load(name string) ([]int32, error) {
	var (
		values []int32
		header Fingerprint
	)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if header, err = decodeHeader(raw); err != nil {
			return err
		}

		prefix := dataPrefix(name)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		values = make([]int32, 0, header.Count)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				n, err := decodeValue(val)
				if err != nil {
					return err
				}
				values = append(values, n)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "badger: load %s", name)
	}
	if err := verify(name, header, values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *BadgerStore) Size() (int64, error) {
	return getDirSize(s.dir)
}

func (s *BadgerStore) Close() error {
	return errors.Wrap(s.db.Close(), "badger: close")
}
