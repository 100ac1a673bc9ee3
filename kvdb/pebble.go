package kvdb

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// PebbleStore PebbleDB 저장소
type PebbleStore struct {
	dir string
	db  *pebble.DB
}

func OpenPebbleStore(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "pebble: open %s", dir)
	}
	return &PebbleStore{dir: dir, db: db}, nil
}

func (s *PebbleStore) Kind() Kind { return KindPebble }

func (s *PebbleStore) Save(name string, values []int32) error {
	if err := checkName(name); err != nil {
		return err
	}

	prefix := dataPrefix(name)
	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.DeleteRange(prefix, prefixEnd(prefix), nil); err != nil {
		return errors.Wrapf(err, "pebble: clear %s", name)
	}
	for i, v := range values {
		if err := batch.Set(dataKey(name, i), encodeValue(v), nil); err != nil {
			return errors.Wrapf(err, "pebble: save %s", name)
		}
	}
	if err := batch.Set(metaKey(name), encodeHeader(FingerprintOf(values)), nil); err != nil {
		return errors.Wrapf(err, "pebble: save %s", name)
	}
	return errors.Wrapf(batch.Commit(pebble.Sync), "pebble: commit %s", name)
}

func (s *PebbleStore) Load(name string) ([]int32, error) {
	raw, closer, err := s.db.Get(metaKey(name))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "pebble: load %s", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "pebble: load %s", name)
	}
	header, err := decodeHeader(raw)
	closer.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "pebble: load %s", name)
	}

	prefix := dataPrefix(name)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "pebble: iterate %s", name)
	}

	values := make([]int32, 0, header.Count)
	for iter.First(); iter.Valid(); iter.Next() {
		n, err := decodeValue(iter.Value())
		if err != nil {
			iter.Close()
			return nil, errors.Wrapf(err, "pebble: load %s", name)
		}
		values = append(values, n)
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrapf(err, "pebble: load %s", name)
	}

	if err := verify(name, header, values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *PebbleStore) Size() (int64, error) {
	return getDirSize(s.dir)
}

func (s *PebbleStore) Close() error {
	return errors.Wrap(s.db.Close(), "pebble: close")
}
