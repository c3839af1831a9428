package dataset

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

type pebbleKV struct {
	db *pebble.DB
}

// OpenPebble pebble 디렉터리에 저장
func OpenPebble(dir string) (Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "pebble 열기 실패 %s", dir)
	}
	return &kvStore{kv: &pebbleKV{db: db}, name: "pebble"}, nil
}

type pebbleBatch struct {
	b *pebble.Batch
}

func (w pebbleBatch) set(key, value []byte) error { return w.b.Set(key, value, nil) }
func (w pebbleBatch) delete(key []byte) error     { return w.b.Delete(key, nil) }

func (s *pebbleKV) update(fn func(w batchWriter) error) error {
	batch := s.db.NewBatch()
	defer batch.Close()
	if err := fn(pebbleBatch{b: batch}); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

func (s *pebbleKV) get(key []byte, fn func(value []byte) error) error {
	value, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	defer closer.Close()
	return fn(value)
}

func (s *pebbleKV) keys(prefix []byte, fn func(key []byte) error) error {
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return err
	}
	for it.First(); it.Valid(); it.Next() {
		if err := fn(it.Key()); err != nil {
			_ = it.Close()
			return err
		}
	}
	return it.Close()
}

func (s *pebbleKV) close() error {
	return s.db.Close()
}
