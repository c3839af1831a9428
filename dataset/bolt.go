package dataset

import (
	"bytes"
	"time"

	"github.com/cockroachdb/errors"
	"go.etcd.io/bbolt"
)

var boltBucket = []byte("datasets")

type boltKV struct {
	db *bbolt.DB
}

// OpenBolt bbolt 파일 하나에 저장
func OpenBolt(path string) (Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "bbolt 열기 실패 %s", path)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "bbolt 버킷 생성 실패")
	}
	return &kvStore{kv: &boltKV{db: db}, name: "bbolt"}, nil
}

type boltBatch struct {
	b *bbolt.Bucket
}

func (w boltBatch) set(key, value []byte) error { return w.b.Put(key, value) }
func (w boltBatch) delete(key []byte) error     { return w.b.Delete(key) }

func (s *boltKV) update(fn func(w batchWriter) error) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return fn(boltBatch{b: tx.Bucket(boltBucket)})
	})
}

func (s *boltKV) get(key []byte, fn func(value []byte) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(boltBucket).Get(key)
		if v == nil {
			return ErrNotFound
		}
		return fn(v)
	})
}

func (s *boltKV) keys(prefix []byte, fn func(key []byte) error) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(boltBucket).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			if err := fn(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *boltKV) close() error {
	return s.db.Close()
}
