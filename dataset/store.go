package dataset

import (
	"encoding/binary"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFound 저장된 데이터셋 없음
	ErrNotFound = errors.New("dataset: not found")
	// ErrInvalidName 데이터셋 이름 오류
	ErrInvalidName = errors.New("dataset: invalid name")
)

// chunkElems 청크당 원소 수 (값 하나가 256KB)
const chunkElems = 64 * 1024

// 키 구조
//
//	m/<name>              -> 원소 수 (uint64 BE)
//	d/<name>/<chunk BE>   -> int32 LE 배열
const (
	metaPrefix = "m/"
	dataPrefix = "d/"
)

// Store 정렬 입력/결과를 보관하는 영속 저장소
type Store interface {
	Save(name string, data []int32) error
	Load(name string) ([]int32, error)
	Delete(name string) error
	List() ([]string, error)
	Close() error
}

// OpenStore 백엔드 이름으로 저장소 열기 ("bolt", "badger", "pebble")
func OpenStore(kind, path string) (Store, error) {
	switch kind {
	case "bolt", "bbolt":
		return OpenBolt(path)
	case "badger":
		return OpenBadger(path)
	case "pebble":
		return OpenPebble(path)
	default:
		return nil, errors.Newf("알 수 없는 저장소 %q", kind)
	}
}

// batchWriter 백엔드별 쓰기 배치
type batchWriter interface {
	set(key, value []byte) error
	delete(key []byte) error
}

// kv 백엔드가 구현하는 최소 연산. 청크 인코딩은 kvStore가 맡는다.
type kv interface {
	update(fn func(w batchWriter) error) error
	// get 값이 없으면 ErrNotFound. value는 fn 안에서만 유효하다.
	get(key []byte, fn func(value []byte) error) error
	// keys prefix로 시작하는 키를 오름차순으로
	keys(prefix []byte, fn func(key []byte) error) error
	close() error
}

type kvStore struct {
	kv   kv
	name string
}

func validateName(name string) error {
	if name == "" || strings.ContainsRune(name, '/') {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return nil
}

func metaKey(name string) []byte {
	return []byte(metaPrefix + name)
}

func chunkPrefix(name string) []byte {
	return []byte(dataPrefix + name + "/")
}

func chunkKey(name string, idx int) []byte {
	return binary.BigEndian.AppendUint32(chunkPrefix(name), uint32(idx))
}

func numChunks(n int) int {
	return (n + chunkElems - 1) / chunkElems
}

func encodeChunk(buf []byte, data []int32) []byte {
	buf = buf[:0]
	for _, v := range data {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
	return buf
}

func decodeChunk(dst []int32, value []byte) error {
	if len(value) != 4*len(dst) {
		return errors.Newf("청크 크기 불일치: %d바이트, 원소 %d개 기대", len(value), len(dst))
	}
	for i := range dst {
		dst[i] = int32(binary.LittleEndian.Uint32(value[4*i:]))
	}
	return nil
}

func (s *kvStore) length(name string) (int, error) {
	var n int
	err := s.kv.get(metaKey(name), func(value []byte) error {
		if len(value) != 8 {
			return errors.Newf("메타 값 크기 오류 %d", len(value))
		}
		n = int(binary.BigEndian.Uint64(value))
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "%s: 데이터셋 %q", s.name, name)
	}
	return n, nil
}

// Save 기존 데이터셋이 있으면 덮어쓴다. 메타와 청크를 한 배치로 기록.
func (s *kvStore) Save(name string, data []int32) error {
	if err := validateName(name); err != nil {
		return err
	}
	old, err := s.length(name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	err = s.kv.update(func(w batchWriter) error {
		for i := numChunks(len(data)); i < numChunks(old); i++ {
			if err := w.delete(chunkKey(name, i)); err != nil {
				return err
			}
		}
		for i := 0; i < numChunks(len(data)); i++ {
			lo := i * chunkElems
			hi := min(lo+chunkElems, len(data))
			// 백엔드가 값을 보관할 수 있으므로 청크마다 새 버퍼
			value := encodeChunk(make([]byte, 0, 4*(hi-lo)), data[lo:hi])
			if err := w.set(chunkKey(name, i), value); err != nil {
				return err
			}
		}
		return w.set(metaKey(name), binary.BigEndian.AppendUint64(nil, uint64(len(data))))
	})
	return errors.Wrapf(err, "%s: 데이터셋 %q 저장 실패", s.name, name)
}

func (s *kvStore) Load(name string) ([]int32, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	n, err := s.length(name)
	if err != nil {
		return nil, err
	}

	data := make([]int32, n)
	for i := 0; i < numChunks(n); i++ {
		lo := i * chunkElems
		hi := min(lo+chunkElems, n)
		err := s.kv.get(chunkKey(name, i), func(value []byte) error {
			return decodeChunk(data[lo:hi], value)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "%s: 데이터셋 %q 청크 %d", s.name, name, i)
		}
	}
	return data, nil
}

func (s *kvStore) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	n, err := s.length(name)
	if err != nil {
		return err
	}
	err = s.kv.update(func(w batchWriter) error {
		for i := 0; i < numChunks(n); i++ {
			if err := w.delete(chunkKey(name, i)); err != nil {
				return err
			}
		}
		return w.delete(metaKey(name))
	})
	return errors.Wrapf(err, "%s: 데이터셋 %q 삭제 실패", s.name, name)
}

// List 저장된 데이터셋 이름 (사전순)
func (s *kvStore) List() ([]string, error) {
	var names []string
	err := s.kv.keys([]byte(metaPrefix), func(key []byte) error {
		names = append(names, string(key[len(metaPrefix):]))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s: 목록 조회 실패", s.name)
	}
	return names, nil
}

func (s *kvStore) Close() error {
	return errors.Wrapf(s.kv.close(), "%s: 닫기 실패", s.name)
}

// prefixEnd prefix로 시작하는 모든 키보다 큰 최소 키
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
