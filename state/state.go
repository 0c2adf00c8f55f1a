// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/maia/cache"
	"github.com/vechain/maia/kv"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/stackedmap"
)

// StorageBucket is the kv bucket holding contract storage.
const StorageBucket = kv.Bucket("s")

const defaultCacheSize = 4096

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr maia.Address
	key  maia.Bytes32
}

func (k storageKey) dbKey() []byte {
	return append(append(make([]byte, 0, maia.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// State manages the storage of every builtin contract.
// It's not safe for concurrent use.
type State struct {
	src   kv.Getter
	cache *cache.LRU[storageKey, rlp.RawValue] // committed storage values
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object over the given kv source.
func New(src kv.Getter) *State {
	lru, _ := cache.NewLRU[storageKey, rlp.RawValue](defaultCacheSize)
	s := &State{
		src:   StorageBucket.NewGetter(src),
		cache: lru,
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(s.cacheGetter)
	// the bottom level collects uncommitted changes
	s.sm.Push()
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key storageKey) (rlp.RawValue, bool, error) {
	v, err := s.cache.GetOrLoad(key, func(storageKey) (rlp.RawValue, error) {
		metricStorageAccess().AddWithLabel(1, map[string]string{"type": "read", "target": "kv"})
		raw, err := s.src.Get(key.dbKey())
		if err != nil {
			if s.src.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return rlp.RawValue(raw), nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// CacheStats returns the hits and misses of the committed value cache.
func (s *State) CacheStats() (hit, miss int64) {
	return s.cache.Stats()
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr maia.Address, key maia.Bytes32) (rlp.RawValue, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage set storage value in rlp raw. An empty value deletes the slot.
func (s *State) SetRawStorage(addr maia.Address, key maia.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr maia.Address, key maia.Bytes32) (maia.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return maia.Bytes32{}, err
	}
	if len(raw) == 0 {
		return maia.Bytes32{}, nil
	}
	_, content, _, err := rlp.Split(raw)
	if err != nil {
		return maia.Bytes32{}, &Error{err}
	}
	return maia.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr maia.Address, key, value maia.Bytes32) {
	var raw rlp.RawValue
	if !value.IsZero() {
		raw, _ = rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	}
	s.SetRawStorage(addr, key, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr maia.Address, key maia.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr maia.Address, key maia.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 || revision > s.sm.Depth() {
		panic("invalid revision")
	}
	s.sm.PopTo(revision)
}

// Changes returns the number of pending storage writes.
func (s *State) Changes() int {
	n := 0
	s.sm.Journal(func(storageKey, rlp.RawValue) bool {
		n++
		return true
	})
	return n
}

// Commit flushes all pending changes into the putter and starts over with a clean journal.
// Checkpoints taken before are invalidated.
func (s *State) Commit(putter kv.Putter) error {
	latest := make(map[storageKey]rlp.RawValue)
	var order []storageKey
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		if _, ok := latest[k]; !ok {
			order = append(order, k)
		}
		latest[k] = v
		return true
	})

	bucketPutter := StorageBucket.NewPutter(putter)
	for _, k := range order {
		v := latest[k]
		var err error
		if len(v) == 0 {
			err = bucketPutter.Delete(k.dbKey())
		} else {
			err = bucketPutter.Put(k.dbKey(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	for _, k := range order {
		s.cache.Add(k, latest[k])
	}
	metricStorageAccess().AddWithLabel(int64(len(order)), map[string]string{"type": "write", "target": "kv"})

	s.reset()
	return nil
}
