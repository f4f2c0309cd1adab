package sets

import (
	"bytes"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/MinterTeam/taxtoken/coreV2/types"
	"github.com/cosmos/iavl"
)

const (
	ExcludedPrefix = byte('e')
	PairsPrefix    = byte('p')
)

type RSet interface {
	Has(address types.Address) bool
	List() []types.Address
}

// Set is a persisted set of addresses stored under its own key prefix.
// Membership changes are pending until Commit.
type Set struct {
	prefix  byte
	pending map[types.Address]bool

	db atomic.Value

	lock sync.RWMutex
}

func NewSet(prefix byte, db *iavl.ImmutableTree) *Set {
	immutableTree := atomic.Value{}
	if db != nil {
		immutableTree.Store(db)
	}
	return &Set{prefix: prefix, db: immutableTree, pending: map[types.Address]bool{}}
}

func (s *Set) immutableTree() *iavl.ImmutableTree {
	db := s.db.Load()
	if db == nil {
		return nil
	}
	return db.(*iavl.ImmutableTree)
}

func (s *Set) SetImmutableTree(immutableTree *iavl.ImmutableTree) {
	s.db.Store(immutableTree)
}

func (s *Set) path(address types.Address) []byte {
	return append([]byte{s.prefix}, address.Bytes()...)
}

func (s *Set) Commit(db *iavl.MutableTree) error {
	for _, address := range s.getOrderedPending() {
		s.lock.Lock()
		member := s.pending[address]
		delete(s.pending, address)
		s.lock.Unlock()

		if member {
			db.Set(s.path(address), []byte{0x1})
			continue
		}
		db.Remove(s.path(address))
	}

	return nil
}

func (s *Set) Rollback() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.pending = map[types.Address]bool{}
}

func (s *Set) Add(address types.Address) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.pending[address] = true
}

func (s *Set) Remove(address types.Address) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.pending[address] = false
}

func (s *Set) Has(address types.Address) bool {
	s.lock.RLock()
	member, ok := s.pending[address]
	s.lock.RUnlock()
	if ok {
		return member
	}

	tree := s.immutableTree()
	if tree == nil {
		return false
	}

	_, data := tree.Get(s.path(address))
	return len(data) != 0
}

// List returns committed members merged with pending changes, sorted ascending
func (s *Set) List() []types.Address {
	members := map[types.Address]struct{}{}

	if tree := s.immutableTree(); tree != nil {
		tree.IterateRange([]byte{s.prefix}, []byte{s.prefix + 1}, true, func(key []byte, value []byte) bool {
			members[types.BytesToAddress(key[1:])] = struct{}{}
			return false
		})
	}

	s.lock.RLock()
	for address, member := range s.pending {
		if member {
			members[address] = struct{}{}
			continue
		}
		delete(members, address)
	}
	s.lock.RUnlock()

	list := make([]types.Address, 0, len(members))
	for address := range members {
		list = append(list, address)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Compare(list[j]) < 0
	})

	return list
}

func (s *Set) getOrderedPending() []types.Address {
	s.lock.RLock()
	defer s.lock.RUnlock()

	keys := make([]types.Address, 0, len(s.pending))
	for address := range s.pending {
		keys = append(keys, address)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) == 1
	})

	return keys
}
