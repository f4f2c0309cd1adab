package tree

import (
	"sync"

	"github.com/cosmos/iavl"
	"github.com/pkg/errors"
	dbm "github.com/tendermint/tm-db"
)

// Saver is a state substore able to flush its dirty models into the tree
type Saver interface {
	Commit(db *iavl.MutableTree) error
	SetImmutableTree(immutableTree *iavl.ImmutableTree)
}

type ReadOnlyTree interface {
	Version() int64
	Hash() []byte
	AvailableVersions() []int
	GetLastImmutable() *iavl.ImmutableTree
	GetImmutableAtHeight(version int64) (*iavl.ImmutableTree, error)
}

type MTree interface {
	ReadOnlyTree
	Commit(savers ...Saver) (hash []byte, version int64, err error)
	DeleteVersionIfExists(version int64) error
}

// NewMutableTree loads the latest version stored in db
func NewMutableTree(db dbm.DB, cacheSize int) (MTree, error) {
	tree, err := iavl.NewMutableTree(db, cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "can't create state tree")
	}

	if _, err := tree.Load(); err != nil {
		return nil, errors.Wrap(err, "can't load state tree")
	}

	return &mutableTree{tree: tree}, nil
}

// NewImmutableTree returns the read-only tree at height. Height 0 is the empty state.
func NewImmutableTree(height uint64, db dbm.DB) (*iavl.ImmutableTree, error) {
	if height == 0 {
		return nil, nil
	}

	tree, err := iavl.NewMutableTree(db, 1024)
	if err != nil {
		return nil, errors.Wrap(err, "can't create state tree")
	}

	if _, err := tree.LazyLoadVersion(int64(height)); err != nil {
		return nil, errors.Wrapf(err, "can't load state at height %d", height)
	}

	return tree.ImmutableTree, nil
}

type mutableTree struct {
	tree *iavl.MutableTree
	lock sync.RWMutex
}

func (t *mutableTree) Version() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.Version()
}

func (t *mutableTree) Hash() []byte {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.Hash()
}

func (t *mutableTree) AvailableVersions() []int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.AvailableVersions()
}

func (t *mutableTree) GetLastImmutable() *iavl.ImmutableTree {
	t.lock.RLock()
	defer t.lock.RUnlock()

	version := t.tree.Version()
	if version == 0 {
		return nil
	}

	immutable, err := t.tree.GetImmutable(version)
	if err != nil {
		panic(err)
	}

	return immutable
}

func (t *mutableTree) GetImmutableAtHeight(version int64) (*iavl.ImmutableTree, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.tree.GetImmutable(version)
}

// Commit writes every saver into the working tree and saves a new version.
// If any saver fails the working tree is rolled back to the last saved version.
func (t *mutableTree) Commit(savers ...Saver) ([]byte, int64, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	for _, saver := range savers {
		if err := saver.Commit(t.tree); err != nil {
			t.tree.Rollback()
			return nil, 0, err
		}
	}

	hash, version, err := t.tree.SaveVersion()
	if err != nil {
		t.tree.Rollback()
		return nil, 0, errors.Wrap(err, "can't save state version")
	}

	immutable, err := t.tree.GetImmutable(version)
	if err != nil {
		return hash, version, errors.Wrapf(err, "can't get state version %d", version)
	}

	for _, saver := range savers {
		saver.SetImmutableTree(immutable)
	}

	return hash, version, nil
}

func (t *mutableTree) DeleteVersionIfExists(version int64) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if !t.tree.VersionExists(version) {
		return nil
	}

	return t.tree.DeleteVersion(version)
}
