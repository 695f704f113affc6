package imm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(v int64) *big.Int {
	return big.NewInt(v)
}

func newTestMap(t *testing.T, height uint64) *IndexedMerkleMap {
	t.Helper()
	m, err := New(height, Poseidon)
	require.NoError(t, err)
	return m
}

func TestNewInvalidHeight(t *testing.T) {
	for _, height := range []uint64{0, 1} {
		_, err := New(height, Poseidon)
		require.ErrorIs(t, err, ErrInvalidHeight)
	}
}

func TestNewHoldsOnlySentinel(t *testing.T) {
	m := newTestMap(t, 4)
	require.Equal(t, uint64(1), m.Length())
	require.Equal(t, uint64(8), m.Capacity())

	v, ok := m.Get(field(0))
	require.True(t, ok)
	require.Zero(t, v.Sign())

	_, ok = m.Get(field(42))
	require.False(t, ok)
}

func TestMustGetPanicsOnAbsentKey(t *testing.T) {
	m := newTestMap(t, 4)
	require.Panics(t, func() { m.MustGet(field(7)) })
}

func TestInsertAndGet(t *testing.T) {
	m := newTestMap(t, 10)
	require.NoError(t, m.Insert(field(100), field(200)))
	require.Equal(t, uint64(2), m.Length())
	require.Equal(t, field(200), m.MustGet(field(100)))
}

func TestInsertZeroKeyRejected(t *testing.T) {
	m := newTestMap(t, 10)
	require.ErrorIs(t, m.Insert(field(0), field(1)), ErrDuplicateKey)
}

func TestDuplicateInsertLeavesStateUnchanged(t *testing.T) {
	m := newTestMap(t, 10)
	require.NoError(t, m.Insert(field(5), field(50)))
	root := m.Root()

	require.ErrorIs(t, m.Insert(field(5), field(51)), ErrDuplicateKey)
	require.Equal(t, root, m.Root())
	require.Equal(t, uint64(2), m.Length())
	require.Equal(t, field(50), m.MustGet(field(5)))
}

func TestUpdateReturnsPreviousValue(t *testing.T) {
	m := newTestMap(t, 10)
	require.NoError(t, m.Insert(field(5), field(50)))

	old, err := m.Update(field(5), field(60))
	require.NoError(t, err)
	require.Equal(t, field(50), old)
	require.Equal(t, field(60), m.MustGet(field(5)))

	_, err = m.Update(field(6), field(1))
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestUpdateSentinelRejected(t *testing.T) {
	m := newTestMap(t, 10)
	_, err := m.Update(field(0), field(1))
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSetInsertsThenUpdates(t *testing.T) {
	m := newTestMap(t, 10)

	old, err := m.Set(field(9), field(90))
	require.NoError(t, err)
	require.Nil(t, old)

	old, err = m.Set(field(9), field(91))
	require.NoError(t, err)
	require.Equal(t, field(90), old)
	require.Equal(t, field(91), m.MustGet(field(9)))
	require.Equal(t, uint64(2), m.Length())
}

func TestCapacityBoundary(t *testing.T) {
	// height 3: 4 slots, one of which the sentinel occupies.
	m := newTestMap(t, 3)
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, m.Insert(field(i), field(i*10)))
	}
	require.Equal(t, m.Capacity(), m.Length())
	require.ErrorIs(t, m.Insert(field(4), field(40)), ErrCapacityExceeded)
}

func TestSortedLeavesWalksAscendingKeys(t *testing.T) {
	m := newTestMap(t, 10)
	for _, k := range []int64{50, 10, 70, 30, 60} {
		require.NoError(t, m.Insert(field(k), field(k)))
	}

	var keys []int64
	for leaf := range m.SortedLeaves() {
		keys = append(keys, leaf.Key.Int64())
	}
	require.Equal(t, []int64{0, 10, 30, 50, 60, 70}, keys)

	// restartable: a second walk yields the same sequence
	var again []int64
	for leaf := range m.SortedLeaves() {
		again = append(again, leaf.Key.Int64())
	}
	require.Equal(t, keys, again)
}

func TestSortedLeavesLinkedListInvariant(t *testing.T) {
	m := newTestMap(t, 10)
	for _, k := range []int64{42, 7, 99, 13, 55, 1} {
		require.NoError(t, m.Insert(field(k), field(k*2)))
	}

	var prev *Leaf
	count := 0
	for leaf := range m.SortedLeaves() {
		if prev != nil {
			assert.Equal(t, prev.NextKey, leaf.Key)
			assert.Negative(t, prev.Key.Cmp(leaf.Key))
		}
		l := leaf
		prev = &l
		count++
	}
	require.Equal(t, int(m.Length()), count)
	require.Zero(t, prev.NextKey.Sign())
	require.Zero(t, prev.NextIndex)
}

func TestRootChangesOnEveryMutation(t *testing.T) {
	m := newTestMap(t, 10)
	roots := map[string]bool{m.Root().String(): true}

	require.NoError(t, m.Insert(field(1), field(1)))
	roots[m.Root().String()] = true
	require.NoError(t, m.Insert(field(2), field(2)))
	roots[m.Root().String()] = true
	_, err := m.Update(field(1), field(3))
	require.NoError(t, err)
	roots[m.Root().String()] = true

	require.Len(t, roots, 4)
}

// A rebuilt map fed the same operations must agree with the incrementally
// maintained root, level cache included.
func TestRootMatchesFreshRebuild(t *testing.T) {
	keys := []int64{17, 3, 99, 41, 8, 120, 77, 5}

	m := newTestMap(t, 8)
	for _, k := range keys {
		require.NoError(t, m.Insert(field(k), field(k+1)))
	}
	_, err := m.Update(field(41), field(1000))
	require.NoError(t, err)

	n := newTestMap(t, 8)
	for _, k := range keys {
		require.NoError(t, n.Insert(field(k), field(k+1)))
	}
	_, err = n.Update(field(41), field(1000))
	require.NoError(t, err)

	require.Equal(t, m.Root(), n.Root())
}
