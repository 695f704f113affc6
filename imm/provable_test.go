package imm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertWitnessReplay(t *testing.T) {
	m := newTestMap(t, 10)
	verifier := NewProvable(Poseidon)

	w, err := m.InsertWithWitness(field(100), field(200))
	require.NoError(t, err)
	require.NotNil(t, w)
	require.NoError(t, verifier.Insert(w))
	require.Equal(t, m.Root(), w.NewRoot)
}

func TestUpdateWitnessReplay(t *testing.T) {
	m := newTestMap(t, 10)
	verifier := NewProvable(Poseidon)

	_, err := m.InsertWithWitness(field(100), field(200))
	require.NoError(t, err)

	w, err := m.UpdateWithWitness(field(100), field(300))
	require.NoError(t, err)
	require.Equal(t, field(200), w.OldValue)
	require.NoError(t, verifier.Update(w))
	require.Equal(t, m.Root(), w.NewRoot)
}

// Replaying a full mutation history must succeed witness by witness, with
// each new root chaining into the next old root.
func TestWitnessChainReplay(t *testing.T) {
	m := newTestMap(t, 10)
	verifier := NewProvable(Poseidon)

	type step struct {
		insert *InsertWitness
		update *UpdateWitness
	}
	var steps []step

	for _, k := range []int64{40, 10, 90, 25, 60, 75, 5} {
		w, err := m.InsertWithWitness(field(k), field(k*3))
		require.NoError(t, err)
		steps = append(steps, step{insert: w})
	}
	for _, k := range []int64{90, 10, 60} {
		w, err := m.UpdateWithWitness(field(k), field(k*7))
		require.NoError(t, err)
		steps = append(steps, step{update: w})
	}

	var prev *big.Int
	for i, s := range steps {
		var oldRoot, newRoot *big.Int
		if s.insert != nil {
			require.NoError(t, verifier.Insert(s.insert), "step %d", i)
			oldRoot, newRoot = s.insert.OldRoot, s.insert.NewRoot
		} else {
			require.NoError(t, verifier.Update(s.update), "step %d", i)
			oldRoot, newRoot = s.update.OldRoot, s.update.NewRoot
		}
		if prev != nil {
			require.Equal(t, prev, oldRoot, "step %d", i)
		}
		prev = newRoot
	}
	require.Equal(t, m.Root(), prev)
}

func TestProvableInsertRejectsTampering(t *testing.T) {
	freshWitness := func(t *testing.T) *InsertWitness {
		m := newTestMap(t, 10)
		require.NoError(t, m.Insert(field(10), field(1)))
		require.NoError(t, m.Insert(field(30), field(3)))
		w, err := m.InsertWithWitness(field(20), field(2))
		require.NoError(t, err)
		return w
	}
	verifier := NewProvable(Poseidon)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, verifier.Insert(freshWitness(t)))
	})

	t.Run("old root", func(t *testing.T) {
		w := freshWitness(t)
		w.OldRoot = field(12345)
		require.ErrorIs(t, verifier.Insert(w), ErrOldRootMismatch)
	})

	t.Run("low leaf contents", func(t *testing.T) {
		w := freshWitness(t)
		w.LowLeaf.Value = field(999)
		require.ErrorIs(t, verifier.Insert(w), ErrOldRootMismatch)
	})

	t.Run("ordering", func(t *testing.T) {
		// key 40 lies outside the low leaf's gap (10, 30)
		w := freshWitness(t)
		w.Key = field(40)
		require.ErrorIs(t, verifier.Insert(w), ErrOrderingViolation)
	})

	t.Run("new root", func(t *testing.T) {
		w := freshWitness(t)
		w.NewRoot = field(12345)
		require.ErrorIs(t, verifier.Insert(w), ErrNewRootMismatch)
	})

	t.Run("value", func(t *testing.T) {
		w := freshWitness(t)
		w.Value = field(999)
		require.ErrorIs(t, verifier.Insert(w), ErrNewRootMismatch)
	})

	t.Run("occupied slot", func(t *testing.T) {
		// pointing the witness at an occupied slot breaks the empty-slot
		// consistency check against the intermediate root
		w := freshWitness(t)
		w.NewLeafIndex = 1
		require.ErrorIs(t, verifier.Insert(w), ErrOldRootMismatch)
	})
}

func TestProvableUpdateRejectsTampering(t *testing.T) {
	freshWitness := func(t *testing.T) *UpdateWitness {
		m := newTestMap(t, 10)
		require.NoError(t, m.Insert(field(10), field(1)))
		w, err := m.UpdateWithWitness(field(10), field(2))
		require.NoError(t, err)
		return w
	}
	verifier := NewProvable(Poseidon)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, verifier.Update(freshWitness(t)))
	})

	t.Run("old value", func(t *testing.T) {
		w := freshWitness(t)
		w.OldValue = field(999)
		require.ErrorIs(t, verifier.Update(w), ErrOldRootMismatch)
	})

	t.Run("new root", func(t *testing.T) {
		w := freshWitness(t)
		w.NewRoot = field(12345)
		require.ErrorIs(t, verifier.Update(w), ErrNewRootMismatch)
	})

	t.Run("leaf index", func(t *testing.T) {
		w := freshWitness(t)
		w.LeafIndex = 5
		require.ErrorIs(t, verifier.Update(w), ErrOldRootMismatch)
	})
}

// Plain Insert/Update and their witness-capturing variants must agree on
// the resulting state.
func TestWitnessCaptureDoesNotChangeSemantics(t *testing.T) {
	plain := newTestMap(t, 8)
	captured := newTestMap(t, 8)

	for _, k := range []int64{12, 4, 33, 21} {
		require.NoError(t, plain.Insert(field(k), field(k)))
		_, err := captured.InsertWithWitness(field(k), field(k))
		require.NoError(t, err)
	}
	_, err := plain.Update(field(33), field(1))
	require.NoError(t, err)
	_, err = captured.UpdateWithWitness(field(33), field(1))
	require.NoError(t, err)

	require.Equal(t, plain.Root(), captured.Root())
	require.Equal(t, plain.Length(), captured.Length())
}
