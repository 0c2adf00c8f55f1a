// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package votes

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/lvldb"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

var (
	alice = maia.BytesToAddress([]byte("alice"))
	bob   = maia.BytesToAddress([]byte("bob"))
	carol = maia.BytesToAddress([]byte("carol"))
	dave  = maia.BytesToAddress([]byte("dave"))
)

func newService(t *testing.T, countUndelegated bool) *Service {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(solidity.NewContext(maia.BytesToAddress([]byte("maia")), state.New(db)), countUndelegated)
}

func votesOf(t *testing.T, s *Service, addr maia.Address) int64 {
	v, err := s.GetVotes(addr)
	require.NoError(t, err)
	return v.Int64()
}

func TestDelegateScenario(t *testing.T) {
	s := newService(t, false)
	require.NoError(t, s.OnStakeChange(alice, big.NewInt(800), 1))

	// undelegated weight is not counted
	assert.Equal(t, int64(0), votesOf(t, s, alice))

	require.NoError(t, s.Delegate(alice, alice, 2))
	assert.Equal(t, int64(800), votesOf(t, s, alice))

	require.NoError(t, s.Delegate(alice, bob, 3))
	assert.Equal(t, int64(0), votesOf(t, s, alice))
	assert.Equal(t, int64(800), votesOf(t, s, bob))

	// bob is a delegate now and cannot pass the votes on
	assert.ErrorIs(t, s.Delegate(bob, carol, 4), reverts.ErrDelegationCycle)
	assert.Equal(t, int64(0), votesOf(t, s, carol))

	// but may count its own weight on itself
	require.NoError(t, s.OnStakeChange(bob, big.NewInt(100), 5))
	require.NoError(t, s.Delegate(bob, bob, 5))
	assert.Equal(t, int64(900), votesOf(t, s, bob))

	delegatee, err := s.Delegates(alice)
	assert.NoError(t, err)
	assert.Equal(t, bob, delegatee)
}

func TestDelegateToDelegatingAddress(t *testing.T) {
	s := newService(t, false)
	require.NoError(t, s.OnStakeChange(alice, big.NewInt(10), 1))
	require.NoError(t, s.OnStakeChange(carol, big.NewInt(20), 1))

	require.NoError(t, s.Delegate(carol, dave, 1))
	assert.ErrorIs(t, s.Delegate(alice, carol, 2), reverts.ErrDelegationCycle)
	assert.Equal(t, int64(20), votesOf(t, s, dave))
	assert.Equal(t, int64(0), votesOf(t, s, carol))

	assert.ErrorIs(t, s.Delegate(alice, maia.Address{}, 2), ErrZeroDelegatee)
}

func TestRedelegateMovesWeight(t *testing.T) {
	s := newService(t, false)
	require.NoError(t, s.OnStakeChange(alice, big.NewInt(500), 1))

	require.NoError(t, s.Delegate(alice, bob, 1))
	require.NoError(t, s.Delegate(alice, carol, 2))
	assert.Equal(t, int64(0), votesOf(t, s, bob))
	assert.Equal(t, int64(500), votesOf(t, s, carol))

	bobAcc, err := s.Account(bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), bobAcc.Delegators)

	// bob has no delegators left and may delegate again
	require.NoError(t, s.Delegate(bob, carol, 3))

	// stake changes follow the delegation
	require.NoError(t, s.OnStakeChange(alice, big.NewInt(-100), 4))
	assert.Equal(t, int64(400), votesOf(t, s, carol))

	assert.Error(t, s.OnStakeChange(alice, big.NewInt(-1000), 5))
}

func TestCountUndelegated(t *testing.T) {
	s := newService(t, true)
	require.NoError(t, s.OnStakeChange(alice, big.NewInt(800), 1))
	assert.Equal(t, int64(800), votesOf(t, s, alice))

	require.NoError(t, s.Delegate(alice, bob, 2))
	assert.Equal(t, int64(0), votesOf(t, s, alice))
	assert.Equal(t, int64(800), votesOf(t, s, bob))
}

func TestPastVotes(t *testing.T) {
	s := newService(t, false)
	require.NoError(t, s.Delegate(alice, alice, 5))
	require.NoError(t, s.OnStakeChange(alice, big.NewInt(100), 10))
	require.NoError(t, s.OnStakeChange(alice, big.NewInt(50), 10))
	require.NoError(t, s.OnStakeChange(alice, big.NewInt(25), 20))
	require.NoError(t, s.OnStakeChange(alice, big.NewInt(-75), 30))

	acc, err := s.Account(alice)
	require.NoError(t, err)
	// same timestamp writes collapse into one checkpoint
	assert.Equal(t, uint64(3), acc.Checkpoints)

	for _, tc := range []struct {
		at   uint64
		want int64
	}{
		{0, 0},
		{9, 0},
		{10, 150},
		{19, 150},
		{20, 175},
		{29, 175},
		{30, 100},
		{1000, 100},
	} {
		v, err := s.GetPastVotes(alice, tc.at)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, v.Int64(), "at %d", tc.at)
	}
}
