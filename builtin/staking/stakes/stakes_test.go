// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/lvldb"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	s := New(solidity.NewContext(maia.BytesToAddress([]byte("maia")), state.New(db)))
	user := maia.BytesToAddress([]byte("user"))

	u, err := s.Get(0, user)
	assert.NoError(t, err)
	assert.True(t, u.IsEmpty())
	assert.Equal(t, 0, u.RewardDebt.Sign())

	u.Amount.SetInt64(960)
	u.RewardDebt.SetInt64(12)
	u.DepositedAt = 1000
	require.NoError(t, s.Set(0, user, u))

	got, err := s.Get(0, user)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(960), got.Amount)
	assert.Equal(t, big.NewInt(12), got.RewardDebt)
	assert.Equal(t, uint64(1000), got.DepositedAt)

	// stakes are per pool
	other, err := s.Get(1, user)
	assert.NoError(t, err)
	assert.True(t, other.IsEmpty())

	// zeroed stakes are retained
	got.Amount.SetInt64(0)
	require.NoError(t, s.Set(0, user, got))
	got, err = s.Get(0, user)
	assert.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, uint64(1000), got.DepositedAt)
}

func TestPending(t *testing.T) {
	u := &UserStake{Amount: big.NewInt(100), RewardDebt: big.NewInt(40)}
	assert.Equal(t, big.NewInt(60), u.Pending(big.NewInt(100)))
	assert.Equal(t, 0, u.Pending(big.NewInt(30)).Sign())
}
