// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package leaderboard

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

var (
	addr1 = maia.BytesToAddress([]byte("addr1"))
	addr2 = maia.BytesToAddress([]byte("addr2"))
	addr3 = maia.BytesToAddress([]byte("addr3"))
	addr4 = maia.BytesToAddress([]byte("addr4"))
)

func stakers(b *Board) []maia.Address {
	out := make([]maia.Address, 0, len(b.Entries))
	for _, e := range b.Entries {
		out = append(out, e.Staker)
	}
	return out
}

func TestBoardTopTwo(t *testing.T) {
	var b Board

	assert.True(t, b.Update(2, addr1, big.NewInt(1000), 1))
	assert.True(t, b.Contains(addr1))

	assert.True(t, b.Update(2, addr2, big.NewInt(2000), 2))
	assert.True(t, b.Update(2, addr3, big.NewInt(2000), 3))
	assert.Equal(t, []maia.Address{addr2, addr3}, stakers(&b))
	assert.False(t, b.Contains(addr1))

	// addr2 leaves, its slot is not backfilled
	assert.True(t, b.Update(2, addr2, big.NewInt(0), 2))
	assert.False(t, b.Contains(addr1))
	assert.False(t, b.Contains(addr2))
	assert.True(t, b.Contains(addr3))

	// the free slot goes to the next staker who updates
	assert.True(t, b.Update(2, addr1, big.NewInt(1001), 4))
	assert.Equal(t, []maia.Address{addr3, addr1}, stakers(&b))
}

func TestBoardTies(t *testing.T) {
	var b Board
	b.Update(2, addr1, big.NewInt(500), 1)
	b.Update(2, addr2, big.NewInt(500), 2)

	// equal amount deposited later does not evict
	assert.False(t, b.Update(2, addr3, big.NewInt(500), 3))
	assert.Equal(t, []maia.Address{addr1, addr2}, stakers(&b))

	// a larger stake evicts the last entry
	assert.True(t, b.Update(2, addr3, big.NewInt(501), 4))
	assert.Equal(t, []maia.Address{addr3, addr1}, stakers(&b))

	// zero stake of an outsider is a no-op
	assert.False(t, b.Update(2, addr4, big.NewInt(0), 5))
}

func TestBoardRekey(t *testing.T) {
	var b Board
	b.Update(3, addr1, big.NewInt(300), 1)
	b.Update(3, addr2, big.NewInt(200), 2)
	b.Update(3, addr3, big.NewInt(100), 3)
	assert.Equal(t, []maia.Address{addr1, addr2, addr3}, stakers(&b))

	assert.True(t, b.Update(3, addr3, big.NewInt(400), 4))
	assert.Equal(t, []maia.Address{addr3, addr1, addr2}, stakers(&b))

	// a present entry may fall to the bottom but keeps its slot
	assert.True(t, b.Update(3, addr3, big.NewInt(1), 4))
	assert.Equal(t, []maia.Address{addr1, addr2, addr3}, stakers(&b))
	assert.Equal(t, big.NewInt(1), b.Entries[2].Amount)
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	s := New(solidity.NewContext(maia.BytesToAddress([]byte("maia")), state.New(db)))

	ok, err := s.Contains(0, addr1)
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Update(0, 2, addr1, big.NewInt(10), 1))
	require.NoError(t, s.Update(1, 2, addr2, big.NewInt(10), 1))

	ok, err = s.Contains(0, addr1)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Contains(0, addr2)
	assert.NoError(t, err)
	assert.False(t, ok)

	b, err := s.Get(0)
	assert.NoError(t, err)
	require.Len(t, b.Entries, 1)
	assert.Equal(t, big.NewInt(10), b.Entries[0].Amount)
	assert.Equal(t, uint64(1), b.Entries[0].DepositedAt)
}
