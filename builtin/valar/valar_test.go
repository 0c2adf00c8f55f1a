// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package valar

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/lvldb"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

var (
	owner = maia.BytesToAddress([]byte("owner"))
	addr1 = maia.BytesToAddress([]byte("addr1"))
	addr2 = maia.BytesToAddress([]byte("addr2"))
)

func newValar(t *testing.T) *Valar {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	v := New(maia.BytesToAddress([]byte("valar")), state.New(db))
	require.NoError(t, v.Initialize(owner))
	return v
}

func balance(t *testing.T, v *Valar, addr maia.Address) int64 {
	bal, err := v.BalanceOf(addr)
	require.NoError(t, err)
	return bal.Int64()
}

func TestMint(t *testing.T) {
	v := newValar(t)

	err := v.Mint(addr1, addr1, big.NewInt(1))
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)
	assert.Equal(t, "Ownable: caller is not the owner", err.Error())

	err = v.Mint(owner, addr1, big.NewInt(2))
	assert.ErrorIs(t, err, reverts.ErrMintOne)
	assert.Equal(t, "can only mint one", err.Error())

	assert.NoError(t, v.Mint(owner, addr1, big.NewInt(1)))
	assert.Equal(t, int64(1), balance(t, v, addr1))
	assert.ErrorIs(t, v.Mint(owner, addr1, big.NewInt(1)), reverts.ErrMintOne)

	supply, err := v.TotalSupply()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), supply.Int64())
}

func TestTransfer(t *testing.T) {
	v := newValar(t)

	assert.ErrorIs(t, v.Transfer(addr1, addr1, addr2, big.NewInt(1)), reverts.ErrUnauthorized)

	require.NoError(t, v.Mint(owner, addr1, big.NewInt(1)))
	assert.ErrorIs(t, v.Transfer(owner, addr1, addr2, big.NewInt(2)), reverts.ErrTransferOne)
	assert.ErrorIs(t, v.Transfer(owner, addr2, addr1, big.NewInt(1)), reverts.ErrInsufficientBalance)

	// revoke
	assert.NoError(t, v.Transfer(owner, addr1, owner, big.NewInt(1)))
	assert.Equal(t, int64(0), balance(t, v, addr1))
	assert.Equal(t, int64(1), balance(t, v, owner))
}

func TestInitializeOnce(t *testing.T) {
	v := newValar(t)
	assert.ErrorIs(t, v.Initialize(addr1), reverts.ErrUnauthorized)

	got, err := v.Owner()
	assert.NoError(t, err)
	assert.Equal(t, owner, got)
}
