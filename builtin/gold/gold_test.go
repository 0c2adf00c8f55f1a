// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gold

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
	oneEther    = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	totalSupply = new(big.Int).Mul(big.NewInt(100_000_000_000_000), oneEther)

	owner = maia.BytesToAddress([]byte("owner"))
	user1 = maia.BytesToAddress([]byte("user1"))
	user2 = maia.BytesToAddress([]byte("user2"))
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), oneEther)
}

func newGold(t *testing.T) *Gold {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	g := New(maia.BytesToAddress([]byte("gold")), state.New(db))
	require.NoError(t, g.Initialize(owner, totalSupply))
	require.NoError(t, g.SetTreasury(owner, owner))
	return g
}

func balance(t *testing.T, g *Gold, addr maia.Address) *big.Int {
	bal, err := g.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func TestInitialize(t *testing.T) {
	g := newGold(t)

	supply, err := g.TotalSupply()
	assert.NoError(t, err)
	assert.Equal(t, totalSupply, supply)
	assert.Equal(t, totalSupply, balance(t, g, owner))

	assert.ErrorIs(t, g.Initialize(user1, totalSupply), errInitialized)
}

func TestTransfer(t *testing.T) {
	g := newGold(t)

	assert.NoError(t, g.Transfer(owner, user1, ether(50000)))
	assert.Equal(t, ether(99_999_999_950_000), balance(t, g, owner))
	assert.Equal(t, ether(50000), balance(t, g, user1))

	assert.NoError(t, g.Transfer(user1, owner, ether(50000)))
	assert.Equal(t, totalSupply, balance(t, g, owner))
	assert.Equal(t, 0, balance(t, g, user1).Sign())

	assert.ErrorIs(t, g.Transfer(user1, user2, big.NewInt(1)), reverts.ErrInsufficientBalance)
	assert.ErrorIs(t, g.Transfer(owner, maia.Address{}, big.NewInt(1)), reverts.ErrZeroAddressTransfer)
}

func TestTransferFrom(t *testing.T) {
	g := newGold(t)

	err := g.TransferFrom(owner, owner, user1, big.NewInt(1000))
	assert.ErrorIs(t, err, reverts.ErrInsufficientAllowance)
	assert.Equal(t, "ERC20: transfer amount exceeds allowance", err.Error())

	assert.NoError(t, g.Approve(owner, user1, ether(50000)))
	assert.NoError(t, g.TransferFrom(user1, owner, user1, ether(50000)))
	assert.Equal(t, ether(50000), balance(t, g, user1))

	allowance, err := g.Allowance(owner, user1)
	assert.NoError(t, err)
	assert.Equal(t, 0, allowance.Sign())

	assert.NoError(t, g.Approve(user1, owner, ether(50000)))
	assert.NoError(t, g.TransferFrom(owner, user1, owner, ether(50000)))
	assert.Equal(t, totalSupply, balance(t, g, owner))
	assert.Equal(t, 0, balance(t, g, user1).Sign())
}

func TestAllowance(t *testing.T) {
	g := newGold(t)

	allowance, err := g.Allowance(owner, user2)
	assert.NoError(t, err)
	assert.Equal(t, 0, allowance.Sign())

	assert.NoError(t, g.IncreaseAllowance(owner, user2, big.NewInt(500)))
	allowance, _ = g.Allowance(owner, user2)
	assert.Equal(t, big.NewInt(500), allowance)

	// allowances are directional
	allowance, _ = g.Allowance(user2, owner)
	assert.Equal(t, 0, allowance.Sign())

	assert.NoError(t, g.DecreaseAllowance(owner, user2, big.NewInt(500)))
	allowance, _ = g.Allowance(owner, user2)
	assert.Equal(t, 0, allowance.Sign())

	assert.ErrorIs(t, g.DecreaseAllowance(owner, user2, big.NewInt(1)), errAllowanceBelowZero)
}

func TestNegativeAmounts(t *testing.T) {
	g := newGold(t)
	require.NoError(t, g.Approve(owner, user2, big.NewInt(10)))

	assert.ErrorIs(t, g.Approve(owner, user2, big.NewInt(-1)), reverts.ErrNegativeAmount)
	assert.ErrorIs(t, g.IncreaseAllowance(owner, user2, big.NewInt(-1)), reverts.ErrNegativeAmount)
	assert.ErrorIs(t, g.DecreaseAllowance(owner, user2, big.NewInt(-1)), reverts.ErrNegativeAmount)
	assert.ErrorIs(t, g.Transfer(user2, owner, big.NewInt(-1)), reverts.ErrNegativeAmount)

	allowance, err := g.Allowance(owner, user2)
	require.NoError(t, err)
	assert.Equal(t, "10", allowance.String())
	bal, err := g.BalanceOf(user2)
	require.NoError(t, err)
	assert.Equal(t, 0, bal.Sign())

	// zero revokes
	require.NoError(t, g.Approve(owner, user2, new(big.Int)))
	allowance, err = g.Allowance(owner, user2)
	require.NoError(t, err)
	assert.Equal(t, 0, allowance.Sign())
}

func TestTax(t *testing.T) {
	g := newGold(t)
	treasury := maia.BytesToAddress([]byte("treasury"))

	assert.ErrorIs(t, g.SetTax(user1, 100), reverts.ErrUnauthorized)
	assert.ErrorIs(t, g.SetTreasury(user1, treasury), reverts.ErrUnauthorized)
	assert.ErrorIs(t, g.SetTax(owner, maia.BpsDenominator+1), errInvalidTax)

	require.NoError(t, g.SetTreasury(owner, treasury))
	require.NoError(t, g.SetTax(owner, 100))
	require.NoError(t, g.SetWhitelist(owner, owner, true))

	// whitelisted sender pays no tax
	require.NoError(t, g.Transfer(owner, user1, big.NewInt(10_000)))
	assert.Equal(t, big.NewInt(10_000), balance(t, g, user1))

	require.NoError(t, g.Transfer(user1, user2, big.NewInt(10_000)))
	assert.Equal(t, big.NewInt(9_900), balance(t, g, user2))
	assert.Equal(t, big.NewInt(100), balance(t, g, treasury))

	tax, err := g.Tax()
	assert.NoError(t, err)
	assert.Equal(t, uint64(100), tax)

	exempt, err := g.IsWhitelisted(owner)
	assert.NoError(t, err)
	assert.True(t, exempt)
}
