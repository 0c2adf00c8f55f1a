// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package valar implements the scarce membership token. Holding one discounts Maia taxes.
package valar

import (
	"math/big"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/log"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

var logger = log.WithContext("pkg", "valar")

var (
	slotOwner       = maia.BytesToBytes32([]byte("valar-owner"))
	slotTotalSupply = maia.BytesToBytes32([]byte("valar-total-supply"))
	slotBalances    = maia.BytesToBytes32([]byte("valar-balances"))

	one = big.NewInt(1)
)

// Valar is owner controlled: only the owner mints, and only the owner moves tokens.
type Valar struct {
	addr        maia.Address
	owner       *solidity.Address
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[maia.Address, uint64]
}

func New(addr maia.Address, state *state.State) *Valar {
	ctx := solidity.NewContext(addr, state)
	return &Valar{
		addr:        addr,
		owner:       solidity.NewAddress(ctx, slotOwner),
		totalSupply: solidity.NewUint256(ctx, slotTotalSupply),
		balances:    solidity.NewMapping[maia.Address, uint64](ctx, slotBalances),
	}
}

func (v *Valar) Address() maia.Address {
	return v.addr
}

// Initialize sets the owner when none is set.
func (v *Valar) Initialize(owner maia.Address) error {
	current, err := v.owner.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return reverts.ErrUnauthorized
	}
	v.owner.Set(owner)
	return nil
}

func (v *Valar) Owner() (maia.Address, error) {
	return v.owner.Get()
}

func (v *Valar) onlyOwner(caller maia.Address) error {
	owner, err := v.owner.Get()
	if err != nil {
		return err
	}
	if owner != caller {
		return reverts.ErrUnauthorized
	}
	return nil
}

// BalanceOf returns the number of tokens held by addr.
func (v *Valar) BalanceOf(addr maia.Address) (*big.Int, error) {
	bal, err := v.balances.Get(addr)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(bal), nil
}

func (v *Valar) TotalSupply() (*big.Int, error) {
	return v.totalSupply.Get()
}

// Mint gives exactly one token to a holder that has none.
func (v *Valar) Mint(caller, to maia.Address, amount *big.Int) error {
	if err := v.onlyOwner(caller); err != nil {
		return err
	}
	if amount.Cmp(one) != 0 {
		return reverts.ErrMintOne
	}
	if to.IsZero() {
		return reverts.ErrZeroAddressTransfer
	}
	bal, err := v.balances.Get(to)
	if err != nil {
		return err
	}
	if bal > 0 {
		return reverts.ErrMintOne
	}
	if err := v.balances.Set(to, 1); err != nil {
		return err
	}
	if err := v.totalSupply.Add(one); err != nil {
		return err
	}
	logger.Info("minted", "to", to)
	return nil
}

// Transfer moves one token from from to to. The owner uses it to revoke membership.
func (v *Valar) Transfer(caller, from, to maia.Address, amount *big.Int) error {
	if err := v.onlyOwner(caller); err != nil {
		return err
	}
	if amount.Cmp(one) != 0 {
		return reverts.ErrTransferOne
	}
	if to.IsZero() {
		return reverts.ErrZeroAddressTransfer
	}
	fromBal, err := v.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal == 0 {
		return reverts.ErrInsufficientBalance
	}
	toBal, err := v.balances.Get(to)
	if err != nil {
		return err
	}
	if err := v.balances.Set(from, fromBal-1); err != nil {
		return err
	}
	if err := v.balances.Set(to, toBal+1); err != nil {
		return err
	}
	logger.Info("transferred", "from", from, "to", to)
	return nil
}
