// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package shares is the non-transferable token minted for staked principal.
// A balance sums the holder's shares over every pool.
package shares

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/maia"
)

var (
	slotBalances    = maia.BytesToBytes32([]byte("share-balances"))
	slotTotalSupply = maia.BytesToBytes32([]byte("share-total-supply"))
)

type Service struct {
	balances    *solidity.Mapping[maia.Address, *big.Int]
	totalSupply *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		balances:    solidity.NewMapping[maia.Address, *big.Int](sctx, slotBalances),
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
	}
}

func (s *Service) BalanceOf(addr maia.Address) (*big.Int, error) {
	bal, err := s.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get share balance")
	}
	if bal == nil {
		return new(big.Int), nil
	}
	return bal, nil
}

func (s *Service) TotalSupply() (*big.Int, error) {
	return s.totalSupply.Get()
}

func (s *Service) Mint(to maia.Address, amount *big.Int) error {
	bal, err := s.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := s.balances.Set(to, bal.Add(bal, amount)); err != nil {
		return errors.Wrap(err, "failed to mint shares")
	}
	return s.totalSupply.Add(amount)
}

func (s *Service) Burn(from maia.Address, amount *big.Int) error {
	bal, err := s.BalanceOf(from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.ErrInsufficientStake
	}
	if err := s.balances.Set(from, bal.Sub(bal, amount)); err != nil {
		return errors.Wrap(err, "failed to burn shares")
	}
	return s.totalSupply.Sub(amount)
}

// Transfer always fails, shares only move by mint and burn.
func (s *Service) Transfer(_, to maia.Address, _ *big.Int) error {
	if to.IsZero() {
		return reverts.ErrZeroAddressTransfer
	}
	return reverts.ErrNonTransferable
}

// TransferFrom always fails, like Transfer.
func (s *Service) TransferFrom(_, from, to maia.Address, amount *big.Int) error {
	return s.Transfer(from, to, amount)
}
