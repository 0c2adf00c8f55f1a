// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/maia/maia"
)

type transfer struct {
	token  Token
	to     maia.Address
	amount *big.Int
}

// settlement collects the outgoing transfers of an operation. They run only after
// the ledger is fully updated.
type settlement struct {
	transfers []transfer
}

func (s *settlement) add(token Token, to maia.Address, amount *big.Int) {
	if amount.Sign() <= 0 {
		return
	}
	s.transfers = append(s.transfers, transfer{token, to, new(big.Int).Set(amount)})
}

func (s *settlement) execute(from maia.Address) error {
	for _, t := range s.transfers {
		if err := t.token.Transfer(from, t.to, t.amount); err != nil {
			return err
		}
	}
	return nil
}
