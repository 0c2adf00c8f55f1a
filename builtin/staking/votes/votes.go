// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package votes keeps vote weight derived from stake, with single hop delegation
// and a checkpointed history of received votes.
package votes

import (
	"math/big"

	"github.com/vechain/maia/maia"
)

// Account is the voting record of one address.
type Account struct {
	Delegatee maia.Address // zero until the first delegation
	OwnWeight *big.Int     // combined stake across pools
	// Delegators counts other addresses delegating to this one.
	Delegators  uint64
	Checkpoints uint64
}

func newAccount() *Account {
	return &Account{OwnWeight: new(big.Int)}
}

// Checkpoint records the votes received by an address from Time on.
type Checkpoint struct {
	Time  uint64
	Votes *big.Int
}
