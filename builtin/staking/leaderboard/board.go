// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package leaderboard keeps the bounded set of largest stakers of each pool.
package leaderboard

import (
	"math/big"
	"slices"

	"github.com/vechain/maia/maia"
)

// Entry is one top staker.
type Entry struct {
	Staker      maia.Address
	Amount      *big.Int
	DepositedAt uint64
}

// outranks orders entries by amount descending, earlier deposit first on ties.
func (e *Entry) outranks(other *Entry) bool {
	if c := e.Amount.Cmp(other.Amount); c != 0 {
		return c > 0
	}
	return e.DepositedAt < other.DepositedAt
}

// Board is the sorted entry list of a pool, best first, at most K entries.
type Board struct {
	Entries []*Entry
}

func (b *Board) indexOf(staker maia.Address) int {
	return slices.IndexFunc(b.Entries, func(e *Entry) bool { return e.Staker == staker })
}

// Contains returns whether staker holds a slot.
func (b *Board) Contains(staker maia.Address) bool {
	return b.indexOf(staker) >= 0
}

// Update re-evaluates staker after its stake changed to amount. A present staker is re-keyed,
// or dropped at zero. An absent one takes a free slot, or evicts the last entry when it
// strictly outranks it. Slots freed by a drop stay free until the next qualifying update.
// It returns whether the board changed.
func (b *Board) Update(k uint32, staker maia.Address, amount *big.Int, depositedAt uint64) bool {
	if i := b.indexOf(staker); i >= 0 {
		b.Entries = slices.Delete(b.Entries, i, i+1)
		if amount.Sign() == 0 {
			return true
		}
		b.insert(&Entry{staker, new(big.Int).Set(amount), depositedAt})
		return true
	}

	if amount.Sign() == 0 || k == 0 {
		return false
	}
	entry := &Entry{staker, new(big.Int).Set(amount), depositedAt}
	if len(b.Entries) >= int(k) {
		if !entry.outranks(b.Entries[len(b.Entries)-1]) {
			return false
		}
		b.Entries = b.Entries[:int(k)-1]
	}
	b.insert(entry)
	return true
}

func (b *Board) insert(entry *Entry) {
	i, _ := slices.BinarySearchFunc(b.Entries, entry, func(e, target *Entry) int {
		if e.outranks(target) {
			return -1
		}
		return 1
	})
	b.Entries = slices.Insert(b.Entries, i, entry)
}
