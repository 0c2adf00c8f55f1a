// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package maia

import "math/big"

// Constants of the staking ledger.
const (
	// BpsDenominator is the denominator of every tax rate expressed in basis points.
	BpsDenominator uint64 = 10_000

	// DefaultTopStakerSlots is the leaderboard capacity used when a pool is added without one.
	DefaultTopStakerSlots uint32 = 2

	// Day in seconds.
	Day uint64 = 24 * 60 * 60
)

// Precision is the fixed point scale of the accumulated reward per share.
var Precision = big.NewInt(1e12)
