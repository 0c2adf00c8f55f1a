// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/maia/maia"
)

// ParseAddress parses a path or query address, responding 400 when malformed.
func ParseAddress(s string) (maia.Address, error) {
	addr, err := maia.ParseAddress(s)
	if err != nil {
		return maia.Address{}, BadRequest(errors.WithMessage(err, "address"))
	}
	return *addr, nil
}

// ParsePoolID parses a decimal pool id.
func ParsePoolID(s string) (maia.PoolID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, "pool id"))
	}
	return maia.PoolID(id), nil
}

// ParseTime parses an optional unix timestamp, def is used when s is empty.
func ParseTime(s string, def uint64) (uint64, error) {
	if s == "" {
		return def, nil
	}
	t, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, "time"))
	}
	return t, nil
}

// Amount converts a request amount, which must be present and positive.
func Amount(v *math.HexOrDecimal256) (*big.Int, error) {
	if v == nil {
		return nil, BadRequest(errors.New("amount: required"))
	}
	amount := (*big.Int)(v)
	if amount.Sign() <= 0 {
		return nil, BadRequest(errors.New("amount: must be positive"))
	}
	return amount, nil
}

// Hex converts a ledger amount for a response.
func Hex(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}
