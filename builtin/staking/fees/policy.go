// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fees computes the entry, exit and claim taxes charged by Maia pools.
// Rates are basis points over maia.BpsDenominator.
package fees

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/maia/maia"
)

// LockMode selects what happens to a withdrawal inside the lock period.
type LockMode string

const (
	// LockPenalty charges the locked exit tier.
	LockPenalty LockMode = "penalty"
	// LockReject refuses the withdrawal.
	LockReject LockMode = "reject"
)

// Tier holds the rate paid by ordinary stakers and by membership holders.
type Tier struct {
	Standard uint64 `yaml:"standard" json:"standard"`
	Member   uint64 `yaml:"member" json:"member"`
}

func (t Tier) rate(member bool) uint64 {
	if member {
		return t.Member
	}
	return t.Standard
}

// Policy is the tax configuration. It's stateless, all methods are pure.
type Policy struct {
	Entry        uint64       `yaml:"entry" json:"entry"`
	Claim        Tier         `yaml:"claim" json:"claim"`
	LockedExit   Tier         `yaml:"locked-exit" json:"lockedExit"`
	UnlockedExit Tier         `yaml:"unlocked-exit" json:"unlockedExit"`
	LockPeriod   uint64       `yaml:"lock-period" json:"lockPeriod"` // seconds
	LockMode     LockMode     `yaml:"lock-mode" json:"lockMode"`
	Treasury     maia.Address `yaml:"treasury" json:"treasury"`
}

// DefaultPolicy returns the rates observed on the reference deployment.
func DefaultPolicy() Policy {
	return Policy{
		Entry:        400,
		Claim:        Tier{Standard: 1000, Member: 500},
		LockedExit:   Tier{Standard: 1000, Member: 500},
		UnlockedExit: Tier{Standard: 0, Member: 0},
		LockPeriod:   7 * maia.Day,
		LockMode:     LockPenalty,
	}
}

// ZeroPolicy charges nothing and never locks.
func ZeroPolicy() Policy {
	return Policy{LockMode: LockPenalty}
}

// Validate checks every rate is within the denominator and the lock mode is known.
func (p *Policy) Validate() error {
	rates := map[string]uint64{
		"entry":                  p.Entry,
		"claim.standard":         p.Claim.Standard,
		"claim.member":           p.Claim.Member,
		"locked-exit.standard":   p.LockedExit.Standard,
		"locked-exit.member":     p.LockedExit.Member,
		"unlocked-exit.standard": p.UnlockedExit.Standard,
		"unlocked-exit.member":   p.UnlockedExit.Member,
	}
	for name, bps := range rates {
		if bps > maia.BpsDenominator {
			return errors.Errorf("fees: %s rate %d exceeds %d", name, bps, maia.BpsDenominator)
		}
	}
	switch p.LockMode {
	case LockPenalty, LockReject:
	default:
		return errors.Errorf("fees: unknown lock mode %q", p.LockMode)
	}
	return nil
}

// EntryTax splits the amount received on deposit into credited shares and tax.
func (p *Policy) EntryTax(net *big.Int) (credited, tax *big.Int) {
	return Split(net, p.Entry)
}

// ExitTax returns the rate charged on a withdrawal of a stake of the given age,
// and whether the stake is still inside the lock period.
func (p *Policy) ExitTax(age uint64, member bool) (bps uint64, locked bool) {
	if age < p.LockPeriod {
		return p.LockedExit.rate(member), true
	}
	return p.UnlockedExit.rate(member), false
}

// ClaimTax returns the rate withheld from claimed rewards.
func (p *Policy) ClaimTax(member bool) uint64 {
	return p.Claim.rate(member)
}

// Split takes bps of amount. Tax rounds down, the remainder is never negative.
func Split(amount *big.Int, bps uint64) (rest, tax *big.Int) {
	tax = new(big.Int).Mul(amount, new(big.Int).SetUint64(bps))
	tax.Div(tax, new(big.Int).SetUint64(maia.BpsDenominator))
	return new(big.Int).Sub(amount, tax), tax
}
