// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package votes

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/log"
	"github.com/vechain/maia/maia"
)

var logger = log.WithContext("pkg", "votes")

var (
	slotAccounts    = maia.BytesToBytes32([]byte("vote-accounts"))
	slotCheckpoints = maia.BytesToBytes32([]byte("vote-checkpoints"))

	ErrZeroDelegatee = reverts.New("delegate to the zero address")
)

type Service struct {
	accounts         *solidity.Mapping[maia.Address, *Account]
	checkpoints      *solidity.Mapping[maia.Bytes32, *Checkpoint]
	countUndelegated bool
}

// New creates the service. With countUndelegated an address that never delegated
// votes with its own weight, otherwise its weight is not counted anywhere.
func New(sctx *solidity.Context, countUndelegated bool) *Service {
	return &Service{
		accounts:         solidity.NewMapping[maia.Address, *Account](sctx, slotAccounts),
		checkpoints:      solidity.NewMapping[maia.Bytes32, *Checkpoint](sctx, slotCheckpoints),
		countUndelegated: countUndelegated,
	}
}

func checkpointKey(addr maia.Address, index uint64) maia.Bytes32 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], index)
	return maia.Blake2b(addr.Bytes(), b[:])
}

// Account returns the voting record of addr.
func (s *Service) Account(addr maia.Address) (*Account, error) {
	acc, err := s.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vote account")
	}
	if acc == nil {
		return newAccount(), nil
	}
	return acc, nil
}

func (s *Service) setAccount(addr maia.Address, acc *Account) error {
	if err := s.accounts.Set(addr, acc); err != nil {
		return errors.Wrap(err, "failed to set vote account")
	}
	return nil
}

// target returns where the weight of addr is counted, zero when nowhere.
func (s *Service) target(addr maia.Address, acc *Account) maia.Address {
	if !acc.Delegatee.IsZero() {
		return acc.Delegatee
	}
	if s.countUndelegated {
		return addr
	}
	return maia.Address{}
}

// Delegates returns the current delegatee of addr, zero if addr never delegated.
func (s *Service) Delegates(addr maia.Address) (maia.Address, error) {
	acc, err := s.Account(addr)
	if err != nil {
		return maia.Address{}, err
	}
	return acc.Delegatee, nil
}

// Delegate points the weight of from at to. It keeps the graph one hop deep:
// to must not delegate to a third address, and from must not be a delegate of others
// unless it delegates to itself.
func (s *Service) Delegate(from, to maia.Address, now uint64) error {
	if to.IsZero() {
		return ErrZeroDelegatee
	}
	fromAcc, err := s.Account(from)
	if err != nil {
		return err
	}
	if to != from {
		if fromAcc.Delegators > 0 {
			return reverts.ErrDelegationCycle
		}
		toAcc, err := s.Account(to)
		if err != nil {
			return err
		}
		if !toAcc.Delegatee.IsZero() && toAcc.Delegatee != to {
			return reverts.ErrDelegationCycle
		}
	}

	previous := fromAcc.Delegatee
	if previous == to {
		return nil
	}
	oldTarget := s.target(from, fromAcc)

	logger.Debug("delegating", "from", from, "to", to, "previous", previous)

	fromAcc.Delegatee = to
	if err := s.setAccount(from, fromAcc); err != nil {
		return err
	}
	if !previous.IsZero() && previous != from {
		if err := s.updateAccount(previous, func(acc *Account) { acc.Delegators-- }); err != nil {
			return err
		}
	}
	if to != from {
		if err := s.updateAccount(to, func(acc *Account) { acc.Delegators++ }); err != nil {
			return err
		}
	}
	return s.moveVotes(oldTarget, to, fromAcc.OwnWeight, now)
}

// OnStakeChange applies a signed stake delta to the own weight of addr and to the
// votes of wherever that weight is counted.
func (s *Service) OnStakeChange(addr maia.Address, delta *big.Int, now uint64) error {
	if delta.Sign() == 0 {
		return nil
	}
	acc, err := s.Account(addr)
	if err != nil {
		return err
	}
	weight := new(big.Int).Add(acc.OwnWeight, delta)
	if weight.Sign() < 0 {
		return errors.Errorf("own weight of %v below zero", addr)
	}
	acc.OwnWeight = weight
	if err := s.setAccount(addr, acc); err != nil {
		return err
	}

	if target := s.target(addr, acc); !target.IsZero() {
		return s.writeCheckpoint(target, delta, now)
	}
	return nil
}

func (s *Service) updateAccount(addr maia.Address, cb func(*Account)) error {
	acc, err := s.Account(addr)
	if err != nil {
		return err
	}
	cb(acc)
	return s.setAccount(addr, acc)
}

func (s *Service) moveVotes(from, to maia.Address, amount *big.Int, now uint64) error {
	if from == to || amount.Sign() == 0 {
		return nil
	}
	if !from.IsZero() {
		if err := s.writeCheckpoint(from, new(big.Int).Neg(amount), now); err != nil {
			return err
		}
	}
	if !to.IsZero() {
		return s.writeCheckpoint(to, amount, now)
	}
	return nil
}

func (s *Service) writeCheckpoint(addr maia.Address, delta *big.Int, now uint64) error {
	acc, err := s.Account(addr)
	if err != nil {
		return err
	}

	votes := new(big.Int)
	var last *Checkpoint
	if acc.Checkpoints > 0 {
		if last, err = s.checkpoint(addr, acc.Checkpoints-1); err != nil {
			return err
		}
		votes.Set(last.Votes)
	}
	votes.Add(votes, delta)
	if votes.Sign() < 0 {
		return errors.Errorf("votes of %v below zero", addr)
	}

	if last != nil && last.Time == now {
		last.Votes = votes
		return s.setCheckpoint(addr, acc.Checkpoints-1, last)
	}
	if err := s.setCheckpoint(addr, acc.Checkpoints, &Checkpoint{Time: now, Votes: votes}); err != nil {
		return err
	}
	acc.Checkpoints++
	return s.setAccount(addr, acc)
}

func (s *Service) checkpoint(addr maia.Address, index uint64) (*Checkpoint, error) {
	cp, err := s.checkpoints.Get(checkpointKey(addr, index))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get checkpoint")
	}
	if cp == nil {
		return nil, errors.Errorf("missing checkpoint %d of %v", index, addr)
	}
	return cp, nil
}

func (s *Service) setCheckpoint(addr maia.Address, index uint64, cp *Checkpoint) error {
	if err := s.checkpoints.Set(checkpointKey(addr, index), cp); err != nil {
		return errors.Wrap(err, "failed to set checkpoint")
	}
	return nil
}

// GetVotes returns the votes currently received by addr.
func (s *Service) GetVotes(addr maia.Address) (*big.Int, error) {
	acc, err := s.Account(addr)
	if err != nil {
		return nil, err
	}
	if acc.Checkpoints == 0 {
		return new(big.Int), nil
	}
	cp, err := s.checkpoint(addr, acc.Checkpoints-1)
	if err != nil {
		return nil, err
	}
	return cp.Votes, nil
}

// GetPastVotes returns the votes addr held at the end of time t.
func (s *Service) GetPastVotes(addr maia.Address, t uint64) (*big.Int, error) {
	acc, err := s.Account(addr)
	if err != nil {
		return nil, err
	}

	// first checkpoint later than t
	lo, hi := uint64(0), acc.Checkpoints
	for lo < hi {
		mid := lo + (hi-lo)/2
		cp, err := s.checkpoint(addr, mid)
		if err != nil {
			return nil, err
		}
		if cp.Time > t {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo == 0 {
		return new(big.Int), nil
	}
	cp, err := s.checkpoint(addr, lo-1)
	if err != nil {
		return nil, err
	}
	return cp.Votes, nil
}
