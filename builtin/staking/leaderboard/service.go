// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package leaderboard

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/maia"
)

var slotBoards = maia.BytesToBytes32([]byte("top-stakers"))

// Service stores one board per pool.
type Service struct {
	boards *solidity.Mapping[maia.PoolID, *Board]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		boards: solidity.NewMapping[maia.PoolID, *Board](sctx, slotBoards),
	}
}

// Get returns the board of the pool, empty when nobody staked yet.
func (s *Service) Get(pid maia.PoolID) (*Board, error) {
	b, err := s.boards.Get(pid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get board")
	}
	if b == nil {
		return &Board{}, nil
	}
	return b, nil
}

// Update re-evaluates staker on the board of pid, which holds up to k entries.
func (s *Service) Update(pid maia.PoolID, k uint32, staker maia.Address, amount *big.Int, depositedAt uint64) error {
	b, err := s.Get(pid)
	if err != nil {
		return err
	}
	if !b.Update(k, staker, amount, depositedAt) {
		return nil
	}
	if err := s.boards.Set(pid, b); err != nil {
		return errors.Wrap(err, "failed to set board")
	}
	return nil
}

// Contains returns whether staker is a top staker of pid.
func (s *Service) Contains(pid maia.PoolID, staker maia.Address) (bool, error) {
	b, err := s.Get(pid)
	if err != nil {
		return false, err
	}
	return b.Contains(staker), nil
}
