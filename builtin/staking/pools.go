// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/vechain/maia/builtin/staking/pool"
	"github.com/vechain/maia/maia"
)

// AddPool registers a pool staking asset. With withUpdate every asset is reconciled first,
// so rewards that already arrived go to the existing pools only. slots of zero takes the
// configured default.
func (m *Maia) AddPool(caller maia.Address, weight uint64, asset maia.Address, withUpdate bool, slots uint32, now uint64) (maia.PoolID, error) {
	var pid maia.PoolID
	err := m.execute("add_pool", func(*settlement) error {
		if err := m.onlyOwner(caller); err != nil {
			return err
		}
		if asset.IsZero() {
			return errZeroAsset
		}
		if _, err := m.token(asset); err != nil {
			return err
		}
		if withUpdate {
			if err := m.updatePools(); err != nil {
				return err
			}
		}
		if slots == 0 {
			slots = m.opts.TopStakerSlots
		}

		logger.Debug("adding pool", "asset", asset, "weight", weight, "slots", slots)
		id, err := m.poolService.Add(asset, weight, slots, now)
		if err != nil {
			return err
		}
		pid = id
		logger.Info("pool added", "pid", pid, "asset", asset, "weight", weight, "slots", slots)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pid, nil
}

// SetPool changes the relative weight of a pool among the pools sharing its asset.
func (m *Maia) SetPool(caller maia.Address, pid maia.PoolID, weight uint64, withUpdate bool) error {
	return m.execute("set_pool", func(*settlement) error {
		if err := m.onlyOwner(caller); err != nil {
			return err
		}
		if withUpdate {
			if err := m.updatePools(); err != nil {
				return err
			}
		}
		p, err := m.poolService.Get(pid)
		if err != nil {
			return err
		}
		logger.Debug("setting pool weight", "pid", pid, "from", p.RelativeWeight, "to", weight)
		p.RelativeWeight = weight
		if err := m.poolService.Update(pid, p); err != nil {
			return err
		}
		logger.Info("pool weight set", "pid", pid, "weight", weight)
		return nil
	})
}

// UpdatePools reconciles every asset. Anyone may call it.
func (m *Maia) UpdatePools() error {
	return m.execute("update_pools", func(*settlement) error {
		return m.updatePools()
	})
}

// UpdatePool reconciles the asset of a single pool, and with it every pool sharing that asset.
func (m *Maia) UpdatePool(pid maia.PoolID) error {
	return m.execute("update_pool", func(*settlement) error {
		_, _, err := m.syncPool(pid)
		return err
	})
}

func (m *Maia) updatePools() error {
	assets, err := m.poolService.Assets()
	if err != nil {
		return err
	}
	for _, asset := range assets {
		token, err := m.token(asset)
		if err != nil {
			return err
		}
		if err := m.reconcile(asset, token); err != nil {
			return err
		}
	}
	return nil
}

func (m *Maia) reconcile(asset maia.Address, token Token) error {
	balance, err := token.BalanceOf(m.addr)
	if err != nil {
		return errors.Wrap(err, "engine balance")
	}
	return m.poolService.Reconcile(asset, balance)
}

// syncPool reconciles the asset of pid and returns the pool as priced afterwards.
func (m *Maia) syncPool(pid maia.PoolID) (*pool.Pool, Token, error) {
	p, err := m.poolService.Get(pid)
	if err != nil {
		return nil, nil, err
	}
	token, err := m.token(p.RewardToken)
	if err != nil {
		return nil, nil, err
	}
	if err := m.reconcile(p.RewardToken, token); err != nil {
		return nil, nil, err
	}
	if p, err = m.poolService.Get(pid); err != nil {
		return nil, nil, err
	}
	return p, token, nil
}
