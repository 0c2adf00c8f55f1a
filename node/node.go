// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/maia/builtin"
	"github.com/vechain/maia/builtin/gold"
	"github.com/vechain/maia/builtin/staking"
	"github.com/vechain/maia/builtin/valar"
	"github.com/vechain/maia/genesis"
	"github.com/vechain/maia/health"
	"github.com/vechain/maia/kv"
	"github.com/vechain/maia/log"
	"github.com/vechain/maia/state"
)

var logger = log.WithContext("pkg", "node")

// Context is what an operation sees of the ledger.
type Context struct {
	Maia  *staking.Maia
	Gold  *gold.Gold
	Valar *valar.Valar
	Now   uint64
}

// Node owns the ledger state and serialises every access to it.
type Node struct {
	lock   sync.Mutex
	db     kv.Store
	state  *state.State
	opts   staking.Options
	clock  Clock
	health *health.Health
}

// New builds gen into db if it is not there yet and returns a node over it.
func New(db kv.Store, gen *genesis.Genesis, opts staking.Options, clock Clock, h *health.Health) (*Node, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := gen.Build(db); err != nil {
		return nil, errors.Wrap(err, "build genesis")
	}
	if h == nil {
		h = health.New()
	}
	h.Ready(true)
	return &Node{
		db:     db,
		state:  state.New(db),
		opts:   opts,
		clock:  clock,
		health: h,
	}, nil
}

func (n *Node) Options() staking.Options {
	return n.opts
}

func (n *Node) Health() *health.Health {
	return n.health
}

func (n *Node) context() *Context {
	return &Context{
		Maia:  builtin.Maia.WithState(n.state, n.opts),
		Gold:  builtin.Gold.WithState(n.state),
		Valar: builtin.Valar.WithState(n.state),
		Now:   n.clock.Now(),
	}
}

// Execute runs fn and commits its changes when it returns nil. On error nothing
// is written.
func (n *Node) Execute(fn func(ctx *Context) error) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	checkpoint := n.state.NewCheckpoint()
	if err := fn(n.context()); err != nil {
		n.state.RevertTo(checkpoint)
		return err
	}
	return n.commit()
}

// View runs fn and discards whatever it changed.
func (n *Node) View(fn func(ctx *Context) error) error {
	n.lock.Lock()
	defer n.lock.Unlock()

	checkpoint := n.state.NewCheckpoint()
	defer n.state.RevertTo(checkpoint)
	return fn(n.context())
}

func (n *Node) commit() error {
	start := time.Now()
	changes := n.state.Changes()

	bulk := n.db.Bulk()
	if err := n.state.Commit(bulk); err != nil {
		n.reset(err)
		return errors.Wrap(err, "commit state")
	}
	if err := bulk.Write(); err != nil {
		n.reset(err)
		return errors.Wrap(err, "write state")
	}

	n.health.Committed()
	metricCommitCount().Add(1)
	metricCommitDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"result": "ok"})
	hit, miss := n.state.CacheStats()
	logger.Debug("committed", "changes", changes, "keys", bulk.Len(), "cacheHit", hit, "cacheMiss", miss, "elapsed", time.Since(start))
	return nil
}

// reset drops the state, its cache may hold values the store never received.
func (n *Node) reset(err error) {
	logger.Error("failed to commit", "err", err)
	n.health.CommitFailed(err)
	n.state = state.New(n.db)
}
