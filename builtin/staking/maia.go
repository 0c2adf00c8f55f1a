// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/builtin/staking/fees"
	"github.com/vechain/maia/builtin/staking/leaderboard"
	"github.com/vechain/maia/builtin/staking/pool"
	"github.com/vechain/maia/builtin/staking/shares"
	"github.com/vechain/maia/builtin/staking/stakes"
	"github.com/vechain/maia/builtin/staking/votes"
	"github.com/vechain/maia/log"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

var (
	logger = log.WithContext("pkg", "staking")

	slotOwner = maia.BytesToBytes32([]byte("maia-owner"))

	errUnknownAsset = reverts.New("unknown asset")
	errZeroAsset    = reverts.New("asset is the zero address")
)

// Token is the fungible asset a pool stakes and pays rewards in.
type Token interface {
	BalanceOf(addr maia.Address) (*big.Int, error)
	Transfer(from, to maia.Address, amount *big.Int) error
	TransferFrom(spender, from, to maia.Address, amount *big.Int) error
}

// Membership tells whether an address holds the membership token.
type Membership interface {
	BalanceOf(addr maia.Address) (*big.Int, error)
}

// TokenResolver returns the token behind an asset address. A nil token means the
// asset is unknown.
type TokenResolver interface {
	Token(asset maia.Address) (Token, error)
}

// TokenResolverFunc adapts a function to TokenResolver.
type TokenResolverFunc func(asset maia.Address) (Token, error)

func (f TokenResolverFunc) Token(asset maia.Address) (Token, error) {
	return f(asset)
}

// Options configures the engine.
type Options struct {
	Fees             fees.Policy `yaml:"fees"`
	TopStakerSlots   uint32      `yaml:"top-staker-slots"`
	CountUndelegated bool        `yaml:"count-undelegated"`
}

// DefaultOptions returns the default policy with two top staker slots per pool.
func DefaultOptions() Options {
	return Options{
		Fees:           fees.DefaultPolicy(),
		TopStakerSlots: maia.DefaultTopStakerSlots,
	}
}

func (o *Options) Validate() error {
	if err := o.Fees.Validate(); err != nil {
		return err
	}
	if o.TopStakerSlots == 0 {
		return errors.New("top-staker-slots must be positive")
	}
	return nil
}

// Maia implements the multi-pool staking engine.
// It's not safe for concurrent use, callers serialise access to the state.
type Maia struct {
	addr       maia.Address
	state      *state.State
	owner      *solidity.Address
	tokens     TokenResolver
	membership Membership
	opts       Options

	poolService  *pool.Service
	stakeService *stakes.Service
	voteService  *votes.Service
	boardService *leaderboard.Service
	shareService *shares.Service
}

// New create a new instance bound to the engine address.
func New(addr maia.Address, state *state.State, tokens TokenResolver, membership Membership, opts Options) *Maia {
	sctx := solidity.NewContext(addr, state)
	return &Maia{
		addr:       addr,
		state:      state,
		owner:      solidity.NewAddress(sctx, slotOwner),
		tokens:     tokens,
		membership: membership,
		opts:       opts,

		poolService:  pool.New(sctx),
		stakeService: stakes.New(sctx),
		voteService:  votes.New(sctx, opts.CountUndelegated),
		boardService: leaderboard.New(sctx),
		shareService: shares.New(sctx),
	}
}

// Address returns the engine address, which holds all staked assets.
func (m *Maia) Address() maia.Address {
	return m.addr
}

// Options returns the configuration the engine runs with.
func (m *Maia) Options() Options {
	return m.opts
}

// Initialize sets the admin allowed to add pools. It can be called once.
func (m *Maia) Initialize(owner maia.Address) error {
	return m.execute("initialize", func(*settlement) error {
		current, err := m.owner.Get()
		if err != nil {
			return err
		}
		if !current.IsZero() {
			return reverts.ErrUnauthorized
		}
		m.owner.Set(owner)
		return nil
	})
}

func (m *Maia) Owner() (maia.Address, error) {
	return m.owner.Get()
}

func (m *Maia) onlyOwner(caller maia.Address) error {
	owner, err := m.owner.Get()
	if err != nil {
		return err
	}
	if owner.IsZero() || owner != caller {
		return reverts.ErrUnauthorized
	}
	return nil
}

func (m *Maia) token(asset maia.Address) (Token, error) {
	token, err := m.tokens.Token(asset)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, errUnknownAsset
	}
	return token, nil
}

func (m *Maia) isMember(addr maia.Address) (bool, error) {
	if m.membership == nil {
		return false, nil
	}
	bal, err := m.membership.BalanceOf(addr)
	if err != nil {
		return false, errors.Wrap(err, "membership balance")
	}
	return bal.Sign() > 0, nil
}

// execute runs fn in a state checkpoint, then the transfers it settled.
// Any error reverts every change, transfers included.
func (m *Maia) execute(op string, fn func(*settlement) error) error {
	checkpoint := m.state.NewCheckpoint()

	var st settlement
	err := fn(&st)
	if err == nil {
		err = st.execute(m.addr)
	}
	if err != nil {
		m.state.RevertTo(checkpoint)
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": "reverted"})
		if reverts.IsRevertErr(err) {
			logger.Debug("operation reverted", "op", op, "err", err)
		} else {
			logger.Error("operation failed", "op", op, "err", err)
		}
		return err
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": "ok"})
	return nil
}

// simulate runs a read that may need a reconcile, and discards its writes.
func (m *Maia) simulate(fn func() error) error {
	checkpoint := m.state.NewCheckpoint()
	defer m.state.RevertTo(checkpoint)
	return fn()
}
