// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/maia/api/utils"
	"github.com/vechain/maia/builtin"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/node"
)

type Pools struct {
	node *node.Node
}

func New(node *node.Node) *Pools {
	return &Pools{node}
}

func (p *Pools) handleGetPools(w http.ResponseWriter, _ *http.Request) error {
	var pools []*Pool
	err := p.node.View(func(ctx *node.Context) error {
		n, err := ctx.Maia.PoolLength()
		if err != nil {
			return err
		}
		pools = make([]*Pool, 0, n)
		for id := maia.PoolID(0); uint64(id) < n; id++ {
			pl, err := ctx.Maia.GetPool(id)
			if err != nil {
				return err
			}
			pools = append(pools, convertPool(id, pl))
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, pools)
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	pid, err := utils.ParsePoolID(mux.Vars(req)["pid"])
	if err != nil {
		return err
	}
	var pool *Pool
	err = p.node.View(func(ctx *node.Context) error {
		pl, err := ctx.Maia.GetPool(pid)
		if err != nil {
			return err
		}
		pool = convertPool(pid, pl)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, pool)
}

func (p *Pools) user(ctx *node.Context, pid maia.PoolID, addr maia.Address) (*User, error) {
	u, err := ctx.Maia.GetUser(pid, addr)
	if err != nil {
		return nil, err
	}
	user := convertUser(u)
	pending, err := ctx.Maia.PendingReward(pid, addr)
	if err != nil {
		return nil, err
	}
	user.Pending = utils.Hex(pending)
	if user.TopStaker, err = ctx.Maia.IsTopStaker(pid, addr); err != nil {
		return nil, err
	}
	return user, nil
}

func (p *Pools) handleGetUser(w http.ResponseWriter, req *http.Request) error {
	pid, err := utils.ParsePoolID(mux.Vars(req)["pid"])
	if err != nil {
		return err
	}
	addr, err := utils.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	var user *User
	err = p.node.View(func(ctx *node.Context) (err error) {
		user, err = p.user(ctx, pid, addr)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, user)
}

func (p *Pools) handleGetTopStakers(w http.ResponseWriter, req *http.Request) error {
	pid, err := utils.ParsePoolID(mux.Vars(req)["pid"])
	if err != nil {
		return err
	}
	var top []*TopStaker
	err = p.node.View(func(ctx *node.Context) error {
		entries, err := ctx.Maia.TopStakers(pid)
		if err != nil {
			return err
		}
		top = convertEntries(entries)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, top)
}

func (p *Pools) handleAddPool(w http.ResponseWriter, req *http.Request) error {
	var body AddPoolRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	asset := builtin.Gold.Address
	if body.Asset != nil {
		asset = *body.Asset
	}

	var pool *Pool
	err := p.node.Execute(func(ctx *node.Context) error {
		pid, err := ctx.Maia.AddPool(body.Caller, body.Weight, asset, body.WithUpdate, body.Slots, ctx.Now)
		if err != nil {
			return err
		}
		pl, err := ctx.Maia.GetPool(pid)
		if err != nil {
			return err
		}
		pool = convertPool(pid, pl)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, pool)
}

func (p *Pools) handleSetPool(w http.ResponseWriter, req *http.Request) error {
	pid, err := utils.ParsePoolID(mux.Vars(req)["pid"])
	if err != nil {
		return err
	}
	var body SetPoolRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	var pool *Pool
	err = p.node.Execute(func(ctx *node.Context) error {
		if err := ctx.Maia.SetPool(body.Caller, pid, body.Weight, body.WithUpdate); err != nil {
			return err
		}
		pl, err := ctx.Maia.GetPool(pid)
		if err != nil {
			return err
		}
		pool = convertPool(pid, pl)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, pool)
}

func (p *Pools) handleUpdatePools(w http.ResponseWriter, _ *http.Request) error {
	err := p.node.Execute(func(ctx *node.Context) error {
		return ctx.Maia.UpdatePools()
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"updated": true})
}

// handleUpdatePool reconciles the asset of one pool and responds with the pool.
func (p *Pools) handleUpdatePool(w http.ResponseWriter, req *http.Request) error {
	pid, err := utils.ParsePoolID(mux.Vars(req)["pid"])
	if err != nil {
		return err
	}
	var pool *Pool
	err = p.node.Execute(func(ctx *node.Context) error {
		if err := ctx.Maia.UpdatePool(pid); err != nil {
			return err
		}
		pl, err := ctx.Maia.GetPool(pid)
		if err != nil {
			return err
		}
		pool = convertPool(pid, pl)
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, pool)
}

// stake runs a deposit or withdrawal and responds with the resulting user view.
func (p *Pools) stake(w http.ResponseWriter, req *http.Request, op func(ctx *node.Context, pid maia.PoolID, caller maia.Address, amount *big.Int) error) error {
	pid, err := utils.ParsePoolID(mux.Vars(req)["pid"])
	if err != nil {
		return err
	}
	var body StakeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.Amount(body.Amount)
	if err != nil {
		return err
	}

	var user *User
	err = p.node.Execute(func(ctx *node.Context) (err error) {
		if err := op(ctx, pid, body.Caller, amount); err != nil {
			return err
		}
		user, err = p.user(ctx, pid, body.Caller)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, user)
}

func (p *Pools) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	return p.stake(w, req, func(ctx *node.Context, pid maia.PoolID, caller maia.Address, amount *big.Int) error {
		return ctx.Maia.Deposit(pid, caller, amount, ctx.Now)
	})
}

func (p *Pools) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	return p.stake(w, req, func(ctx *node.Context, pid maia.PoolID, caller maia.Address, amount *big.Int) error {
		return ctx.Maia.Withdraw(pid, caller, amount, ctx.Now)
	})
}

func (p *Pools) handleClaim(w http.ResponseWriter, req *http.Request) error {
	pid, err := utils.ParsePoolID(mux.Vars(req)["pid"])
	if err != nil {
		return err
	}
	var body ClaimRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	var user *User
	err = p.node.Execute(func(ctx *node.Context) (err error) {
		if err := ctx.Maia.Claim(pid, body.Caller); err != nil {
			return err
		}
		user, err = p.user(ctx, pid, body.Caller)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, user)
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPools))
	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleAddPool))
	sub.Path("/update").
		Methods(http.MethodPost).
		Name("POST /pools/update").
		HandlerFunc(utils.WrapHandlerFunc(p.handleUpdatePools))
	sub.Path("/{pid}").
		Methods(http.MethodGet).
		Name("GET /pools/{pid}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{pid}").
		Methods(http.MethodPut).
		Name("PUT /pools/{pid}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleSetPool))
	sub.Path("/{pid}/update").
		Methods(http.MethodPost).
		Name("POST /pools/{pid}/update").
		HandlerFunc(utils.WrapHandlerFunc(p.handleUpdatePool))
	sub.Path("/{pid}/top-stakers").
		Methods(http.MethodGet).
		Name("GET /pools/{pid}/top-stakers").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetTopStakers))
	sub.Path("/{pid}/users/{address}").
		Methods(http.MethodGet).
		Name("GET /pools/{pid}/users/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetUser))
	sub.Path("/{pid}/deposit").
		Methods(http.MethodPost).
		Name("POST /pools/{pid}/deposit").
		HandlerFunc(utils.WrapHandlerFunc(p.handleDeposit))
	sub.Path("/{pid}/withdraw").
		Methods(http.MethodPost).
		Name("POST /pools/{pid}/withdraw").
		HandlerFunc(utils.WrapHandlerFunc(p.handleWithdraw))
	sub.Path("/{pid}/claim").
		Methods(http.MethodPost).
		Name("POST /pools/{pid}/claim").
		HandlerFunc(utils.WrapHandlerFunc(p.handleClaim))
}
