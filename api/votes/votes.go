// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package votes

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/maia/api/utils"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/node"
)

type Votes struct {
	node *node.Node
}

func New(node *node.Node) *Votes {
	return &Votes{node}
}

// Account is the voting view of an address. With a time query Votes is the
// amount held at the end of that second.
type Account struct {
	Address   maia.Address          `json:"address"`
	Votes     *math.HexOrDecimal256 `json:"votes"`
	Delegatee maia.Address          `json:"delegatee"`
	Time      uint64                `json:"time"`
}

type DelegateRequest struct {
	Caller    maia.Address `json:"caller"`
	Delegatee maia.Address `json:"delegatee"`
}

func (v *Votes) account(ctx *node.Context, addr maia.Address, t uint64) (*Account, error) {
	var (
		votes *big.Int
		err   error
	)
	if t >= ctx.Now {
		votes, err = ctx.Maia.GetVotes(addr)
	} else {
		votes, err = ctx.Maia.GetPastVotes(addr, t)
	}
	if err != nil {
		return nil, err
	}
	delegatee, err := ctx.Maia.Delegates(addr)
	if err != nil {
		return nil, err
	}
	return &Account{addr, utils.Hex(votes), delegatee, t}, nil
}

func (v *Votes) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	var acc *Account
	err = v.node.View(func(ctx *node.Context) error {
		t, err := utils.ParseTime(req.URL.Query().Get("time"), ctx.Now)
		if err != nil {
			return err
		}
		acc, err = v.account(ctx, addr, t)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (v *Votes) handleDelegate(w http.ResponseWriter, req *http.Request) error {
	var body DelegateRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	var acc *Account
	err := v.node.Execute(func(ctx *node.Context) (err error) {
		if err := ctx.Maia.Delegate(body.Caller, body.Delegatee, ctx.Now); err != nil {
			return err
		}
		acc, err = v.account(ctx, body.Delegatee, ctx.Now)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (v *Votes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/delegate").
		Methods(http.MethodPost).
		Name("POST /votes/delegate").
		HandlerFunc(utils.WrapHandlerFunc(v.handleDelegate))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /votes/{address}").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetAccount))
}
