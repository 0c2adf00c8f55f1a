// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

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

var one = big.NewInt(1)

type Tokens struct {
	node *node.Node
}

func New(node *node.Node) *Tokens {
	return &Tokens{node}
}

// balance responds with the balance of the address in the path.
func (t *Tokens) balance(w http.ResponseWriter, req *http.Request, get func(ctx *node.Context, addr maia.Address) (*big.Int, error)) error {
	addr, err := utils.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	var bal *big.Int
	err = t.node.View(func(ctx *node.Context) (err error) {
		bal, err = get(ctx, addr)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{addr, utils.Hex(bal)})
}

func (t *Tokens) handleGetShareSupply(w http.ResponseWriter, _ *http.Request) error {
	var supply *big.Int
	err := t.node.View(func(ctx *node.Context) (err error) {
		supply, err = ctx.Maia.TotalSupply()
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Supply{utils.Hex(supply)})
}

func (t *Tokens) handleGetShares(w http.ResponseWriter, req *http.Request) error {
	return t.balance(w, req, func(ctx *node.Context, addr maia.Address) (*big.Int, error) {
		return ctx.Maia.BalanceOf(addr)
	})
}

func (t *Tokens) handleTransferShares(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.Amount(body.Amount)
	if err != nil {
		return err
	}
	return t.node.Execute(func(ctx *node.Context) error {
		return ctx.Maia.Transfer(body.Caller, body.To, amount)
	})
}

func (t *Tokens) handleGetGold(w http.ResponseWriter, _ *http.Request) error {
	var gold *Gold
	err := t.node.View(func(ctx *node.Context) error {
		supply, err := ctx.Gold.TotalSupply()
		if err != nil {
			return err
		}
		tax, err := ctx.Gold.Tax()
		if err != nil {
			return err
		}
		treasury, err := ctx.Gold.Treasury()
		if err != nil {
			return err
		}
		withheld, err := ctx.Maia.Withheld(builtin.Gold.Address)
		if err != nil {
			return err
		}
		gold = &Gold{utils.Hex(supply), tax, treasury, utils.Hex(withheld)}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, gold)
}

func (t *Tokens) handleGetGoldBalance(w http.ResponseWriter, req *http.Request) error {
	return t.balance(w, req, func(ctx *node.Context, addr maia.Address) (*big.Int, error) {
		return ctx.Gold.BalanceOf(addr)
	})
}

func (t *Tokens) handleTransferGold(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	amount, err := utils.Amount(body.Amount)
	if err != nil {
		return err
	}
	var bal *big.Int
	err = t.node.Execute(func(ctx *node.Context) (err error) {
		if err := ctx.Gold.Transfer(body.Caller, body.To, amount); err != nil {
			return err
		}
		bal, err = ctx.Gold.BalanceOf(body.Caller)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{body.Caller, utils.Hex(bal)})
}

// handleApproveGold sets an allowance, for the staking engine unless a spender is given.
func (t *Tokens) handleApproveGold(w http.ResponseWriter, req *http.Request) error {
	var body ApproveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: required"))
	}
	spender := builtin.Maia.Address
	if body.Spender != nil {
		spender = *body.Spender
	}
	var allowance *big.Int
	err := t.node.Execute(func(ctx *node.Context) (err error) {
		if err := ctx.Gold.Approve(body.Caller, spender, (*big.Int)(body.Amount)); err != nil {
			return err
		}
		allowance, err = ctx.Gold.Allowance(body.Caller, spender)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Allowance{body.Caller, spender, utils.Hex(allowance)})
}

func (t *Tokens) handleGetValar(w http.ResponseWriter, req *http.Request) error {
	return t.balance(w, req, func(ctx *node.Context, addr maia.Address) (*big.Int, error) {
		return ctx.Valar.BalanceOf(addr)
	})
}

func (t *Tokens) handleMintValar(w http.ResponseWriter, req *http.Request) error {
	var body MintRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	err := t.node.Execute(func(ctx *node.Context) error {
		return ctx.Valar.Mint(body.Caller, body.To, one)
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{body.To, utils.Hex(one)})
}

func (t *Tokens) handleTransferValar(w http.ResponseWriter, req *http.Request) error {
	var body MoveRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	var bal *big.Int
	err := t.node.Execute(func(ctx *node.Context) (err error) {
		if err := ctx.Valar.Transfer(body.Caller, body.From, body.To, one); err != nil {
			return err
		}
		bal, err = ctx.Valar.BalanceOf(body.From)
		return err
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{body.From, utils.Hex(bal)})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/shares").
		Methods(http.MethodGet).
		Name("GET /tokens/shares").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetShareSupply))
	sub.Path("/shares/transfer").
		Methods(http.MethodPost).
		Name("POST /tokens/shares/transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransferShares))
	sub.Path("/shares/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/shares/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetShares))

	sub.Path("/gold").
		Methods(http.MethodGet).
		Name("GET /tokens/gold").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetGold))
	sub.Path("/gold/transfer").
		Methods(http.MethodPost).
		Name("POST /tokens/gold/transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransferGold))
	sub.Path("/gold/approve").
		Methods(http.MethodPost).
		Name("POST /tokens/gold/approve").
		HandlerFunc(utils.WrapHandlerFunc(t.handleApproveGold))
	sub.Path("/gold/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/gold/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetGoldBalance))

	sub.Path("/valar/mint").
		Methods(http.MethodPost).
		Name("POST /tokens/valar/mint").
		HandlerFunc(utils.WrapHandlerFunc(t.handleMintValar))
	sub.Path("/valar/transfer").
		Methods(http.MethodPost).
		Name("POST /tokens/valar/transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleTransferValar))
	sub.Path("/valar/{address}").
		Methods(http.MethodGet).
		Name("GET /tokens/valar/{address}").
		HandlerFunc(utils.WrapHandlerFunc(t.handleGetValar))
}
