// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package maiaclient is an HTTP client for the Maia ledger API.
package maiaclient

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/maia/api/pools"
	"github.com/vechain/maia/api/tokens"
	"github.com/vechain/maia/api/votes"
	"github.com/vechain/maia/maia"
)

type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{url: url, c: c}
}

func amount(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v)
}

func poolPath(pid maia.PoolID) string {
	return "/pools/" + strconv.FormatUint(uint64(pid), 10)
}

// Pools lists every pool.
func (c *Client) Pools() ([]*pools.Pool, error) {
	list, err := getJSON[[]*pools.Pool](c, "/pools")
	if err != nil {
		return nil, errors.WithMessage(err, "unable to retrieve pools")
	}
	return *list, nil
}

func (c *Client) Pool(pid maia.PoolID) (*pools.Pool, error) {
	p, err := getJSON[pools.Pool](c, poolPath(pid))
	return p, errors.WithMessage(err, "unable to retrieve pool")
}

func (c *Client) AddPool(req *pools.AddPoolRequest) (*pools.Pool, error) {
	p, err := sendJSON[pools.Pool](c, http.MethodPost, "/pools", req)
	return p, errors.WithMessage(err, "unable to add pool")
}

func (c *Client) SetPool(pid maia.PoolID, req *pools.SetPoolRequest) (*pools.Pool, error) {
	p, err := sendJSON[pools.Pool](c, http.MethodPut, poolPath(pid), req)
	return p, errors.WithMessage(err, "unable to set pool")
}

func (c *Client) UpdatePools() error {
	_, err := c.send(http.MethodPost, "/pools/update", struct{}{})
	return errors.WithMessage(err, "unable to update pools")
}

func (c *Client) UpdatePool(pid maia.PoolID) (*pools.Pool, error) {
	p, err := sendJSON[pools.Pool](c, http.MethodPost, poolPath(pid)+"/update", struct{}{})
	return p, errors.WithMessage(err, "unable to update pool")
}

func (c *Client) User(pid maia.PoolID, addr maia.Address) (*pools.User, error) {
	u, err := getJSON[pools.User](c, poolPath(pid)+"/users/"+addr.String())
	return u, errors.WithMessage(err, "unable to retrieve user")
}

func (c *Client) TopStakers(pid maia.PoolID) ([]*pools.TopStaker, error) {
	list, err := getJSON[[]*pools.TopStaker](c, poolPath(pid)+"/top-stakers")
	if err != nil {
		return nil, errors.WithMessage(err, "unable to retrieve top stakers")
	}
	return *list, nil
}

func (c *Client) Deposit(pid maia.PoolID, caller maia.Address, v *big.Int) (*pools.User, error) {
	u, err := sendJSON[pools.User](c, http.MethodPost, poolPath(pid)+"/deposit", &pools.StakeRequest{Caller: caller, Amount: amount(v)})
	return u, errors.WithMessage(err, "unable to deposit")
}

func (c *Client) Withdraw(pid maia.PoolID, caller maia.Address, v *big.Int) (*pools.User, error) {
	u, err := sendJSON[pools.User](c, http.MethodPost, poolPath(pid)+"/withdraw", &pools.StakeRequest{Caller: caller, Amount: amount(v)})
	return u, errors.WithMessage(err, "unable to withdraw")
}

func (c *Client) Claim(pid maia.PoolID, caller maia.Address) (*pools.User, error) {
	u, err := sendJSON[pools.User](c, http.MethodPost, poolPath(pid)+"/claim", &pools.ClaimRequest{Caller: caller})
	return u, errors.WithMessage(err, "unable to claim")
}

// Votes returns the votes of addr now, or at time t when t is non-zero.
func (c *Client) Votes(addr maia.Address, t uint64) (*votes.Account, error) {
	path := "/votes/" + addr.String()
	if t != 0 {
		path += "?time=" + strconv.FormatUint(t, 10)
	}
	acc, err := getJSON[votes.Account](c, path)
	return acc, errors.WithMessage(err, "unable to retrieve votes")
}

func (c *Client) Delegate(caller, delegatee maia.Address) (*votes.Account, error) {
	acc, err := sendJSON[votes.Account](c, http.MethodPost, "/votes/delegate", &votes.DelegateRequest{Caller: caller, Delegatee: delegatee})
	return acc, errors.WithMessage(err, "unable to delegate")
}

func (c *Client) Shares(addr maia.Address) (*big.Int, error) {
	b, err := getJSON[tokens.Balance](c, "/tokens/shares/"+addr.String())
	if err != nil {
		return nil, errors.WithMessage(err, "unable to retrieve shares")
	}
	return (*big.Int)(b.Balance), nil
}

func (c *Client) ShareSupply() (*big.Int, error) {
	s, err := getJSON[tokens.Supply](c, "/tokens/shares")
	if err != nil {
		return nil, errors.WithMessage(err, "unable to retrieve share supply")
	}
	return (*big.Int)(s.TotalSupply), nil
}

func (c *Client) Gold() (*tokens.Gold, error) {
	g, err := getJSON[tokens.Gold](c, "/tokens/gold")
	return g, errors.WithMessage(err, "unable to retrieve gold")
}

func (c *Client) GoldBalance(addr maia.Address) (*big.Int, error) {
	b, err := getJSON[tokens.Balance](c, "/tokens/gold/"+addr.String())
	if err != nil {
		return nil, errors.WithMessage(err, "unable to retrieve gold balance")
	}
	return (*big.Int)(b.Balance), nil
}

func (c *Client) TransferGold(caller, to maia.Address, v *big.Int) error {
	_, err := c.send(http.MethodPost, "/tokens/gold/transfer", &tokens.TransferRequest{Caller: caller, To: to, Amount: amount(v)})
	return errors.WithMessage(err, "unable to transfer gold")
}

// ApproveGold lets the staking engine pull v gold from caller.
func (c *Client) ApproveGold(caller maia.Address, v *big.Int) error {
	_, err := c.send(http.MethodPost, "/tokens/gold/approve", &tokens.ApproveRequest{Caller: caller, Amount: amount(v)})
	return errors.WithMessage(err, "unable to approve gold")
}

func (c *Client) MintValar(caller, to maia.Address) error {
	_, err := c.send(http.MethodPost, "/tokens/valar/mint", &tokens.MintRequest{Caller: caller, To: to})
	return errors.WithMessage(err, "unable to mint valar")
}

func (c *Client) RevokeValar(caller, from, to maia.Address) error {
	_, err := c.send(http.MethodPost, "/tokens/valar/transfer", &tokens.MoveRequest{Caller: caller, From: from, To: to})
	return errors.WithMessage(err, "unable to transfer valar")
}
