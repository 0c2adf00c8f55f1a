// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package gold implements Gold1, the taxed fungible base asset staked into Maia pools.
package gold

import (
	"math/big"

	"github.com/vechain/maia/builtin/reverts"
	"github.com/vechain/maia/builtin/solidity"
	"github.com/vechain/maia/log"
	"github.com/vechain/maia/maia"
	"github.com/vechain/maia/state"
)

var logger = log.WithContext("pkg", "gold")

var (
	slotOwner       = maia.BytesToBytes32([]byte("gold-owner"))
	slotTreasury    = maia.BytesToBytes32([]byte("gold-treasury"))
	slotTax         = maia.BytesToBytes32([]byte("gold-tax"))
	slotTotalSupply = maia.BytesToBytes32([]byte("gold-total-supply"))
	slotBalances    = maia.BytesToBytes32([]byte("gold-balances"))
	slotAllowances  = maia.BytesToBytes32([]byte("gold-allowances"))
	slotWhitelist   = maia.BytesToBytes32([]byte("gold-whitelist"))

	errInitialized        = reverts.New("initializable: contract is already initialized")
	errAllowanceBelowZero = reverts.New("ERC20: decreased allowance below zero")
	errInvalidTax         = reverts.New("tax exceeds denominator")
)

// Gold is the taxed token. Transfers pay Tax basis points of the amount to the
// treasury unless one side is whitelisted.
type Gold struct {
	addr        maia.Address
	owner       *solidity.Address
	treasury    *solidity.Address
	tax         *solidity.Uint256
	totalSupply *solidity.Uint256
	balances    *solidity.Mapping[maia.Address, *big.Int]
	allowances  *solidity.Mapping[maia.Bytes32, *big.Int]
	whitelist   *solidity.Mapping[maia.Address, bool]
}

func New(addr maia.Address, state *state.State) *Gold {
	ctx := solidity.NewContext(addr, state)
	return &Gold{
		addr:        addr,
		owner:       solidity.NewAddress(ctx, slotOwner),
		treasury:    solidity.NewAddress(ctx, slotTreasury),
		tax:         solidity.NewUint256(ctx, slotTax),
		totalSupply: solidity.NewUint256(ctx, slotTotalSupply),
		balances:    solidity.NewMapping[maia.Address, *big.Int](ctx, slotBalances),
		allowances:  solidity.NewMapping[maia.Bytes32, *big.Int](ctx, slotAllowances),
		whitelist:   solidity.NewMapping[maia.Address, bool](ctx, slotWhitelist),
	}
}

// Address returns the token address.
func (g *Gold) Address() maia.Address {
	return g.addr
}

// Initialize mints the whole supply to owner. It can be called once.
func (g *Gold) Initialize(owner maia.Address, supply *big.Int) error {
	current, err := g.owner.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return errInitialized
	}
	g.owner.Set(owner)
	g.totalSupply.Set(supply)
	if err := g.balances.Set(owner, new(big.Int).Set(supply)); err != nil {
		return err
	}
	logger.Info("initialized", "owner", owner, "supply", supply)
	return nil
}

func (g *Gold) Owner() (maia.Address, error) {
	return g.owner.Get()
}

func (g *Gold) onlyOwner(caller maia.Address) error {
	owner, err := g.owner.Get()
	if err != nil {
		return err
	}
	if owner != caller {
		return reverts.ErrUnauthorized
	}
	return nil
}

func (g *Gold) TotalSupply() (*big.Int, error) {
	return g.totalSupply.Get()
}

// BalanceOf returns the balance of addr, zero when never funded.
func (g *Gold) BalanceOf(addr maia.Address) (*big.Int, error) {
	bal, err := g.balances.Get(addr)
	if err != nil {
		return nil, err
	}
	if bal == nil {
		return new(big.Int), nil
	}
	return bal, nil
}

func allowanceKey(owner, spender maia.Address) maia.Bytes32 {
	return maia.Blake2b(owner.Bytes(), spender.Bytes())
}

func (g *Gold) Allowance(owner, spender maia.Address) (*big.Int, error) {
	v, err := g.allowances.Get(allowanceKey(owner, spender))
	if err != nil {
		return nil, err
	}
	if v == nil {
		return new(big.Int), nil
	}
	return v, nil
}

func (g *Gold) Approve(owner, spender maia.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.ErrNegativeAmount
	}
	if spender.IsZero() {
		return reverts.ErrZeroAddressTransfer
	}
	return g.allowances.Set(allowanceKey(owner, spender), new(big.Int).Set(amount))
}

func (g *Gold) IncreaseAllowance(owner, spender maia.Address, added *big.Int) error {
	if added.Sign() < 0 {
		return reverts.ErrNegativeAmount
	}
	current, err := g.Allowance(owner, spender)
	if err != nil {
		return err
	}
	return g.Approve(owner, spender, current.Add(current, added))
}

func (g *Gold) DecreaseAllowance(owner, spender maia.Address, subtracted *big.Int) error {
	if subtracted.Sign() < 0 {
		return reverts.ErrNegativeAmount
	}
	current, err := g.Allowance(owner, spender)
	if err != nil {
		return err
	}
	if current.Cmp(subtracted) < 0 {
		return errAllowanceBelowZero
	}
	return g.Approve(owner, spender, current.Sub(current, subtracted))
}

// Transfer moves amount from from to to, charging the transfer tax.
func (g *Gold) Transfer(from, to maia.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.ErrNegativeAmount
	}
	if to.IsZero() {
		return reverts.ErrZeroAddressTransfer
	}
	fromBal, err := g.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}

	tax, treasury, err := g.transferTax(from, to, amount)
	if err != nil {
		return err
	}

	if err := g.balances.Set(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}
	if err := g.credit(to, new(big.Int).Sub(amount, tax)); err != nil {
		return err
	}
	if tax.Sign() > 0 {
		if err := g.credit(treasury, tax); err != nil {
			return err
		}
	}
	logger.Debug("transfer", "from", from, "to", to, "amount", amount, "tax", tax)
	return nil
}

// TransferFrom spends allowance granted by from to spender.
func (g *Gold) TransferFrom(spender, from, to maia.Address, amount *big.Int) error {
	allowance, err := g.Allowance(from, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return reverts.ErrInsufficientAllowance
	}
	if err := g.Transfer(from, to, amount); err != nil {
		return err
	}
	return g.allowances.Set(allowanceKey(from, spender), allowance.Sub(allowance, amount))
}

func (g *Gold) credit(addr maia.Address, amount *big.Int) error {
	bal, err := g.BalanceOf(addr)
	if err != nil {
		return err
	}
	return g.balances.Set(addr, bal.Add(bal, amount))
}

func (g *Gold) transferTax(from, to maia.Address, amount *big.Int) (*big.Int, maia.Address, error) {
	tax := new(big.Int)
	bps, err := g.tax.Get()
	if err != nil {
		return nil, maia.Address{}, err
	}
	treasury, err := g.treasury.Get()
	if err != nil {
		return nil, maia.Address{}, err
	}
	if bps.Sign() == 0 || treasury.IsZero() {
		return tax, treasury, nil
	}
	for _, addr := range []maia.Address{from, to} {
		exempt, err := g.whitelist.Get(addr)
		if err != nil {
			return nil, maia.Address{}, err
		}
		if exempt {
			return tax, treasury, nil
		}
	}
	tax.Mul(amount, bps)
	tax.Div(tax, new(big.Int).SetUint64(maia.BpsDenominator))
	return tax, treasury, nil
}

// SetTax sets the transfer tax in basis points.
func (g *Gold) SetTax(caller maia.Address, bps uint64) error {
	if err := g.onlyOwner(caller); err != nil {
		return err
	}
	if bps > maia.BpsDenominator {
		return errInvalidTax
	}
	g.tax.Set(new(big.Int).SetUint64(bps))
	logger.Info("tax updated", "bps", bps)
	return nil
}

func (g *Gold) Tax() (uint64, error) {
	bps, err := g.tax.Get()
	if err != nil {
		return 0, err
	}
	return bps.Uint64(), nil
}

func (g *Gold) SetTreasury(caller, treasury maia.Address) error {
	if err := g.onlyOwner(caller); err != nil {
		return err
	}
	g.treasury.Set(treasury)
	logger.Info("treasury updated", "treasury", treasury)
	return nil
}

func (g *Gold) Treasury() (maia.Address, error) {
	return g.treasury.Get()
}

// SetWhitelist exempts addr from the transfer tax, on either side of a transfer.
func (g *Gold) SetWhitelist(caller, addr maia.Address, exempt bool) error {
	if err := g.onlyOwner(caller); err != nil {
		return err
	}
	return g.whitelist.Set(addr, exempt)
}

func (g *Gold) IsWhitelisted(addr maia.Address) (bool, error) {
	return g.whitelist.Get(addr)
}
