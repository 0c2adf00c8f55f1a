// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import "errors"

// User facing rejections. Callers match them with errors.Is.
var (
	ErrUnauthorized          = New("Ownable: caller is not the owner")
	ErrInsufficientStake     = New("insufficient stake")
	ErrNonTransferable       = New("Non transferable token")
	ErrZeroAddressTransfer   = New("ERC20: transfer to the zero address")
	ErrLocked                = New("stake is locked")
	ErrTooLittle             = New("amount too little")
	ErrDelegationCycle       = New("delegation cycle")
	ErrInsufficientAllowance = New("ERC20: transfer amount exceeds allowance")
	ErrInsufficientBalance   = New("ERC20: transfer amount exceeds balance")
	ErrPoolNotFound          = New("pool not found")
	ErrZeroAmount            = New("zero amount")
	ErrNegativeAmount        = New("negative amount")
	ErrMintOne               = New("can only mint one")
	ErrTransferOne           = New("can only transfer one")

	ErrTopStakerDelegation = Wrap(ErrDelegationCycle, "Top staker cannot delegate")
)

// ErrRevert is the error of a rejected operation. State changes made by the operation are reverted.
type ErrRevert struct {
	message string
	cause   *ErrRevert
}

// New creates a revert error with the message.
func New(message string) *ErrRevert {
	return &ErrRevert{message: message}
}

// Wrap creates a revert with its own message which still matches cause with errors.Is.
func Wrap(cause *ErrRevert, message string) *ErrRevert {
	return &ErrRevert{message: message, cause: cause}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// IsRevertErr reports whether err is, or wraps, a revert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	if errors.As(e, &ve) {
		return ve != nil
	}
	return false
}
