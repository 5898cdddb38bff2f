// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert marks a rule violation: the triggering operation was rejected
// and left no state mutation behind. It is distinct from internal state
// access errors, which are never of this type.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Rule violations raised by pool operations. Compare with errors.Is.
var (
	ErrInvalidAmount     = New("amount must be positive")
	ErrCampaignClosed    = New("campaign is closed")
	ErrNothingToWithdraw = New("nothing to withdraw")
	ErrStillLocked       = New("stake is still locked")
	ErrNoRewardDue       = New("no reward due")
	ErrTransferFailed    = New("transfer failed")
)

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}
