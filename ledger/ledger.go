// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger implements token accounting over state balances. The vault
// address holds staked principal, the reserve address holds the not yet
// distributed reward budget. Transfers are plain balance moves, atomicity
// comes from the state checkpoints of the caller.
package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/state"
)

// ErrInsufficientBalance is returned when a transfer exceeds the source
// balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

type Ledger struct {
	state   *state.State
	vault   freyr.Address
	reserve freyr.Address
}

// New create a new instance with the given vault and reserve addresses.
func New(state *state.State, vault, reserve freyr.Address) *Ledger {
	return &Ledger{
		state:   state,
		vault:   vault,
		reserve: reserve,
	}
}

// Balance returns the token balance of the address.
func (l *Ledger) Balance(addr freyr.Address) (*big.Int, error) {
	return l.state.GetBalance(addr)
}

// Mint credits freshly issued tokens to the address.
func (l *Ledger) Mint(addr freyr.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	balance, err := l.state.GetBalance(addr)
	if err != nil {
		return err
	}
	return l.state.SetBalance(addr, new(big.Int).Add(balance, amount))
}

// Pull moves staked principal from the participant into the vault.
func (l *Ledger) Pull(from freyr.Address, amount *big.Int) error {
	return l.transfer(from, l.vault, amount)
}

// Push returns principal from the vault to the participant.
func (l *Ledger) Push(to freyr.Address, amount *big.Int) error {
	return l.transfer(l.vault, to, amount)
}

// PayReward pays out rewards from the reserve to the participant.
func (l *Ledger) PayReward(to freyr.Address, amount *big.Int) error {
	return l.transfer(l.reserve, to, amount)
}

func (l *Ledger) transfer(from, to freyr.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	fromBalance, err := l.state.GetBalance(from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	toBalance, err := l.state.GetBalance(to)
	if err != nil {
		return err
	}
	if err := l.state.SetBalance(from, new(big.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	return l.state.SetBalance(to, new(big.Int).Add(toBalance, amount))
}
