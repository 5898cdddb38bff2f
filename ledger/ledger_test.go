// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/lvldb"
	"github.com/freyrlabs/freyr/state"
	"github.com/freyrlabs/freyr/test/datagen"
)

var (
	vault   = freyr.BytesToAddress([]byte("vault"))
	reserve = freyr.BytesToAddress([]byte("reserve"))
)

func newLedger() *Ledger {
	kv, _ := lvldb.NewMem()
	return New(state.New(kv), vault, reserve)
}

func TestLedger_MintAndBalance(t *testing.T) {
	led := newLedger()
	addr := datagen.RandAddress()

	balance, err := led.Balance(addr)
	assert.NoError(t, err)
	assert.Equal(t, "0", balance.String())

	assert.NoError(t, led.Mint(addr, big.NewInt(1000)))
	assert.NoError(t, led.Mint(addr, big.NewInt(500)))

	balance, err = led.Balance(addr)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1500), balance)
}

func TestLedger_PullPush(t *testing.T) {
	led := newLedger()
	addr := datagen.RandAddress()

	assert.NoError(t, led.Mint(addr, big.NewInt(100)))
	assert.NoError(t, led.Pull(addr, big.NewInt(60)))

	balance, _ := led.Balance(addr)
	assert.Equal(t, big.NewInt(40), balance)
	balance, _ = led.Balance(vault)
	assert.Equal(t, big.NewInt(60), balance)

	assert.NoError(t, led.Push(addr, big.NewInt(60)))
	balance, _ = led.Balance(addr)
	assert.Equal(t, big.NewInt(100), balance)
	balance, _ = led.Balance(vault)
	assert.Equal(t, "0", balance.String())
}

func TestLedger_PayReward(t *testing.T) {
	led := newLedger()
	addr := datagen.RandAddress()

	assert.NoError(t, led.Mint(reserve, big.NewInt(1000)))
	assert.NoError(t, led.PayReward(addr, big.NewInt(250)))

	balance, _ := led.Balance(addr)
	assert.Equal(t, big.NewInt(250), balance)
	balance, _ = led.Balance(reserve)
	assert.Equal(t, big.NewInt(750), balance)
}

func TestLedger_Insufficient(t *testing.T) {
	led := newLedger()
	addr := datagen.RandAddress()

	assert.NoError(t, led.Mint(addr, big.NewInt(10)))

	err := led.Pull(addr, big.NewInt(11))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// balances untouched on failure
	balance, _ := led.Balance(addr)
	assert.Equal(t, big.NewInt(10), balance)
	balance, _ = led.Balance(vault)
	assert.Equal(t, "0", balance.String())

	err = led.PayReward(addr, big.NewInt(1))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}
