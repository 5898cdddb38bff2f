// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/state"
)

// Context binds slot wrappers to the storage address they operate on.
type Context struct {
	address freyr.Address
	state   *state.State
}

func NewContext(address freyr.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() freyr.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
