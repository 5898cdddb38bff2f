// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"github.com/freyrlabs/freyr/freyr"
)

// Bytes32 is a wrapper for storage and retrieval of [32]byte
type Bytes32 struct {
	context *Context
	pos     freyr.Bytes32
}

func NewBytes32(context *Context, pos freyr.Bytes32) *Bytes32 {
	return &Bytes32{context: context, pos: pos}
}

func (b *Bytes32) Get() (freyr.Bytes32, error) {
	return b.context.state.GetStorage(b.context.address, b.pos)
}

func (b *Bytes32) Set(bytes *freyr.Bytes32) {
	if bytes == nil {
		bytes = &freyr.Bytes32{}
	}
	b.context.state.SetStorage(b.context.address, b.pos, *bytes)
}
