// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/freyrlabs/freyr/freyr"
)

func RandAddress() (addr freyr.Address) {
	rand.Read(addr[:])
	return
}

func RandBytes32() (b freyr.Bytes32) {
	rand.Read(b[:])
	return
}
