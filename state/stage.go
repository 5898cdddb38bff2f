// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/kv"
)

// Stage abstracts pending changes on the main store.
type Stage struct {
	store    kv.GetPutter
	accounts []stagedAccount
}

type stagedAccount struct {
	addr    freyr.Address
	data    Account
	storage map[freyr.Bytes32]rlp.RawValue
}

// Commit commits all changes into the main store in one batch.
func (s *Stage) Commit() error {
	batch := s.store.NewBatch()
	for _, sa := range s.accounts {
		if err := saveAccount(batch, sa.addr, &sa.data); err != nil {
			return &Error{err}
		}
		for k, v := range sa.storage {
			if err := saveStorage(batch, sa.addr, k, v); err != nil {
				return &Error{err}
			}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	return nil
}
