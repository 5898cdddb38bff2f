// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/freyrlabs/freyr/eventdb"
	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/pool"
)

// FilteredEvent for marshal a journalled event
type FilteredEvent struct {
	Sequence    uint64               `json:"sequence"`
	Kind        pool.EventKind       `json:"kind"`
	Participant freyr.Address        `json:"participant"`
	Amount      math.HexOrDecimal256 `json:"amount"`
	Time        uint64               `json:"time"`
}

func convertEvent(ev *eventdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Sequence:    ev.Sequence,
		Kind:        ev.Kind,
		Participant: ev.Participant,
		Amount:      math.HexOrDecimal256(*ev.Amount),
		Time:        ev.Time,
	}
}
