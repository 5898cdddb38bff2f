// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/freyrlabs/freyr/eventdb"
	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/pool"
)

// EventMessage is one feed entry pushed to subscribers.
type EventMessage struct {
	Sequence    uint64               `json:"sequence"`
	Kind        pool.EventKind       `json:"kind"`
	Participant freyr.Address        `json:"participant"`
	Amount      math.HexOrDecimal256 `json:"amount"`
	Time        uint64               `json:"time"`
}

func convertEvent(ev *eventdb.Event) *EventMessage {
	return &EventMessage{
		Sequence:    ev.Sequence,
		Kind:        ev.Kind,
		Participant: ev.Participant,
		Amount:      math.HexOrDecimal256(*ev.Amount),
		Time:        ev.Time,
	}
}
