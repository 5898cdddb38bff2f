// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakers

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/node"
	"github.com/freyrlabs/freyr/pool"
)

// StakeRequest is the body of a stake call.
type StakeRequest struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// Staker for marshal a participant record
type Staker struct {
	Address       freyr.Address        `json:"address"`
	AmountStaked  math.HexOrDecimal256 `json:"amountStaked"`
	RewardClaimed math.HexOrDecimal256 `json:"rewardClaimed"`
	Pending       math.HexOrDecimal256 `json:"pending"`
	StakeTime     uint64               `json:"stakeTime"`
	Active        bool                 `json:"active"`
}

// Event for marshal a committed pool event
type Event struct {
	Kind        pool.EventKind       `json:"kind"`
	Participant freyr.Address        `json:"participant"`
	Amount      math.HexOrDecimal256 `json:"amount"`
	Time        uint64               `json:"time"`
}

func convertDetail(d *node.StakerDetail) *Staker {
	return &Staker{
		Address:       d.Address,
		AmountStaked:  math.HexOrDecimal256(*d.AmountStaked),
		RewardClaimed: math.HexOrDecimal256(*d.RewardClaimed),
		Pending:       math.HexOrDecimal256(*d.Pending),
		StakeTime:     d.StakeTime,
		Active:        d.Active,
	}
}

func convertEvents(events []*pool.Event) []*Event {
	converted := make([]*Event, len(events))
	for i, ev := range events {
		converted[i] = &Event{
			Kind:        ev.Kind,
			Participant: ev.Participant,
			Amount:      math.HexOrDecimal256(*ev.Amount),
			Time:        ev.Time,
		}
	}
	return converted
}
