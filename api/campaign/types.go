// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package campaign

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/node"
)

// Summary for marshal campaign state
type Summary struct {
	Asset           freyr.Bytes32        `json:"asset"`
	Budget          math.HexOrDecimal256 `json:"budget"`
	DurationDays    uint32               `json:"durationDays"`
	LockinDays      uint32               `json:"lockinDays"`
	StartTime       uint64               `json:"startTime"`
	EndTime         uint64               `json:"endTime"`
	TotalStaked     math.HexOrDecimal256 `json:"totalStaked"`
	TotalRewardPaid math.HexOrDecimal256 `json:"totalRewardPaid"`
	RemainingBudget math.HexOrDecimal256 `json:"remainingBudget"`
	AccPerShare     math.HexOrDecimal256 `json:"accPerShare"`
	LastAdvanceTime uint64               `json:"lastAdvanceTime"`
	ActiveCount     uint64               `json:"activeCount"`
}

// Emission for marshal emission rates
type Emission struct {
	DailyRate       math.HexOrDecimal256 `json:"dailyRate"`
	HourlyRate      math.HexOrDecimal256 `json:"hourlyRate"`
	RemainingBudget math.HexOrDecimal256 `json:"remainingBudget"`
}

func convertSummary(s *node.Summary) *Summary {
	return &Summary{
		Asset:           s.Campaign.Asset,
		Budget:          math.HexOrDecimal256(*s.Campaign.Budget),
		DurationDays:    s.Campaign.DurationDays,
		LockinDays:      s.Campaign.LockinDays,
		StartTime:       s.Campaign.StartTime,
		EndTime:         s.Campaign.EndTime(),
		TotalStaked:     math.HexOrDecimal256(*s.TotalStaked),
		TotalRewardPaid: math.HexOrDecimal256(*s.TotalRewardPaid),
		RemainingBudget: math.HexOrDecimal256(*s.RemainingBudget),
		AccPerShare:     math.HexOrDecimal256(*s.AccPerShare),
		LastAdvanceTime: s.LastAdvanceTime,
		ActiveCount:     s.ActiveCount,
	}
}

func convertEmission(s *node.Summary) *Emission {
	return &Emission{
		DailyRate:       math.HexOrDecimal256(*s.Campaign.DailyRate()),
		HourlyRate:      math.HexOrDecimal256(*s.HourlyEmission),
		RemainingBudget: math.HexOrDecimal256(*s.RemainingBudget),
	}
}
