// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"time"

	"github.com/beevik/ntp"
)

const (
	houseKeepingInterval = time.Minute
	// drift beyond this is worth warning about, lock-in and window checks
	// run on the wall clock
	clockTolerance = 10 * time.Second
)

// houseKeeping periodically refreshes pool gauges and watches for clock
// drift. It never advances the accumulator, that stays caller-driven.
func (n *Node) houseKeeping(sc chan struct{}) {
	logger.Debug("enter housekeeping")
	defer logger.Debug("leave housekeeping")

	ticker := time.NewTicker(houseKeepingInterval)
	defer ticker.Stop()

	var ntpChecks int
	for {
		select {
		case <-sc:
			return
		case <-ticker.C:
			n.updateGauges()
			ntpChecks++
			if ntpChecks >= 30 {
				ntpChecks = 0
				go CheckClockOffset()
			}
		}
	}
}

func (n *Node) updateGauges() {
	summary, err := n.Summary()
	if err != nil {
		logger.Warn("failed to read pool summary", "err", err)
		return
	}
	metricTotalStaked().Set(summary.TotalStaked.Int64())
	metricActiveCount().Set(int64(summary.ActiveCount))
	metricRemainingBudget().Set(summary.RemainingBudget.Int64())

	logger.Debug("pool status",
		"staked", summary.TotalStaked,
		"active", summary.ActiveCount,
		"remaining", summary.RemainingBudget,
	)
}

// CheckClockOffset queries NTP and warns when the local clock drifts beyond
// the tolerance. Failures to reach NTP are not errors.
func CheckClockOffset() {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		logger.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > clockTolerance || resp.ClockOffset < -clockTolerance {
		logger.Warn("clock offset detected", "offset", resp.ClockOffset)
	}
}
