// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stats

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/sslot"
)

var (
	slotTotalStaked     = freyr.BytesToBytes32([]byte(("total-staked")))
	slotTotalRewardPaid = freyr.BytesToBytes32([]byte(("total-reward-paid")))
	slotAccPerShare     = freyr.BytesToBytes32([]byte(("acc-per-share")))
	slotLastAdvanceTime = freyr.BytesToBytes32([]byte(("last-advance-time")))
	slotActiveCount     = freyr.BytesToBytes32([]byte(("active-count")))
)

// Service manages pool-wide totals and the reward accumulator state.
// accPerShare carries the freyr.AccScale fixed-point factor.
type Service struct {
	totalStaked     *sslot.Uint256
	totalRewardPaid *sslot.Uint256
	accPerShare     *sslot.Uint256
	lastAdvanceTime *sslot.Uint256
	activeCount     *sslot.Uint256
}

func New(sctx *sslot.Context) *Service {
	return &Service{
		totalStaked:     sslot.NewUint256(sctx, slotTotalStaked),
		totalRewardPaid: sslot.NewUint256(sctx, slotTotalRewardPaid),
		accPerShare:     sslot.NewUint256(sctx, slotAccPerShare),
		lastAdvanceTime: sslot.NewUint256(sctx, slotLastAdvanceTime),
		activeCount:     sslot.NewUint256(sctx, slotActiveCount),
	}
}

// TotalStaked returns the sum of all active positions.
func (s *Service) TotalStaked() (*big.Int, error) {
	return s.totalStaked.Get()
}

// TotalRewardPaid returns the cumulative reward ever paid out.
func (s *Service) TotalRewardPaid() (*big.Int, error) {
	return s.totalRewardPaid.Get()
}

// AccPerShare returns the scaled reward-per-unit-staked accumulator.
func (s *Service) AccPerShare() (*big.Int, error) {
	return s.accPerShare.Get()
}

// LastAdvanceTime returns the instant the accumulator was last caught up.
func (s *Service) LastAdvanceTime() (uint64, error) {
	last, err := s.lastAdvanceTime.Get()
	if err != nil {
		return 0, err
	}
	return last.Uint64(), nil
}

// ActiveCount returns the number of currently active participants.
func (s *Service) ActiveCount() (uint64, error) {
	count, err := s.activeCount.Get()
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

// AddStaked increases the staked total on a deposit.
func (s *Service) AddStaked(amount *big.Int) error {
	return s.totalStaked.Add(amount)
}

// SubStaked decreases the staked total on a withdrawal.
func (s *Service) SubStaked(amount *big.Int) error {
	total, err := s.totalStaked.Get()
	if err != nil {
		return err
	}
	if total.Cmp(amount) < 0 {
		return errors.New("staked total underflow")
	}
	s.totalStaked.Set(total.Sub(total, amount))
	return nil
}

// AddRewardPaid increases the cumulative payout total.
func (s *Service) AddRewardPaid(amount *big.Int) error {
	return s.totalRewardPaid.Add(amount)
}

// AddAccPerShare bumps the accumulator by a scaled per-share increment.
func (s *Service) AddAccPerShare(scaled *big.Int) error {
	return s.accPerShare.Add(scaled)
}

// SetLastAdvanceTime moves the accumulator clock forward.
func (s *Service) SetLastAdvanceTime(now uint64) {
	s.lastAdvanceTime.Set(new(big.Int).SetUint64(now))
}

// IncActiveCount bumps the active participant counter.
func (s *Service) IncActiveCount() error {
	return s.activeCount.Add(big.NewInt(1))
}

// DecActiveCount drops the active participant counter.
func (s *Service) DecActiveCount() error {
	count, err := s.activeCount.Get()
	if err != nil {
		return err
	}
	if count.Sign() == 0 {
		return errors.New("active count is already 0")
	}
	s.activeCount.Set(count.Sub(count, big.NewInt(1)))
	return nil
}
