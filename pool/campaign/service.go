// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package campaign

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/sslot"
)

var (
	slotBudget       = freyr.BytesToBytes32([]byte("campaign-budget"))
	slotDurationDays = freyr.BytesToBytes32([]byte("campaign-duration-days"))
	slotLockinDays   = freyr.BytesToBytes32([]byte("campaign-lockin-days"))
	slotStartTime    = freyr.BytesToBytes32([]byte("campaign-start-time"))
	slotAsset        = freyr.BytesToBytes32([]byte("campaign-asset"))
)

// Config is the immutable campaign definition, written once when the pool
// is initialized.
type Config struct {
	Budget       *big.Int      // total reward quantity released over the campaign
	DurationDays uint32        // campaign length
	LockinDays   uint32        // minimum holding period per deposit
	StartTime    uint64        // unix seconds, emission starts here
	Asset        freyr.Bytes32 // identity of the staked asset
}

// EndTime returns the instant the deposit window closes and emission stops.
func (c *Config) EndTime() uint64 {
	return c.StartTime + uint64(c.DurationDays)*freyr.SecondsPerDay
}

// DepositWindowOpen reports whether deposits are still accepted.
func (c *Config) DepositWindowOpen(now uint64) bool {
	return now < c.EndTime()
}

// LockinSeconds returns the lock-in period in seconds.
func (c *Config) LockinSeconds() uint64 {
	return uint64(c.LockinDays) * freyr.SecondsPerDay
}

// DailyRate returns the emission per day, truncated.
func (c *Config) DailyRate() *big.Int {
	return new(big.Int).Quo(c.Budget, new(big.Int).SetUint64(uint64(c.DurationDays)))
}

// HourlyEmission returns the emission per hour, truncated.
func (c *Config) HourlyEmission() *big.Int {
	return new(big.Int).Quo(c.DailyRate(), big.NewInt(24))
}

// Service reads and seeds the campaign parameters in slot storage.
type Service struct {
	budget       *sslot.Uint256
	durationDays *sslot.Uint256
	lockinDays   *sslot.Uint256
	startTime    *sslot.Uint256
	asset        *sslot.Bytes32
}

func New(sctx *sslot.Context) *Service {
	return &Service{
		budget:       sslot.NewUint256(sctx, slotBudget),
		durationDays: sslot.NewUint256(sctx, slotDurationDays),
		lockinDays:   sslot.NewUint256(sctx, slotLockinDays),
		startTime:    sslot.NewUint256(sctx, slotStartTime),
		asset:        sslot.NewBytes32(sctx, slotAsset),
	}
}

// Seeded reports whether the campaign parameters have been written.
func (s *Service) Seeded() (bool, error) {
	budget, err := s.budget.Get()
	if err != nil {
		return false, err
	}
	return budget.Sign() > 0, nil
}

// Seed writes the campaign definition. It refuses invalid configs and
// refuses to overwrite an existing one.
func (s *Service) Seed(cfg *Config) error {
	if cfg.Budget == nil || cfg.Budget.Sign() <= 0 {
		return errors.New("campaign budget must be positive")
	}
	if cfg.DurationDays == 0 {
		return errors.New("campaign duration must be positive")
	}
	seeded, err := s.Seeded()
	if err != nil {
		return errors.Wrap(err, "failed to check campaign")
	}
	if seeded {
		return errors.New("campaign already seeded")
	}

	s.budget.Set(cfg.Budget)
	s.durationDays.Set(new(big.Int).SetUint64(uint64(cfg.DurationDays)))
	s.lockinDays.Set(new(big.Int).SetUint64(uint64(cfg.LockinDays)))
	s.startTime.Set(new(big.Int).SetUint64(cfg.StartTime))
	s.asset.Set(&cfg.Asset)
	return nil
}

// Get returns the campaign definition.
func (s *Service) Get() (*Config, error) {
	budget, err := s.budget.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get budget")
	}
	duration, err := s.durationDays.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get duration")
	}
	lockin, err := s.lockinDays.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get lockin")
	}
	start, err := s.startTime.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get start time")
	}
	asset, err := s.asset.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get asset")
	}

	return &Config{
		Budget:       budget,
		DurationDays: uint32(duration.Uint64()),
		LockinDays:   uint32(lockin.Uint64()),
		StartTime:    start.Uint64(),
		Asset:        asset,
	}, nil
}
