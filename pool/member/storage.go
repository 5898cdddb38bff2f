// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package member

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/sslot"
)

var (
	slotRecords = freyr.BytesToBytes32([]byte("staker-records"))
	slotAll     = freyr.BytesToBytes32([]byte("all-participants"))
	slotActive  = freyr.BytesToBytes32([]byte("active-participants"))
)

// Storage is the raw slot layout of participant bookkeeping. Records live in
// a mapping keyed by address, rosters are append-only arrays of addresses.
type Storage struct {
	records *sslot.Mapping[freyr.Address, *StakerRecord]
	all     *sslot.Array[freyr.Address]
	active  *sslot.Array[freyr.Address]
}

func newStorage(ctx *sslot.Context) *Storage {
	return &Storage{
		records: sslot.NewMapping[freyr.Address, *StakerRecord](ctx, slotRecords),
		all:     sslot.NewArray[freyr.Address](ctx, slotAll),
		active:  sslot.NewArray[freyr.Address](ctx, slotActive),
	}
}

func (s *Storage) getRecord(participant freyr.Address) (*StakerRecord, error) {
	record, err := s.records.Get(participant)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get staker record")
	}
	if record.AmountStaked == nil {
		record.AmountStaked = new(big.Int)
	}
	if record.RewardDebt == nil {
		record.RewardDebt = new(big.Int)
	}
	if record.RewardClaimed == nil {
		record.RewardClaimed = new(big.Int)
	}
	return record, nil
}

func (s *Storage) setRecord(participant freyr.Address, record *StakerRecord) error {
	if err := s.records.Set(participant, record); err != nil {
		return errors.Wrap(err, "failed to set staker record")
	}
	return nil
}

func (s *Storage) hasRecord(participant freyr.Address) (bool, error) {
	has, err := s.records.Has(participant)
	if err != nil {
		return false, errors.Wrap(err, "failed to probe staker record")
	}
	return has, nil
}

func (s *Storage) appendAll(participant freyr.Address) error {
	if err := s.all.Append(participant); err != nil {
		return errors.Wrap(err, "failed to append participant roster")
	}
	return nil
}

func (s *Storage) appendActive(participant freyr.Address) error {
	if err := s.active.Append(participant); err != nil {
		return errors.Wrap(err, "failed to append active roster")
	}
	return nil
}

func (s *Storage) allParticipants() ([]freyr.Address, error) {
	return collect(s.all)
}

func (s *Storage) activeParticipants() ([]freyr.Address, error) {
	return collect(s.active)
}

func collect(roster *sslot.Array[freyr.Address]) ([]freyr.Address, error) {
	out := []freyr.Address{}
	if err := roster.ForEach(func(_ uint64, addr freyr.Address) bool {
		out = append(out, addr)
		return true
	}); err != nil {
		return nil, errors.Wrap(err, "failed to walk roster")
	}
	return out, nil
}
