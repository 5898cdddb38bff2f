// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package member keeps the per-participant staking records and the two
// participation rosters. The all-participants roster records each address
// once, on first enrollment. The active roster is append-only and gains one
// entry per activation, so an address that unstakes and stakes again appears
// more than once. Liveness is tracked by the stats active counter, never by
// roster length.
package member

import (
	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/sslot"
)

type Service struct {
	storage *Storage
}

func New(ctx *sslot.Context) *Service {
	return &Service{storage: newStorage(ctx)}
}

// GetRecord returns the participant's record, a zeroed record if the
// participant was never seen. Big fields are always non-nil.
func (s *Service) GetRecord(participant freyr.Address) (*StakerRecord, error) {
	return s.storage.getRecord(participant)
}

// SaveRecord persists the participant's record.
func (s *Service) SaveRecord(participant freyr.Address, record *StakerRecord) error {
	return s.storage.setRecord(participant, record)
}

// IsEnrolled reports whether the participant has a stored record, zeroed or
// not. A fully withdrawn participant stays enrolled.
func (s *Service) IsEnrolled(participant freyr.Address) (bool, error) {
	return s.storage.hasRecord(participant)
}

// EnrollParticipant adds the participant to the all-time roster.
func (s *Service) EnrollParticipant(participant freyr.Address) error {
	return s.storage.appendAll(participant)
}

// MarkActive appends the participant to the active roster. Re-activation
// appends again, the roster keeps history rather than uniqueness.
func (s *Service) MarkActive(participant freyr.Address) error {
	return s.storage.appendActive(participant)
}

// AllParticipants lists every address that ever staked, in enrollment order.
func (s *Service) AllParticipants() ([]freyr.Address, error) {
	return s.storage.allParticipants()
}

// ActiveParticipants lists the active roster in append order, duplicates
// included.
func (s *Service) ActiveParticipants() ([]freyr.Address, error) {
	return s.storage.activeParticipants()
}
