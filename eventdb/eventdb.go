// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb journals committed pool events into sqlite. Entries are
// written after a successful state commit only, so the journal never holds
// a rolled back operation.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"

	_ "github.com/mattn/go-sqlite3"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/pool"
)

type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// Range bounds the query by event time, inclusive on both ends.
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter filter
type Filter struct {
	Kinds       []pool.EventKind `json:"kinds"`
	Participant *freyr.Address   `json:"participant"`
	Order       OrderType        `json:"order"` // default asc
	Range       *Range           `json:"range"`
	Options     *Options         `json:"options"`
}

// Event is a journalled entry, Sequence reflects global commit order.
type Event struct {
	Sequence    uint64
	Kind        pool.EventKind
	Participant freyr.Address
	Amount      *big.Int
	Time        uint64
}

// EventDB manages all journalled pool events.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

// New open an event db
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		db.Close()
		return nil, err
	}
	s := sqliteDriverVersion()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem create a memory sqlite db
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Write appends the events of one committed operation in a single sql tx.
func (db *EventDB) Write(events []*pool.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	for _, event := range events {
		if _, err = tx.Exec("INSERT INTO event(kind ,participant ,amount ,eventTime) VALUES ( ?, ?, ?, ?); ",
			string(event.Kind),
			event.Participant.Bytes(),
			event.Amount.Bytes(),
			event.Time); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Filter return events with options
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query(ctx, "SELECT seq, kind, participant, amount, eventTime FROM event ORDER BY seq ASC")
	}
	var args []interface{}
	stmt := "SELECT seq, kind, participant, amount, eventTime FROM event WHERE 1"
	length := len(filter.Kinds)
	if length > 0 {
		for i, kind := range filter.Kinds {
			if i == 0 {
				stmt += " AND ( kind = ? "
			} else {
				stmt += " OR kind = ? "
			}
			args = append(args, string(kind))
		}
		stmt += " ) "
	}
	if filter.Participant != nil {
		args = append(args, filter.Participant.Bytes())
		stmt += " AND participant = ? "
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND eventTime >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND eventTime <= ? "
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

// Since returns up to limit events whose sequence is greater than afterSeq,
// oldest first. It backs the live subscription feed.
func (db *EventDB) Since(ctx context.Context, afterSeq, limit uint64) ([]*Event, error) {
	return db.query(ctx,
		"SELECT seq, kind, participant, amount, eventTime FROM event WHERE seq > ? ORDER BY seq ASC LIMIT ?",
		afterSeq, limit)
}

// LatestSequence returns the sequence of the newest journalled event, zero
// for an empty journal.
func (db *EventDB) LatestSequence() (uint64, error) {
	var seq uint64
	if err := db.db.QueryRow("SELECT IFNULL(MAX(seq), 0) FROM event").Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

// query query events
func (db *EventDB) query(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq         uint64
			kind        string
			participant []byte
			amount      []byte
			eventTime   uint64
		)
		if err := rows.Scan(
			&seq,
			&kind,
			&participant,
			&amount,
			&eventTime,
		); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			Sequence:    seq,
			Kind:        pool.EventKind(kind),
			Participant: freyr.BytesToAddress(participant),
			Amount:      new(big.Int).SetBytes(amount),
			Time:        eventTime,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// Path return db's directory
func (db *EventDB) Path() string {
	return db.path
}

// Close close sqlite
func (db *EventDB) Close() {
	db.db.Close()
}
