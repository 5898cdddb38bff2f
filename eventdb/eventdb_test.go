// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freyrlabs/freyr/eventdb"
	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/pool"
	"github.com/freyrlabs/freyr/test/datagen"
)

func newDB(t *testing.T) *eventdb.EventDB {
	db, err := eventdb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(db.Close)
	return db
}

func TestEventDB(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	a := datagen.RandAddress()
	b := datagen.RandAddress()

	assert.NoError(t, db.Write([]*pool.Event{
		{Kind: pool.EventStaked, Participant: a, Amount: big.NewInt(100), Time: 1000},
	}))
	assert.NoError(t, db.Write([]*pool.Event{
		{Kind: pool.EventStaked, Participant: b, Amount: big.NewInt(50), Time: 2000},
	}))
	assert.NoError(t, db.Write([]*pool.Event{
		{Kind: pool.EventUnstaked, Participant: a, Amount: big.NewInt(100), Time: 3000},
		{Kind: pool.EventClaimed, Participant: a, Amount: big.NewInt(77), Time: 3000},
	}))

	// nil filter returns everything in commit order
	all, err := db.Filter(ctx, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, pool.EventStaked, all[0].Kind)
	assert.Equal(t, a, all[0].Participant)
	assert.Equal(t, big.NewInt(100), all[0].Amount)
	assert.Equal(t, uint64(1000), all[0].Time)
	assert.True(t, all[0].Sequence < all[1].Sequence)

	// by participant
	got, err := db.Filter(ctx, &eventdb.Filter{Participant: &a})
	assert.NoError(t, err)
	assert.Len(t, got, 3)

	// by kind
	got, err = db.Filter(ctx, &eventdb.Filter{
		Kinds: []pool.EventKind{pool.EventUnstaked, pool.EventClaimed},
	})
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	// by time range
	got, err = db.Filter(ctx, &eventdb.Filter{
		Range: &eventdb.Range{From: 1500, To: 2500},
	})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, b, got[0].Participant)

	// descending with paging
	got, err = db.Filter(ctx, &eventdb.Filter{
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Offset: 0, Limit: 2},
	})
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, pool.EventClaimed, got[0].Kind)
	assert.Equal(t, pool.EventUnstaked, got[1].Kind)
}

func TestEventDB_Since(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	a := datagen.RandAddress()
	for i := range 5 {
		assert.NoError(t, db.Write([]*pool.Event{
			{Kind: pool.EventStaked, Participant: a, Amount: big.NewInt(int64(i + 1)), Time: uint64(1000 + i)},
		}))
	}

	latest, err := db.LatestSequence()
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), latest)

	got, err := db.Since(ctx, 2, 10)
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, uint64(3), got[0].Sequence)
	assert.Equal(t, uint64(5), got[2].Sequence)

	// limit caps the batch
	got, err = db.Since(ctx, 0, 2)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	// caught up
	got, err = db.Since(ctx, latest, 10)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestEventDB_EmptyWrite(t *testing.T) {
	db := newDB(t)

	assert.NoError(t, db.Write(nil))
	all, err := db.Filter(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestEventDB_ContextCancel(t *testing.T) {
	db := newDB(t)

	assert.NoError(t, db.Write([]*pool.Event{
		{Kind: pool.EventStaked, Participant: datagen.RandAddress(), Amount: big.NewInt(1), Time: 1},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := db.Filter(ctx, nil)
	assert.Error(t, err)
}
