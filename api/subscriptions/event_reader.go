// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"
	"encoding/json"

	"github.com/freyrlabs/freyr/eventdb"
)

const readChunk = 256

// eventReader walks the journal from a sequence cursor, in commit order.
type eventReader struct {
	db      *eventdb.EventDB
	cache   *messageCache
	nextSeq uint64
}

func newEventReader(db *eventdb.EventDB, cache *messageCache, fromSeq uint64) *eventReader {
	return &eventReader{
		db:      db,
		cache:   cache,
		nextSeq: fromSeq,
	}
}

// Read returns the marshalled messages past the cursor and advances it.
// An empty batch means the reader caught up with the journal.
func (r *eventReader) Read(ctx context.Context) ([][]byte, error) {
	events, err := r.db.Since(ctx, r.nextSeq, readChunk)
	if err != nil {
		return nil, err
	}
	msgs := make([][]byte, 0, len(events))
	for _, ev := range events {
		msg, _, err := r.cache.GetOrAdd(ev.Sequence, func() ([]byte, error) {
			return json.Marshal(convertEvent(ev))
		})
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
		r.nextSeq = ev.Sequence
	}
	return msgs, nil
}
