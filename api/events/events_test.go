// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freyrlabs/freyr/api/events"
	"github.com/freyrlabs/freyr/eventdb"
	"github.com/freyrlabs/freyr/pool"
	"github.com/freyrlabs/freyr/test/datagen"
)

const queryLimit = 5

func initEventsServer(t *testing.T, journal []*pool.Event) *httptest.Server {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Write(journal))

	router := mux.NewRouter()
	events.New(db, queryLimit).Mount(router, "/events")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func postFilter(t *testing.T, ts *httptest.Server, filter *eventdb.Filter) ([]*events.FilteredEvent, int) {
	data, err := json.Marshal(filter)
	require.NoError(t, err)
	res, err := http.Post(ts.URL+"/events", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())
	if res.StatusCode != http.StatusOK {
		return nil, res.StatusCode
	}
	var fes []*events.FilteredEvent
	require.NoError(t, json.Unmarshal(body, &fes))
	return fes, res.StatusCode
}

func TestEvents_Filter(t *testing.T) {
	alice := datagen.RandAddress()
	bob := datagen.RandAddress()
	journal := []*pool.Event{
		{Kind: pool.EventStaked, Participant: alice, Amount: big.NewInt(100), Time: 10},
		{Kind: pool.EventStaked, Participant: bob, Amount: big.NewInt(200), Time: 20},
		{Kind: pool.EventClaimed, Participant: alice, Amount: big.NewInt(30), Time: 30},
		{Kind: pool.EventUnstaked, Participant: alice, Amount: big.NewInt(100), Time: 40},
	}
	ts := initEventsServer(t, journal)

	// no filter, defaults applied
	fes, statusCode := postFilter(t, ts, &eventdb.Filter{})
	require.Equal(t, http.StatusOK, statusCode)
	require.Len(t, fes, 4)
	assert.Equal(t, uint64(1), fes[0].Sequence)
	assert.Equal(t, pool.EventStaked, fes[0].Kind)
	assert.Equal(t, big.NewInt(100), (*big.Int)(&fes[0].Amount))

	fes, _ = postFilter(t, ts, &eventdb.Filter{Kinds: []pool.EventKind{pool.EventClaimed}})
	require.Len(t, fes, 1)
	assert.Equal(t, alice, fes[0].Participant)

	fes, _ = postFilter(t, ts, &eventdb.Filter{Participant: &bob})
	require.Len(t, fes, 1)
	assert.Equal(t, big.NewInt(200), (*big.Int)(&fes[0].Amount))

	fes, _ = postFilter(t, ts, &eventdb.Filter{Range: &eventdb.Range{From: 20, To: 30}})
	require.Len(t, fes, 2)

	fes, _ = postFilter(t, ts, &eventdb.Filter{Order: eventdb.DESC})
	require.Len(t, fes, 4)
	assert.Equal(t, uint64(4), fes[0].Sequence)

	fes, _ = postFilter(t, ts, &eventdb.Filter{Options: &eventdb.Options{Offset: 1, Limit: 2}})
	require.Len(t, fes, 2)
	assert.Equal(t, uint64(2), fes[0].Sequence)
}

func TestEvents_LimitEnforced(t *testing.T) {
	ts := initEventsServer(t, nil)

	_, statusCode := postFilter(t, ts, &eventdb.Filter{Options: &eventdb.Options{Limit: queryLimit + 1}})
	assert.Equal(t, http.StatusForbidden, statusCode)

	_, statusCode = postFilter(t, ts, &eventdb.Filter{Options: &eventdb.Options{Limit: queryLimit}})
	assert.Equal(t, http.StatusOK, statusCode)
}

func TestEvents_MalformedBody(t *testing.T) {
	ts := initEventsServer(t, nil)

	res, err := http.Post(ts.URL+"/events", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.NoError(t, res.Body.Close())

	res, err = http.Post(ts.URL+"/events", "application/json", strings.NewReader(`{"bogus": 1}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	require.NoError(t, res.Body.Close())
}
