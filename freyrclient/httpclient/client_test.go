// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpclient

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freyrlabs/freyr/api/campaign"
	"github.com/freyrlabs/freyr/api/events"
	"github.com/freyrlabs/freyr/api/stakers"
	"github.com/freyrlabs/freyr/eventdb"
	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/pool"
	"github.com/freyrlabs/freyr/test/datagen"
)

func hexOrDecimal(v int64) math.HexOrDecimal256 {
	return math.HexOrDecimal256(*big.NewInt(v))
}

func TestClient_GetSummary(t *testing.T) {
	expected := &campaign.Summary{
		Asset:           freyr.BytesToBytes32([]byte("FREY")),
		Budget:          hexOrDecimal(2400),
		DurationDays:    10,
		LockinDays:      3,
		StartTime:       1000,
		EndTime:         865000,
		TotalStaked:     hexOrDecimal(500),
		TotalRewardPaid: hexOrDecimal(40),
		RemainingBudget: hexOrDecimal(2360),
		AccPerShare:     hexOrDecimal(1),
		LastAdvanceTime: 2000,
		ActiveCount:     2,
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campaign", r.URL.Path)

		summaryBytes, _ := json.Marshal(expected)
		w.Write(summaryBytes)
	}))
	defer ts.Close()

	client := New(ts.URL)
	summary, err := client.GetSummary()

	assert.NoError(t, err)
	assert.Equal(t, expected, summary)
}

func TestClient_GetStaker(t *testing.T) {
	addr := datagen.RandAddress()
	expected := &stakers.Staker{
		Address:       addr,
		AmountStaked:  hexOrDecimal(500),
		RewardClaimed: hexOrDecimal(40),
		Pending:       hexOrDecimal(7),
		StakeTime:     1234,
		Active:        true,
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stakers/"+addr.String(), r.URL.Path)

		stakerBytes, _ := json.Marshal(expected)
		w.Write(stakerBytes)
	}))
	defer ts.Close()

	client := New(ts.URL)
	staker, err := client.GetStaker(&addr)

	assert.NoError(t, err)
	assert.Equal(t, expected, staker)
}

func TestClient_Stake(t *testing.T) {
	addr := datagen.RandAddress()
	expected := []*stakers.Event{{
		Kind:        pool.EventStaked,
		Participant: addr,
		Amount:      hexOrDecimal(500),
		Time:        1234,
	}}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stakers/"+addr.String()+"/stake", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		body, _ := io.ReadAll(r.Body)
		var req stakers.StakeRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, big.NewInt(500), (*big.Int)(req.Amount))

		eventBytes, _ := json.Marshal(expected)
		w.Write(eventBytes)
	}))
	defer ts.Close()

	client := New(ts.URL)
	evs, err := client.Stake(&addr, big.NewInt(500))

	assert.NoError(t, err)
	assert.Equal(t, expected, evs)
}

func TestClient_FilterEvents(t *testing.T) {
	addr := datagen.RandAddress()
	filter := &eventdb.Filter{Kinds: []pool.EventKind{pool.EventClaimed}}
	expected := []*events.FilteredEvent{{
		Sequence:    3,
		Kind:        pool.EventClaimed,
		Participant: addr,
		Amount:      hexOrDecimal(40),
		Time:        5678,
	}}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var got eventdb.Filter
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, filter.Kinds, got.Kinds)

		eventBytes, _ := json.Marshal(expected)
		w.Write(eventBytes)
	}))
	defer ts.Close()

	client := New(ts.URL)
	filtered, err := client.FilterEvents(filter)

	assert.NoError(t, err)
	assert.Equal(t, expected, filtered)
}

func TestClient_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := New(ts.URL)
	_, err := client.GetSummary()

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("deposit window closed"))
	}))
	defer ts.Close()

	addr := datagen.RandAddress()
	client := New(ts.URL)
	_, err := client.Stake(&addr, big.NewInt(1))

	assert.ErrorIs(t, err, ErrNot200Status)
	assert.Contains(t, err.Error(), "deposit window closed")
}
