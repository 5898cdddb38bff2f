// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIComposition(t *testing.T) {
	n := newTestNode(t)

	var logRequests atomic.Bool
	handler, closer := New(n, &logRequests, Options{
		AllowedOrigins: "*",
		LogsLimit:      100,
	})
	defer closer()

	ts := httptest.NewServer(handler)
	defer ts.Close()

	body, code := httpGet(t, ts.URL+"/campaign")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "budget")

	body, code = httpGet(t, ts.URL+"/stakers")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))

	res, err := http.Post(ts.URL+"/events", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, res.Body.Close())
}

func TestAPICors(t *testing.T) {
	n := newTestNode(t)

	var logRequests atomic.Bool
	handler, closer := New(n, &logRequests, Options{AllowedOrigins: "*"})
	defer closer()

	ts := httptest.NewServer(handler)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/campaign", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	require.NoError(t, res.Body.Close())
}
