// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freyrlabs/freyr/api/utils"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"no error", nil, http.StatusOK, ""},
		{"bad request", utils.BadRequest(errors.New("amount")), http.StatusBadRequest, "amount"},
		{"forbidden", utils.Forbidden(errors.New("locked")), http.StatusForbidden, "locked"},
		{"not found", utils.NotFound(errors.New("unknown")), http.StatusNotFound, "unknown"},
		{"custom status", utils.HTTPError(errors.New("slow down"), http.StatusTooManyRequests), http.StatusTooManyRequests, "slow down"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := utils.WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
				return tt.err
			})
			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Amount string `json:"amount"`
	}
	assert.NoError(t, utils.ParseJSON(strings.NewReader(`{"amount":"1"}`), &v))
	assert.Equal(t, "1", v.Amount)

	// unknown fields are rejected
	assert.Error(t, utils.ParseJSON(strings.NewReader(`{"amount":"1","extra":true}`), &v))
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.NoError(t, utils.WriteJSON(rec, utils.M{"ok": true}))
	assert.Equal(t, utils.JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
