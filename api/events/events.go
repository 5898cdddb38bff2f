// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/freyrlabs/freyr/api/utils"
	"github.com/freyrlabs/freyr/eventdb"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{db, limit}
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter eventdb.Filter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if filter.Options != nil && filter.Options.Limit > e.limit {
		return utils.Forbidden(errors.New("options.limit exceeds the maximum allowed value"))
	}
	if filter.Options == nil {
		// guard against heavy queries
		filter.Options = &eventdb.Options{Offset: 0, Limit: e.limit}
	}
	events, err := e.db.Filter(req.Context(), &filter)
	if err != nil {
		return err
	}
	converted := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		converted[i] = convertEvent(ev)
	}
	return utils.WriteJSON(w, converted)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("events_filter").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
