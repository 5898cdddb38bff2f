// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/freyrlabs/freyr/api/campaign"
	"github.com/freyrlabs/freyr/api/events"
	"github.com/freyrlabs/freyr/api/stakers"
	"github.com/freyrlabs/freyr/api/subscriptions"
	"github.com/freyrlabs/freyr/log"
	"github.com/freyrlabs/freyr/node"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins string
	LogsLimit      uint64
	PprofOn        bool
	EnableMetrics  bool
}

// New return api router
func New(
	node *node.Node,
	logRequests *atomic.Bool,
	opts Options,
) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	campaign.New(node).
		Mount(router, "/campaign")
	stakers.New(node).
		Mount(router, "/stakers")
	events.New(node.EventDB(), opts.LogsLimit).
		Mount(router, "/events")
	subs := subscriptions.New(node.EventDB(), node.EventFeed())
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsHandler)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	handler = RequestLoggerHandler(handler, logger, logRequests)

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
