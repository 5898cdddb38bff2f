// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package campaign

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/freyrlabs/freyr/api/utils"
	"github.com/freyrlabs/freyr/node"
)

type Campaign struct {
	node *node.Node
}

func New(node *node.Node) *Campaign {
	return &Campaign{node}
}

func (c *Campaign) handleGetSummary(w http.ResponseWriter, _ *http.Request) error {
	summary, err := c.node.Summary()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertSummary(summary))
}

func (c *Campaign) handleGetEmission(w http.ResponseWriter, _ *http.Request) error {
	summary, err := c.node.Summary()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertEmission(summary))
}

func (c *Campaign) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("campaign_get_summary").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetSummary))
	sub.Path("/emission").
		Methods(http.MethodGet).
		Name("campaign_get_emission").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetEmission))
}
