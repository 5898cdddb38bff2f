// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakers exposes the participant lifecycle over REST. The caller
// identity is resolved upstream, handlers trust the address in the path.
package stakers

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/freyrlabs/freyr/api/utils"
	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/node"
	"github.com/freyrlabs/freyr/pool/reverts"
)

type Stakers struct {
	node *node.Node
}

func New(node *node.Node) *Stakers {
	return &Stakers{node}
}

// convertOpError maps pool rule violations to 403 and leaves internal
// failures to surface as 500.
func convertOpError(err error) error {
	if reverts.IsRevertErr(err) {
		return utils.Forbidden(err)
	}
	return err
}

func parseAddress(req *http.Request) (freyr.Address, error) {
	addr, err := freyr.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return freyr.Address{}, utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return *addr, nil
}

func (s *Stakers) handleGetStakers(w http.ResponseWriter, _ *http.Request) error {
	participants, err := s.node.Participants()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, participants)
}

func (s *Stakers) handleGetActive(w http.ResponseWriter, _ *http.Request) error {
	active, err := s.node.ActiveParticipants()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, active)
}

func (s *Stakers) handleGetStaker(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	detail, err := s.node.StakerDetail(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertDetail(detail))
}

func (s *Stakers) handleStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	var body StakeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("amount: missing"))
	}
	events, err := s.node.Stake(addr, (*big.Int)(body.Amount))
	if err != nil {
		return convertOpError(err)
	}
	return utils.WriteJSON(w, convertEvents(events))
}

func (s *Stakers) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	events, err := s.node.Unstake(addr)
	if err != nil {
		return convertOpError(err)
	}
	return utils.WriteJSON(w, convertEvents(events))
}

func (s *Stakers) handleClaim(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	events, err := s.node.Claim(addr)
	if err != nil {
		return convertOpError(err)
	}
	return utils.WriteJSON(w, convertEvents(events))
}

func (s *Stakers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("stakers_get_all").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStakers))
	sub.Path("/active").
		Methods(http.MethodGet).
		Name("stakers_get_active").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetActive))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("stakers_get_one").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStaker))
	sub.Path("/{address}/stake").
		Methods(http.MethodPost).
		Name("stakers_post_stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))
	sub.Path("/{address}/unstake").
		Methods(http.MethodPost).
		Name("stakers_post_unstake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/{address}/claim").
		Methods(http.MethodPost).
		Name("stakers_post_claim").
		HandlerFunc(utils.WrapHandlerFunc(s.handleClaim))
}
