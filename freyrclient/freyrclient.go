// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package freyrclient exposes Go bindings for the Freyr pool API.
package freyrclient

import (
	"fmt"
	"math/big"

	"github.com/freyrlabs/freyr/api/campaign"
	"github.com/freyrlabs/freyr/api/events"
	"github.com/freyrlabs/freyr/api/stakers"
	"github.com/freyrlabs/freyr/api/subscriptions"
	"github.com/freyrlabs/freyr/eventdb"
	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/freyrclient/httpclient"
	"github.com/freyrlabs/freyr/freyrclient/wsclient"
)

type Client struct {
	httpConn *httpclient.Client
	wsConn   *wsclient.Client
}

// New creates a client over plain HTTP.
func New(url string) *Client {
	return &Client{
		httpConn: httpclient.New(url),
	}
}

// NewWithWS creates a client that can also subscribe to the event feed.
func NewWithWS(url string) (*Client, error) {
	wsClient, err := wsclient.NewClient(url)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpConn: httpclient.New(url),
		wsConn:   wsClient,
	}, nil
}

func (c *Client) RawHTTPClient() *httpclient.Client {
	return c.httpConn
}

func (c *Client) RawWSClient() *wsclient.Client {
	return c.wsConn
}

// Summary returns the campaign state.
func (c *Client) Summary() (*campaign.Summary, error) {
	return c.httpConn.GetSummary()
}

// Emission returns the current emission rates.
func (c *Client) Emission() (*campaign.Emission, error) {
	return c.httpConn.GetEmission()
}

// Stakers returns every address that ever joined the pool.
func (c *Client) Stakers() ([]freyr.Address, error) {
	return c.httpConn.GetStakers()
}

// ActiveStakers returns the addresses with stake currently in the pool.
func (c *Client) ActiveStakers() ([]freyr.Address, error) {
	return c.httpConn.GetActiveStakers()
}

// Staker returns the participant record for the given address.
func (c *Client) Staker(addr *freyr.Address) (*stakers.Staker, error) {
	return c.httpConn.GetStaker(addr)
}

// Stake deposits the given amount for the address.
func (c *Client) Stake(addr *freyr.Address, amount *big.Int) ([]*stakers.Event, error) {
	return c.httpConn.Stake(addr, amount)
}

// Unstake exits the pool for the address.
func (c *Client) Unstake(addr *freyr.Address) ([]*stakers.Event, error) {
	return c.httpConn.Unstake(addr)
}

// Claim pays out the pending reward for the address.
func (c *Client) Claim(addr *freyr.Address) ([]*stakers.Event, error) {
	return c.httpConn.Claim(addr)
}

// FilterEvents queries the event journal.
func (c *Client) FilterEvents(filter *eventdb.Filter) ([]*events.FilteredEvent, error) {
	return c.httpConn.FilterEvents(filter)
}

// SubscribeEvents streams journalled events beginning right after pos.
// Pass nil to start from the latest sequence.
func (c *Client) SubscribeEvents(pos *uint64) (*wsclient.Subscription[*subscriptions.EventMessage], error) {
	if c.wsConn == nil {
		return nil, fmt.Errorf("no websocket connection, use NewWithWS")
	}
	return c.wsConn.SubscribeEvents(pos)
}
