// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpclient provides an HTTP client to interact with a Freyr pool node.
// It offers methods to read campaign state, staker records and journalled events,
// and to submit pool operations through HTTP requests.
package httpclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/freyrlabs/freyr/api/campaign"
	"github.com/freyrlabs/freyr/api/events"
	"github.com/freyrlabs/freyr/api/stakers"
	"github.com/freyrlabs/freyr/eventdb"
	"github.com/freyrlabs/freyr/freyr"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

// Client represents the HTTP client for interacting with a Freyr pool node.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
	}
}

// GetSummary retrieves the campaign state.
func (c *Client) GetSummary() (*campaign.Summary, error) {
	body, err := c.httpGET(c.url + "/campaign")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve campaign summary - %w", err)
	}

	var summary campaign.Summary
	if err = json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("unable to unmarshal campaign summary - %w", err)
	}

	return &summary, nil
}

// GetEmission retrieves the current emission rates.
func (c *Client) GetEmission() (*campaign.Emission, error) {
	body, err := c.httpGET(c.url + "/campaign/emission")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve emission - %w", err)
	}

	var emission campaign.Emission
	if err = json.Unmarshal(body, &emission); err != nil {
		return nil, fmt.Errorf("unable to unmarshal emission - %w", err)
	}

	return &emission, nil
}

// GetStakers retrieves every address that ever joined the pool.
func (c *Client) GetStakers() ([]freyr.Address, error) {
	body, err := c.httpGET(c.url + "/stakers")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve stakers - %w", err)
	}

	var addrs []freyr.Address
	if err = json.Unmarshal(body, &addrs); err != nil {
		return nil, fmt.Errorf("unable to unmarshal stakers - %w", err)
	}

	return addrs, nil
}

// GetActiveStakers retrieves the addresses with stake currently in the pool.
func (c *Client) GetActiveStakers() ([]freyr.Address, error) {
	body, err := c.httpGET(c.url + "/stakers/active")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve active stakers - %w", err)
	}

	var addrs []freyr.Address
	if err = json.Unmarshal(body, &addrs); err != nil {
		return nil, fmt.Errorf("unable to unmarshal active stakers - %w", err)
	}

	return addrs, nil
}

// GetStaker retrieves the participant record for the given address.
func (c *Client) GetStaker(addr *freyr.Address) (*stakers.Staker, error) {
	body, err := c.httpGET(c.url + "/stakers/" + addr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve staker - %w", err)
	}

	var staker stakers.Staker
	if err = json.Unmarshal(body, &staker); err != nil {
		return nil, fmt.Errorf("unable to unmarshal staker - %w", err)
	}

	return &staker, nil
}

// Stake deposits the given amount for the address and returns the
// committed events.
func (c *Client) Stake(addr *freyr.Address, amount *big.Int) ([]*stakers.Event, error) {
	req := stakers.StakeRequest{Amount: (*math.HexOrDecimal256)(amount)}
	body, err := c.httpPOST(c.url+"/stakers/"+addr.String()+"/stake", req)
	if err != nil {
		return nil, fmt.Errorf("unable to stake - %w", err)
	}

	return unmarshalEvents(body)
}

// Unstake exits the pool for the address, returning the principal and any
// accrued reward. It returns the committed events.
func (c *Client) Unstake(addr *freyr.Address) ([]*stakers.Event, error) {
	body, err := c.httpPOST(c.url+"/stakers/"+addr.String()+"/unstake", struct{}{})
	if err != nil {
		return nil, fmt.Errorf("unable to unstake - %w", err)
	}

	return unmarshalEvents(body)
}

// Claim pays out the pending reward for the address and returns the
// committed events.
func (c *Client) Claim(addr *freyr.Address) ([]*stakers.Event, error) {
	body, err := c.httpPOST(c.url+"/stakers/"+addr.String()+"/claim", struct{}{})
	if err != nil {
		return nil, fmt.Errorf("unable to claim - %w", err)
	}

	return unmarshalEvents(body)
}

// FilterEvents queries the event journal with the given filter.
func (c *Client) FilterEvents(filter *eventdb.Filter) ([]*events.FilteredEvent, error) {
	body, err := c.httpPOST(c.url+"/events", filter)
	if err != nil {
		return nil, fmt.Errorf("unable to filter events - %w", err)
	}

	var filtered []*events.FilteredEvent
	if err = json.Unmarshal(body, &filtered); err != nil {
		return nil, fmt.Errorf("unable to unmarshal events - %w", err)
	}

	return filtered, nil
}

func unmarshalEvents(body []byte) ([]*stakers.Event, error) {
	var evs []*stakers.Event
	if err := json.Unmarshal(body, &evs); err != nil {
		return nil, fmt.Errorf("unable to unmarshal events - %w", err)
	}
	return evs, nil
}

// RawHTTPPost sends a raw HTTP POST request to the specified URL with the provided data.
func (c *Client) RawHTTPPost(url string, calldata any) ([]byte, int, error) {
	var data []byte
	var err error

	if _, ok := calldata.([]byte); ok {
		data = calldata.([]byte)
	} else {
		data, err = json.Marshal(calldata)
		if err != nil {
			return nil, 0, fmt.Errorf("unable to marshal payload - %w", err)
		}
	}

	return c.rawHTTPRequest("POST", c.url+url, bytes.NewBuffer(data))
}

// RawHTTPGet sends a raw HTTP GET request to the specified URL.
func (c *Client) RawHTTPGet(url string) ([]byte, int, error) {
	return c.rawHTTPRequest("GET", c.url+url, nil)
}

func (c *Client) httpGET(url string) ([]byte, error) {
	body, status, err := c.rawHTTPRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return validateResponse(body, status)
}

func (c *Client) httpPOST(url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal payload - %w", err)
	}
	body, status, err := c.rawHTTPRequest("POST", url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	return validateResponse(body, status)
}

func (c *Client) rawHTTPRequest(method string, url string, payload io.Reader) ([]byte, int, error) {
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to create request - %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to perform request - %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("unable to read response body - %w", err)
	}

	return body, resp.StatusCode, nil
}

func validateResponse(body []byte, status int) ([]byte, error) {
	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("%w: %d - %s", ErrNot200Status, status, bytes.TrimSpace(body))
	}
}
