// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package wsclient bridges the websocket event feed into typed channels.
package wsclient

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/freyrlabs/freyr/api/subscriptions"
)

// ErrUnexpectedMsg marks reads that ended with a non-decodable frame, which
// includes the peer closing the connection.
var ErrUnexpectedMsg = errors.New("unexpected message format")

type Client struct {
	host   string
	scheme string
}

func NewClient(url string) (*Client, error) {
	var host string
	var scheme string

	if strings.Contains(url, "https://") || strings.Contains(url, "wss://") {
		host = strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "wss://")
		scheme = "wss"
	} else if strings.Contains(url, "http://") || strings.Contains(url, "ws://") {
		host = strings.TrimPrefix(strings.TrimPrefix(url, "http://"), "ws://")
		scheme = "ws"
	} else {
		return nil, fmt.Errorf("invalid url")
	}

	return &Client{
		host:   strings.TrimSuffix(host, "/"),
		scheme: scheme,
	}, nil
}

// SubscribeEvents streams journalled events beginning right after pos.
// Pass nil to start from the latest sequence.
func (c *Client) SubscribeEvents(pos *uint64) (*Subscription[*subscriptions.EventMessage], error) {
	var query string
	if pos != nil {
		query = "pos=" + strconv.FormatUint(*pos, 10)
	}
	conn, err := c.connect("/subscriptions/event", query)
	if err != nil {
		return nil, fmt.Errorf("unable to connect - %w", err)
	}

	return subscribe[subscriptions.EventMessage](conn), nil
}

// subscribe starts a reader over the websocket connection and returns the
// typed subscription. The event channel is closed once reading fails, after
// a final wrapper carrying the error; consumers should drain the channel.
func subscribe[T any](conn *websocket.Conn) *Subscription[*T] {
	eventChan := make(chan EventWrapper[*T])

	go func() {
		defer close(eventChan)

		for {
			var data T
			if err := conn.ReadJSON(&data); err != nil {
				eventChan <- EventWrapper[*T]{Error: fmt.Errorf("%w: %w", ErrUnexpectedMsg, err)}
				return
			}
			eventChan <- EventWrapper[*T]{Data: &data}
		}
	}()

	return &Subscription[*T]{
		EventChan:   eventChan,
		Unsubscribe: conn.Close,
	}
}

func (c *Client) connect(endpoint, rawQuery string) (*websocket.Conn, error) {
	u := url.URL{
		Scheme:   c.scheme,
		Host:     c.host,
		Path:     endpoint,
		RawQuery: rawQuery,
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}
