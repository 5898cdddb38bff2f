// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package subscriptions streams committed pool events over websocket.
// A subscriber names its journal position and receives every later event
// in commit order, the backlog first, then live pushes.
package subscriptions

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/freyrlabs/freyr/api/utils"
	"github.com/freyrlabs/freyr/co"
	"github.com/freyrlabs/freyr/eventdb"
	"github.com/freyrlabs/freyr/log"
)

const messageCacheSize = 512

var logger = log.WithContext("pkg", "subscriptions")

type Subscriptions struct {
	db       *eventdb.EventDB
	feed     *co.Signal
	upgrader *websocket.Upgrader
	cache    *messageCache
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(db *eventdb.EventDB, feed *co.Signal) *Subscriptions {
	return &Subscriptions{
		db:   db,
		feed: feed,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		cache: newMessageCache(messageCacheSize),
		done:  make(chan struct{}),
	}
}

// parsePosition resolves the starting cursor. An absent pos means "from now",
// events already journalled are skipped.
func (s *Subscriptions) parsePosition(posStr string) (uint64, error) {
	latest, err := s.db.LatestSequence()
	if err != nil {
		return 0, err
	}
	if posStr == "" {
		return latest, nil
	}
	pos, err := strconv.ParseUint(posStr, 10, 64)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "pos"))
	}
	if pos > latest {
		return 0, utils.BadRequest(errors.New("pos: beyond latest sequence"))
	}
	return pos, nil
}

func (s *Subscriptions) handleEventFeed(w http.ResponseWriter, req *http.Request) error {
	fromSeq, err := s.parsePosition(req.URL.Query().Get("pos"))
	if err != nil {
		return err
	}

	conn, closed, err := s.setupConn(w, req)
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return err
	}

	session := uuid.NewRandom().String()
	logger.Debug("subscriber connected", "session", session, "pos", fromSeq)

	err = s.pipe(req.Context(), conn, fromSeq, closed)
	if err != nil {
		logger.Debug("subscriber dropped", "session", session, "err", err)
	} else {
		logger.Debug("subscriber left", "session", session)
	}
	s.closeConn(conn, err)
	return nil
}

// setupConn upgrades the request and starts the read loop that watches for
// the peer closing its end.
func (s *Subscriptions) setupConn(w http.ResponseWriter, req *http.Request) (*websocket.Conn, chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return nil, nil, err
	}
	closed := make(chan struct{})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(closed)
				return
			}
		}
	}()
	return conn, closed, nil
}

func (s *Subscriptions) closeConn(conn *websocket.Conn, err error) {
	var closeMsg []byte
	if err != nil {
		closeMsg = websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
	} else {
		closeMsg = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	}
	if err := conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
		logger.Debug("write close message", "err", err)
	}
	if err := conn.Close(); err != nil {
		logger.Debug("close websocket", "err", err)
	}
}

// pipe drains the journal past the cursor, then alternates between waiting
// on the feed and draining what was committed meanwhile.
func (s *Subscriptions) pipe(ctx context.Context, conn *websocket.Conn, fromSeq uint64, closed chan struct{}) error {
	reader := newEventReader(s.db, s.cache, fromSeq)
	waiter := s.feed.NewWaiter()
	for {
		msgs, err := reader.Read(ctx)
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
		}
		if len(msgs) > 0 {
			// drain the backlog before blocking
			continue
		}
		select {
		case <-waiter.C():
		case <-closed:
			return nil
		case <-s.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close disconnects all subscribers and waits for their loops to settle.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("subscriptions_event_feed").
		HandlerFunc(utils.WrapHandlerFunc(s.handleEventFeed))
}
