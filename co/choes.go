// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Choes runs go routines that need an explicit stop signal.
// It is Goes plus a shared stop channel handed to every routine.
type Choes struct {
	wg       sync.WaitGroup
	stopChan chan struct{}
	once     sync.Once
}

// NewChoes initializes and returns a new Choes instance.
func NewChoes() *Choes {
	return &Choes{
		stopChan: make(chan struct{}),
	}
}

// Go runs f in a go routine. f receives the stop channel and should return
// once it becomes readable.
func (g *Choes) Go(f func(sc chan struct{})) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f(g.stopChan)
	}()
}

// Stop signals all go routines to stop by closing the stop channel.
// Safe to call more than once.
func (g *Choes) Stop() {
	g.once.Do(func() {
		close(g.stopChan)
	})
}

// Wait waits for all go routines started by 'Go' to complete.
func (g *Choes) Wait() {
	g.wg.Wait()
}

// Done returns a channel that is closed when all go routines have finished.
func (g *Choes) Done() chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.wg.Wait()
	}()
	return done
}
