// Package difficulty retunes the proof of work difficulty based on how long
// it took to produce the most recent block.
package difficulty

import (
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
)

// Minimum is the lowest difficulty the controller will ever produce.
const Minimum uint = 1

// =============================================================================

// Config represents the settings for the controller.
type Config struct {
	Initial uint          // Difficulty to start with and return to on reset.
	Target  time.Duration // Expected time between two blocks.
	Max     uint          // Highest difficulty allowed, zero means no ceiling.
}

// Controller maintains the current difficulty.
type Controller struct {
	mu      sync.RWMutex
	current uint
	initial uint
	target  time.Duration
	max     uint
}

// New constructs a controller starting at the configured initial difficulty.
func New(cfg Config) *Controller {
	initial := cfg.Initial
	if initial < Minimum {
		initial = Minimum
	}
	if cfg.Max > 0 && initial > cfg.Max {
		initial = cfg.Max
	}

	return &Controller{
		current: initial,
		initial: initial,
		target:  cfg.Target,
		max:     cfg.Max,
	}
}

// Current returns the current difficulty.
func (c *Controller) Current() uint {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

// Target returns the expected time between two blocks.
func (c *Controller) Target() time.Duration {
	return c.target
}

// Reset puts the controller back to the initial difficulty.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.initial
}

// Retune adjusts the difficulty using the timestamps of the two most recent
// blocks provided. It does nothing when fewer than two blocks are provided.
func (c *Controller) Retune(recent []chain.Block) uint {
	if len(recent) < 2 {
		return c.Current()
	}

	prev := recent[len(recent)-2]
	last := recent[len(recent)-1]

	return c.Adjust(last.Timestamp.Sub(prev.Timestamp))
}

// Adjust moves the difficulty up by one when the elapsed time is under the
// target and down by one when over it. The difficulty never goes below
// Minimum and never above the configured ceiling.
func (c *Controller) Adjust(elapsed time.Duration) uint {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case elapsed < c.target:
		if c.max == 0 || c.current < c.max {
			c.current++
		}

	case elapsed > c.target:
		if c.current > Minimum {
			c.current--
		}
	}

	return c.current
}
