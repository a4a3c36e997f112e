// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"sync"
	"time"
)

// ReferenceTime is the timestamp used when a test does not care which one.
// It matches the commit date of InitGitRepo.
var ReferenceTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// FakeClock stands in for the build timestamp source. It always returns the
// same instant until Set is called, and counts how often it was read.
type FakeClock struct {
	mu    sync.Mutex
	at    time.Time
	reads int
}

// NewFakeClock returns a clock fixed at at, or at ReferenceTime when at is zero.
func NewFakeClock(at time.Time) *FakeClock {
	if at.IsZero() {
		at = ReferenceTime
	}
	return &FakeClock{at: at}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	return c.at
}

// Set moves the clock to at.
func (c *FakeClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = at
}

// Reads returns the number of Now calls so far.
func (c *FakeClock) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}
