// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"
	"time"
)

func TestFakeClock(t *testing.T) {
	t.Parallel()

	c := NewFakeClock(time.Time{})
	if got := c.Now(); !got.Equal(ReferenceTime) {
		t.Errorf("zero start should default to ReferenceTime, got %v", got)
	}
	if got := c.Now(); !got.Equal(ReferenceTime) {
		t.Errorf("clock moved on its own: %v", got)
	}

	later := ReferenceTime.Add(36 * time.Hour)
	c.Set(later)
	if got := c.Now(); !got.Equal(later) {
		t.Errorf("Now() after Set = %v, want %v", got, later)
	}
	if c.Reads() != 3 {
		t.Errorf("Reads() = %d, want 3", c.Reads())
	}
}
