// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ExitCode is a process exit status. POSIX limits it to 0-255.
type ExitCode int

const (
	// ExitSuccess covers a full run, a finished single stage, and the
	// unrecognized-stage notice.
	ExitSuccess ExitCode = 0
	// ExitFailure is used for every fatal condition.
	ExitFailure ExitCode = 1

	maxExitCode ExitCode = 255
)

// ErrInvalidExitCode reports a code outside 0-255.
var ErrInvalidExitCode = errors.New("invalid exit code")

// Validate returns an error wrapping ErrInvalidExitCode when c cannot be
// passed to os.Exit portably.
func (c ExitCode) Validate() error {
	if c < ExitSuccess || c > maxExitCode {
		return fmt.Errorf("%w %d (must be in range 0-%d)", ErrInvalidExitCode, c, maxExitCode)
	}
	return nil
}

// OrFailure returns c when it is valid and ExitFailure otherwise.
func (c ExitCode) OrFailure() ExitCode {
	if c.Validate() != nil {
		return ExitFailure
	}
	return c
}

// IsSuccess reports whether c is zero.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
