// SPDX-License-Identifier: MPL-2.0

package vcs

import "github.com/taosdata/taosrelease/internal/runner"

// New returns the Provider for backend rooted at dir. The git backend runs
// through r so dry runs and tests can intercept it.
func New(backend Backend, dir string, r runner.Runner) (Provider, error) {
	if err := backend.Validate(); err != nil {
		return nil, err
	}
	if backend == BackendGoGit {
		return &GoGitProvider{Dir: dir}, nil
	}
	return &CLIProvider{Runner: r, Dir: dir}, nil
}
