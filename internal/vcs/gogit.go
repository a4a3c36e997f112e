// SPDX-License-Identifier: MPL-2.0

package vcs

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// detachedHead is what `git rev-parse --abbrev-ref HEAD` prints for a
// detached checkout.
const detachedHead = "HEAD"

// GoGitProvider reads the repository containing Dir with go-git.
type GoGitProvider struct {
	Dir string
}

// Branch returns the short name of the checked-out branch, or "HEAD".
func (p *GoGitProvider) Branch(ctx context.Context) (string, error) {
	repo, err := p.open(ctx)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("read HEAD in %s: %w", p.Dir, err)
	}
	if !head.Name().IsBranch() {
		return detachedHead, nil
	}
	return head.Name().Short(), nil
}

// Commit resolves ref (a branch, tag, hash or "HEAD") to a commit hash.
func (p *GoGitProvider) Commit(ctx context.Context, ref string) (string, error) {
	repo, err := p.open(ctx)
	if err != nil {
		return "", err
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("resolve %s in %s: %w", ref, p.Dir, err)
	}
	return hash.String(), nil
}

func (p *GoGitProvider) open(ctx context.Context) (*git.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := git.PlainOpenWithOptions(p.Dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", p.Dir, err)
	}
	return repo, nil
}
