// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitRepo describes a repository created by InitGitRepo.
type GitRepo struct {
	Dir    string
	Branch string
	Commit string
}

// InitGitRepo creates a repository at dir on branch with one commit, without
// needing a git executable. It is usable from testscript Setup as well as
// from tests, so it returns an error instead of taking a testing.TB.
func InitGitRepo(dir, branch string) (GitRepo, error) {
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(branch),
		},
	})
	if err != nil {
		return GitRepo{}, fmt.Errorf("init repository: %w", err)
	}

	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# taos_odbc\n"), 0o644); err != nil {
		return GitRepo{}, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return GitRepo{}, err
	}
	if _, err := wt.Add("README.md"); err != nil {
		return GitRepo{}, fmt.Errorf("stage README.md: %w", err)
	}
	hash, err := wt.Commit("initial import", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Release Bot",
			Email: "release@example.com",
			When:  ReferenceTime,
		},
	})
	if err != nil {
		return GitRepo{}, fmt.Errorf("commit: %w", err)
	}

	return GitRepo{Dir: dir, Branch: branch, Commit: hash.String()}, nil
}

// MustInitGitRepo is InitGitRepo for tests.
func MustInitGitRepo(t testing.TB, dir, branch string) GitRepo {
	t.Helper()
	repo, err := InitGitRepo(dir, branch)
	if err != nil {
		t.Fatalf("failed to init git repository in %s: %v", dir, err)
	}
	return repo
}
