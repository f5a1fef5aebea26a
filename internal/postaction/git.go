package postaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agentx-labs/kickstart/internal/runner"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitialCommitMessage is used for the first commit of a new project.
const InitialCommitMessage = "Initial commit"

// GitInit creates a repository in the project, stages everything and makes
// the initial commit. With Runner set it shells out to the git CLI;
// otherwise it uses go-git and needs no git binary.
type GitInit struct {
	AuthorName  string
	AuthorEmail string
	Runner      runner.CommandRunner
	Now         func() time.Time
}

func (g *GitInit) Name() string   { return "git init" }
func (g *GitInit) Prompt() string { return "Initialize a git repository?" }

// Run implements Action.
func (g *GitInit) Run(ctx context.Context, dir string) error {
	if g.Runner != nil {
		return g.runCLI(ctx, dir)
	}
	return g.runNative(dir)
}

func (g *GitInit) runNative(dir string) error {
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryAlreadyExists) {
			return fmt.Errorf("%s is already a git repository", dir)
		}
		return fmt.Errorf("initializing repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("staging files: %w", err)
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	_, err = wt.Commit(InitialCommitMessage, &git.CommitOptions{
		Author: &object.Signature{
			Name:  g.AuthorName,
			Email: g.AuthorEmail,
			When:  now(),
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return fmt.Errorf("creating initial commit: %w", err)
	}
	return nil
}

func (g *GitInit) runCLI(ctx context.Context, dir string) error {
	steps := [][]string{
		{"init"},
		{"add", "-A"},
		{"-c", "user.name=" + g.AuthorName, "-c", "user.email=" + g.AuthorEmail,
			"commit", "--allow-empty", "-m", InitialCommitMessage},
	}
	for _, args := range steps {
		if err := runner.Check(ctx, g.Runner, "git", args, dir); err != nil {
			return err
		}
	}
	return nil
}
