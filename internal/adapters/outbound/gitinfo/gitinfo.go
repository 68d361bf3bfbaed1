package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/openkraft/sourcescan/internal/domain"
)

// GitInfoAdapter implements domain.GitInfo using go-git. The scanned root
// may be any directory inside a work tree.
type GitInfoAdapter struct{}

var _ domain.GitInfo = (*GitInfoAdapter)(nil)

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(root string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
}

func (g *GitInfoAdapter) IsGitRepo(root string) bool {
	_, err := open(root)
	return err == nil
}

// CommitHash returns the full hash of HEAD.
func (g *GitInfoAdapter) CommitHash(root string) (string, error) {
	repo, err := open(root)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// ShortHash trims a commit hash for display.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
