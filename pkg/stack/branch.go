package stack

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

// CurrentBranch resolves the branch under build: CI-provided environment
// variables win, then git itself is asked. Returns "" when undetectable.
func CurrentBranch(ctx context.Context) string {
	for _, env := range []string{"GIT_BRANCH", "BRANCH_NAME"} {
		if v := os.Getenv(env); v != "" {
			// Jenkins-style refs like origin/main carry a remote prefix.
			// Slashes inside branch names (release/1.2) must survive.
			v = strings.TrimPrefix(v, "refs/heads/")
			v = strings.TrimPrefix(v, "refs/remotes/")
			v = strings.TrimPrefix(v, "origin/")
			return v
		}
	}

	out, err := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
