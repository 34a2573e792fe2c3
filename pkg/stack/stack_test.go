package stack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeArgs(t *testing.T) {
	s := Stack{ComposeFile: "docker-compose.test.yml", Project: "gantry-test"}

	args := s.composeArgs("up", "-d", "--build")
	assert.Equal(t, []string{
		"compose", "-f", "docker-compose.test.yml", "-p", "gantry-test",
		"up", "-d", "--build",
	}, args)
}

func TestWaitReadySucceedsAfterRetries(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	err := WaitReady(context.Background(), ts.URL, 10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestWaitReadyExhaustsRetries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	err := WaitReady(context.Background(), ts.URL, 2)
	assert.Error(t, err)
}

func TestWaitReadyHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitReady(ctx, "http://127.0.0.1:1/", 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCurrentBranchFromEnv(t *testing.T) {
	t.Setenv("GIT_BRANCH", "origin/main")
	assert.Equal(t, "main", CurrentBranch(context.Background()))

	t.Setenv("GIT_BRANCH", "")
	t.Setenv("BRANCH_NAME", "develop")
	assert.Equal(t, "develop", CurrentBranch(context.Background()))
}

func TestCurrentBranchKeepsSlashedNames(t *testing.T) {
	t.Setenv("GIT_BRANCH", "release/1.2")
	assert.Equal(t, "release/1.2", CurrentBranch(context.Background()))

	t.Setenv("GIT_BRANCH", "origin/release/1.2")
	assert.Equal(t, "release/1.2", CurrentBranch(context.Background()))

	t.Setenv("GIT_BRANCH", "refs/heads/feature/widget")
	assert.Equal(t, "feature/widget", CurrentBranch(context.Background()))
}
