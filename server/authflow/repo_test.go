package authflow_test

import (
	"testing"
	"time"

	"github.com/heritagegraph/dashboard-gateway/server/authflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepoRoundTrip(t *testing.T) {
	repo := authflow.NewInMemoryRepo()

	stored := &authflow.State{Nonce: "n1", ReturnURL: "/dashboard", CreatedAt: time.Now()}
	require.NoError(t, repo.Upsert("s1", stored))

	got, err := repo.Get("s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "n1", got.Nonce)
	assert.Equal(t, "/dashboard", got.ReturnURL)

	// Mutating the returned copy must not leak back into the repo
	got.Nonce = "tampered"
	again, err := repo.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "n1", again.Nonce)
}

func TestInMemoryRepoGetUnknown(t *testing.T) {
	repo := authflow.NewInMemoryRepo()

	got, err := repo.Get("missing")
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestInMemoryRepoDelete(t *testing.T) {
	repo := authflow.NewInMemoryRepo()

	require.NoError(t, repo.Upsert("s1", &authflow.State{Nonce: "n1", CreatedAt: time.Now()}))
	require.NoError(t, repo.Delete("s1"))

	got, err := repo.Get("s1")
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestStateExpired(t *testing.T) {
	now := time.Now()
	state := &authflow.State{Nonce: "n1", CreatedAt: now.Add(-20 * time.Minute)}

	assert.True(t, state.Expired(15*time.Minute, now))
	assert.False(t, state.Expired(30*time.Minute, now))
}
