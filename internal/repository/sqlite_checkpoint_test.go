package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelasco/stride/internal/domain"
	"github.com/avelasco/stride/internal/testutil"
)

func TestCheckpointRepo_CreateBatchAndList(t *testing.T) {
	conn := testutil.NewTestDB(t)
	sessions := NewSQLiteSessionRepo(conn)
	repo := NewSQLiteCheckpointRepo(conn)
	ctx := context.Background()

	s := testutil.NewTestSession()
	require.NoError(t, sessions.Create(ctx, s))

	cps := []domain.Checkpoint{
		*testutil.NewTestCheckpoint(s.ID, testutil.WithSequence(1)),
		*testutil.NewTestCheckpoint(s.ID, testutil.WithSequence(2)),
	}
	require.NoError(t, repo.CreateBatch(ctx, cps))

	got, err := repo.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].SequenceOrder)
	assert.Equal(t, 2, got[1].SequenceOrder)
	assert.Equal(t, domain.PhaseDiscovery, got[0].Phase)
	assert.False(t, got[0].IsComplete)
	assert.Equal(t, []string{"desired outcome named"}, got[0].CompletionCriteria)
}

func TestCheckpointRepo_Update(t *testing.T) {
	conn := testutil.NewTestDB(t)
	sessions := NewSQLiteSessionRepo(conn)
	repo := NewSQLiteCheckpointRepo(conn)
	ctx := context.Background()

	s := testutil.NewTestSession()
	require.NoError(t, sessions.Create(ctx, s))

	cp := testutil.NewTestCheckpoint(s.ID)
	require.NoError(t, repo.CreateBatch(ctx, []domain.Checkpoint{*cp}))

	cp.IsComplete = true
	cp.CompletionConfidence = 0.9
	cp.EvidenceCollected = []string{"user named a measurable outcome"}
	cp.UpdatedAt = cp.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, cp))

	got, err := repo.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsComplete)
	assert.InDelta(t, 0.9, got[0].CompletionConfidence, 1e-9)
	assert.Equal(t, cp.EvidenceCollected, got[0].EvidenceCollected)
}

func TestCheckpointRepo_Update_NotFound(t *testing.T) {
	conn := testutil.NewTestDB(t)
	repo := NewSQLiteCheckpointRepo(conn)

	cp := testutil.NewTestCheckpoint("no-session")
	err := repo.Update(context.Background(), cp)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckpointRepo_DeleteByPhase(t *testing.T) {
	conn := testutil.NewTestDB(t)
	sessions := NewSQLiteSessionRepo(conn)
	repo := NewSQLiteCheckpointRepo(conn)
	ctx := context.Background()

	s := testutil.NewTestSession()
	require.NoError(t, sessions.Create(ctx, s))

	refine := testutil.NewTestCheckpoint(s.ID)
	refine.Phase = domain.PhaseRefinement
	cps := []domain.Checkpoint{
		*testutil.NewTestCheckpoint(s.ID),
		*refine,
	}
	require.NoError(t, repo.CreateBatch(ctx, cps))
	require.NoError(t, repo.DeleteByPhase(ctx, s.ID, domain.PhaseRefinement))

	got, err := repo.ListBySession(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.PhaseDiscovery, got[0].Phase)
}
