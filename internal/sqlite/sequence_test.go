package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/repository"
)

func testSequence(name string) *sequence.Sequence {
	return &sequence.Sequence{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      name,
		CreatedAt: time.Now(),
	}
}

func TestSequenceRepository_CreateAndGet(t *testing.T) {
	repo := NewSequenceRepository(NewTestDB(t))
	ctx := context.Background()

	seq := testSequence("SEQ_1")
	require.NoError(t, repo.Create(ctx, seq))

	got, err := repo.GetByName(ctx, "SEQ_1")
	require.NoError(t, err)
	require.Equal(t, seq.ID, got.ID)
	require.Equal(t, "SEQ_1", got.Name)
	require.False(t, got.NoSubNameField)
}

func TestSequenceRepository_DuplicateName(t *testing.T) {
	repo := NewSequenceRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testSequence("SEQ_1")))

	err := repo.Create(ctx, testSequence("SEQ_1"))
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestSequenceRepository_GetMissing(t *testing.T) {
	repo := NewSequenceRepository(NewTestDB(t))

	_, err := repo.GetByName(context.Background(), "NOPE")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSequenceRepository_ListOrdered(t *testing.T) {
	repo := NewSequenceRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testSequence("SEQ_B")))
	require.NoError(t, repo.Create(ctx, testSequence("SEQ_A")))

	seqs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	require.Equal(t, "SEQ_A", seqs[0].Name)
	require.Equal(t, "SEQ_B", seqs[1].Name)
}
