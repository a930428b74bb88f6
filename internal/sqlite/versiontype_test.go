package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/reelworks/pipetrack/internal/domain/versiontype"
	"github.com/reelworks/pipetrack/internal/repository"
)

func testType(name, code string, usage versiontype.Usage) *versiontype.Type {
	return &versiontype.Type{
		ID:           uuid.NewString(),
		Name:         name,
		Code:         code,
		Filename:     `{{.Version.BaseName}}_{{.Version.TakeName}}`,
		Path:         `{{.Project.Code}}/{{.Type.Code}}`,
		OutputPath:   `{{.Version.Path}}/Output`,
		Environments: []string{"Maya", "Houdini"},
		TypeFor:      usage,
	}
}

func TestTypeRepository_CreateAndGet(t *testing.T) {
	repo := NewTypeRepository(NewTestDB(t))
	ctx := context.Background()

	typ := testType("Animation", "ANIM", versiontype.ForShot)
	require.NoError(t, repo.Create(ctx, typ))

	byName, err := repo.GetByName(ctx, "Animation")
	require.NoError(t, err)
	require.Equal(t, typ.ID, byName.ID)
	require.Equal(t, []string{"Maya", "Houdini"}, byName.Environments)
	require.Equal(t, versiontype.ForShot, byName.TypeFor)

	byCode, err := repo.GetByCode(ctx, "ANIM")
	require.NoError(t, err)
	require.Equal(t, typ.ID, byCode.ID)

	_, err = repo.GetByCode(ctx, "NOPE")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTypeRepository_UniqueNameAndCode(t *testing.T) {
	repo := NewTypeRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testType("Animation", "ANIM", versiontype.ForShot)))

	err := repo.Create(ctx, testType("Animation", "ANIM2", versiontype.ForShot))
	require.ErrorIs(t, err, repository.ErrDuplicate)

	err = repo.Create(ctx, testType("Animation2", "ANIM", versiontype.ForShot))
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestTypeRepository_ListOrdered(t *testing.T) {
	repo := NewTypeRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testType("Model", "MODEL", versiontype.ForAsset)))
	require.NoError(t, repo.Create(ctx, testType("Animation", "ANIM", versiontype.ForShot)))

	types, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)
	require.Equal(t, "Animation", types[0].Name)
	require.Equal(t, "Model", types[1].Name)
}
