package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reelworks/pipetrack/internal/config"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	t.Setenv(EnvKey, t.TempDir())

	repo, err := NewRepository(config.Default().Repository)
	require.NoError(t, err)
	return repo
}

func TestEnvOverridesConfiguredPath(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvKey, root)

	cfg := config.Default().Repository
	cfg.LinuxPath = "/somewhere/else"
	cfg.OSXPath = "/somewhere/else"

	repo, err := NewRepository(cfg)
	require.NoError(t, err)
	require.Equal(t, root, repo.Root())
	require.Equal(t, filepath.Join(root, "PROJ", ".metadata.db"), repo.StorePath("PROJ"))
}

func TestProjectNames(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// Only directories carrying a store count as projects.
	for _, name := range []string{"PROJ_B", "PROJ_A", "SCRATCH"} {
		require.NoError(t, os.MkdirAll(repo.ProjectPath(name), 0o755))
	}
	for _, name := range []string{"PROJ_A", "PROJ_B"} {
		require.NoError(t, os.WriteFile(repo.StorePath(name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(repo.Root(), "stray.txt"), nil, 0o644))

	names, err := repo.ProjectNames(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"PROJ_A", "PROJ_B"}, names)
}

func TestExistsAndEnsureDir(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	path := filepath.Join(repo.ProjectPath("PROJ"), "Sequences", "SEQ_1")

	found, err := repo.Exists(ctx, path)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, repo.EnsureDir(ctx, path))

	found, err = repo.Exists(ctx, path)
	require.NoError(t, err)
	require.True(t, found)
}

func TestCopyFile(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	src := filepath.Join(repo.Root(), "source.ma")
	require.NoError(t, os.WriteFile(src, []byte("scene data"), 0o644))

	dst := filepath.Join(repo.ProjectPath("PROJ"), "Assets", "Car", "copy.ma")
	require.NoError(t, repo.CopyFile(ctx, src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, []byte("scene data"), data)

	// A missing source is a plain filesystem error, not a dead mount.
	err = repo.CopyFile(ctx, filepath.Join(repo.Root(), "missing.ma"), dst)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NotErrorIs(t, err, ErrStorageUnavailable)
}

func TestBoundedErrorClassification(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// Filesystem errors pass through unchanged.
	_, err := repo.ReadDir(ctx, filepath.Join(repo.Root(), "NO_SUCH_DIR"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NotErrorIs(t, err, ErrStorageUnavailable)

	// The deadline paths surface ErrStorageUnavailable.
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	release := make(chan struct{})
	defer close(release)
	err = repo.bounded(canceled, func() error { <-release; return nil })
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestSplitProjectPath(t *testing.T) {
	repo := newTestRepository(t)

	name, rel, err := repo.SplitProjectPath(filepath.Join(repo.Root(), "PROJ", "Assets", "Car"))
	require.NoError(t, err)
	require.Equal(t, "PROJ", name)
	require.Equal(t, "Assets/Car", rel)

	name, rel, err = repo.SplitProjectPath(filepath.Join(repo.Root(), "PROJ"))
	require.NoError(t, err)
	require.Equal(t, "PROJ", name)
	require.Empty(t, rel)

	_, _, err = repo.SplitProjectPath("/outside/the/root")
	require.Error(t, err)
}

func TestLockProject(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	release, err := repo.LockProject(ctx, "PROJ")
	require.NoError(t, err)

	release()
	release() // safe to call twice

	release, err = repo.LockProject(ctx, "PROJ")
	require.NoError(t, err)
	release()
}
