package tracker

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reelworks/pipetrack/internal/config"
	"github.com/reelworks/pipetrack/internal/discover"
	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/domain/project"
	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/domain/version"
	"github.com/reelworks/pipetrack/internal/storage"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	t.Setenv(storage.EnvKey, t.TempDir())

	cfg := config.Default()
	cfg.Users = append(cfg.Users, config.UserConfig{Name: "Ozgur Yilmaz", Initials: "oy"})

	tr, err := New(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { tr.Close() })
	return tr
}

func TestFindOrCreateProject(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	proj, created, err := tr.FindOrCreateProject(ctx, "test project 1")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "TEST_PROJECT_1", proj.Name)
	require.Equal(t, "SH", proj.Conventions.ShotPrefix)
	require.Equal(t, 25, proj.FPS)

	// The store file exists on disk.
	_, err = os.Stat(tr.Repository().StorePath("TEST_PROJECT_1"))
	require.NoError(t, err)

	// Any spelling that conditions to the same name finds the same
	// project.
	again, created, err := tr.FindOrCreateProject(ctx, "Test Project 1")
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, proj.ID, again.ID)

	names, err := tr.ListProjects(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"TEST_PROJECT_1"}, names)
}

func TestProjectSeeding(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, _, err := tr.FindOrCreateProject(ctx, "SEEDED")
	require.NoError(t, err)

	h, err := tr.Handle(ctx, "SEEDED")
	require.NoError(t, err)

	types, err := h.Types.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, types, 16)

	mayaTypes, err := h.Types.List(ctx, "Maya")
	require.NoError(t, err)
	require.NotEmpty(t, mayaTypes)
	for _, typ := range mayaTypes {
		require.Contains(t, typ.Environments, "Maya")
	}

	users, err := h.Store.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestGetProjectMissing(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.GetProject(context.Background(), "NOPE")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestShotVersionPipeline(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, _, err := tr.FindOrCreateProject(ctx, "TEST_PROJECT_1")
	require.NoError(t, err)

	seq, err := tr.CreateSequence(ctx, "TEST_PROJECT_1", "TEST_SEQ_1")
	require.NoError(t, err)
	require.Equal(t, "TEST_SEQ_1", seq.Name)

	// Sequence folders exist on disk.
	_, err = os.Stat(filepath.Join(tr.Repository().ProjectPath("TEST_PROJECT_1"),
		"Sequences", "TEST_SEQ_1", "Edit", "Offline"))
	require.NoError(t, err)

	h, err := tr.Handle(ctx, "TEST_PROJECT_1")
	require.NoError(t, err)
	_, err = h.Shots.Create(ctx, seq, shot.CreateRequest{Number: "1"})
	require.NoError(t, err)

	req := version.CreateRequest{
		TypeName:    "Animation",
		Environment: "Maya",
		CreatedBy:   "oy",
		Extension:   ".ma",
	}

	v1, err := tr.CreateShotVersion(ctx, "TEST_PROJECT_1", "TEST_SEQ_1", "SH001", req)
	require.NoError(t, err)
	require.Equal(t, 1, v1.VersionNumber)
	require.Equal(t, "SH001_MAIN_ANIM_v001_oy.ma", v1.Filename)
	require.Equal(t, "TEST_PROJECT_1/Sequences/TEST_SEQ_1/Shots/SH001/ANIM", v1.Path)

	v2, err := tr.CreateShotVersion(ctx, "TEST_PROJECT_1", "TEST_SEQ_1", "SH001", req)
	require.NoError(t, err)
	require.Equal(t, 2, v2.VersionNumber)

	// Version and output directories exist under the repository root.
	_, err = os.Stat(filepath.Join(tr.Repository().Root(), filepath.FromSlash(v1.Path)))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(tr.Repository().Root(), filepath.FromSlash(v1.OutputPath)))
	require.NoError(t, err)
}

func TestAssetVersionPipeline(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, _, err := tr.FindOrCreateProject(ctx, "TEST_PROJECT_1")
	require.NoError(t, err)

	h, err := tr.Handle(ctx, "TEST_PROJECT_1")
	require.NoError(t, err)
	_, err = h.Assets.Create(ctx, asset.CreateRequest{BaseName: "Car", TypeName: "Model"})
	require.NoError(t, err)

	v, err := tr.CreateAssetVersion(ctx, "TEST_PROJECT_1", "Car", "MAIN", "Model",
		version.CreateRequest{
			TypeName:    "Model",
			Environment: "Maya",
			CreatedBy:   "oy",
			Extension:   ".ma",
		})
	require.NoError(t, err)
	require.Equal(t, "Car_MAIN_MODEL_v001_oy.ma", v.Filename)
	require.Equal(t, "TEST_PROJECT_1/Assets/Car/MODEL", v.Path)
}

func TestScanAndReconcile(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, _, err := tr.FindOrCreateProject(ctx, "LEGACY")
	require.NoError(t, err)

	// Drop legacy files on disk behind the store's back.
	dir := filepath.Join(tr.Repository().ProjectPath("LEGACY"),
		"Sequences", "SEQ_1", "Shots", "SH001", "ANIM")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range []string{
		"SH001_MAIN_ANIM_v001_oy.ma",
		"SH001_MAIN_ANIM_v003_oy.ma",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	findings, err := tr.ScanAssets(ctx, "LEGACY", "", asset.Query{})
	require.NoError(t, err)
	require.Len(t, findings, 2)

	res, err := tr.ReconcileProject(ctx, "LEGACY", "")
	require.NoError(t, err)
	require.Equal(t, discover.Result{Added: 2, Skipped: 0}, res)

	res, err = tr.ReconcileProject(ctx, "LEGACY", "")
	require.NoError(t, err)
	require.Equal(t, discover.Result{Added: 0, Skipped: 2}, res)

	// Fresh versions continue above the reconciled maximum.
	h, err := tr.Handle(ctx, "LEGACY")
	require.NoError(t, err)
	n, err := h.Versions.NextNumber(ctx, "SH001", "MAIN")
	require.NoError(t, err)
	require.Equal(t, 4, n)

	// The sequence and shot were recovered from the file layout, and
	// the reconciled versions are owned by that shot.
	seq, err := h.Sequences.Get(ctx, "SEQ_1")
	require.NoError(t, err)
	sh, err := h.Shots.Get(ctx, seq, "1")
	require.NoError(t, err)

	versions, err := h.Versions.ListForShot(ctx, seq, sh)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.Equal(t, sh.ID, versions[0].OwnerID)
	require.Equal(t, "SH001_MAIN_ANIM_v001_oy.ma", versions[0].Filename)
	require.Equal(t, 3, versions[1].VersionNumber)
}

// Reconciling must attach versions to a shot the store already knows
// instead of inventing a second owner.
func TestReconcileIntoExistingShot(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, _, err := tr.FindOrCreateProject(ctx, "LEGACY")
	require.NoError(t, err)
	h, err := tr.Handle(ctx, "LEGACY")
	require.NoError(t, err)

	seq, err := h.Sequences.Create(ctx, "SEQ_1")
	require.NoError(t, err)
	sh, err := h.Shots.Create(ctx, seq, shot.CreateRequest{Number: "1"})
	require.NoError(t, err)

	dir := filepath.Join(tr.Repository().ProjectPath("LEGACY"),
		"Sequences", "SEQ_1", "Shots", "SH001", "ANIM")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SH001_MAIN_ANIM_v001_oy.ma"), nil, 0o644))

	res, err := tr.ReconcileProject(ctx, "LEGACY", "")
	require.NoError(t, err)
	require.Equal(t, discover.Result{Added: 1, Skipped: 0}, res)

	versions, err := h.Versions.ListForShot(ctx, seq, sh)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	require.Equal(t, sh.ID, versions[0].OwnerID)

	// No duplicate shot was created alongside the existing one.
	shots, err := h.Shots.List(ctx, seq)
	require.NoError(t, err)
	require.Len(t, shots, 1)
}

func TestParseFilename(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, _, err := tr.FindOrCreateProject(ctx, "PARSE")
	require.NoError(t, err)

	md, err := tr.ParseFilename(ctx, "PARSE", "", "Car_MAIN_MODEL_v003_oy.ma")
	require.NoError(t, err)
	require.Equal(t, "Car", md.BaseName)
	require.Equal(t, "MAIN", md.SubName)
	require.Equal(t, "MODEL", md.TypeCode)
	require.Equal(t, 3, md.VersionNumber)
	require.Equal(t, "oy", md.UserInitials)
	require.Equal(t, ".ma", md.Extension)
}
