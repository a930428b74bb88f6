package version_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/domain/project"
	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/domain/user"
	"github.com/reelworks/pipetrack/internal/domain/version"
	"github.com/reelworks/pipetrack/internal/domain/versiontype"
	"github.com/reelworks/pipetrack/internal/naming"
	"github.com/reelworks/pipetrack/internal/sqlite"
)

type fixture struct {
	store *sqlite.Store
	proj  *project.Project
	svc   *version.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := sqlite.OpenStore(filepath.Join(t.TempDir(), "metadata.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	proj := &project.Project{
		ID:          uuid.NewString(),
		Name:        "TEST_PROJECT_1",
		Code:        "TP1",
		Conventions: naming.DefaultConventions(),
		FPS:         25,
		Width:       1920,
		Height:      1080,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, store.Info.Save(ctx, proj))
	require.NoError(t, store.Users.Upsert(ctx, user.User{Initials: "oy", Name: "Ozgur Yilmaz"}))

	svc := version.NewService(proj, store.Versions, store.Types, store.Users, slog.New(slog.DiscardHandler))
	return &fixture{store: store, proj: proj, svc: svc}
}

func (f *fixture) registerType(t *testing.T, typ *versiontype.Type) *versiontype.Type {
	t.Helper()
	types := versiontype.NewService(f.store.Types, slog.New(slog.DiscardHandler))
	registered, err := types.Register(context.Background(), typ)
	require.NoError(t, err)
	return registered
}

func animationType() *versiontype.Type {
	return &versiontype.Type{
		Name:         "Animation",
		Code:         "ANIM",
		Filename:     `{{.Version.BaseName}}_{{.Version.TakeName}}_{{.Type.Code}}_{{printf "v%03d" .Version.VersionNumber}}_{{.Version.CreatedBy.Initials}}{{.Version.Extension}}`,
		Path:         `{{.Project.Code}}/Sequences/{{.Sequence.Code}}/Shots/{{.Version.BaseName}}/{{.Type.Code}}`,
		OutputPath:   `{{.Version.Path}}/Output/{{.Version.TakeName}}`,
		Environments: []string{"Maya", "Houdini"},
		TypeFor:      versiontype.ForShot,
	}
}

func modelType() *versiontype.Type {
	typ := animationType()
	typ.Name = "Model"
	typ.Code = "MODEL"
	typ.Path = `{{.Project.Code}}/Assets/{{.Version.BaseName}}/{{.Type.Code}}`
	typ.TypeFor = versiontype.ForAsset
	return typ
}

func testShot(t *testing.T, f *fixture) (*sequence.Sequence, *shot.Shot) {
	t.Helper()
	ctx := context.Background()

	seqs := sequence.NewService(f.proj.Name, f.store.Sequences, slog.New(slog.DiscardHandler))
	seq, err := seqs.Create(ctx, "TEST_SEQ_1")
	require.NoError(t, err)

	shots := shot.NewService(f.proj.Conventions, f.store.Shots, slog.New(slog.DiscardHandler))
	sh, err := shots.Create(ctx, seq, shot.CreateRequest{Number: "1"})
	require.NoError(t, err)
	return seq, sh
}

func TestCreateForShot_FirstAndNext(t *testing.T) {
	f := newFixture(t)
	f.registerType(t, animationType())
	seq, sh := testShot(t, f)
	ctx := context.Background()

	v1, err := f.svc.CreateForShot(ctx, seq, sh, version.CreateRequest{
		TypeName:    "Animation",
		Environment: "Maya",
		CreatedBy:   "oy",
		Extension:   ".ma",
	})
	require.NoError(t, err)
	require.Equal(t, 1, v1.VersionNumber)
	require.Equal(t, "SH001", v1.BaseName)
	require.Equal(t, "MAIN", v1.TakeName)
	require.Equal(t, "SH001_MAIN_ANIM_v001_oy.ma", v1.Filename)
	require.Equal(t, "TP1/Sequences/TEST_SEQ_1/Shots/SH001/ANIM", v1.Path)
	require.Equal(t, "TP1/Sequences/TEST_SEQ_1/Shots/SH001/ANIM/Output/MAIN", v1.OutputPath)
	require.Equal(t, "TP1/Sequences/TEST_SEQ_1/Shots/SH001/ANIM/SH001_MAIN_ANIM_v001_oy.ma", v1.Fullpath())

	v2, err := f.svc.CreateForShot(ctx, seq, sh, version.CreateRequest{
		TypeName:    "Animation",
		Environment: "Maya",
		CreatedBy:   "oy",
		Extension:   ".ma",
	})
	require.NoError(t, err)
	require.Equal(t, 2, v2.VersionNumber)
	require.Equal(t, "SH001_MAIN_ANIM_v002_oy.ma", v2.Filename)
}

func TestCreateForShot_RequestedNumberGap(t *testing.T) {
	f := newFixture(t)
	f.registerType(t, animationType())
	seq, sh := testShot(t, f)
	ctx := context.Background()

	req := version.CreateRequest{TypeName: "Animation", CreatedBy: "oy", Extension: ".ma"}

	v, err := f.svc.CreateForShot(ctx, seq, sh, req)
	require.NoError(t, err)
	require.Equal(t, 1, v.VersionNumber)

	req.VersionNumber = 5
	v, err = f.svc.CreateForShot(ctx, seq, sh, req)
	require.NoError(t, err)
	require.Equal(t, 5, v.VersionNumber)

	req.VersionNumber = 3
	v, err = f.svc.CreateForShot(ctx, seq, sh, req)
	require.NoError(t, err)
	require.Equal(t, 6, v.VersionNumber, "stale requested numbers bump to max+1")
}

func TestCreateForAsset(t *testing.T) {
	f := newFixture(t)
	f.registerType(t, modelType())
	ctx := context.Background()

	assets := asset.NewService(f.proj.Conventions, f.store.Assets, f.store.Types, f.store.Shots, slog.New(slog.DiscardHandler))
	a, err := assets.Create(ctx, asset.CreateRequest{BaseName: "car", TypeName: "Model"})
	require.NoError(t, err)
	require.Equal(t, "Car", a.BaseName)
	require.Equal(t, "MAIN", a.SubName)

	v, err := f.svc.CreateForAsset(ctx, a, version.CreateRequest{
		TypeName:  "Model",
		TakeName:  "MAIN",
		CreatedBy: "oy",
		Extension: ".ma",
	})
	require.NoError(t, err)
	require.Equal(t, 1, v.VersionNumber)
	require.Equal(t, "Car_MAIN_MODEL_v001_oy.ma", v.Filename)
	require.Equal(t, "TP1/Assets/Car/MODEL", v.Path)
}

func TestCreate_WrongUsage(t *testing.T) {
	f := newFixture(t)
	f.registerType(t, modelType())
	seq, sh := testShot(t, f)

	_, err := f.svc.CreateForShot(context.Background(), seq, sh, version.CreateRequest{
		TypeName:  "Model",
		CreatedBy: "oy",
	})
	require.ErrorIs(t, err, versiontype.ErrWrongUsage)
}

func TestCreate_WrongEnvironment(t *testing.T) {
	f := newFixture(t)
	f.registerType(t, animationType())
	seq, sh := testShot(t, f)

	_, err := f.svc.CreateForShot(context.Background(), seq, sh, version.CreateRequest{
		TypeName:    "Animation",
		Environment: "Nuke",
		CreatedBy:   "oy",
	})
	require.ErrorIs(t, err, versiontype.ErrWrongEnvironment)
}

func TestCreate_UnknownUser(t *testing.T) {
	f := newFixture(t)
	f.registerType(t, animationType())
	seq, sh := testShot(t, f)

	_, err := f.svc.CreateForShot(context.Background(), seq, sh, version.CreateRequest{
		TypeName:  "Animation",
		CreatedBy: "zz",
	})
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestCreate_UnknownType(t *testing.T) {
	f := newFixture(t)
	seq, sh := testShot(t, f)

	_, err := f.svc.CreateForShot(context.Background(), seq, sh, version.CreateRequest{
		TypeName:  "Nope",
		CreatedBy: "oy",
	})
	require.ErrorIs(t, err, versiontype.ErrTypeNotFound)
}

func TestListForShot_Decorated(t *testing.T) {
	f := newFixture(t)
	f.registerType(t, animationType())
	seq, sh := testShot(t, f)
	ctx := context.Background()

	req := version.CreateRequest{TypeName: "Animation", CreatedBy: "oy", Extension: ".ma"}
	for range 3 {
		_, err := f.svc.CreateForShot(ctx, seq, sh, req)
		require.NoError(t, err)
	}

	versions, err := f.svc.ListForShot(ctx, seq, sh)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	require.Equal(t, "SH001_MAIN_ANIM_v002_oy.ma", versions[1].Filename)
	require.NotEmpty(t, versions[2].Path)
}

// Parallel creators on the same shot must all succeed and end up with
// the exact number set {1..N}, even while the store's write lock is
// contended.
func TestCreateForShot_Concurrent(t *testing.T) {
	f := newFixture(t)
	f.registerType(t, animationType())
	seq, sh := testShot(t, f)
	ctx := context.Background()

	const writers = 8
	numbers := make([]int, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.svc.CreateForShot(ctx, seq, sh, version.CreateRequest{
				TypeName: "Animation", CreatedBy: "oy", Extension: ".ma",
			})
			require.NoError(t, err)
			numbers[i] = v.VersionNumber
		}()
	}
	wg.Wait()

	sort.Ints(numbers)
	for i, n := range numbers {
		require.Equal(t, i+1, n, "version numbers must be exactly 1..N")
	}
}

func TestNextNumber(t *testing.T) {
	f := newFixture(t)
	f.registerType(t, animationType())
	seq, sh := testShot(t, f)
	ctx := context.Background()

	n, err := f.svc.NextNumber(ctx, "SH001", "MAIN")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = f.svc.CreateForShot(ctx, seq, sh, version.CreateRequest{
		TypeName: "Animation", CreatedBy: "oy", Extension: ".ma",
	})
	require.NoError(t, err)

	n, err = f.svc.NextNumber(ctx, "SH001", "MAIN")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}
