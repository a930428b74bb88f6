// Package tracker is the composition root of the asset tracking layer.
// It owns the shared repository on disk, opens one metadata store per
// project, and hands out per-project service bundles to the API
// surface.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reelworks/pipetrack/internal/cache"
	"github.com/reelworks/pipetrack/internal/config"
	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/domain/project"
	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/domain/user"
	"github.com/reelworks/pipetrack/internal/domain/version"
	"github.com/reelworks/pipetrack/internal/domain/versiontype"
	"github.com/reelworks/pipetrack/internal/naming"
	"github.com/reelworks/pipetrack/internal/sqlite"
	"github.com/reelworks/pipetrack/internal/storage"
)

// Handle bundles one open project with its services.
type Handle struct {
	Project   *project.Project
	Store     *sqlite.Store
	Sequences *sequence.Service
	Shots     *shot.Service
	Assets    *asset.Service
	Types     *versiontype.Service
	Versions  *version.Service
}

// Tracker coordinates project stores over one shared repository root.
type Tracker struct {
	cfg    config.Config
	repo   *storage.Repository
	cache  *cache.Cache
	logger *slog.Logger

	mu      sync.Mutex
	handles map[string]*Handle
}

// New creates a Tracker over the configured repository.
func New(cfg config.Config, logger *slog.Logger) (*Tracker, error) {
	repo, err := storage.NewRepository(cfg.Repository)
	if err != nil {
		return nil, err
	}
	return &Tracker{
		cfg:     cfg,
		repo:    repo,
		cache:   cache.New(cache.DefaultTTL),
		logger:  logger,
		handles: make(map[string]*Handle),
	}, nil
}

// Repository exposes the underlying storage repository.
func (t *Tracker) Repository() *storage.Repository {
	return t.repo
}

// Close closes every open project store.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var firstErr error
	for name, h := range t.handles {
		if err := h.Store.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing store of %s: %w", name, err)
		}
		delete(t.handles, name)
	}
	return firstErr
}

// ListProjects returns the names of the projects under the repository
// root.
func (t *Tracker) ListProjects(ctx context.Context) ([]string, error) {
	key := cache.Key("projects")
	if cached, ok := t.cache.Get(key); ok {
		return cached.([]string), nil
	}

	names, err := t.repo.ProjectNames(ctx)
	if err != nil {
		return nil, err
	}
	t.cache.Set(key, names)
	return names, nil
}

// GetProject opens an existing project by name.
func (t *Tracker) GetProject(ctx context.Context, name string) (*project.Project, error) {
	h, err := t.Handle(ctx, name)
	if err != nil {
		return nil, err
	}
	return h.Project, nil
}

// FindOrCreateProject returns the project with the conditioned name,
// creating its directory and store when it does not exist yet. Looking
// up the same raw name always yields the same logical project; the
// returned bool reports whether this call created it.
func (t *Tracker) FindOrCreateProject(ctx context.Context, rawName string) (*project.Project, bool, error) {
	name, err := project.ConditionName(rawName)
	if err != nil {
		return nil, false, err
	}

	if h, err := t.Handle(ctx, name); err == nil {
		return h.Project, false, nil
	} else if !errors.Is(err, project.ErrProjectNotFound) {
		return nil, false, err
	}

	// Bootstrap is serialized across processes; whoever loses the race
	// finds the store created by the winner.
	release, err := t.repo.LockProject(ctx, name)
	if err != nil {
		return nil, false, err
	}
	defer release()

	if h, err := t.Handle(ctx, name); err == nil {
		return h.Project, false, nil
	} else if !errors.Is(err, project.ErrProjectNotFound) {
		return nil, false, err
	}

	proj, err := t.bootstrapProject(ctx, name)
	if err != nil {
		return nil, false, err
	}

	t.cache.Invalidate(cache.Key("projects"))
	t.logger.Info("project created", "name", name)
	return proj, true, nil
}

func (t *Tracker) bootstrapProject(ctx context.Context, name string) (*project.Project, error) {
	if err := t.repo.EnsureDir(ctx, t.repo.ProjectPath(name)); err != nil {
		return nil, err
	}

	store, err := sqlite.OpenStore(t.repo.StorePath(name))
	if err != nil {
		return nil, fmt.Errorf("creating store for %s: %w", name, err)
	}

	proj := &project.Project{
		ID:   uuid.NewString(),
		Name: name,
		Code: name,
		Conventions: naming.Conventions{
			ShotPrefix:  t.cfg.Conventions.ShotPrefix,
			ShotPadding: t.cfg.Conventions.ShotPadding,
			RevPrefix:   t.cfg.Conventions.RevPrefix,
			RevPadding:  t.cfg.Conventions.RevPadding,
			VerPrefix:   t.cfg.Conventions.VerPrefix,
			VerPadding:  t.cfg.Conventions.VerPadding,
		},
		FPS:       t.cfg.Defaults.FPS,
		Width:     t.cfg.Defaults.ResolutionWidth,
		Height:    t.cfg.Defaults.ResolutionHeight,
		Structure: t.cfg.Defaults.ProjectStructure,
		CreatedAt: time.Now(),
	}
	if err := store.Info.Save(ctx, proj); err != nil {
		store.Close()
		return nil, err
	}

	if err := t.seedStore(ctx, store); err != nil {
		store.Close()
		return nil, fmt.Errorf("seeding store for %s: %w", name, err)
	}

	h := t.newHandle(proj, store)
	t.mu.Lock()
	t.handles[name] = h
	t.mu.Unlock()
	return proj, nil
}

// seedStore loads the configured version types and users into a fresh
// store.
func (t *Tracker) seedStore(ctx context.Context, store *sqlite.Store) error {
	types := versiontype.NewService(store.Types, t.logger)
	for _, vt := range t.cfg.VersionTypes {
		_, err := types.Register(ctx, &versiontype.Type{
			Name:         vt.Name,
			Code:         vt.Code,
			Filename:     vt.Filename,
			Path:         vt.Path,
			OutputPath:   vt.OutputPath,
			ExtraFolders: vt.ExtraFolders,
			Environments: vt.Environments,
			TypeFor:      versiontype.Usage(vt.TypeFor),
		})
		if err != nil {
			return fmt.Errorf("registering type %s: %w", vt.Name, err)
		}
	}

	for _, u := range t.cfg.Users {
		err := store.Users.Upsert(ctx, user.User{
			Name:     u.Name,
			Initials: u.Initials,
			Email:    u.Email,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Handle returns the open handle of a project, opening its store on
// first use. A name with no store on disk is project.ErrProjectNotFound.
func (t *Tracker) Handle(ctx context.Context, rawName string) (*Handle, error) {
	name, err := project.ConditionName(rawName)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	if h, ok := t.handles[name]; ok {
		t.mu.Unlock()
		return h, nil
	}
	t.mu.Unlock()

	storePath := t.repo.StorePath(name)
	found, err := t.repo.Exists(ctx, storePath)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", project.ErrProjectNotFound, name)
	}

	store, err := sqlite.OpenStore(storePath)
	if err != nil {
		return nil, fmt.Errorf("opening store of %s: %w", name, err)
	}
	proj, err := store.Info.Get(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("reading project info of %s: %w", name, err)
	}

	h := t.newHandle(proj, store)
	t.mu.Lock()
	if existing, ok := t.handles[name]; ok {
		// Lost an open race; keep the first handle.
		t.mu.Unlock()
		store.Close()
		return existing, nil
	}
	t.handles[name] = h
	t.mu.Unlock()
	return h, nil
}

func (t *Tracker) newHandle(proj *project.Project, store *sqlite.Store) *Handle {
	return &Handle{
		Project:   proj,
		Store:     store,
		Sequences: sequence.NewService(proj.Name, store.Sequences, t.logger),
		Shots:     shot.NewService(proj.Conventions, store.Shots, t.logger),
		Assets:    asset.NewService(proj.Conventions, store.Assets, store.Types, store.Shots, t.logger),
		Types:     versiontype.NewService(store.Types, t.logger),
		Versions:  version.NewService(proj, store.Versions, store.Types, store.Users, t.logger),
	}
}
