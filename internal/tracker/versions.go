package tracker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/reelworks/pipetrack/internal/cache"
	"github.com/reelworks/pipetrack/internal/domain/version"
)

// cacheScope prefixes every cache key belonging to one project, so a
// write can evict all of the project's cached reads at once.
func cacheScope(projectName string) string {
	return cache.Key("project", projectName)
}

// CreateShotVersion creates a version for a shot, addressed by its
// display code, and lays out its directories on disk.
func (t *Tracker) CreateShotVersion(ctx context.Context, projectName, seqName, shotCode string, req version.CreateRequest) (*version.Version, error) {
	h, err := t.Handle(ctx, projectName)
	if err != nil {
		return nil, err
	}
	seq, err := h.Sequences.Get(ctx, seqName)
	if err != nil {
		return nil, err
	}
	sh, err := h.Shots.GetByCode(ctx, seq, shotCode)
	if err != nil {
		return nil, err
	}

	v, err := h.Versions.CreateForShot(ctx, seq, sh, req)
	if err != nil {
		return nil, err
	}

	if err := t.ensureVersionPaths(ctx, h, v, req.TypeName, seq.Code); err != nil {
		return nil, err
	}

	t.cache.InvalidatePrefix(cacheScope(h.Project.Name))
	return v, nil
}

// CreateAssetVersion creates a version for an asset, addressed by its
// identity triple, and lays out its directories on disk.
func (t *Tracker) CreateAssetVersion(ctx context.Context, projectName, baseName, subName, typeName string, req version.CreateRequest) (*version.Version, error) {
	h, err := t.Handle(ctx, projectName)
	if err != nil {
		return nil, err
	}
	a, err := h.Assets.Get(ctx, baseName, subName, typeName)
	if err != nil {
		return nil, err
	}

	v, err := h.Versions.CreateForAsset(ctx, a, req)
	if err != nil {
		return nil, err
	}

	if err := t.ensureVersionPaths(ctx, h, v, req.TypeName, ""); err != nil {
		return nil, err
	}

	t.cache.InvalidatePrefix(cacheScope(h.Project.Name))
	return v, nil
}

// ensureVersionPaths creates the version's directory, output directory
// and any extra folders of its type. Rendered paths are relative to the
// repository root.
func (t *Tracker) ensureVersionPaths(ctx context.Context, h *Handle, v *version.Version, typeName, seqCode string) error {
	typ, err := h.Types.GetByName(ctx, typeName)
	if err != nil {
		return err
	}

	dirs := []string{v.Path, v.OutputPath}
	extra, err := h.Versions.ExtraFolders(v, typ, seqCode)
	if err != nil {
		return err
	}
	dirs = append(dirs, extra...)

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		abs := filepath.Join(t.repo.Root(), filepath.FromSlash(dir))
		if err := t.repo.EnsureDir(ctx, abs); err != nil {
			return fmt.Errorf("creating version directory %s: %w", dir, err)
		}
	}
	return nil
}
