// Package discover rebuilds version metadata from files already on
// disk. Legacy projects predate the metadata store; scanning their
// directories and parsing the file names is the only way to bring them
// under tracking.
package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/naming"
	"github.com/reelworks/pipetrack/internal/storage"
)

// scanConcurrency bounds how many top-level directories are walked in
// parallel. Repository roots live on network mounts, so a little
// parallelism hides latency without flooding the mount.
const scanConcurrency = 4

// Finding is one file recognized as a version.
type Finding struct {
	// Path is the file path relative to the project directory.
	Path     string          `json:"path"`
	Metadata naming.Metadata `json:"metadata"`
}

// Scanner walks project directories and parses file names into version
// metadata.
type Scanner struct {
	repo   *storage.Repository
	logger *slog.Logger
}

// NewScanner creates a Scanner over the given repository.
func NewScanner(repo *storage.Repository, logger *slog.Logger) *Scanner {
	return &Scanner{repo: repo, logger: logger}
}

// Scan walks the project directory and returns every file whose name
// parses as a version, filtered by query. Files that do not parse are
// skipped, never an error. The walk honors ctx between directories, so
// a canceled scan returns promptly.
func (s *Scanner) Scan(ctx context.Context, projectName string, parser naming.Parser, query asset.Query) ([]Finding, error) {
	projectDir := s.repo.ProjectPath(projectName)
	entries, err := s.repo.ReadDir(ctx, projectDir)
	if err != nil {
		return nil, fmt.Errorf("reading project directory: %w", err)
	}

	var mu sync.Mutex
	var findings []Finding

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scanConcurrency)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(projectDir, entry.Name())
		g.Go(func() error {
			found, err := s.walk(gctx, projectDir, dir, parser, query)
			if err != nil {
				return err
			}
			mu.Lock()
			findings = append(findings, found...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(findings, func(i, j int) bool {
		return findings[i].Path < findings[j].Path
	})
	return findings, nil
}

func (s *Scanner) walk(ctx context.Context, projectDir, dir string, parser naming.Parser, query asset.Query) ([]Finding, error) {
	var findings []Finding
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A vanished or unreadable subtree is logged and skipped;
			// the rest of the scan is still useful.
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		}

		md, parseErr := parser.Parse(d.Name())
		if parseErr != nil {
			if !errors.Is(parseErr, naming.ErrNotAnAsset) {
				s.logger.Debug("unparseable file name", "file", d.Name(), "error", parseErr)
			}
			return nil
		}
		if !query.Matches(md) {
			return nil
		}

		rel, relErr := filepath.Rel(projectDir, path)
		if relErr != nil {
			rel = path
		}
		findings = append(findings, Finding{Path: filepath.ToSlash(rel), Metadata: md})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findings, nil
}
