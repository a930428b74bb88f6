// Package storage resolves and walks the shared project repository on
// disk. The repository usually lives on a network mount, so every
// filesystem touch runs under a deadline and degrades to
// ErrStorageUnavailable instead of hanging the caller.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/reelworks/pipetrack/internal/config"
)

// EnvKey overrides the configured repository path when set.
const EnvKey = "PIPETRACK_REPO"

const defaultTimeout = 10 * time.Second

// Repository is the shared directory tree holding one folder per
// project, each with its own metadata database.
type Repository struct {
	root    string
	dbName  string
	timeout time.Duration
}

// NewRepository resolves the repository root from the environment or
// the platform-specific configured path.
func NewRepository(cfg config.RepositoryConfig) (*Repository, error) {
	root := os.Getenv(EnvKey)
	if root == "" {
		switch runtime.GOOS {
		case "windows":
			root = cfg.WindowsPath
		case "darwin":
			root = cfg.OSXPath
		default:
			root = cfg.LinuxPath
		}
	}

	root, err := expandHome(root)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return nil, fmt.Errorf("no repository path configured")
	}

	dbName := cfg.DatabaseName
	if dbName == "" {
		dbName = ".metadata.db"
	}

	return &Repository{
		root:    filepath.Clean(root),
		dbName:  dbName,
		timeout: defaultTimeout,
	}, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Root returns the repository root path.
func (r *Repository) Root() string {
	return r.root
}

// ProjectPath returns the directory of a project.
func (r *Repository) ProjectPath(name string) string {
	return filepath.Join(r.root, name)
}

// StorePath returns the metadata database file of a project.
func (r *Repository) StorePath(name string) string {
	return filepath.Join(r.root, name, r.dbName)
}

// ProjectNames lists the directories under the root that carry a
// metadata database.
func (r *Repository) ProjectNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.bounded(ctx, func() error {
		entries, err := os.ReadDir(r.root)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, err := os.Stat(filepath.Join(r.root, entry.Name(), r.dbName)); err == nil {
				names = append(names, entry.Name())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// EnsureDir creates a directory (and parents) under the root.
func (r *Repository) EnsureDir(ctx context.Context, path string) error {
	return r.bounded(ctx, func() error {
		return os.MkdirAll(path, 0o755)
	})
}

// Exists reports whether a path exists.
func (r *Repository) Exists(ctx context.Context, path string) (bool, error) {
	var found bool
	err := r.bounded(ctx, func() error {
		_, statErr := os.Stat(path)
		if statErr == nil {
			found = true
			return nil
		}
		if errors.Is(statErr, os.ErrNotExist) {
			return nil
		}
		return statErr
	})
	return found, err
}

// ReadDir lists a directory under the root.
func (r *Repository) ReadDir(ctx context.Context, path string) ([]os.DirEntry, error) {
	var entries []os.DirEntry
	err := r.bounded(ctx, func() error {
		var readErr error
		entries, readErr = os.ReadDir(path)
		return readErr
	})
	return entries, err
}

// CopyFile copies src to dst, creating dst's directory as needed. Both
// ends live on the repository mount, so the copy runs under the bounded
// timeout like every other filesystem call.
func (r *Repository) CopyFile(ctx context.Context, src, dst string) error {
	return r.bounded(ctx, func() error {
		in, err := os.Open(src)
		if err != nil {
			return err
		}
		defer in.Close()

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		out, err := os.Create(dst)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}

// SplitProjectPath breaks an absolute path inside the repository into
// the project name and the remainder relative to the project directory.
func (r *Repository) SplitProjectPath(path string) (projectName, rel string, err error) {
	rel, err = filepath.Rel(r.root, filepath.Clean(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", "", fmt.Errorf("path %s is not inside the repository %s", path, r.root)
	}
	parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
	if len(parts) == 1 {
		return parts[0], "", nil
	}
	return parts[0], parts[1], nil
}

// LockProject takes the cross-process creation lock of a project.
// Project creation is find-or-create across concurrent clients, so the
// bootstrap of a new project directory must be serialized. The returned
// release func is safe to call more than once.
func (r *Repository) LockProject(ctx context.Context, name string) (release func(), err error) {
	lockPath := filepath.Join(r.root, "."+name+".lock")
	lock := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ok, err := lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquire project lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: project %s is locked", ErrStorageUnavailable, name)
	}

	var released bool
	return func() {
		if released {
			return
		}
		released = true
		_ = lock.Unlock()
	}, nil
}

// bounded runs op in the background and gives up after the repository
// timeout or when ctx is done. The op goroutine is left to finish on
// its own; a hung network mount should not hang the server with it.
// Only the deadline paths map to ErrStorageUnavailable; an error from
// op itself (missing path, permissions) passes through unchanged.
func (r *Repository) bounded(ctx context.Context, op func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- op()
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, ctx.Err())
	case <-timer.C:
		return fmt.Errorf("%w: operation timed out after %s", ErrStorageUnavailable, r.timeout)
	}
}
