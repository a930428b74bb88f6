package tracker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/templates"
)

// CreateSequence adds a sequence to a project and lays out its folder
// structure on disk.
func (t *Tracker) CreateSequence(ctx context.Context, projectName, name string) (*sequence.Sequence, error) {
	h, err := t.Handle(ctx, projectName)
	if err != nil {
		return nil, err
	}

	seq, err := h.Sequences.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := t.ensureSequenceFolders(ctx, h, seq); err != nil {
		return nil, fmt.Errorf("creating folders for sequence %s: %w", seq.Name, err)
	}

	t.cache.InvalidatePrefix(cacheScope(h.Project.Name))
	return seq, nil
}

// ensureSequenceFolders renders the project structure templates for one
// sequence and creates the directories.
func (t *Tracker) ensureSequenceFolders(ctx context.Context, h *Handle, seq *sequence.Sequence) error {
	vars := templates.Vars{
		Project:  templates.ProjectVars{Name: h.Project.Name, Code: h.Project.Code},
		Sequence: templates.SequenceVars{Code: seq.Code},
	}

	projectDir := t.repo.ProjectPath(h.Project.Name)
	for _, entry := range h.Project.Structure {
		tmpl, err := templates.Compile("structure", entry)
		if err != nil {
			return err
		}
		rendered, err := tmpl.Render(vars)
		if err != nil {
			return err
		}
		if err := t.repo.EnsureDir(ctx, filepath.Join(projectDir, filepath.FromSlash(rendered))); err != nil {
			return err
		}
	}
	return nil
}
