package tracker

import (
	"context"

	"github.com/reelworks/pipetrack/internal/cache"
	"github.com/reelworks/pipetrack/internal/discover"
	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/naming"
)

// parserFor builds the file name parser of a project, optionally scoped
// to a sequence (whose legacy flag selects the grammar).
func (t *Tracker) parserFor(ctx context.Context, h *Handle, seqName string) (naming.Parser, error) {
	parser := naming.Parser{Conventions: h.Project.Conventions}

	codes, err := h.Types.Codes(ctx)
	if err != nil {
		return naming.Parser{}, err
	}
	parser.TypeCodes = codes

	if seqName != "" {
		seq, err := h.Sequences.Get(ctx, seqName)
		if err != nil {
			return naming.Parser{}, err
		}
		parser.NoSubNameField = seq.NoSubNameField
	}
	return parser, nil
}

// ScanAssets walks a project's files and returns those matching the
// query. Results are cached briefly; any write to the project evicts
// them.
func (t *Tracker) ScanAssets(ctx context.Context, projectName, seqName string, query asset.Query) ([]discover.Finding, error) {
	h, err := t.Handle(ctx, projectName)
	if err != nil {
		return nil, err
	}

	key := cacheScope(h.Project.Name) + cache.Key("scan",
		seqName,
		query.BaseName, query.SubName, query.TypeCode,
		query.RevString, query.VerString, query.UserInitials, query.Notes,
	)
	if cached, ok := t.cache.Get(key); ok {
		return cached.([]discover.Finding), nil
	}

	parser, err := t.parserFor(ctx, h, seqName)
	if err != nil {
		return nil, err
	}

	scanner := discover.NewScanner(t.repo, t.logger)
	findings, err := scanner.Scan(ctx, h.Project.Name, parser, query)
	if err != nil {
		return nil, err
	}

	t.cache.Set(key, findings)
	return findings, nil
}

// ReconcileProject scans a project and records every discovered version
// in its store, keeping on-disk numbers. Safe to re-run.
func (t *Tracker) ReconcileProject(ctx context.Context, projectName, seqName string) (discover.Result, error) {
	h, err := t.Handle(ctx, projectName)
	if err != nil {
		return discover.Result{}, err
	}

	parser, err := t.parserFor(ctx, h, seqName)
	if err != nil {
		return discover.Result{}, err
	}

	scanner := discover.NewScanner(t.repo, t.logger)
	findings, err := scanner.Scan(ctx, h.Project.Name, parser, asset.Query{})
	if err != nil {
		return discover.Result{}, err
	}

	rec := discover.NewReconciler(
		h.Store.Versions, h.Store.Types,
		h.Store.Sequences, h.Store.Shots, h.Store.Assets,
		h.Project.Conventions, t.logger,
	)
	res, err := rec.Reconcile(ctx, findings)
	if err != nil {
		return res, err
	}

	if res.Added > 0 {
		t.cache.InvalidatePrefix(cacheScope(h.Project.Name))
	}
	t.logger.Info("project reconciled",
		"project", h.Project.Name, "added", res.Added, "skipped", res.Skipped)
	return res, nil
}

// ParseFilename splits a version file name into its metadata using the
// project's conventions and registered type codes.
func (t *Tracker) ParseFilename(ctx context.Context, projectName, seqName, fileName string) (naming.Metadata, error) {
	h, err := t.Handle(ctx, projectName)
	if err != nil {
		return naming.Metadata{}, err
	}

	parser, err := t.parserFor(ctx, h, seqName)
	if err != nil {
		return naming.Metadata{}, err
	}
	return parser.Parse(fileName)
}
