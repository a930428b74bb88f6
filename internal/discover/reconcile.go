package discover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/domain/version"
	"github.com/reelworks/pipetrack/internal/domain/versiontype"
	"github.com/reelworks/pipetrack/internal/naming"
	"github.com/reelworks/pipetrack/internal/repository"
)

// Result summarizes one reconcile run.
type Result struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Reconciler inserts scanned findings into a project store, keeping
// their on-disk version numbers. Every recorded version is attached to
// an owner; missing sequences, shots and assets are created from what
// the file name and path imply, the way the files themselves were laid
// out.
type Reconciler struct {
	versions  version.Repository
	types     versiontype.Repository
	sequences sequence.Repository
	shots     shot.Repository
	assets    asset.Repository
	conv      naming.Conventions
	logger    *slog.Logger

	seqByName map[string]*sequence.Sequence
}

// NewReconciler creates a Reconciler against one project store.
func NewReconciler(
	versions version.Repository,
	types versiontype.Repository,
	sequences sequence.Repository,
	shots shot.Repository,
	assets asset.Repository,
	conv naming.Conventions,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		versions:  versions,
		types:     types,
		sequences: sequences,
		shots:     shots,
		assets:    assets,
		conv:      conv,
		logger:    logger,
		seqByName: map[string]*sequence.Sequence{},
	}
}

// Reconcile records each finding as a version with its exact on-disk
// number. Findings already present in the store are skipped silently;
// re-running a scan must be idempotent. Findings whose owner cannot be
// established (a shot-typed file whose base name is not a shot code)
// are skipped with a warning, never recorded ownerless.
func (r *Reconciler) Reconcile(ctx context.Context, findings []Finding) (Result, error) {
	var res Result
	typesByCode := map[string]*versiontype.Type{}

	for _, f := range findings {
		md := f.Metadata

		t, ok := typesByCode[md.TypeCode]
		if !ok {
			var err error
			t, err = r.types.GetByCode(ctx, md.TypeCode)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					r.logger.Debug("skipping unregistered type code", "code", md.TypeCode, "file", f.Path)
					res.Skipped++
					continue
				}
				return res, fmt.Errorf("resolving type code %s: %w", md.TypeCode, err)
			}
			typesByCode[md.TypeCode] = t
		}

		takeName := md.SubName
		if takeName == "" {
			takeName = version.DefaultTakeName
		}

		var ownerID string
		var err error
		kind := version.OwnerAsset
		if t.ShotDependent() {
			kind = version.OwnerShot
			ownerID, err = r.shotOwner(ctx, f)
		} else {
			ownerID, err = r.assetOwner(ctx, f, t, takeName)
		}
		if err != nil {
			return res, fmt.Errorf("resolving owner for %s: %w", f.Path, err)
		}
		if ownerID == "" {
			res.Skipped++
			continue
		}

		v := &version.Version{
			ID:             uuid.NewString(),
			OwnerKind:      kind,
			OwnerID:        ownerID,
			TypeID:         t.ID,
			BaseName:       md.BaseName,
			TakeName:       takeName,
			RevisionNumber: md.RevisionNumber,
			VersionNumber:  md.VersionNumber,
			Note:           md.Notes,
			CreatedBy:      md.UserInitials,
			Extension:      md.Extension,
			CreatedAt:      time.Now(),
		}

		err = r.versions.Insert(ctx, v)
		if errors.Is(err, repository.ErrDuplicate) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("recording version %s: %w", f.Path, err)
		}
		res.Added++
	}

	r.logger.Info("reconcile finished", "added", res.Added, "skipped", res.Skipped)
	return res, nil
}

// shotOwner resolves the shot a finding belongs to, creating the
// sequence and the shot when the store does not know them yet. Returns
// "" when the finding cannot name a shot.
func (r *Reconciler) shotOwner(ctx context.Context, f Finding) (string, error) {
	number, ok := r.conv.ParseShotNumber(f.Metadata.BaseName)
	if !ok {
		r.logger.Warn("skipping shot-typed file with no shot code", "file", f.Path, "base", f.Metadata.BaseName)
		return "", nil
	}

	seqName, ok := sequenceSegment(f.Path)
	if !ok {
		r.logger.Warn("skipping shot-typed file outside any sequence directory", "file", f.Path)
		return "", nil
	}

	seq, err := r.sequenceNamed(ctx, seqName)
	if err != nil {
		return "", err
	}

	sh, err := r.shots.GetByNumber(ctx, seq.ID, number)
	if err == nil {
		return sh.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("getting shot %s: %w", number, err)
	}

	sh = &shot.Shot{
		ID:         uuid.NewString(),
		SequenceID: seq.ID,
		Number:     number,
		StartFrame: 1,
		EndFrame:   1,
		CreatedAt:  time.Now(),
	}
	err = r.shots.Create(ctx, sh)
	if errors.Is(err, repository.ErrDuplicate) {
		sh, err = r.shots.GetByNumber(ctx, seq.ID, number)
	}
	if err != nil {
		return "", fmt.Errorf("creating shot %s: %w", number, err)
	}
	r.logger.Info("shot recovered from files", "sequence", seq.Name, "number", number)
	return sh.ID, nil
}

// assetOwner resolves the asset a finding belongs to, creating it when
// the store does not know it yet. The (base, sub, type) triple from the
// file name is the asset identity.
func (r *Reconciler) assetOwner(ctx context.Context, f Finding, t *versiontype.Type, takeName string) (string, error) {
	a, err := r.assets.Get(ctx, f.Metadata.BaseName, takeName, t.Name)
	if err == nil {
		return a.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("getting asset %s: %w", f.Metadata.BaseName, err)
	}

	a = &asset.Asset{
		ID:        uuid.NewString(),
		BaseName:  f.Metadata.BaseName,
		SubName:   takeName,
		TypeName:  t.Name,
		CreatedAt: time.Now(),
	}
	if seqName, ok := sequenceSegment(f.Path); ok {
		if seq, seqErr := r.sequences.GetByName(ctx, seqName); seqErr == nil {
			a.SequenceID = seq.ID
		}
	}
	err = r.assets.Create(ctx, a)
	if errors.Is(err, repository.ErrDuplicate) {
		a, err = r.assets.Get(ctx, f.Metadata.BaseName, takeName, t.Name)
	}
	if err != nil {
		return "", fmt.Errorf("creating asset %s: %w", f.Metadata.BaseName, err)
	}
	r.logger.Info("asset recovered from files", "base", a.BaseName, "sub", a.SubName, "type", a.TypeName)
	return a.ID, nil
}

// sequenceNamed finds or creates the sequence, caching it for the run.
func (r *Reconciler) sequenceNamed(ctx context.Context, name string) (*sequence.Sequence, error) {
	if seq, ok := r.seqByName[name]; ok {
		return seq, nil
	}

	seq, err := r.sequences.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		seq = &sequence.Sequence{
			ID:        uuid.NewString(),
			Name:      name,
			Code:      name,
			CreatedAt: time.Now(),
		}
		err = r.sequences.Create(ctx, seq)
		if errors.Is(err, repository.ErrDuplicate) {
			seq, err = r.sequences.GetByName(ctx, name)
		}
		if err == nil {
			r.logger.Info("sequence recovered from files", "sequence", name)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("resolving sequence %s: %w", name, err)
	}

	r.seqByName[name] = seq
	return seq, nil
}

// sequenceSegment pulls the sequence name out of a project-relative
// path, "Sequences/<name>/...".
func sequenceSegment(path string) (string, bool) {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "Sequences" && i+1 < len(parts)-1 {
			return parts[i+1], true
		}
	}
	return "", false
}
