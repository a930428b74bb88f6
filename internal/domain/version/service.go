package version

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/domain/project"
	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/domain/user"
	"github.com/reelworks/pipetrack/internal/domain/versiontype"
	"github.com/reelworks/pipetrack/internal/naming"
	"github.com/reelworks/pipetrack/internal/repository"
	"github.com/reelworks/pipetrack/internal/templates"
)

// allocateAttempts bounds the optimistic retry loop. Concurrent writers
// racing on the same (base, take) pair converge well before this.
const allocateAttempts = 5

// Service handles version creation and lookup within one project. It
// owns the allocator retry loop and the template rendering binding.
type Service struct {
	proj     *project.Project
	versions Repository
	types    versiontype.Repository
	users    user.Repository
	logger   *slog.Logger
}

// NewService creates a version service bound to one project's store.
func NewService(proj *project.Project, versions Repository, types versiontype.Repository, users user.Repository, logger *slog.Logger) *Service {
	return &Service{proj: proj, versions: versions, types: types, users: users, logger: logger}
}

// CreateRequest defines version creation inputs shared by shots and
// assets. VersionNumber zero requests the next free number; a value
// above the current maximum is honored verbatim, deliberately leaving a
// gap (manual version skipping).
type CreateRequest struct {
	TypeName       string
	Environment    string
	TakeName       string
	RevisionNumber int
	VersionNumber  int
	Note           string
	CreatedBy      string // user initials
	Extension      string
}

// CreateForShot creates a version owned by a shot. The base name is the
// shot's canonical code.
func (s *Service) CreateForShot(ctx context.Context, seq *sequence.Sequence, sh *shot.Shot, req CreateRequest) (*Version, error) {
	code, err := sh.Code(s.proj.Conventions)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, OwnerShot, sh.ID, code, seq.Code, versiontype.ForShot, req)
}

// CreateForAsset creates a version owned by an asset. The sequence
// template variable renders empty for assets.
func (s *Service) CreateForAsset(ctx context.Context, a *asset.Asset, req CreateRequest) (*Version, error) {
	return s.create(ctx, OwnerAsset, a.ID, a.BaseName, "", versiontype.ForAsset, req)
}

func (s *Service) create(ctx context.Context, kind OwnerKind, ownerID, baseName, seqCode string, usage versiontype.Usage, req CreateRequest) (*Version, error) {
	t, err := s.types.GetByName(ctx, req.TypeName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", versiontype.ErrTypeNotFound, req.TypeName)
		}
		return nil, fmt.Errorf("getting version type: %w", err)
	}
	if t.TypeFor != usage {
		return nil, fmt.Errorf("%w: %s is for %s versions", versiontype.ErrWrongUsage, t.Name, t.TypeFor)
	}
	if !t.ValidFor(req.Environment) {
		return nil, fmt.Errorf("%w: %s in %s", versiontype.ErrWrongEnvironment, t.Name, req.Environment)
	}

	base, err := naming.ConditionVersionName(baseName)
	if err != nil {
		return nil, err
	}
	takeName := req.TakeName
	if takeName == "" {
		takeName = DefaultTakeName
	}
	take, err := naming.ConditionVersionName(takeName)
	if err != nil {
		return nil, err
	}

	creator, err := s.users.GetByInitials(ctx, req.CreatedBy)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", user.ErrUserNotFound, req.CreatedBy)
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	v := &Version{
		ID:             uuid.NewString(),
		OwnerKind:      kind,
		OwnerID:        ownerID,
		TypeID:         t.ID,
		BaseName:       base,
		TakeName:       take,
		RevisionNumber: req.RevisionNumber,
		Note:           req.Note,
		CreatedBy:      creator.Initials,
		Extension:      req.Extension,
		CreatedAt:      time.Now(),
	}

	// Trial render before anything is committed, so a template problem
	// can never leave a version behind with an unrenderable path.
	v.VersionNumber = 1
	if err := s.render(v, t, seqCode); err != nil {
		return nil, err
	}

	var n int
	allocated := false
	for attempt := 0; attempt < allocateAttempts; attempt++ {
		n, err = s.versions.AllocateAndCreate(ctx, v, req.VersionNumber)
		if err == nil {
			allocated = true
			break
		}
		if errors.Is(err, repository.ErrDuplicate) || errors.Is(err, repository.ErrBusy) {
			s.logger.Debug("allocation raced, retrying",
				"base", base, "take", take, "attempt", attempt+1)
			continue
		}
		return nil, fmt.Errorf("allocating version number: %w", err)
	}
	if !allocated {
		return nil, fmt.Errorf("%w: %s/%s after %d attempts", ErrAllocationConflict, base, take, allocateAttempts)
	}
	v.VersionNumber = n

	if err := s.render(v, t, seqCode); err != nil {
		return nil, err
	}

	s.logger.Info("version created",
		"base", base, "take", take, "number", n, "type", t.Name, "by", creator.Initials)
	return v, nil
}

// NextNumber returns the number the next version for the pair would
// get.
func (s *Service) NextNumber(ctx context.Context, baseName, takeName string) (int, error) {
	highest, err := s.versions.MaxNumber(ctx, baseName, takeName)
	if err != nil {
		return 0, fmt.Errorf("querying max version number: %w", err)
	}
	return highest + 1, nil
}

// ListForShot returns the versions owned by a shot, with rendered
// names and paths.
func (s *Service) ListForShot(ctx context.Context, seq *sequence.Sequence, sh *shot.Shot) ([]Version, error) {
	versions, err := s.versions.ListByOwner(ctx, OwnerShot, sh.ID)
	if err != nil {
		return nil, fmt.Errorf("listing shot versions: %w", err)
	}
	if err := s.decorate(ctx, versions, seq.Code); err != nil {
		return nil, err
	}
	return versions, nil
}

// ListForAsset returns the versions owned by an asset, with rendered
// names and paths.
func (s *Service) ListForAsset(ctx context.Context, a *asset.Asset) ([]Version, error) {
	versions, err := s.versions.ListByOwner(ctx, OwnerAsset, a.ID)
	if err != nil {
		return nil, fmt.Errorf("listing asset versions: %w", err)
	}
	if err := s.decorate(ctx, versions, ""); err != nil {
		return nil, err
	}
	return versions, nil
}

// ListByBaseTake returns the version line of one (base, take) pair.
func (s *Service) ListByBaseTake(ctx context.Context, baseName, takeName string) ([]Version, error) {
	versions, err := s.versions.ListByBaseTake(ctx, baseName, takeName)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	return versions, nil
}

// render populates the derived Filename, Path and OutputPath fields.
// Output paths may refer to the already rendered version path.
func (s *Service) render(v *Version, t *versiontype.Type, seqCode string) error {
	vars := templates.Vars{
		Project:  templates.ProjectVars{Name: s.proj.Name, Code: s.proj.Code},
		Sequence: templates.SequenceVars{Code: seqCode},
		Version: templates.VersionVars{
			BaseName:       v.BaseName,
			TakeName:       v.TakeName,
			VersionNumber:  v.VersionNumber,
			RevisionNumber: v.RevisionNumber,
			Extension:      v.Extension,
			CreatedBy:      templates.UserVars{Initials: v.CreatedBy},
		},
		Type: templates.TypeVars{Name: t.Name, Code: t.Code},
	}

	filename, err := renderOne("filename", t.Filename, vars)
	if err != nil {
		return err
	}
	dir, err := renderOne("path", t.Path, vars)
	if err != nil {
		return err
	}

	vars.Version.Path = dir
	outputPath, err := renderOne("output_path", t.OutputPath, vars)
	if err != nil {
		return err
	}

	v.Filename = filename
	v.Path = dir
	v.OutputPath = outputPath
	return nil
}

// ExtraFolders renders the extra folder templates of the version's
// type, one folder per non-empty line.
func (s *Service) ExtraFolders(v *Version, t *versiontype.Type, seqCode string) ([]string, error) {
	if strings.TrimSpace(t.ExtraFolders) == "" {
		return nil, nil
	}
	vars := templates.Vars{
		Project:  templates.ProjectVars{Name: s.proj.Name, Code: s.proj.Code},
		Sequence: templates.SequenceVars{Code: seqCode},
		Version: templates.VersionVars{
			BaseName:      v.BaseName,
			TakeName:      v.TakeName,
			VersionNumber: v.VersionNumber,
			Path:          v.Path,
			CreatedBy:     templates.UserVars{Initials: v.CreatedBy},
		},
		Type: templates.TypeVars{Name: t.Name, Code: t.Code},
	}

	var folders []string
	for _, line := range strings.Split(t.ExtraFolders, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		folder, err := renderOne("extra_folder", line, vars)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}
	return folders, nil
}

func (s *Service) decorate(ctx context.Context, versions []Version, seqCode string) error {
	if len(versions) == 0 {
		return nil
	}
	all, err := s.types.List(ctx)
	if err != nil {
		return fmt.Errorf("listing version types: %w", err)
	}
	byID := make(map[string]*versiontype.Type, len(all))
	for i := range all {
		byID[all[i].ID] = &all[i]
	}
	for i := range versions {
		t, ok := byID[versions[i].TypeID]
		if !ok {
			return fmt.Errorf("%w: id %s", versiontype.ErrTypeNotFound, versions[i].TypeID)
		}
		if err := s.render(&versions[i], t, seqCode); err != nil {
			return err
		}
	}
	return nil
}

func renderOne(name, src string, vars templates.Vars) (string, error) {
	tmpl, err := templates.Compile(name, src)
	if err != nil {
		return "", err
	}
	return tmpl.Render(vars)
}
