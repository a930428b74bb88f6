package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/domain/versiontype"
	"github.com/reelworks/pipetrack/internal/naming"
	"github.com/reelworks/pipetrack/internal/repository"
)

// Service handles asset operations within one project.
type Service struct {
	conv   naming.Conventions
	assets Repository
	types  versiontype.Repository
	shots  shot.Repository
	logger *slog.Logger
}

// NewService creates an asset service bound to one project's store.
func NewService(conv naming.Conventions, assets Repository, types versiontype.Repository, shots shot.Repository, logger *slog.Logger) *Service {
	return &Service{conv: conv, assets: assets, types: types, shots: shots, logger: logger}
}

// CreateRequest defines asset creation inputs. SubName defaults to
// "MAIN". Seq is required when the asset type is shot-dependent.
type CreateRequest struct {
	BaseName string
	SubName  string
	TypeName string
	Seq      *sequence.Sequence
}

// Create registers an asset. Base and sub names are conditioned with the
// version-name rules. For shot-dependent types the base name must be the
// code of an existing shot in the given sequence.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Asset, error) {
	t, err := s.types.GetByName(ctx, req.TypeName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", versiontype.ErrTypeNotFound, req.TypeName)
		}
		return nil, fmt.Errorf("getting asset type: %w", err)
	}

	var baseName string
	if t.ShotDependent() {
		// Shot codes (SH001) are already canonical; version-name
		// conditioning would mangle the padding.
		baseName = req.BaseName
		if err := s.checkShotCode(ctx, req.Seq, baseName); err != nil {
			return nil, err
		}
	} else {
		baseName, err = naming.ConditionVersionName(req.BaseName)
		if err != nil {
			return nil, err
		}
	}

	subName := req.SubName
	if subName == "" {
		subName = "MAIN"
	}
	subName, err = naming.ConditionVersionName(subName)
	if err != nil {
		return nil, err
	}

	a := &Asset{
		ID:        uuid.NewString(),
		BaseName:  baseName,
		SubName:   subName,
		TypeName:  t.Name,
		CreatedAt: time.Now(),
	}
	if req.Seq != nil {
		a.SequenceID = req.Seq.ID
	}

	if err := s.assets.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s/%s/%s", ErrDuplicateAsset, baseName, subName, t.Name)
		}
		return nil, fmt.Errorf("creating asset: %w", err)
	}

	s.logger.Info("asset created", "base", baseName, "sub", subName, "type", t.Name)
	return a, nil
}

// Get fetches an asset by its identity triple.
func (s *Service) Get(ctx context.Context, baseName, subName, typeName string) (*Asset, error) {
	if subName == "" {
		subName = "MAIN"
	}
	a, err := s.assets.Get(ctx, baseName, subName, typeName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s/%s/%s", ErrAssetNotFound, baseName, subName, typeName)
		}
		return nil, fmt.Errorf("getting asset: %w", err)
	}
	return a, nil
}

// List returns all assets of the project, or only the ones attached to
// the given sequence.
func (s *Service) List(ctx context.Context, seq *sequence.Sequence) ([]Asset, error) {
	var (
		assets []Asset
		err    error
	)
	if seq == nil {
		assets, err = s.assets.List(ctx)
	} else {
		assets, err = s.assets.ListBySequence(ctx, seq.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	return assets, nil
}

func (s *Service) checkShotCode(ctx context.Context, seq *sequence.Sequence, code string) error {
	if seq == nil {
		return fmt.Errorf("%w: no sequence given for %q", ErrShotCodeRequired, code)
	}
	number, ok := s.conv.ParseShotNumber(code)
	if !ok {
		return fmt.Errorf("%w: %q does not match the shot code convention", ErrShotCodeRequired, code)
	}
	if _, err := s.shots.GetByNumber(ctx, seq.ID, number); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: no shot %q in sequence %s", ErrShotCodeRequired, code, seq.Name)
		}
		return fmt.Errorf("resolving shot code: %w", err)
	}
	return nil
}
