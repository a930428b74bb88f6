package shot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/naming"
	"github.com/reelworks/pipetrack/internal/repository"
)

// Service handles shot operations within one project.
type Service struct {
	conv   naming.Conventions
	shots  Repository
	logger *slog.Logger
}

// NewService creates a shot service bound to one project's store.
func NewService(conv naming.Conventions, shots Repository, logger *slog.Logger) *Service {
	return &Service{conv: conv, shots: shots, logger: logger}
}

// CreateRequest defines shot creation inputs. Frame bounds default to 1.
type CreateRequest struct {
	Number      string
	StartFrame  int
	EndFrame    int
	Description string
}

// Create adds a shot to the sequence. The number is conditioned first; a
// number already present in the sequence is a validation error, never an
// overwrite.
func (s *Service) Create(ctx context.Context, seq *sequence.Sequence, req CreateRequest) (*Shot, error) {
	number, err := naming.ConditionShotNumber(req.Number)
	if err != nil {
		return nil, err
	}

	startFrame := req.StartFrame
	if startFrame == 0 {
		startFrame = 1
	}
	endFrame := req.EndFrame
	if endFrame == 0 {
		endFrame = 1
	}

	sh := &Shot{
		ID:         uuid.NewString(),
		SequenceID: seq.ID,
		Number:     number,
		StartFrame: startFrame,
		EndFrame:   endFrame,
		Descr:      req.Description,
		CreatedAt:  time.Now(),
	}

	if err := s.shots.Create(ctx, sh); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateShot, number)
		}
		return nil, fmt.Errorf("creating shot: %w", err)
	}

	s.logger.Info("shot created", "sequence", seq.Name, "number", number)
	return sh, nil
}

// AddAlternate allocates the next free alternate of the given base shot
// number ("10" with 10, 10A, 10B taken yields 10C) and creates it. The
// new shot inherits the frame bounds of the base shot when it exists.
func (s *Service) AddAlternate(ctx context.Context, seq *sequence.Sequence, baseNumber string) (*Shot, error) {
	base, err := naming.ConditionShotNumber(baseNumber)
	if err != nil {
		return nil, err
	}

	existing, err := s.shots.ListBySequence(ctx, seq.ID)
	if err != nil {
		return nil, fmt.Errorf("listing shots: %w", err)
	}
	used := make(map[string]bool, len(existing))
	for _, sh := range existing {
		used[sh.Number] = true
	}

	number, err := naming.NextAlternate(base, used)
	if err != nil {
		return nil, err
	}

	req := CreateRequest{Number: number}
	for _, sh := range existing {
		if sh.Number == base {
			req.StartFrame = sh.StartFrame
			req.EndFrame = sh.EndFrame
			break
		}
	}
	return s.Create(ctx, seq, req)
}

// Get fetches a shot by its (raw or conditioned) number.
func (s *Service) Get(ctx context.Context, seq *sequence.Sequence, number string) (*Shot, error) {
	conditioned, err := naming.ConditionShotNumber(number)
	if err != nil {
		return nil, err
	}
	sh, err := s.shots.GetByNumber(ctx, seq.ID, conditioned)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrShotNotFound, conditioned)
		}
		return nil, fmt.Errorf("getting shot: %w", err)
	}
	return sh, nil
}

// GetByCode resolves a shot code such as "SH010A" back to the shot.
func (s *Service) GetByCode(ctx context.Context, seq *sequence.Sequence, code string) (*Shot, error) {
	number, ok := s.conv.ParseShotNumber(code)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrShotNotFound, code)
	}
	return s.Get(ctx, seq, number)
}

// List returns all shots of the sequence.
func (s *Service) List(ctx context.Context, seq *sequence.Sequence) ([]Shot, error) {
	shots, err := s.shots.ListBySequence(ctx, seq.ID)
	if err != nil {
		return nil, fmt.Errorf("listing shots: %w", err)
	}
	return shots, nil
}

// SetFrames updates the frame bounds; duration follows automatically
// since it is derived.
func (s *Service) SetFrames(ctx context.Context, sh *Shot, startFrame, endFrame int) error {
	if err := s.shots.UpdateFrames(ctx, sh.ID, startFrame, endFrame); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrShotNotFound, sh.Number)
		}
		return fmt.Errorf("updating shot frames: %w", err)
	}
	sh.StartFrame = startFrame
	sh.EndFrame = endFrame
	return nil
}

// Code composes the canonical code for a shot using the project
// conventions.
func (s *Service) Code(sh *Shot) (string, error) {
	return sh.Code(s.conv)
}
