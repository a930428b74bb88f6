package sequence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/reelworks/pipetrack/internal/repository"
)

// Service handles sequence operations within one project.
type Service struct {
	projectName string
	seqs        Repository
	logger      *slog.Logger
}

// NewService creates a sequence service bound to one project's store.
func NewService(projectName string, seqs Repository, logger *slog.Logger) *Service {
	return &Service{projectName: projectName, seqs: seqs, logger: logger}
}

// Create adds a new sequence. The name is conditioned first; a name
// already present in the project is a validation error, never an
// overwrite.
func (s *Service) Create(ctx context.Context, name string) (*Sequence, error) {
	conditioned, err := ConditionName(name)
	if err != nil {
		return nil, err
	}

	seq := &Sequence{
		ID:          uuid.NewString(),
		Name:        conditioned,
		Code:        conditioned,
		ProjectName: s.projectName,
		CreatedAt:   time.Now(),
	}

	if err := s.seqs.Create(ctx, seq); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSequence, conditioned)
		}
		return nil, fmt.Errorf("creating sequence: %w", err)
	}

	s.logger.Info("sequence created", "project", s.projectName, "sequence", conditioned)
	return seq, nil
}

// Get fetches a sequence by name. The lookup conditions the name so
// "Test Seq 1" and "TEST_SEQ_1" resolve to the same sequence.
func (s *Service) Get(ctx context.Context, name string) (*Sequence, error) {
	conditioned, err := ConditionName(name)
	if err != nil {
		return nil, err
	}
	seq, err := s.seqs.GetByName(ctx, conditioned)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSequenceNotFound, conditioned)
		}
		return nil, fmt.Errorf("getting sequence: %w", err)
	}
	seq.ProjectName = s.projectName
	return seq, nil
}

// List returns all sequences of the project.
func (s *Service) List(ctx context.Context) ([]Sequence, error) {
	seqs, err := s.seqs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sequences: %w", err)
	}
	for i := range seqs {
		seqs[i].ProjectName = s.projectName
	}
	return seqs, nil
}
