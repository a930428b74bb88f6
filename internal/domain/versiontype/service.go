package versiontype

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/reelworks/pipetrack/internal/naming"
	"github.com/reelworks/pipetrack/internal/repository"
	"github.com/reelworks/pipetrack/internal/templates"
)

// Service handles version type registration and lookup within one
// project.
type Service struct {
	types  Repository
	logger *slog.Logger
}

// NewService creates a version type service bound to one project's
// store.
func NewService(types Repository, logger *slog.Logger) *Service {
	return &Service{types: types, logger: logger}
}

// Register validates and persists a version type. Every template is
// compiled here so that a type referencing variables outside the naming
// contract is rejected at registration time, long before the first
// version tries to render with it.
func (s *Service) Register(ctx context.Context, t *Type) (*Type, error) {
	if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Code) == "" {
		return nil, fmt.Errorf("%w: version type name and code are required", naming.ErrInvalidName)
	}
	if t.TypeFor != ForShot && t.TypeFor != ForAsset {
		return nil, fmt.Errorf("%w: type_for must be Shot or Asset", ErrWrongUsage)
	}

	if err := validateTemplates(t); err != nil {
		return nil, err
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := s.types.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
		}
		return nil, fmt.Errorf("registering version type: %w", err)
	}

	s.logger.Info("version type registered", "name", t.Name, "code", t.Code)
	return t, nil
}

// GetByName fetches a type by name.
func (s *Service) GetByName(ctx context.Context, name string) (*Type, error) {
	t, err := s.types.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
		}
		return nil, fmt.Errorf("getting version type: %w", err)
	}
	return t, nil
}

// GetByCode fetches a type by its short code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Type, error) {
	t, err := s.types.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, code)
		}
		return nil, fmt.Errorf("getting version type: %w", err)
	}
	return t, nil
}

// List returns the registered types, optionally restricted to the ones
// valid for a host environment.
func (s *Service) List(ctx context.Context, environment string) ([]Type, error) {
	all, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing version types: %w", err)
	}
	if environment == "" {
		return all, nil
	}
	filtered := all[:0]
	for _, t := range all {
		if t.ValidFor(environment) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Codes returns the codes of every registered type, in registration
// order. The discovery parser resolves parsed type codes against this
// set.
func (s *Service) Codes(ctx context.Context) ([]string, error) {
	all, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing version types: %w", err)
	}
	codes := make([]string, 0, len(all))
	for _, t := range all {
		codes = append(codes, t.Code)
	}
	return codes, nil
}

func validateTemplates(t *Type) error {
	named := []struct {
		name string
		src  string
	}{
		{"filename", t.Filename},
		{"path", t.Path},
		{"output_path", t.OutputPath},
	}
	for _, tmpl := range named {
		if strings.TrimSpace(tmpl.src) == "" {
			return fmt.Errorf("%w: version type %s has an empty %s template",
				ErrInvalidTemplate, t.Name, tmpl.name)
		}
		if _, err := templates.Compile(tmpl.name, tmpl.src); err != nil {
			return fmt.Errorf("version type %s: %w", t.Name, err)
		}
	}
	for i, line := range strings.Split(t.ExtraFolders, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := templates.Compile(fmt.Sprintf("extra_folder_%d", i), line); err != nil {
			return fmt.Errorf("version type %s: %w", t.Name, err)
		}
	}
	return nil
}
