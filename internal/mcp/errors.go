package mcp

import (
	"errors"
	"fmt"

	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/domain/project"
	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/domain/user"
	"github.com/reelworks/pipetrack/internal/domain/version"
	"github.com/reelworks/pipetrack/internal/domain/versiontype"
	"github.com/reelworks/pipetrack/internal/naming"
	"github.com/reelworks/pipetrack/internal/storage"
	"github.com/reelworks/pipetrack/internal/templates"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors pass
// through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	code, hint := classify(err)
	if code == "" {
		return err
	}
	return &APIError{Code: code, Message: err.Error(), RecoveryHint: hint}
}

func classify(err error) (code, hint string) {
	switch {
	case errors.Is(err, naming.ErrInvalidName):
		return "INVALID_NAME", "Names need at least one letter; symbols are stripped"
	case errors.Is(err, naming.ErrInvalidShotNumber):
		return "INVALID_SHOT_NUMBER", "Shot numbers are digits plus an optional letter, like 12 or 12A"
	case errors.Is(err, naming.ErrNoAlternateSlot):
		return "NO_ALTERNATE_SLOT", "All alternate letters for this shot are taken"
	case errors.Is(err, naming.ErrNotAnAsset):
		return "NOT_AN_ASSET", "The file name does not follow the version naming grammar"
	case errors.Is(err, project.ErrProjectNotFound):
		return "PROJECT_NOT_FOUND", "List projects to see what exists"
	case errors.Is(err, sequence.ErrSequenceNotFound):
		return "SEQUENCE_NOT_FOUND", "List sequences to see what exists"
	case errors.Is(err, sequence.ErrDuplicateSequence):
		return "DUPLICATE_SEQUENCE", "Use the existing sequence"
	case errors.Is(err, shot.ErrShotNotFound):
		return "SHOT_NOT_FOUND", "List shots to see what exists"
	case errors.Is(err, shot.ErrDuplicateShot):
		return "DUPLICATE_SHOT", "Use add_alternate_shot for a variant of an existing shot"
	case errors.Is(err, asset.ErrAssetNotFound):
		return "ASSET_NOT_FOUND", "Create the asset first"
	case errors.Is(err, asset.ErrDuplicateAsset):
		return "DUPLICATE_ASSET", "Use the existing asset"
	case errors.Is(err, asset.ErrShotCodeRequired):
		return "SHOT_CODE_REQUIRED", "Shot-dependent types take a shot code like SH001 as base name"
	case errors.Is(err, versiontype.ErrTypeNotFound):
		return "TYPE_NOT_FOUND", "List version types to see what is registered"
	case errors.Is(err, versiontype.ErrDuplicateType):
		return "DUPLICATE_TYPE", ""
	case errors.Is(err, versiontype.ErrWrongUsage):
		return "WRONG_TYPE_USAGE", "Shot types go on shots, asset types on assets"
	case errors.Is(err, versiontype.ErrWrongEnvironment):
		return "WRONG_ENVIRONMENT", "Check the type's environment list"
	case errors.Is(err, versiontype.ErrInvalidTemplate):
		return "INVALID_TEMPLATE", ""
	case errors.Is(err, templates.ErrUnknownVariable):
		return "INVALID_TEMPLATE", "Templates may only reference the fixed naming variables"
	case errors.Is(err, templates.ErrRender):
		return "TEMPLATE_RENDER_FAILED", "Check the type's naming templates"
	case errors.Is(err, version.ErrAllocationConflict):
		return "ALLOCATION_CONFLICT", "Heavy write contention; retry the call"
	case errors.Is(err, user.ErrUserNotFound):
		return "USER_NOT_FOUND", "Check the configured user initials"
	case errors.Is(err, storage.ErrStorageUnavailable):
		return "STORAGE_UNAVAILABLE", "Check that the repository mount is reachable"
	default:
		return "", ""
	}
}
