package mcp

import (
	"github.com/reelworks/pipetrack/internal/discover"
	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/domain/user"
	"github.com/reelworks/pipetrack/internal/domain/version"
	"github.com/reelworks/pipetrack/internal/domain/versiontype"
	"github.com/reelworks/pipetrack/internal/naming"
)

// Project tools

type CreateProjectParams struct {
	Name string `json:"name" jsonschema:"project name, conditioned to UPPER_SNAKE form"`
}

type ProjectResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	FPS       int    `json:"fps"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"created_at"`
	Created   bool   `json:"created,omitempty"`
}

type GetProjectParams struct {
	Name string `json:"name" jsonschema:"project name"`
}

type ListProjectsParams struct{}

type ListProjectsResult struct {
	Projects []string `json:"projects"`
}

// Sequence tools

type CreateSequenceParams struct {
	Project string `json:"project" jsonschema:"project name"`
	Name    string `json:"name" jsonschema:"sequence name"`
}

type ListSequencesParams struct {
	Project string `json:"project" jsonschema:"project name"`
}

type ListSequencesResult struct {
	Sequences []sequence.Sequence `json:"sequences"`
}

// Shot tools

type CreateShotParams struct {
	Project     string `json:"project" jsonschema:"project name"`
	Sequence    string `json:"sequence" jsonschema:"sequence name"`
	Number      string `json:"number" jsonschema:"shot number, digits plus optional letter, e.g. 12 or 12A"`
	StartFrame  int    `json:"start_frame,omitempty"`
	EndFrame    int    `json:"end_frame,omitempty"`
	Description string `json:"description,omitempty"`
}

type AddAlternateShotParams struct {
	Project  string `json:"project" jsonschema:"project name"`
	Sequence string `json:"sequence" jsonschema:"sequence name"`
	Number   string `json:"number" jsonschema:"base shot number to branch, e.g. 12"`
}

type ShotResult struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	Code       string `json:"code"`
	StartFrame int    `json:"start_frame"`
	EndFrame   int    `json:"end_frame"`
	Duration   int    `json:"duration"`
}

type ListShotsParams struct {
	Project  string `json:"project" jsonschema:"project name"`
	Sequence string `json:"sequence" jsonschema:"sequence name"`
}

type ListShotsResult struct {
	Shots []ShotResult `json:"shots"`
}

// Asset tools

type CreateAssetParams struct {
	Project  string `json:"project" jsonschema:"project name"`
	BaseName string `json:"base_name" jsonschema:"asset base name, or a shot code for shot-dependent types"`
	SubName  string `json:"sub_name,omitempty" jsonschema:"variant name, MAIN when omitted"`
	Type     string `json:"type" jsonschema:"version type name, e.g. Model"`
	Sequence string `json:"sequence,omitempty" jsonschema:"sequence name, required for shot-dependent types"`
}

type ListAssetsParams struct {
	Project  string `json:"project" jsonschema:"project name"`
	Sequence string `json:"sequence,omitempty" jsonschema:"limit to one sequence"`
}

type ListAssetsResult struct {
	Assets []asset.Asset `json:"assets"`
}

// Version type tools

type ListVersionTypesParams struct {
	Project     string `json:"project" jsonschema:"project name"`
	Environment string `json:"environment,omitempty" jsonschema:"limit to types usable from this host application"`
}

type ListVersionTypesResult struct {
	Types []versiontype.Type `json:"types"`
}

// Version tools

type CreateShotVersionParams struct {
	Project     string `json:"project" jsonschema:"project name"`
	Sequence    string `json:"sequence" jsonschema:"sequence name"`
	ShotCode    string `json:"shot_code" jsonschema:"shot display code, e.g. SH001"`
	Type        string `json:"type" jsonschema:"version type name"`
	Take        string `json:"take,omitempty" jsonschema:"take name, MAIN when omitted"`
	Revision    int    `json:"revision,omitempty"`
	Version     int    `json:"version,omitempty" jsonschema:"requested number; honored only above the current maximum"`
	Note        string `json:"note,omitempty"`
	CreatedBy   string `json:"created_by" jsonschema:"user initials"`
	Extension   string `json:"extension,omitempty" jsonschema:"file extension including the dot"`
	Environment string `json:"environment,omitempty" jsonschema:"host application"`
}

type CreateAssetVersionParams struct {
	Project     string `json:"project" jsonschema:"project name"`
	BaseName    string `json:"base_name" jsonschema:"asset base name"`
	SubName     string `json:"sub_name,omitempty" jsonschema:"asset variant, MAIN when omitted"`
	Type        string `json:"type" jsonschema:"version type name"`
	Take        string `json:"take,omitempty"`
	Revision    int    `json:"revision,omitempty"`
	Version     int    `json:"version,omitempty"`
	Note        string `json:"note,omitempty"`
	CreatedBy   string `json:"created_by" jsonschema:"user initials"`
	Extension   string `json:"extension,omitempty"`
	Environment string `json:"environment,omitempty"`
}

type VersionResult struct {
	ID         string `json:"id"`
	BaseName   string `json:"base_name"`
	TakeName   string `json:"take_name"`
	Number     int    `json:"version_number"`
	Revision   int    `json:"revision_number,omitempty"`
	Filename   string `json:"filename"`
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
	Fullpath   string `json:"fullpath"`
	CreatedBy  string `json:"created_by"`
	Note       string `json:"note,omitempty"`
}

type ListShotVersionsParams struct {
	Project  string `json:"project" jsonschema:"project name"`
	Sequence string `json:"sequence" jsonschema:"sequence name"`
	ShotCode string `json:"shot_code" jsonschema:"shot display code"`
}

type ListVersionsResult struct {
	Versions []VersionResult `json:"versions"`
}

type NextVersionNumberParams struct {
	Project  string `json:"project" jsonschema:"project name"`
	BaseName string `json:"base_name"`
	TakeName string `json:"take_name,omitempty" jsonschema:"MAIN when omitted"`
}

type NextVersionNumberResult struct {
	Next int `json:"next"`
}

// Discovery tools

type ParseFilenameParams struct {
	Project  string `json:"project" jsonschema:"project name"`
	Sequence string `json:"sequence,omitempty" jsonschema:"sequence whose grammar applies"`
	Filename string `json:"filename" jsonschema:"file name to parse"`
}

type ParseFilenameResult struct {
	Metadata naming.Metadata `json:"metadata"`
}

type ScanAssetsParams struct {
	Project      string `json:"project" jsonschema:"project name"`
	Sequence     string `json:"sequence,omitempty"`
	BaseName     string `json:"base_name,omitempty"`
	SubName      string `json:"sub_name,omitempty"`
	TypeCode     string `json:"type_code,omitempty"`
	UserInitials string `json:"user_initials,omitempty"`
}

type ScanAssetsResult struct {
	Findings []discover.Finding `json:"findings"`
}

type ReconcileProjectParams struct {
	Project  string `json:"project" jsonschema:"project name"`
	Sequence string `json:"sequence,omitempty"`
}

type LocatePathParams struct {
	Path string `json:"path" jsonschema:"absolute path inside the repository root"`
}

type LocatePathResult struct {
	Project      string `json:"project"`
	RelativePath string `json:"relative_path,omitempty"`
}

// User tools

type ListUsersParams struct {
	Project string `json:"project" jsonschema:"project name"`
}

type ListUsersResult struct {
	Users []user.User `json:"users"`
}

func versionResult(v *version.Version) VersionResult {
	return VersionResult{
		ID:         v.ID,
		BaseName:   v.BaseName,
		TakeName:   v.TakeName,
		Number:     v.VersionNumber,
		Revision:   v.RevisionNumber,
		Filename:   v.Filename,
		Path:       v.Path,
		OutputPath: v.OutputPath,
		Fullpath:   v.Fullpath(),
		CreatedBy:  v.CreatedBy,
		Note:       v.Note,
	}
}

func shotResult(sh *shot.Shot, code string) ShotResult {
	return ShotResult{
		ID:         sh.ID,
		Number:     sh.Number,
		Code:       code,
		StartFrame: sh.StartFrame,
		EndFrame:   sh.EndFrame,
		Duration:   sh.Duration(),
	}
}
