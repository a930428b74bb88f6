package mcp

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/reelworks/pipetrack/internal/discover"
	"github.com/reelworks/pipetrack/internal/domain/asset"
	"github.com/reelworks/pipetrack/internal/domain/project"
	"github.com/reelworks/pipetrack/internal/domain/sequence"
	"github.com/reelworks/pipetrack/internal/domain/shot"
	"github.com/reelworks/pipetrack/internal/domain/version"
	"github.com/reelworks/pipetrack/internal/tracker"
)

// registerTools registers every pipeline tool on the server.
func registerTools(server *sdkmcp.Server, tr *tracker.Tracker) {
	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Find or create a project by name. Names are conditioned, so any spelling of the same name yields the same project.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
		proj, created, err := tr.FindOrCreateProject(ctx, in.Name)
		if err != nil {
			return nil, ProjectResult{}, MapError(err)
		}
		out := projectResult(proj)
		out.Created = created
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get an existing project by name.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, ProjectResult, error) {
		proj, err := tr.GetProject(ctx, in.Name)
		if err != nil {
			return nil, ProjectResult{}, MapError(err)
		}
		return nil, projectResult(proj), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List the projects under the repository root.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListProjectsParams) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		names, err := tr.ListProjects(ctx)
		if err != nil {
			return nil, ListProjectsResult{}, MapError(err)
		}
		return nil, ListProjectsResult{Projects: names}, nil
	})

	// Sequences
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_sequence",
		Description: "Create a sequence in a project and lay out its folders.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateSequenceParams) (*sdkmcp.CallToolResult, sequence.Sequence, error) {
		seq, err := tr.CreateSequence(ctx, in.Project, in.Name)
		if err != nil {
			return nil, sequence.Sequence{}, MapError(err)
		}
		return nil, *seq, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_sequences",
		Description: "List the sequences of a project.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListSequencesParams) (*sdkmcp.CallToolResult, ListSequencesResult, error) {
		h, err := tr.Handle(ctx, in.Project)
		if err != nil {
			return nil, ListSequencesResult{}, MapError(err)
		}
		seqs, err := h.Sequences.List(ctx)
		if err != nil {
			return nil, ListSequencesResult{}, MapError(err)
		}
		return nil, ListSequencesResult{Sequences: seqs}, nil
	})

	// Shots
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_shot",
		Description: "Create a shot in a sequence. Frames default to 1-1.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateShotParams) (*sdkmcp.CallToolResult, ShotResult, error) {
		h, seq, err := sequenceOf(ctx, tr, in.Project, in.Sequence)
		if err != nil {
			return nil, ShotResult{}, MapError(err)
		}
		sh, err := h.Shots.Create(ctx, seq, shot.CreateRequest{
			Number:      in.Number,
			StartFrame:  in.StartFrame,
			EndFrame:    in.EndFrame,
			Description: in.Description,
		})
		if err != nil {
			return nil, ShotResult{}, MapError(err)
		}
		return nil, shotResultOf(h, sh), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_alternate_shot",
		Description: "Add the next free alternate of a shot, e.g. 12 -> 12A -> 12B. The letter Q is never used.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddAlternateShotParams) (*sdkmcp.CallToolResult, ShotResult, error) {
		h, seq, err := sequenceOf(ctx, tr, in.Project, in.Sequence)
		if err != nil {
			return nil, ShotResult{}, MapError(err)
		}
		sh, err := h.Shots.AddAlternate(ctx, seq, in.Number)
		if err != nil {
			return nil, ShotResult{}, MapError(err)
		}
		return nil, shotResultOf(h, sh), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_shots",
		Description: "List the shots of a sequence.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListShotsParams) (*sdkmcp.CallToolResult, ListShotsResult, error) {
		h, seq, err := sequenceOf(ctx, tr, in.Project, in.Sequence)
		if err != nil {
			return nil, ListShotsResult{}, MapError(err)
		}
		shots, err := h.Shots.List(ctx, seq)
		if err != nil {
			return nil, ListShotsResult{}, MapError(err)
		}
		out := ListShotsResult{Shots: make([]ShotResult, 0, len(shots))}
		for i := range shots {
			out.Shots = append(out.Shots, shotResultOf(h, &shots[i]))
		}
		return nil, out, nil
	})

	// Assets
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_asset",
		Description: "Register an asset identified by (base name, sub name, type).",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateAssetParams) (*sdkmcp.CallToolResult, ListAssetsResult, error) {
		h, err := tr.Handle(ctx, in.Project)
		if err != nil {
			return nil, ListAssetsResult{}, MapError(err)
		}
		create := asset.CreateRequest{
			BaseName: in.BaseName,
			SubName:  in.SubName,
			TypeName: in.Type,
		}
		if in.Sequence != "" {
			seq, err := h.Sequences.Get(ctx, in.Sequence)
			if err != nil {
				return nil, ListAssetsResult{}, MapError(err)
			}
			create.Seq = seq
		}
		a, err := h.Assets.Create(ctx, create)
		if err != nil {
			return nil, ListAssetsResult{}, MapError(err)
		}
		return nil, ListAssetsResult{Assets: []asset.Asset{*a}}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_assets",
		Description: "List the registered assets of a project, optionally scoped to one sequence.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListAssetsParams) (*sdkmcp.CallToolResult, ListAssetsResult, error) {
		h, err := tr.Handle(ctx, in.Project)
		if err != nil {
			return nil, ListAssetsResult{}, MapError(err)
		}
		var seq *sequence.Sequence
		if in.Sequence != "" {
			s, err := h.Sequences.Get(ctx, in.Sequence)
			if err != nil {
				return nil, ListAssetsResult{}, MapError(err)
			}
			seq = s
		}
		assets, err := h.Assets.List(ctx, seq)
		if err != nil {
			return nil, ListAssetsResult{}, MapError(err)
		}
		return nil, ListAssetsResult{Assets: assets}, nil
	})

	// Version types
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_version_types",
		Description: "List the version types registered in a project, optionally filtered by host environment.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListVersionTypesParams) (*sdkmcp.CallToolResult, ListVersionTypesResult, error) {
		h, err := tr.Handle(ctx, in.Project)
		if err != nil {
			return nil, ListVersionTypesResult{}, MapError(err)
		}
		types, err := h.Types.List(ctx, in.Environment)
		if err != nil {
			return nil, ListVersionTypesResult{}, MapError(err)
		}
		return nil, ListVersionTypesResult{Types: types}, nil
	})

	// Versions
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_shot_version",
		Description: "Create the next version of a shot and lay out its directories. The server allocates the number.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateShotVersionParams) (*sdkmcp.CallToolResult, VersionResult, error) {
		v, err := tr.CreateShotVersion(ctx, in.Project, in.Sequence, in.ShotCode, version.CreateRequest{
			TypeName:       in.Type,
			Environment:    in.Environment,
			TakeName:       in.Take,
			RevisionNumber: in.Revision,
			VersionNumber:  in.Version,
			Note:           in.Note,
			CreatedBy:      in.CreatedBy,
			Extension:      in.Extension,
		})
		if err != nil {
			return nil, VersionResult{}, MapError(err)
		}
		return nil, versionResult(v), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_asset_version",
		Description: "Create the next version of an asset and lay out its directories. The server allocates the number.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateAssetVersionParams) (*sdkmcp.CallToolResult, VersionResult, error) {
		subName := in.SubName
		if subName == "" {
			subName = version.DefaultTakeName
		}
		v, err := tr.CreateAssetVersion(ctx, in.Project, in.BaseName, subName, in.Type, version.CreateRequest{
			TypeName:       in.Type,
			Environment:    in.Environment,
			TakeName:       in.Take,
			RevisionNumber: in.Revision,
			VersionNumber:  in.Version,
			Note:           in.Note,
			CreatedBy:      in.CreatedBy,
			Extension:      in.Extension,
		})
		if err != nil {
			return nil, VersionResult{}, MapError(err)
		}
		return nil, versionResult(v), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_shot_versions",
		Description: "List the versions of a shot with their rendered file names and paths.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListShotVersionsParams) (*sdkmcp.CallToolResult, ListVersionsResult, error) {
		h, seq, err := sequenceOf(ctx, tr, in.Project, in.Sequence)
		if err != nil {
			return nil, ListVersionsResult{}, MapError(err)
		}
		sh, err := h.Shots.GetByCode(ctx, seq, in.ShotCode)
		if err != nil {
			return nil, ListVersionsResult{}, MapError(err)
		}
		versions, err := h.Versions.ListForShot(ctx, seq, sh)
		if err != nil {
			return nil, ListVersionsResult{}, MapError(err)
		}
		out := ListVersionsResult{Versions: make([]VersionResult, 0, len(versions))}
		for i := range versions {
			out.Versions = append(out.Versions, versionResult(&versions[i]))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "next_version_number",
		Description: "Ask which number the next version of a (base name, take) pair would get.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in NextVersionNumberParams) (*sdkmcp.CallToolResult, NextVersionNumberResult, error) {
		h, err := tr.Handle(ctx, in.Project)
		if err != nil {
			return nil, NextVersionNumberResult{}, MapError(err)
		}
		take := in.TakeName
		if take == "" {
			take = version.DefaultTakeName
		}
		n, err := h.Versions.NextNumber(ctx, in.BaseName, take)
		if err != nil {
			return nil, NextVersionNumberResult{}, MapError(err)
		}
		return nil, NextVersionNumberResult{Next: n}, nil
	})

	// Discovery
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "parse_filename",
		Description: "Split a version file name into its metadata fields using the project's naming grammar.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ParseFilenameParams) (*sdkmcp.CallToolResult, ParseFilenameResult, error) {
		md, err := tr.ParseFilename(ctx, in.Project, in.Sequence, in.Filename)
		if err != nil {
			return nil, ParseFilenameResult{}, MapError(err)
		}
		return nil, ParseFilenameResult{Metadata: md}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "scan_assets",
		Description: "Walk a project's files and return those whose names parse as versions, filtered by the given fields.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ScanAssetsParams) (*sdkmcp.CallToolResult, ScanAssetsResult, error) {
		findings, err := tr.ScanAssets(ctx, in.Project, in.Sequence, asset.Query{
			BaseName:     in.BaseName,
			SubName:      in.SubName,
			TypeCode:     in.TypeCode,
			UserInitials: in.UserInitials,
		})
		if err != nil {
			return nil, ScanAssetsResult{}, MapError(err)
		}
		return nil, ScanAssetsResult{Findings: findings}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reconcile_project",
		Description: "Record every version found on disk in the project store, keeping on-disk numbers. Idempotent.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ReconcileProjectParams) (*sdkmcp.CallToolResult, discover.Result, error) {
		res, err := tr.ReconcileProject(ctx, in.Project, in.Sequence)
		if err != nil {
			return nil, discover.Result{}, MapError(err)
		}
		return nil, res, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "locate_path",
		Description: "Tell which project an absolute repository path belongs to.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in LocatePathParams) (*sdkmcp.CallToolResult, LocatePathResult, error) {
		name, rel, err := tr.Repository().SplitProjectPath(in.Path)
		if err != nil {
			return nil, LocatePathResult{}, MapError(err)
		}
		return nil, LocatePathResult{Project: name, RelativePath: rel}, nil
	})

	// Users
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_users",
		Description: "List the users known to a project store.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListUsersParams) (*sdkmcp.CallToolResult, ListUsersResult, error) {
		h, err := tr.Handle(ctx, in.Project)
		if err != nil {
			return nil, ListUsersResult{}, MapError(err)
		}
		users, err := h.Store.Users.List(ctx)
		if err != nil {
			return nil, ListUsersResult{}, MapError(err)
		}
		return nil, ListUsersResult{Users: users}, nil
	})
}

func sequenceOf(ctx context.Context, tr *tracker.Tracker, projectName, seqName string) (*tracker.Handle, *sequence.Sequence, error) {
	h, err := tr.Handle(ctx, projectName)
	if err != nil {
		return nil, nil, err
	}
	seq, err := h.Sequences.Get(ctx, seqName)
	if err != nil {
		return nil, nil, err
	}
	return h, seq, nil
}

func shotResultOf(h *tracker.Handle, sh *shot.Shot) ShotResult {
	code, err := sh.Code(h.Project.Conventions)
	if err != nil {
		code = sh.Number
	}
	return shotResult(sh, code)
}

func projectResult(proj *project.Project) ProjectResult {
	return ProjectResult{
		ID:        proj.ID,
		Name:      proj.Name,
		Code:      proj.Code,
		FPS:       proj.FPS,
		Width:     proj.Width,
		Height:    proj.Height,
		CreatedAt: proj.CreatedAt.Format(time.RFC3339),
	}
}
