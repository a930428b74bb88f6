package config

// The studio-wide naming templates. Every stock version type shares the
// filename and output path; only the directory layout differs per type.
const (
	defaultFilename   = `{{.Version.BaseName}}_{{.Version.TakeName}}_{{.Type.Code}}_{{printf "v%03d" .Version.VersionNumber}}_{{.Version.CreatedBy.Initials}}{{.Version.Extension}}`
	defaultOutputPath = `{{.Version.Path}}/OUTPUT/{{.Version.TakeName}}`

	shotPath  = `{{.Project.Code}}/Sequences/{{.Sequence.Code}}/Shots/{{.Version.BaseName}}/{{.Type.Code}}`
	assetPath = `{{.Project.Code}}/Assets/{{.Version.BaseName}}/{{.Type.Code}}`
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Log: LogConfig{
			Level: "info",
		},
		Repository: RepositoryConfig{
			Name:         "Default",
			LinuxPath:    "~/Projects",
			WindowsPath:  "~/Projects",
			OSXPath:      "~/Projects",
			DatabaseName: ".metadata.db",
		},
		Conventions: ConventionsConfig{
			ShotPrefix:  "SH",
			ShotPadding: 3,
			RevPrefix:   "r",
			RevPadding:  2,
			VerPrefix:   "v",
			VerPadding:  3,
		},
		Defaults: DefaultsConfig{
			FPS:              25,
			ResolutionWidth:  1920,
			ResolutionHeight: 1080,
			TakeName:         "MAIN",
			ProjectStructure: defaultProjectStructure(),
		},
		Users: []UserConfig{
			{Name: "Administrator", Initials: "adm"},
		},
		Environments: []Environment{
			{Name: "Maya", Extensions: []string{"ma", "mb"}},
			{Name: "Houdini", Extensions: []string{"hip"}},
			{Name: "Nuke", Extensions: []string{"nk"}},
			{
				Name:             "Photoshop",
				Extensions:       []string{"psd", "pdd"},
				ExportExtensions: []string{"tif", "tga", "bmp", "jpg", "iff"},
			},
			{Name: "3DEqualizer", Extensions: []string{"3te"}},
		},
		VersionTypes: defaultVersionTypes(),
	}
}

// defaultProjectStructure lists the folders created for every sequence,
// relative to the project root.
func defaultProjectStructure() []string {
	return []string{
		`Sequences/{{.Sequence.Code}}/Edit/Offline`,
		`Sequences/{{.Sequence.Code}}/Edit/Sound`,
		`Sequences/{{.Sequence.Code}}/References/Artworks`,
		`Sequences/{{.Sequence.Code}}/References/Text/Scenario`,
		`Sequences/{{.Sequence.Code}}/References/Photos_Images`,
		`Sequences/{{.Sequence.Code}}/References/Videos`,
		`Sequences/{{.Sequence.Code}}/References/Others`,
		`Sequences/{{.Sequence.Code}}/Others`,
		`Sequences/{{.Sequence.Code}}/Others/assets`,
		`Sequences/{{.Sequence.Code}}/Others/clips`,
		`Sequences/{{.Sequence.Code}}/Others/data`,
		`Sequences/{{.Sequence.Code}}/Others/fur`,
		`Sequences/{{.Sequence.Code}}/Others/fur/furAttrMap`,
		`Sequences/{{.Sequence.Code}}/Others/fur/furEqualMap`,
		`Sequences/{{.Sequence.Code}}/Others/fur/furFiles`,
		`Sequences/{{.Sequence.Code}}/Others/fur/furImages`,
		`Sequences/{{.Sequence.Code}}/Others/fur/furShadowMap`,
		`Sequences/{{.Sequence.Code}}/Others/mel`,
		`Sequences/{{.Sequence.Code}}/Others/particles`,
	}
}

func defaultVersionTypes() []VersionType {
	return []VersionType{
		{
			Name:         "Animation",
			Code:         "ANIM",
			Filename:     defaultFilename,
			Path:         shotPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Maya", "Houdini"},
			TypeFor:      "Shot",
		},
		{
			Name:         "Camera",
			Code:         "CAMERA",
			Filename:     defaultFilename,
			Path:         shotPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Maya", "Houdini"},
			TypeFor:      "Shot",
		},
		{
			Name:         "Composition",
			Code:         "COMP",
			Filename:     defaultFilename,
			Path:         shotPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Nuke"},
			TypeFor:      "Shot",
		},
		{
			Name:         "Edit",
			Code:         "EDIT",
			Filename:     defaultFilename,
			Path:         shotPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Nuke"},
			TypeFor:      "Shot",
		},
		{
			Name:       "FX",
			Code:       "FX",
			Filename:   defaultFilename,
			Path:       shotPath,
			OutputPath: defaultOutputPath,
			ExtraFolders: `{{.Version.Path}}/anim
{{.Version.Path}}/cache
{{.Version.Path}}/exports
{{.Version.Path}}/fx_scenes
{{.Version.Path}}/maps
{{.Version.Path}}/misc
{{.Version.Path}}/obj
{{.Version.Path}}/sim_in
{{.Version.Path}}/sim_out`,
			Environments: []string{"Maya", "Houdini"},
			TypeFor:      "Shot",
		},
		{
			Name:         "Model",
			Code:         "MODEL",
			Filename:     defaultFilename,
			Path:         assetPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Maya", "Houdini"},
			TypeFor:      "Asset",
		},
		{
			Name:         "Other",
			Code:         "OTHER",
			Filename:     defaultFilename,
			Path:         `{{.Project.Code}}/Others/{{.Version.BaseName}}/{{.Type.Code}}`,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Maya", "Houdini", "Nuke"},
			TypeFor:      "Asset",
		},
		{
			Name:         "Previs",
			Code:         "PREVIS",
			Filename:     defaultFilename,
			Path:         shotPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Maya", "Houdini"},
			TypeFor:      "Shot",
		},
		{
			Name:         "Lighting",
			Code:         "LIGHTING",
			Filename:     defaultFilename,
			Path:         shotPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Maya", "Houdini"},
			TypeFor:      "Shot",
		},
		{
			Name:         "Rig",
			Code:         "RIG",
			Filename:     defaultFilename,
			Path:         assetPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Maya", "Houdini"},
			TypeFor:      "Asset",
		},
		{
			Name:         "Scene Assembly",
			Code:         "SCNASS",
			Filename:     defaultFilename,
			Path:         shotPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Maya", "Houdini"},
			TypeFor:      "Shot",
		},
		{
			Name:         "Matte Paint",
			Code:         "MATTE",
			Filename:     defaultFilename,
			Path:         `{{.Project.Code}}/Sequences/{{.Sequence.Code}}/Shots/{{.Version.BaseName}}/PAINTINGS/{{.Type.Code}}`,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Photoshop"},
			TypeFor:      "Shot",
		},
		{
			Name:         "Texture Paint",
			Code:         "TEXTURE",
			Filename:     defaultFilename,
			Path:         `{{.Project.Code}}/Assets/{{.Version.BaseName}}/PAINTINGS/{{.Type.Code}}`,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Photoshop"},
			TypeFor:      "Asset",
		},
		{
			Name:         "Illustration",
			Code:         "ILLUSTRATION",
			Filename:     defaultFilename,
			Path:         `{{.Project.Code}}/Assets/{{.Version.BaseName}}/PAINTINGS/{{.Type.Code}}`,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Photoshop"},
			TypeFor:      "Asset",
		},
		{
			Name:         "Shading",
			Code:         "SHADING",
			Filename:     defaultFilename,
			Path:         assetPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"Maya", "Houdini"},
			TypeFor:      "Asset",
		},
		{
			Name:         "Tracking",
			Code:         "TRACK",
			Filename:     defaultFilename,
			Path:         shotPath,
			OutputPath:   defaultOutputPath,
			Environments: []string{"3DEqualizer"},
			TypeFor:      "Shot",
		},
	}
}
