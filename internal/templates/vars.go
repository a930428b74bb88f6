// Package templates renders naming templates against a fixed, enumerated
// variable set. Templates referencing anything outside that set are
// rejected when the template is compiled, not when a version is created.
package templates

// Vars is the complete variable set exposed to naming templates. Nothing
// else is ever supplied.
type Vars struct {
	Project  ProjectVars
	Sequence SequenceVars
	Version  VersionVars
	Type     TypeVars
}

// ProjectVars describes the owning project.
type ProjectVars struct {
	Name string
	Code string
}

// SequenceVars describes the owning sequence. It is the zero value when
// the version owner is an asset.
type SequenceVars struct {
	Code string
}

// VersionVars describes the version being rendered.
type VersionVars struct {
	BaseName       string
	TakeName       string
	VersionNumber  int
	RevisionNumber int
	// Path is only set while rendering output paths and extra folders,
	// which may refer to the already rendered version path.
	Path      string
	Extension string
	CreatedBy UserVars
}

// UserVars describes the creating user.
type UserVars struct {
	Initials string
}

// TypeVars describes the version type.
type TypeVars struct {
	Name string
	Code string
}

// allowedFields enumerates every field path a template may reference.
var allowedFields = map[string]bool{
	"Project.Name":               true,
	"Project.Code":               true,
	"Sequence.Code":              true,
	"Version.BaseName":           true,
	"Version.TakeName":           true,
	"Version.VersionNumber":      true,
	"Version.RevisionNumber":     true,
	"Version.Path":               true,
	"Version.Extension":          true,
	"Version.CreatedBy.Initials": true,
	"Type.Name":                  true,
	"Type.Code":                  true,
}
