// Package version implements versions and the monotonic version number
// allocator. A version is one concrete file iteration of a shot's or
// asset's deliverable; its file name and path are always derived by
// rendering the owning type's templates, never edited by hand.
package version

import (
	"path"
	"time"
)

// OwnerKind distinguishes the two versionable entities.
type OwnerKind string

const (
	OwnerShot  OwnerKind = "shot"
	OwnerAsset OwnerKind = "asset"
)

// DefaultTakeName is used when a take name is not supplied.
const DefaultTakeName = "MAIN"

// Version is one iteration of a deliverable. The
// (BaseName, TakeName, VersionNumber) triple is unique across the
// project store.
type Version struct {
	ID        string    `json:"id"`
	OwnerKind OwnerKind `json:"owner_kind"`
	OwnerID   string    `json:"owner_id"`
	TypeID    string    `json:"type_id"`

	BaseName       string `json:"base_name"`
	TakeName       string `json:"take_name"`
	RevisionNumber int    `json:"revision_number"`
	VersionNumber  int    `json:"version_number"`

	Note      string    `json:"note,omitempty"`
	CreatedBy string    `json:"created_by"`
	Extension string    `json:"extension,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Derived by template rendering, never persisted. Changing a type
	// template rewrites these for every past version, which is the
	// documented risk of editing templates in use.
	Filename   string `json:"filename,omitempty"`
	Path       string `json:"path,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
}

// Fullpath joins the rendered path and file name.
func (v *Version) Fullpath() string {
	if v.Path == "" || v.Filename == "" {
		return ""
	}
	return path.Join(v.Path, v.Filename)
}
