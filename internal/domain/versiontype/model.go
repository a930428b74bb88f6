// Package versiontype implements the named template sets governing
// where and how version files are named and placed. Types are shared,
// immutable-by-convention configuration: editing a template rewrites the
// rendering of every past version referencing it.
package versiontype

import "slices"

// Usage declares whether a type applies to shots or assets.
type Usage string

const (
	ForShot  Usage = "Shot"
	ForAsset Usage = "Asset"
)

// Type is a naming template set. The three templates consume the fixed
// variable contract of internal/templates; ExtraFolders holds one
// template per line for additional folders created at version time.
type Type struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	Filename     string   `json:"filename"`
	Path         string   `json:"path"`
	OutputPath   string   `json:"output_path"`
	ExtraFolders string   `json:"extra_folders,omitempty"`
	Environments []string `json:"environments"`
	TypeFor      Usage    `json:"type_for"`
}

// ValidFor reports whether the type may be used from the given host
// environment. An empty environment matches every type.
func (t *Type) ValidFor(environment string) bool {
	if environment == "" {
		return true
	}
	return slices.Contains(t.Environments, environment)
}

// ShotDependent reports whether versions of this type belong to shots,
// which requires their base name to be a valid shot code.
func (t *Type) ShotDependent() bool {
	return t.TypeFor == ForShot
}
