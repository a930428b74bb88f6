package naming

import (
	"path"
	"strings"
)

// DefaultSeparator is the field separator used by the default naming
// templates.
const DefaultSeparator = "_"

// Metadata is the structured result of parsing a version file name.
type Metadata struct {
	BaseName       string `json:"base_name"`
	SubName        string `json:"sub_name"`
	TypeCode       string `json:"type_code"`
	RevString      string `json:"rev_string"`
	VerString      string `json:"ver_string"`
	UserInitials   string `json:"user_initials"`
	Notes          string `json:"notes,omitempty"`
	Extension      string `json:"extension"`
	RevisionNumber int    `json:"revision_number"`
	VersionNumber  int    `json:"version_number"`
}

// Parser recovers version metadata from on-disk file names. It is the
// inverse of the template renderer for the default naming templates and
// is used by the legacy discovery path, where a store has to be rebuilt
// from the files alone.
type Parser struct {
	// Separator between name fields, "_" when empty.
	Separator string
	// NoSubNameField selects the legacy grammar without a subName field.
	NoSubNameField bool
	// Conventions validate the revision and version strings.
	Conventions Conventions
	// TypeCodes holds the version type codes registered for the
	// sequence. A parsed type code outside this set is not an asset.
	TypeCodes []string
}

// Parse splits fileName into version metadata. Two grammars are
// supported:
//
//	new:    baseName_subName_typeCode[_revString]_verString_userInitials[_notes...]
//	legacy: baseName_typeCode[_revString]_verString_userInitials[_notes...]
//
// A name that matches neither grammar, carries an unregistered type
// code, or whose rev/ver strings do not follow the conventions yields
// ErrNotAnAsset. Callers scanning directories should skip such files,
// not fail.
func (p *Parser) Parse(fileName string) (Metadata, error) {
	sep := p.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	ext := path.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	parts := strings.Split(base, sep)

	minParts := 5
	if p.NoSubNameField {
		minParts = 4
	}
	if len(parts) < minParts {
		return Metadata{}, ErrNotAnAsset
	}

	md := Metadata{Extension: ext}
	md.BaseName = parts[0]
	rest := parts[1:]
	if !p.NoSubNameField {
		md.SubName = rest[0]
		rest = rest[1:]
	}
	md.TypeCode = rest[0]
	rest = rest[1:]

	if !p.knownTypeCode(md.TypeCode) {
		return Metadata{}, ErrNotAnAsset
	}

	// The revision field is optional: the default templates only embed
	// the version string.
	if rev, ok := p.Conventions.ParseRevNumber(rest[0]); ok && len(rest) >= 2 {
		if ver, ok := p.Conventions.ParseVerNumber(rest[1]); ok {
			md.RevString = rest[0]
			md.RevisionNumber = rev
			md.VerString = rest[1]
			md.VersionNumber = ver
			rest = rest[2:]
		} else {
			return Metadata{}, ErrNotAnAsset
		}
	} else if ver, ok := p.Conventions.ParseVerNumber(rest[0]); ok {
		md.VerString = rest[0]
		md.VersionNumber = ver
		rest = rest[1:]
	} else {
		return Metadata{}, ErrNotAnAsset
	}

	if len(rest) == 0 || rest[0] == "" {
		return Metadata{}, ErrNotAnAsset
	}
	md.UserInitials = rest[0]

	// Anything left over is free-form notes.
	if len(rest) > 1 {
		md.Notes = strings.Join(rest[1:], sep)
	}

	return md, nil
}

func (p *Parser) knownTypeCode(code string) bool {
	for _, c := range p.TypeCodes {
		if c == code {
			return true
		}
	}
	return false
}
