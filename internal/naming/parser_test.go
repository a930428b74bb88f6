package naming

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestParser(noSubName bool) *Parser {
	return &Parser{
		NoSubNameField: noSubName,
		Conventions:    DefaultConventions(),
		TypeCodes:      []string{"ANIM", "MODEL", "COMP", "RIG"},
	}
}

func TestParse_NewGrammar(t *testing.T) {
	p := newTestParser(false)

	md, err := p.Parse("Car_MAIN_MODEL_v003_oy")
	require.NoError(t, err)
	require.Equal(t, "Car", md.BaseName)
	require.Equal(t, "MAIN", md.SubName)
	require.Equal(t, "MODEL", md.TypeCode)
	require.Equal(t, "v003", md.VerString)
	require.Equal(t, 3, md.VersionNumber)
	require.Equal(t, "oy", md.UserInitials)
	require.Equal(t, "", md.Notes)
	require.Equal(t, "", md.RevString)
}

func TestParse_WithRevisionAndExtension(t *testing.T) {
	p := newTestParser(false)

	md, err := p.Parse("SH001_MAIN_ANIM_r02_v014_eoy.ma")
	require.NoError(t, err)
	require.Equal(t, "SH001", md.BaseName)
	require.Equal(t, "MAIN", md.SubName)
	require.Equal(t, "ANIM", md.TypeCode)
	require.Equal(t, "r02", md.RevString)
	require.Equal(t, 2, md.RevisionNumber)
	require.Equal(t, "v014", md.VerString)
	require.Equal(t, 14, md.VersionNumber)
	require.Equal(t, "eoy", md.UserInitials)
	require.Equal(t, ".ma", md.Extension)
}

func TestParse_NotesRejoined(t *testing.T) {
	p := newTestParser(false)

	md, err := p.Parse("Car_MAIN_MODEL_v003_oy_fixed_wheel_shading")
	require.NoError(t, err)
	require.Equal(t, "fixed_wheel_shading", md.Notes)
}

func TestParse_LegacyGrammar(t *testing.T) {
	p := newTestParser(true)

	md, err := p.Parse("SH010_COMP_r01_v002_adm.nk")
	require.NoError(t, err)
	require.Equal(t, "SH010", md.BaseName)
	require.Equal(t, "", md.SubName)
	require.Equal(t, "COMP", md.TypeCode)
	require.Equal(t, "r01", md.RevString)
	require.Equal(t, "v002", md.VerString)
	require.Equal(t, "adm", md.UserInitials)
}

func TestParse_NotAnAsset(t *testing.T) {
	p := newTestParser(false)

	cases := []string{
		"readme",
		"too_few_parts",
		"Car_MAIN_UNKNOWN_v003_oy",   // unregistered type code
		"Car_MAIN_MODEL_x003_oy",     // bad version string
		"Car_MAIN_MODEL_v003",        // missing user initials
		"Car_MAIN_MODEL_r01_x001_oy", // rev without valid ver
	}

	for _, name := range cases {
		_, err := p.Parse(name)
		require.ErrorIs(t, err, ErrNotAnAsset, "file name %q", name)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	// The default filename template renders
	// base_take_type_vNNN_initials + extension; parsing that back must
	// recover the fields that were rendered.
	p := newTestParser(false)
	conv := DefaultConventions()

	base, take, typeCode, initials, ext := "Car", "MAIN", "MODEL", "oy", ".mb"
	for _, n := range []int{1, 3, 42, 999} {
		name := base + "_" + take + "_" + typeCode + "_" + conv.VerString(n) + "_" + initials + ext

		md, err := p.Parse(name)
		require.NoError(t, err, "file name %q", name)
		require.Equal(t, base, md.BaseName)
		require.Equal(t, take, md.SubName)
		require.Equal(t, typeCode, md.TypeCode)
		require.Equal(t, conv.VerString(n), md.VerString)
		require.Equal(t, n, md.VersionNumber)
		require.Equal(t, initials, md.UserInitials)
		require.Equal(t, ext, md.Extension)
		require.Equal(t, "", md.Notes)
	}
}
