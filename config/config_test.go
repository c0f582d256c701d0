package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSourceFilesResolvesRelativePaths(t *testing.T) {
	files := parseSourceFiles(
		"dentalpro.json:DentalPro Supplies, /srv/exports/ortholine.json:OrthoLine Distribution",
		"/data/exports")
	require.Len(t, files, 2)

	assert.Equal(t, filepath.Join("/data/exports", "dentalpro.json"), files[0].Path)
	assert.Equal(t, "DentalPro Supplies", files[0].Vendor)

	assert.Equal(t, "/srv/exports/ortholine.json", files[1].Path, "absolute paths pass through")
	assert.Equal(t, "OrthoLine Distribution", files[1].Vendor)
}

func TestParseSourceFilesSkipsMalformedEntries(t *testing.T) {
	files := parseSourceFiles("no-vendor.json, :Nameless Vendor, good.json:MediDent Group", "/data")
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join("/data", "good.json"), files[0].Path)
	assert.Equal(t, "MediDent Group", files[0].Vendor)
}
