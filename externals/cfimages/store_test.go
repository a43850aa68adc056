package cfimages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldersFromNames(t *testing.T) {
	folders := FoldersFromNames([]string{
		"Nature/3f2a1d.jpg",
		"City/9b8c7e.png",
		"Nature/5d4e6f.jpg",
		"orphan-without-folder",
		"/leading-slash",
	})

	assert.Equal(t, []string{"City", "Nature"}, folders)
}

func TestFoldersFromNamesEmpty(t *testing.T) {
	assert.Empty(t, FoldersFromNames(nil))
	assert.Empty(t, FoldersFromNames([]string{"no-folder"}))
}

func TestAssetName(t *testing.T) {
	assert.Equal(t, "Nature/abc123", AssetName("Nature", "abc123"))
	assert.Equal(t, "Nature/abc123", AssetName("/Nature/", "abc123"))
	assert.Equal(t, "abc123", AssetName("", "abc123"))
}
