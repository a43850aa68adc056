package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("nature/beach.jpg"))
	assert.True(t, IsImageFile("nature/beach.JPEG"))
	assert.True(t, IsImageFile("city/skyline.PNG"))
	assert.True(t, IsImageFile("misc/loop.gif"))
	assert.True(t, IsImageFile("scans/old.bmp"))

	assert.False(t, IsImageFile("notes/readme.txt"))
	assert.False(t, IsImageFile("clips/surf.mp4"))
	assert.False(t, IsImageFile("vector/logo.svg"))
	assert.False(t, IsImageFile("noextension"))
}

func TestIsSupportedImageType(t *testing.T) {
	assert.True(t, IsSupportedImageType("image/png"))
	assert.True(t, IsSupportedImageType("image/svg+xml"))
	assert.False(t, IsSupportedImageType("application/pdf"))
	assert.False(t, IsSupportedImageType("video/mp4"))
}
